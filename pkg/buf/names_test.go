package buf

import (
	"bytes"
	"testing"
)

func TestPadName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{name: "empty", input: "", want: make([]byte, 8)},
		{name: "shorter than width", input: "MAP01", want: []byte{'M', 'A', 'P', '0', '1', 0, 0, 0}},
		{name: "exactly width", input: "ABCDEFGH", want: []byte("ABCDEFGH")},
		{name: "longer than width", input: "TOOLONGNAME", want: []byte("TOOLONGN")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadName(tt.input)
			if len(got) != NameLen {
				t.Fatalf("PadName(%q) has length %d, want %d", tt.input, len(got), NameLen)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("PadName(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPadBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []byte
	}{
		{name: "pads short strings", input: "AB", width: 4, want: []byte{'A', 'B', 0, 0}},
		{name: "truncates long strings", input: "TOOLONGNAME", width: 4, want: []byte("TOOL")},
		{name: "zero width", input: "AB", width: 0, want: []byte{}},
		{name: "single byte", input: "", width: 1, want: []byte{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadBytes(tt.input, tt.width)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("PadBytes(%q, %d) = %v, want %v", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestStripNulls(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "no nulls", input: []byte("MAP01"), want: "MAP01"},
		{name: "trailing nulls", input: []byte{'M', 'A', 'P', '0', '1', 0, 0, 0}, want: "MAP01"},
		{name: "cuts at first null", input: []byte{'A', 'B', 0, 'C', 'D'}, want: "AB"},
		{name: "drops non-ascii bytes", input: []byte{0xE1, 'H', 'I', 0xFF, 0, 0}, want: "HI"},
		{name: "all nulls", input: []byte{0, 0, 0, 0}, want: ""},
		{name: "empty", input: []byte{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripNulls(tt.input)
			if got != tt.want {
				t.Errorf("StripNulls(%v) = %q, want %q", tt.input, got, tt.want)
			}

			// Stripping an already-stripped value changes nothing.
			again := StripNulls([]byte(got))
			if again != got {
				t.Errorf("StripNulls is not idempotent: %q became %q", got, again)
			}
		})
	}
}

func TestStripNulls_UndoesPadding(t *testing.T) {
	for _, s := range []string{"", "A", "MAP01", "ABCDEFGH"} {
		if got := StripNulls(PadName(s)); got != s {
			t.Errorf("StripNulls(PadName(%q)) = %q, want the original", s, got)
		}
	}
}
