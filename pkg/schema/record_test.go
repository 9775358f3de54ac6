package schema

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ssargent/binrec/pkg/buf"
)

func dirEntry(t *testing.T) *Layout {
	t.Helper()
	l, err := NewLayout("DirEntry", []Field{
		Int32("offset", 0),
		Int32("size", 0),
		String("name", 8, ""),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	return l
}

func TestRecord_Defaults(t *testing.T) {
	l, err := NewLayout("Lump", []Field{
		Int32("offset", 12),
		String("name", 8, "UNNAMED"),
		Virtual("source", "memory"),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	r, err := l.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := r.Int("offset"); got != 12 {
		t.Errorf("offset default = %d, want 12", got)
	}
	if got := r.Str("name"); got != "UNNAMED" {
		t.Errorf("name default = %q, want %q", got, "UNNAMED")
	}
	v, err := r.Get("source")
	if err != nil {
		t.Fatalf("Get(source) failed: %v", err)
	}
	if v != "memory" {
		t.Errorf("source default = %v, want %q", v, "memory")
	}
}

func TestRecord_PositionalConstruction(t *testing.T) {
	l := dirEntry(t)

	r, err := l.New(42, 100, "THINGS")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Int("offset") != 42 || r.Int("size") != 100 || r.Str("name") != "THINGS" {
		t.Errorf("unexpected values: %s", r)
	}

	// A partial positional list leaves the rest at defaults.
	r, err = l.New(7)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if r.Int("offset") != 7 || r.Int("size") != 0 || r.Str("name") != "" {
		t.Errorf("unexpected values: %s", r)
	}
}

func TestRecord_TooManyValues(t *testing.T) {
	l := dirEntry(t)

	_, err := l.New(1, 2, "A", "extra")
	if err == nil {
		t.Fatal("expected an error for a fourth positional value")
	}
	if !errors.Is(err, ErrTooManyValues) {
		t.Errorf("error = %v, want ErrTooManyValues", err)
	}
}

func TestRecord_MapConstruction(t *testing.T) {
	l := dirEntry(t)

	r, err := l.NewMap(map[string]interface{}{
		"name":     "MAP01",
		"size":     100,
		"junkfood": true, // unknown keys are ignored
	})
	if err != nil {
		t.Fatalf("NewMap failed: %v", err)
	}
	if r.Str("name") != "MAP01" || r.Int("size") != 100 || r.Int("offset") != 0 {
		t.Errorf("unexpected values: %s", r)
	}

	_, err = l.NewMap(map[string]interface{}{"size": "huge"})
	if !errors.Is(err, ErrValueType) {
		t.Errorf("error = %v, want ErrValueType", err)
	}
}

func TestRecord_SetValidation(t *testing.T) {
	l, err := NewLayout("Mixed", []Field{
		Int8("small", 0),
		Uint8("byte", 0),
		Int32("wide", 0),
		String("tag", 4, ""),
		Virtual("extra", nil),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	tests := []struct {
		name    string
		field   string
		value   interface{}
		wantErr error
		want    interface{}
	}{
		{name: "in range", field: "small", value: 127, want: int64(127)},
		{name: "above signed range", field: "small", value: 128, wantErr: ErrValueRange},
		{name: "below signed range", field: "small", value: -129, wantErr: ErrValueRange},
		{name: "negative unsigned", field: "byte", value: -1, wantErr: ErrValueRange},
		{name: "above unsigned range", field: "byte", value: 256, wantErr: ErrValueRange},
		{name: "string into integer", field: "wide", value: "12", wantErr: ErrValueType},
		{name: "integral float", field: "wide", value: float64(5), want: int64(5)},
		{name: "fractional float", field: "wide", value: 5.5, wantErr: ErrValueType},
		{name: "bool into integer", field: "wide", value: true, wantErr: ErrValueType},
		{name: "bytes into string", field: "tag", value: []byte("AB\x00\x00"), want: "AB"},
		{name: "string stripped on write", field: "tag", value: "AB\x00CD", want: "AB"},
		{name: "integer into string", field: "tag", value: 9, wantErr: ErrValueType},
		{name: "virtual takes anything", field: "extra", value: []int{1, 2}, want: nil},
		{name: "unknown field", field: "ghost", value: 1, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := l.New()
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			err = r.Set(tt.field, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if tt.want != nil {
				got, err := r.Get(tt.field)
				if err != nil {
					t.Fatalf("Get failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("Get = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
				}
			}
		})
	}
}

func TestRecord_GetUnknownField(t *testing.T) {
	l := dirEntry(t)
	r, err := l.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := r.Get("ghost"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Get error = %v, want ErrUnknownField", err)
	}
}

func TestRecord_PackExample(t *testing.T) {
	l, err := NewLayout("Entry", []Field{
		String("id", 4, ""),
		Int16("count", 0),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if l.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", l.Size())
	}

	r, err := l.New("AB", 5)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := append(buf.PadBytes("AB", 4), buf.EncodeInt16(5)...)
	got := r.Pack()
	if !bytes.Equal(got, want) {
		t.Errorf("Pack() = %v, want %v", got, want)
	}

	back, err := l.Unpack(got)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !back.Equal(r) {
		t.Errorf("round trip changed the record: %s vs %s", back, r)
	}
}

func TestRecord_PackTruncatesLongStrings(t *testing.T) {
	l, err := NewLayout("Entry", []Field{
		String("id", 4, ""),
		Int16("count", 0),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	r, err := l.New("TOOLONGNAME")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// The overlong value survives in memory and truncates on the wire.
	if got := r.Str("id"); got != "TOOLONGNAME" {
		t.Errorf("in-memory value = %q, want untouched", got)
	}

	back, err := l.Unpack(r.Pack())
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got := back.Str("id"); got != "TOOL" {
		t.Errorf("id after round trip = %q, want %q", got, "TOOL")
	}
}

func TestRecord_PackAllKinds(t *testing.T) {
	l, err := NewLayout("Mixed", []Field{
		Int8("a", 0),
		Uint8("b", 0),
		Int16("c", 0),
		Uint16("d", 0),
		Pad(2),
		Int32("e", 0),
		Uint32("f", 0),
		Int64("g", 0),
		Uint64("h", 0),
		String("s", 4, ""),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if l.Size() != 36 {
		t.Fatalf("Size() = %d, want 36", l.Size())
	}

	r, err := l.New(-2, 200, -2, 40000, -2, uint32(3000000000), -2, uint64(0x0123456789ABCDEF), "AB")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// One row per field: a, b, c, d, filler, e, f, g, h, s.
	want := []byte{
		0xFE,
		0xC8,
		0xFE, 0xFF,
		0x40, 0x9C,
		0x00, 0x00,
		0xFE, 0xFF, 0xFF, 0xFF,
		0x00, 0x5E, 0xD0, 0xB2,
		0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01,
		'A', 'B', 0x00, 0x00,
	}
	got := r.Pack()
	if !bytes.Equal(got, want) {
		t.Errorf("Pack() = % X\nwant      % X", got, want)
	}

	back, err := l.Unpack(got)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !back.Equal(r) {
		t.Errorf("round trip changed the record:\n got %s\nwant %s", back, r)
	}
}

func TestRecord_PackSizeInvariant(t *testing.T) {
	l, err := NewLayout("Entry", []Field{
		String("id", 4, ""),
		Int16("count", 0),
		Pad(3),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	for _, id := range []string{"", "A", "ABCD", "WAY TOO LONG FOR THE FIELD"} {
		r, err := l.New(id)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", id, err)
		}
		if got := len(r.Pack()); got != l.Size() {
			t.Errorf("len(Pack()) = %d for id %q, want %d", got, id, l.Size())
		}
	}
}

func TestRecord_UnpackSizeMismatch(t *testing.T) {
	l := dirEntry(t)

	for _, n := range []int{0, 1, 15, 17, 32} {
		_, err := l.Unpack(make([]byte, n))
		if !errors.Is(err, ErrSizeMismatch) {
			t.Errorf("Unpack with %d bytes: error = %v, want ErrSizeMismatch", n, err)
		}
	}

	r, err := l.New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := r.Unpack(make([]byte, 15)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("in-place Unpack error = %v, want ErrSizeMismatch", err)
	}
}

func TestRecord_UnpackSanitizesStrings(t *testing.T) {
	l, err := NewLayout("Entry", []Field{
		String("id", 6, ""),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	// Garbage bytes and an embedded NUL in the string region.
	r, err := l.Unpack([]byte{0xE1, 'H', 'I', 0x00, 'X', 0xFF})
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got := r.Str("id"); got != "HI" {
		t.Errorf("id = %q, want %q", got, "HI")
	}
}

func TestRecord_VirtualFields(t *testing.T) {
	l, err := NewLayout("Lump", []Field{
		Int16("size", 0),
		Virtual("comment", ""),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if l.Size() != 2 {
		t.Fatalf("Size() = %d, want 2: virtual fields must not add bytes", l.Size())
	}

	r, err := l.New(9, "hand-placed")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data := r.Pack()
	if len(data) != 2 {
		t.Fatalf("len(Pack()) = %d, want 2", len(data))
	}

	// A freshly decoded record knows nothing of the virtual value.
	fresh, err := l.Unpack(data)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got, _ := fresh.Get("comment"); got != "" {
		t.Errorf("decoded comment = %v, want the default", got)
	}
	if fresh.Equal(r) {
		t.Error("records differing in a virtual field compare equal")
	}

	// In-place decoding leaves the virtual value alone.
	if err := r.Unpack([]byte{0x07, 0x00}); err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got, _ := r.Get("comment"); got != "hand-placed" {
		t.Errorf("comment after in-place Unpack = %v, want preserved", got)
	}
	if got := r.Int("size"); got != 7 {
		t.Errorf("size after in-place Unpack = %d, want 7", got)
	}
}

func TestRecord_Equal(t *testing.T) {
	l := dirEntry(t)

	a, err := l.New(1, 2, "E1M1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := l.New(1, 2, "E1M1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !a.Equal(a) {
		t.Error("a record does not equal itself")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Error("identical records compare unequal")
	}
	if a.Equal(nil) {
		t.Error("record equals nil")
	}

	if err := b.Set("size", 3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if a.Equal(b) {
		t.Error("records with different values compare equal")
	}

	// Same shape, separately compiled type: never equal.
	other := MustLayout("DirEntry", []Field{
		Int32("offset", 0),
		Int32("size", 0),
		String("name", 8, ""),
	})
	c, err := other.New(1, 2, "E1M1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Equal(c) {
		t.Error("records of different compiled types compare equal")
	}
}

func TestRecord_String(t *testing.T) {
	l := dirEntry(t)
	r, err := l.New(42, 100, "THINGS")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := "offset=42, size=100, name=THINGS"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecord_TypedAccessors(t *testing.T) {
	l, err := NewLayout("Mixed", []Field{
		Int16("signed", 0),
		Uint16("unsigned", 0),
		String("tag", 4, ""),
	})
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}

	r, err := l.New(-5, 40000, "OK")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := r.Int("signed"); got != -5 {
		t.Errorf("Int(signed) = %d, want -5", got)
	}
	if got := r.Uint("unsigned"); got != 40000 {
		t.Errorf("Uint(unsigned) = %d, want 40000", got)
	}
	if got := r.Int("unsigned"); got != 40000 {
		t.Errorf("Int(unsigned) = %d, want 40000", got)
	}
	if got := r.Str("tag"); got != "OK" {
		t.Errorf("Str(tag) = %q, want %q", got, "OK")
	}

	// Lenient accessors return zero values for misses.
	if got := r.Int("ghost"); got != 0 {
		t.Errorf("Int(ghost) = %d, want 0", got)
	}
	if got := r.Str("signed"); got != "" {
		t.Errorf("Str(signed) = %q, want empty", got)
	}
}

func TestRecord_ValuesIsACopy(t *testing.T) {
	l := dirEntry(t)
	r, err := l.New(1, 2, "E1M1")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	values := r.Values()
	values["name"] = "E9M9"
	if got := r.Str("name"); got != "E1M1" {
		t.Errorf("mutating Values() result leaked into the record: %q", got)
	}
}
