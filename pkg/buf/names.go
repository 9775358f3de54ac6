package buf

import "bytes"

// NameLen is the canonical width of short identifier fields such as
// lump and map names.
const NameLen = 8

// PadName returns the ASCII bytes of s in a NameLen-byte buffer,
// truncated if s is longer and zero-filled if shorter.
func PadName(s string) []byte {
	return PadBytes(s, NameLen)
}

// PadBytes returns the bytes of s in a width-byte buffer, truncated if
// s is longer and zero-filled if shorter.
func PadBytes(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)
	return b
}

// StripNulls decodes b as ASCII, dropping any byte outside the ASCII
// range, and returns the prefix before the first NUL byte. Buffers
// without a NUL come back whole. Applying it twice yields the same
// result as once.
func StripNulls(b []byte) string {
	ascii := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x80 {
			ascii = append(ascii, c)
		}
	}
	if i := bytes.IndexByte(ascii, 0); i >= 0 {
		ascii = ascii[:i]
	}
	return string(ascii)
}
