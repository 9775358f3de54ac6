// Package buf contains byte-level helpers shared by the record codec:
// little-endian integer primitives and fixed-width string padding.
package buf

import (
	"encoding/binary"
	"fmt"
)

const (
	// sizeInt16 is the byte size of an encoded int16 value.
	sizeInt16 = 2
	// sizeInt32 is the byte size of an encoded int32 value.
	sizeInt32 = 4
)

// EncodeInt16 encodes v as 2 little-endian bytes.
func EncodeInt16(v int16) []byte {
	b := make([]byte, sizeInt16)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

// DecodeInt16 reads a little-endian int16 from b. The buffer must be
// exactly 2 bytes long.
func DecodeInt16(b []byte) (int16, error) {
	if len(b) != sizeInt16 {
		return 0, fmt.Errorf("decoding int16 requires %d bytes, got %d", sizeInt16, len(b))
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// EncodeInt32 encodes v as 4 little-endian bytes.
func EncodeInt32(v int32) []byte {
	b := make([]byte, sizeInt32)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

// DecodeInt32 reads a little-endian int32 from b. The buffer must be
// exactly 4 bytes long.
func DecodeInt32(b []byte) (int32, error) {
	if len(b) != sizeInt32 {
		return 0, fmt.Errorf("decoding int32 requires %d bytes, got %d", sizeInt32, len(b))
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}
