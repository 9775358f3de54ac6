package schema

import "fmt"

// Kind identifies the wire representation of a field.
type Kind int

// Field kinds. The zero value is deliberately invalid so that a Field
// built without a kind fails layout compilation instead of packing
// garbage.
const (
	KindInvalid Kind = iota
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindString
	KindPad
	KindVirtual
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindString:  "string",
	KindPad:     "pad",
	KindVirtual: "virtual",
}

// String returns the schema-file spelling of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// intWidth returns the encoded byte width of fixed-width integer kinds
// and 0 for everything else.
func intWidth(k Kind) int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32:
		return 4
	case KindInt64, KindUint64:
		return 8
	}
	return 0
}

// signedKind reports whether k decodes to a signed integer value.
func signedKind(k Kind) bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

// unsignedKind reports whether k decodes to an unsigned integer value.
func unsignedKind(k Kind) bool {
	switch k {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
	return false
}

// Field describes one field of a record layout before compilation: its
// name, wire kind, byte length (strings and padding only), default
// value and optional documentation text.
type Field struct {
	Name    string
	Kind    Kind
	Len     int
	Default interface{}
	Doc     string
}

// Int8 declares a signed 8-bit field.
func Int8(name string, def int64) Field {
	return Field{Name: name, Kind: KindInt8, Default: def}
}

// Uint8 declares an unsigned 8-bit field.
func Uint8(name string, def uint64) Field {
	return Field{Name: name, Kind: KindUint8, Default: def}
}

// Int16 declares a signed 16-bit little-endian field.
func Int16(name string, def int64) Field {
	return Field{Name: name, Kind: KindInt16, Default: def}
}

// Uint16 declares an unsigned 16-bit little-endian field.
func Uint16(name string, def uint64) Field {
	return Field{Name: name, Kind: KindUint16, Default: def}
}

// Int32 declares a signed 32-bit little-endian field.
func Int32(name string, def int64) Field {
	return Field{Name: name, Kind: KindInt32, Default: def}
}

// Uint32 declares an unsigned 32-bit little-endian field.
func Uint32(name string, def uint64) Field {
	return Field{Name: name, Kind: KindUint32, Default: def}
}

// Int64 declares a signed 64-bit little-endian field.
func Int64(name string, def int64) Field {
	return Field{Name: name, Kind: KindInt64, Default: def}
}

// Uint64 declares an unsigned 64-bit little-endian field.
func Uint64(name string, def uint64) Field {
	return Field{Name: name, Kind: KindUint64, Default: def}
}

// String declares a fixed-length byte string field of the given width.
// Values shorter than the width pack zero-padded, longer values pack
// truncated.
func String(name string, length int, def string) Field {
	return Field{Name: name, Kind: KindString, Len: length, Default: def}
}

// Pad declares unnamed filler reserving length zero bytes in the
// packed form. Filler has no accessor and never appears in values.
func Pad(length int) Field {
	return Field{Kind: KindPad, Len: length}
}

// Virtual declares a field that lives only in the value mapping:
// it has an accessor, participates in equality and the textual form,
// but contributes no bytes to the packed form.
func Virtual(name string, def interface{}) Field {
	return Field{Name: name, Kind: KindVirtual, Default: def}
}

// WithDoc returns a copy of the field with documentation text attached.
func (f Field) WithDoc(doc string) Field {
	f.Doc = doc
	return f
}
