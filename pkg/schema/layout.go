package schema

import (
	"fmt"
	"math"

	"github.com/ssargent/binrec/pkg/buf"
)

// FieldLayout is one compiled field: the declared Field plus its
// computed position in the packed form. Virtual fields carry an Offset
// of -1 and a Width of 0.
type FieldLayout struct {
	Field
	Offset int
	Width  int
}

// Layout is the compiled form of a record type: a fixed byte size, the
// field table in declaration order and the value rules derived from
// each field's kind. A Layout is built once, is immutable afterwards
// and may be shared freely between goroutines.
type Layout struct {
	name   string
	size   int
	fields []FieldLayout  // every declared field, filler included
	packed []FieldLayout  // fields with bytes in the packed form
	names  []string       // assignable field names in declaration order
	index  map[string]int // field name -> position in fields
}

// NewLayout compiles an ordered field list into a record layout.
// Malformed descriptors (unknown kinds, missing names, bad lengths,
// defaults that do not fit the field) are rejected here with a
// DefinitionError.
func NewLayout(name string, fields []Field) (*Layout, error) {
	if name == "" {
		return nil, defErr(name, "", "layout name is empty")
	}

	l := &Layout{name: name, index: make(map[string]int)}
	for i, f := range fields {
		label := f.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		fl := FieldLayout{Field: f}
		switch {
		case intWidth(f.Kind) > 0:
			if f.Name == "" {
				return nil, defErr(name, label, "integer field has no name")
			}
			if f.Len != 0 {
				return nil, defErr(name, label, "length is only valid on string and pad fields")
			}
			fl.Offset = l.size
			fl.Width = intWidth(f.Kind)
		case f.Kind == KindString:
			if f.Name == "" {
				return nil, defErr(name, label, "string field has no name")
			}
			if f.Len < 1 {
				return nil, defErr(name, label, "string field needs a length of at least 1")
			}
			fl.Offset = l.size
			fl.Width = f.Len
		case f.Kind == KindPad:
			if f.Name != "" {
				return nil, defErr(name, label, "filler cannot be named")
			}
			if f.Default != nil {
				return nil, defErr(name, label, "filler cannot carry a default")
			}
			if f.Len < 1 {
				return nil, defErr(name, label, "filler needs a length of at least 1")
			}
			fl.Offset = l.size
			fl.Width = f.Len
		case f.Kind == KindVirtual:
			if f.Name == "" {
				return nil, defErr(name, label, "virtual field has no name")
			}
			if f.Len != 0 {
				return nil, defErr(name, label, "length is only valid on string and pad fields")
			}
			fl.Offset = -1
		default:
			return nil, defErr(name, label, "unsupported field kind %v", f.Kind)
		}

		if f.Kind != KindPad {
			def, err := coerceValue(fl, f.Default)
			if err != nil {
				return nil, defErr(name, label, "default %v: %v", f.Default, err)
			}
			fl.Default = def
		}

		if f.Name != "" {
			if _, dup := l.index[f.Name]; dup {
				return nil, defErr(name, label, "duplicate field name")
			}
			l.index[f.Name] = len(l.fields)
			l.names = append(l.names, f.Name)
		}
		if f.Kind != KindPad && f.Kind != KindVirtual {
			l.packed = append(l.packed, fl)
		}
		l.fields = append(l.fields, fl)
		l.size += fl.Width
	}

	return l, nil
}

// MustLayout is NewLayout that panics on error, for layouts declared
// as package variables.
func MustLayout(name string, fields []Field) *Layout {
	l, err := NewLayout(name, fields)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the record type name the layout was compiled under.
func (l *Layout) Name() string {
	return l.name
}

// Size returns the packed byte size shared by every record of this
// layout.
func (l *Layout) Size() int {
	return l.size
}

// Names returns the assignable field names (named and virtual fields,
// filler excluded) in declaration order.
func (l *Layout) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Fields returns the compiled field table in declaration order, filler
// included.
func (l *Layout) Fields() []FieldLayout {
	out := make([]FieldLayout, len(l.fields))
	copy(out, l.fields)
	return out
}

// Field looks up one compiled field by name.
func (l *Layout) Field(name string) (FieldLayout, bool) {
	i, ok := l.index[name]
	if !ok {
		return FieldLayout{}, false
	}
	return l.fields[i], true
}

// coerceValue normalizes a caller-supplied value to the canonical
// stored form for the field: int64 for signed kinds, uint64 for
// unsigned kinds, a NUL-stripped string for string kinds. Virtual
// fields store the value verbatim. A nil value yields the kind's zero.
func coerceValue(f FieldLayout, v interface{}) (interface{}, error) {
	if v == nil {
		return zeroValue(f.Kind), nil
	}
	switch {
	case signedKind(f.Kind):
		return coerceSigned(v, f.Width)
	case unsignedKind(f.Kind):
		return coerceUnsigned(v, f.Width)
	case f.Kind == KindString:
		return coerceString(v)
	default:
		return v, nil
	}
}

func zeroValue(k Kind) interface{} {
	switch {
	case signedKind(k):
		return int64(0)
	case unsignedKind(k):
		return uint64(0)
	case k == KindString:
		return ""
	default:
		return nil
	}
}

func coerceSigned(v interface{}, width int) (interface{}, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int8:
		n = int64(t)
	case int16:
		n = int64(t)
	case int32:
		n = int64(t)
	case int64:
		n = t
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, ErrValueRange
		}
		n = int64(t)
	case uint8:
		n = int64(t)
	case uint16:
		n = int64(t)
	case uint32:
		n = int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return nil, ErrValueRange
		}
		n = int64(t)
	case float32:
		return coerceSigned(float64(t), width)
	case float64:
		if t != math.Trunc(t) {
			return nil, ErrValueType
		}
		if t > float64(math.MaxInt64) || t < float64(math.MinInt64) {
			return nil, ErrValueRange
		}
		n = int64(t)
	default:
		return nil, ErrValueType
	}

	min, max := signedRange(width)
	if n < min || n > max {
		return nil, ErrValueRange
	}
	return n, nil
}

func coerceUnsigned(v interface{}, width int) (interface{}, error) {
	var n uint64
	switch t := v.(type) {
	case int:
		if t < 0 {
			return nil, ErrValueRange
		}
		n = uint64(t)
	case int8:
		return coerceUnsigned(int(t), width)
	case int16:
		return coerceUnsigned(int(t), width)
	case int32:
		return coerceUnsigned(int(t), width)
	case int64:
		if t < 0 {
			return nil, ErrValueRange
		}
		n = uint64(t)
	case uint:
		n = uint64(t)
	case uint8:
		n = uint64(t)
	case uint16:
		n = uint64(t)
	case uint32:
		n = uint64(t)
	case uint64:
		n = t
	case float32:
		return coerceUnsigned(float64(t), width)
	case float64:
		if t != math.Trunc(t) {
			return nil, ErrValueType
		}
		if t < 0 {
			return nil, ErrValueRange
		}
		if t > float64(math.MaxUint64) {
			return nil, ErrValueRange
		}
		n = uint64(t)
	default:
		return nil, ErrValueType
	}

	if n > unsignedMax(width) {
		return nil, ErrValueRange
	}
	return n, nil
}

// coerceString accepts string or byte values and sanitizes them the
// same way on every path: non-ASCII bytes dropped, the value cut at
// the first NUL. Truncation to the declared width happens at pack
// time, not here, so an overlong value survives until serialized.
func coerceString(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case string:
		return buf.StripNulls([]byte(t)), nil
	case []byte:
		return buf.StripNulls(t), nil
	default:
		return nil, ErrValueType
	}
}

func signedRange(width int) (int64, int64) {
	switch width {
	case 1:
		return math.MinInt8, math.MaxInt8
	case 2:
		return math.MinInt16, math.MaxInt16
	case 4:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func unsignedMax(width int) uint64 {
	switch width {
	case 1:
		return math.MaxUint8
	case 2:
		return math.MaxUint16
	case 4:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}
