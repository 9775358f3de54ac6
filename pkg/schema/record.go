package schema

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"
)

// Record is one mutable instance of a compiled Layout. It holds a
// value for every named and virtual field of the layout; filler fields
// never appear. All writes go through Set, so the stored values are
// always in canonical form and Pack cannot fail.
type Record struct {
	layout *Layout
	values map[string]interface{}
}

// newRecord creates a record with every assignable field at its
// compiled default.
func (l *Layout) newRecord() *Record {
	values := make(map[string]interface{}, len(l.names))
	for _, name := range l.names {
		values[name] = l.fields[l.index[name]].Default
	}
	return &Record{layout: l, values: values}
}

// New creates a record, assigning values to the assignable fields in
// declaration order. Unassigned fields keep their defaults. Supplying
// more values than the layout has assignable fields is an error.
func (l *Layout) New(values ...interface{}) (*Record, error) {
	if len(values) > len(l.names) {
		return nil, fmt.Errorf("layout %s takes at most %d values, got %d: %w",
			l.name, len(l.names), len(values), ErrTooManyValues)
	}
	r := l.newRecord()
	for i, v := range values {
		if err := r.Set(l.names[i], v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewMap creates a record from a name-to-value mapping. Keys that do
// not name a field are ignored; values that do not fit their field are
// errors.
func (l *Layout) NewMap(values map[string]interface{}) (*Record, error) {
	r := l.newRecord()
	for name, v := range values {
		if _, ok := l.index[name]; !ok {
			continue
		}
		if err := r.Set(name, v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Unpack creates a record by decoding a packed buffer, which must be
// exactly Size bytes long.
func (l *Layout) Unpack(data []byte) (*Record, error) {
	r := l.newRecord()
	if err := r.Unpack(data); err != nil {
		return nil, err
	}
	return r, nil
}

// Layout returns the compiled layout the record conforms to.
func (r *Record) Layout() *Layout {
	return r.layout
}

// Size returns the packed byte size of the record, a constant of its
// layout.
func (r *Record) Size() int {
	return r.layout.size
}

// Get returns the current value of a named or virtual field.
func (r *Record) Get(name string) (interface{}, error) {
	if _, ok := r.layout.index[name]; !ok {
		return nil, fmt.Errorf("layout %s has no field %q: %w", r.layout.name, name, ErrUnknownField)
	}
	return r.values[name], nil
}

// Set stores a value into a named or virtual field after normalizing
// it to the field's canonical form: integers are range-checked for the
// field width, string values have non-ASCII bytes dropped and are cut
// at the first NUL. Virtual fields store the value verbatim.
func (r *Record) Set(name string, value interface{}) error {
	i, ok := r.layout.index[name]
	if !ok {
		return fmt.Errorf("layout %s has no field %q: %w", r.layout.name, name, ErrUnknownField)
	}
	v, err := coerceValue(r.layout.fields[i], value)
	if err != nil {
		return fmt.Errorf("%s.%s: value %v: %w", r.layout.name, name, value, err)
	}
	r.values[name] = v
	return nil
}

// Int returns the field value as a signed integer, or 0 when the field
// is missing or not integer-valued.
func (r *Record) Int(name string) int64 {
	switch v := r.values[name].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	}
	return 0
}

// Uint returns the field value as an unsigned integer, or 0 when the
// field is missing or not integer-valued.
func (r *Record) Uint(name string) uint64 {
	switch v := r.values[name].(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	}
	return 0
}

// Str returns the field value as a string, or "" when the field is
// missing or not string-valued.
func (r *Record) Str(name string) string {
	v, _ := r.values[name].(string)
	return v
}

// Values returns a copy of the record's value mapping.
func (r *Record) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(r.values))
	for name, v := range r.values {
		out[name] = v
	}
	return out
}

// Pack encodes the record into a fresh buffer of exactly Size bytes.
// Multi-byte integers are little-endian, string fields are truncated
// or zero-padded to their declared width, filler bytes are zero and
// virtual fields contribute nothing. Pack is total: because Set
// normalizes every stored value, no field value can make it fail.
func (r *Record) Pack() []byte {
	b := make([]byte, r.layout.size)
	for _, f := range r.layout.packed {
		switch f.Kind {
		case KindInt8:
			b[f.Offset] = byte(r.values[f.Name].(int64))
		case KindUint8:
			b[f.Offset] = byte(r.values[f.Name].(uint64))
		case KindInt16:
			binary.LittleEndian.PutUint16(b[f.Offset:], uint16(r.values[f.Name].(int64)))
		case KindUint16:
			binary.LittleEndian.PutUint16(b[f.Offset:], uint16(r.values[f.Name].(uint64)))
		case KindInt32:
			binary.LittleEndian.PutUint32(b[f.Offset:], uint32(r.values[f.Name].(int64)))
		case KindUint32:
			binary.LittleEndian.PutUint32(b[f.Offset:], uint32(r.values[f.Name].(uint64)))
		case KindInt64:
			binary.LittleEndian.PutUint64(b[f.Offset:], uint64(r.values[f.Name].(int64)))
		case KindUint64:
			binary.LittleEndian.PutUint64(b[f.Offset:], r.values[f.Name].(uint64))
		case KindString:
			copy(b[f.Offset:f.Offset+f.Width], r.values[f.Name].(string))
		}
	}
	return b
}

// Unpack decodes a packed buffer into the record in place. The buffer
// must be exactly Size bytes long. Every decoded value is written
// through Set, so string sanitization applies uniformly on read and
// write. Virtual fields keep their current values.
func (r *Record) Unpack(data []byte) error {
	if len(data) != r.layout.size {
		return fmt.Errorf("layout %s wants %d bytes, got %d: %w",
			r.layout.name, r.layout.size, len(data), ErrSizeMismatch)
	}
	for _, f := range r.layout.packed {
		var v interface{}
		switch f.Kind {
		case KindInt8:
			v = int64(int8(data[f.Offset]))
		case KindUint8:
			v = uint64(data[f.Offset])
		case KindInt16:
			v = int64(int16(binary.LittleEndian.Uint16(data[f.Offset:])))
		case KindUint16:
			v = uint64(binary.LittleEndian.Uint16(data[f.Offset:]))
		case KindInt32:
			v = int64(int32(binary.LittleEndian.Uint32(data[f.Offset:])))
		case KindUint32:
			v = uint64(binary.LittleEndian.Uint32(data[f.Offset:]))
		case KindInt64:
			v = int64(binary.LittleEndian.Uint64(data[f.Offset:]))
		case KindUint64:
			v = binary.LittleEndian.Uint64(data[f.Offset:])
		case KindString:
			v = data[f.Offset : f.Offset+f.Width]
		}
		if err := r.Set(f.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two records share the same compiled layout and
// hold element-wise equal values, virtual fields included.
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return false
	}
	if r.layout != other.layout {
		return false
	}
	return reflect.DeepEqual(r.values, other.values)
}

// String renders the record as a "name=value" listing in declaration
// order, for diagnostics.
func (r *Record) String() string {
	var b strings.Builder
	for i, name := range r.layout.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.values[name])
	}
	return b.String()
}
