// Package schema compiles declarative field lists into fixed-size
// binary record layouts and provides the pack/unpack codec shared by
// every record type built from them.
//
// The package targets binary file formats composed of small, fixed-size
// structured records, such as the directory entries of game resource
// containers, where each record type has a stable byte layout: a
// sequence of typed fields (integers, fixed-length strings, padding, or
// auxiliary fields that never serialize).
//
// # Record Layouts
//
// A record type is declared once as an ordered field list and compiled
// into a Layout:
//
//	DirEntry := schema.MustLayout("DirEntry", []schema.Field{
//	    schema.Int32("offset", 0),
//	    schema.Int32("size", 0),
//	    schema.String("name", 8, ""),
//	})
//
// Compilation derives the byte offset and width of every field, the
// total record size (here 16 bytes) and the canonical value rules per
// field. Malformed declarations fail at compile time with a
// DefinitionError, never later at pack time.
//
// # Wire Format
//
// A packed record is a buffer of exactly Layout.Size bytes:
//
//   - multi-byte integers are little-endian
//   - string fields occupy their declared width, NUL-padded when the
//     value is shorter and truncated when it is longer
//   - filler fields contribute zero bytes at their reserved positions
//   - virtual fields contribute nothing
//
// The buffer length is independent of field values: packing can never
// produce a short or oversized record.
//
// # Filler and Virtual Fields
//
// Pad fields reserve byte space for alignment or reserved regions.
// They have no name, no accessor and never appear in constructor
// values, equality or the textual form.
//
// Virtual fields are the opposite: they live only in the value
// mapping. They have accessors, participate in equality and the
// textual form, but are excluded from the packed bytes — intended for
// derived or auxiliary data that never round-trips through the wire.
//
// # Usage
//
//	r, err := DirEntry.New(42, 100, "THINGS")
//	if err != nil {
//	    return err
//	}
//
//	data := r.Pack() // 16 bytes
//
//	back, err := DirEntry.Unpack(data)
//	if err != nil {
//	    return err
//	}
//	back.Str("name") // "THINGS"
//
// # Error Handling
//
// Two error classes exist. Definition errors surface from NewLayout
// when a field list is malformed. Runtime errors surface from record
// operations: ErrSizeMismatch when Unpack receives a buffer whose
// length differs from Size, ErrUnknownField for accesses by a name the
// layout does not define, ErrValueType and ErrValueRange when a value
// does not fit its field, and ErrTooManyValues when construction
// receives more positional values than the layout has assignable
// fields. String fields are deliberately permissive instead: bytes
// outside the ASCII range are dropped rather than rejected, matching
// the forgiving nature of legacy binary text fields.
//
// # Thread Safety
//
// A Layout is immutable once compiled and safe to share between
// goroutines. A Record is owned by a single logical owner; concurrent
// mutation of the same instance must be serialized by the caller.
package schema
