package schema

import "fmt"

// RecordError represents a record manipulation error.
type RecordError struct {
	Message string
}

func (e *RecordError) Error() string {
	return e.Message
}

// Errors
var (
	ErrUnknownField  = &RecordError{"unknown field"}
	ErrSizeMismatch  = &RecordError{"buffer size mismatch"}
	ErrValueType     = &RecordError{"value type not allowed for field"}
	ErrValueRange    = &RecordError{"value out of range for field"}
	ErrTooManyValues = &RecordError{"more values than assignable fields"}
)

// DefinitionError reports an invalid field list at layout compile time.
// Malformed descriptors always fail here, never later at pack time.
type DefinitionError struct {
	Layout string
	Field  string // field name, or its ordinal like "#2" when unnamed
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("layout %s: %s", e.Layout, e.Reason)
	}
	return fmt.Sprintf("layout %s: field %s: %s", e.Layout, e.Field, e.Reason)
}

func defErr(layout string, field string, format string, args ...interface{}) error {
	return &DefinitionError{Layout: layout, Field: field, Reason: fmt.Sprintf(format, args...)}
}
