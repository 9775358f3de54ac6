package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ssargent/binrec/pkg/schema"
)

// Match evaluates the condition against one decoded record. The
// literal value is parsed according to the field's stored type: signed
// and unsigned fields compare numerically, string fields compare
// byte-wise. Virtual fields holding non-comparable values are errors.
func (c *Condition) Match(r *schema.Record) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, fmt.Errorf("invalid condition: %w", err)
	}

	v, err := r.Get(c.Field)
	if err != nil {
		return false, err
	}

	switch v := v.(type) {
	case int64:
		n, err := strconv.ParseInt(c.Value, 10, 64)
		if err != nil {
			return false, fmt.Errorf("condition value %q is not an integer", c.Value)
		}
		return holds(compareInt64(v, n), c.Operator), nil
	case uint64:
		n, err := strconv.ParseUint(c.Value, 10, 64)
		if err != nil {
			return false, fmt.Errorf("condition value %q is not an unsigned integer", c.Value)
		}
		return holds(compareUint64(v, n), c.Operator), nil
	case string:
		return holds(strings.Compare(v, c.Value), c.Operator), nil
	default:
		return false, fmt.Errorf("field %s holds %T, which cannot be compared", c.Field, v)
	}
}

// holds maps a three-way comparison result onto the condition operator.
func holds(cmp int, op string) bool {
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	}
	return false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
