// Package query filters decoded records with simple field comparisons.
package query

import (
	"fmt"
	"strings"
)

// Condition represents a single field-based filter applied to decoded
// records.
type Condition struct {
	Field    string // Field name to compare (e.g. "size", "name")
	Operator string // Comparison operator: "=", "!=", ">", "<", ">=", "<="
	Value    string // Literal to compare against, parsed per field type
}

// operators in match order; two-character operators first so that
// ">=" is not read as ">" followed by a stray "=".
var operators = []string{">=", "<=", "!=", "=", ">", "<"}

// Parse reads a condition from an expression like "size > 100" or
// "name=THINGS". Whitespace around the field and value is ignored.
func Parse(expr string) (*Condition, error) {
	for _, op := range operators {
		i := strings.Index(expr, op)
		if i < 0 {
			continue
		}
		c := &Condition{
			Field:    strings.TrimSpace(expr[:i]),
			Operator: op,
			Value:    strings.TrimSpace(expr[i+len(op):]),
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("condition %q has no comparison operator", expr)
}

// Validate checks if the condition is properly formed
func (c *Condition) Validate() error {
	if c.Field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if c.Operator == "" {
		return fmt.Errorf("operator cannot be empty")
	}
	validOps := map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}
	if !validOps[c.Operator] {
		return fmt.Errorf("invalid operator: %s", c.Operator)
	}
	return nil
}

func (c *Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Operator, c.Value)
}
