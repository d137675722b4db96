package primitives

import (
	"cmp"
	"fmt"
	"strings"
)

// Predicate is a comparison operator used by declarative filters.
type Predicate int

const (
	Equals Predicate = iota
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	NotEqual
	NotEqualsBracket // alternative notation for NotEqual
)

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "="

	case LessThan:
		return "<"

	case GreaterThan:
		return ">"

	case LessThanOrEqual:
		return "<="

	case GreaterThanOrEqual:
		return ">="

	case NotEqual:
		return "!="

	case NotEqualsBracket:
		return "<>"

	default:
		return "UNKNOWN"
	}
}

// ParsePredicate converts an operator symbol to a Predicate.
func ParsePredicate(op string) (Predicate, error) {
	switch strings.TrimSpace(op) {
	case "=", "==":
		return Equals, nil
	case "<":
		return LessThan, nil
	case ">":
		return GreaterThan, nil
	case "<=":
		return LessThanOrEqual, nil
	case ">=":
		return GreaterThanOrEqual, nil
	case "!=":
		return NotEqual, nil
	case "<>":
		return NotEqualsBracket, nil
	default:
		return 0, fmt.Errorf("unsupported predicate: %q", op)
	}
}

// Evaluate applies p to left and right.
func Evaluate[T cmp.Ordered](p Predicate, left, right T) bool {
	c := cmp.Compare(left, right)
	switch p {
	case Equals:
		return c == 0
	case LessThan:
		return c < 0
	case GreaterThan:
		return c > 0
	case LessThanOrEqual:
		return c <= 0
	case GreaterThanOrEqual:
		return c >= 0
	case NotEqual, NotEqualsBracket:
		return c != 0
	default:
		return false
	}
}
