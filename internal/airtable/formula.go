package airtable

import (
	"fmt"
	"strconv"
	"strings"
)

// Formula builders for the upstream filterByFormula expression language.
// Only the constructs the assembler needs are covered: equality,
// case-insensitive equality, numeric equality, substring-in-joined-list
// tests and AND/OR composition.

// Equals builds {field} = "value".
func Equals(field, value string) string {
	return fmt.Sprintf("{%s} = %s", field, quote(value))
}

// EqualsFold builds a case-insensitive equality test on a text field.
func EqualsFold(field, value string) string {
	return fmt.Sprintf("LOWER({%s}) = %s", field, quote(strings.ToLower(value)))
}

// NumberEquals builds {field} = n for a numeric field.
func NumberEquals(field string, n int64) string {
	return fmt.Sprintf("{%s} = %s", field, strconv.FormatInt(n, 10))
}

// FindInJoined tests whether a linked-record list field contains the
// given record id: FIND("id", ARRAYJOIN({field})).
func FindInJoined(field, recordID string) string {
	return fmt.Sprintf("FIND(%s, ARRAYJOIN({%s}))", quote(recordID), field)
}

// And combines expressions with logical AND. A single expression is
// returned as-is.
func And(exprs ...string) string {
	return combine("AND", exprs)
}

// Or combines expressions with logical OR.
func Or(exprs ...string) string {
	return combine("OR", exprs)
}

func combine(op string, exprs []string) string {
	nonEmpty := exprs[:0:0]
	for _, e := range exprs {
		if e != "" {
			nonEmpty = append(nonEmpty, e)
		}
	}
	switch len(nonEmpty) {
	case 0:
		return ""
	case 1:
		return nonEmpty[0]
	default:
		return fmt.Sprintf("%s(%s)", op, strings.Join(nonEmpty, ", "))
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
