package eval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/dateutil"
	"github.com/lblanes25/tabvalid/internal/lang"
)

func dateFromYMD(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// evalCountIf implements COUNTIF(column_ref, criterion): a count of the
// rows in the named column matching criterion, broadcast as a constant
// column since the result does not vary by row.
func (e *Evaluator) evalCountIf(c *lang.Call) (*dataset.Column, error) {
	if len(c.Args) != 2 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("COUNTIF expects 2 arguments, got %d", len(c.Args))}
	}
	ref, ok := c.Args[0].(*lang.ColumnRef)
	if !ok {
		return nil, &EvalError{Pos: c.Pos(), Msg: "COUNTIF's first argument must be a column reference"}
	}
	col, err := e.evalColumnRef(ref)
	if err != nil {
		return nil, err
	}

	critCol, err := e.evalNode(c.Args[1])
	if err != nil {
		return nil, err
	}
	criterion := critCol.At(0).String()

	match, err := parseCriterion(criterion, e.now)
	if err != nil {
		return nil, &EvalError{Pos: c.Pos(), Msg: err.Error()}
	}

	count := 0
	for i := 0; i < col.Len(); i++ {
		if match(col.At(i)) {
			count++
		}
	}
	return dataset.Broadcast("", dataset.Num(float64(count)), e.rows()), nil
}

// parseCriterion turns a COUNTIF criterion string into a predicate.
// Supported forms: a bare value meaning equality ("x", "5"); an operator
// prefix (">", "<", ">=", "<=", "<>", "=") followed by a value; and, as a
// supplement for date columns, an operator followed by a compact
// relative-date expression such as ">-30d", resolved against now. A
// value that parses as a plain number (">5", "-30") is always compared
// as a number.
func parseCriterion(criterion string, now time.Time) (func(dataset.Value) bool, error) {
	op, rest := splitCriterionOp(criterion)

	if n, err := strconv.ParseFloat(rest, 64); err == nil {
		return func(v dataset.Value) bool {
			c, ok := compare(v, dataset.Num(n))
			if !ok {
				return false
			}
			return compareMatches(op, c)
		}, nil
	}

	if dateutil.IsCompactDuration(rest) {
		target, err := dateutil.ParseCompactDuration(rest, now)
		if err == nil {
			return func(v dataset.Value) bool {
				dv, ok := coerceDate(v)
				if !ok {
					return false
				}
				c, ok := compare(dv, dataset.Date(target))
				if !ok {
					return false
				}
				return compareMatches(op, c)
			}, nil
		}
	}

	target := rest
	return func(v dataset.Value) bool {
		c, ok := compare(v, dataset.Str(target))
		if !ok {
			return false
		}
		return compareMatches(op, c)
	}, nil
}

func splitCriterionOp(s string) (string, string) {
	for _, op := range []string{"<>", ">=", "<=", ">", "<", "="} {
		if strings.HasPrefix(s, op) {
			return op, strings.TrimSpace(s[len(op):])
		}
	}
	return "=", s
}

func compareMatches(op string, c int) bool {
	switch op {
	case "=":
		return c == 0
	case "<>":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}
