package eval

import (
	"strings"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/lang"
)

// compare returns -1, 0, or 1 for left vs right, and false if either side
// is missing. Two values compare numerically if both parse as numbers,
// as dates if both parse as dates (numeric takes precedence when a value
// could be read either way), and otherwise lexicographically as strings.
func compare(left, right dataset.Value) (int, bool) {
	if left.IsMissing() || right.IsMissing() {
		return 0, false
	}

	if ln, lok := coerceNumber(left); lok {
		if rn, rok := coerceNumber(right); rok {
			switch {
			case ln < rn:
				return -1, true
			case ln > rn:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	if ld, lok := coerceDate(left); lok {
		if rd, rok := coerceDate(right); rok {
			lt, rt := ld.DateVal(), rd.DateVal()
			switch {
			case lt.Before(rt):
				return -1, true
			case lt.After(rt):
				return 1, true
			default:
				return 0, true
			}
		}
	}

	ls, rs := left.String(), right.String()
	return strings.Compare(ls, rs), true
}

// evalComparison applies op to the result of compare, in turn producing
// triBool missingness on an incomparable pair.
func evalComparison(op lang.BinaryOp, left, right dataset.Value) triBool {
	c, ok := compare(left, right)
	if !ok {
		return triMissing
	}
	switch op {
	case lang.BinEq:
		return boolToTri(c == 0)
	case lang.BinNotEq:
		return boolToTri(c != 0)
	case lang.BinLess:
		return boolToTri(c < 0)
	case lang.BinLessEq:
		return boolToTri(c <= 0)
	case lang.BinGreater:
		return boolToTri(c > 0)
	case lang.BinGreaterEq:
		return boolToTri(c >= 0)
	default:
		return triMissing
	}
}
