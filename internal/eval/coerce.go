package eval

import (
	"strconv"
	"strings"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/dateutil"
)

// triBool is a three-valued Boolean: true, false, or missing. It exists
// so logical operators can implement Kleene semantics without re-deriving
// missingness from a (bool, ok) pair at every call site.
type triBool int

const (
	triMissing triBool = iota
	triTrue
	triFalse
)

func boolToTri(b bool) triBool {
	if b {
		return triTrue
	}
	return triFalse
}

func (t triBool) toValue() dataset.Value {
	switch t {
	case triTrue:
		return dataset.Bool(true)
	case triFalse:
		return dataset.Bool(false)
	default:
		return dataset.Missing()
	}
}

// coerceBool converts a Value to a triBool for use in AND/OR/NOT and as
// an IF condition. Numbers coerce as nonzero-is-true; strings only
// coerce when they spell TRUE/FALSE case-insensitively.
func coerceBool(v dataset.Value) triBool {
	switch v.Kind {
	case dataset.KindBool:
		return boolToTri(v.BoolVal())
	case dataset.KindNumber:
		return boolToTri(v.NumVal() != 0)
	case dataset.KindString:
		switch strings.ToUpper(strings.TrimSpace(v.StrVal())) {
		case "TRUE":
			return triTrue
		case "FALSE":
			return triFalse
		default:
			return triMissing
		}
	default:
		return triMissing
	}
}

// coerceNumber converts a Value to a float64. ok is false for missing
// values and strings that don't parse cleanly as numbers — never a
// thrown error, per the arithmetic type rule.
func coerceNumber(v dataset.Value) (float64, bool) {
	switch v.Kind {
	case dataset.KindNumber:
		return v.NumVal(), true
	case dataset.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.StrVal()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case dataset.KindBool:
		if v.BoolVal() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// coerceDate converts a Value to a KindDate Value, accepting a native
// date value or a string matching ISO-8601 or MM/DD/YYYY.
func coerceDate(v dataset.Value) (dataset.Value, bool) {
	switch v.Kind {
	case dataset.KindDate:
		return v, true
	case dataset.KindString:
		if t, ok := dateutil.ParseFlexibleDate(strings.TrimSpace(v.StrVal())); ok {
			return dataset.Date(t), true
		}
		return dataset.Value{}, false
	default:
		return dataset.Value{}, false
	}
}

// isNumericLike reports whether v is a number, or a string that parses
// cleanly as one — the rule ISNUMBER uses.
func isNumericLike(v dataset.Value) bool {
	if v.IsMissing() || v.Kind == dataset.KindBool {
		return false
	}
	_, ok := coerceNumber(v)
	return ok
}
