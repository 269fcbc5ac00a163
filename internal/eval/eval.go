package eval

import (
	"fmt"
	"time"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/lang"
)

// maxDepth bounds AST nesting depth; exceeding it aborts evaluation
// rather than risk a stack overflow on an adversarial or accidentally
// self-referential formula.
const maxDepth = 64

// Evaluator executes a parsed formula against a dataset, producing a
// value column of the same length plus any non-fatal warnings collected
// along the way. One Evaluator is scoped to a single Eval call; reuse
// across formulas is safe but each call resets its warning list.
type Evaluator struct {
	ds       *dataset.Dataset
	now      time.Time
	depth    int
	warnings []Warning
}

// New builds an Evaluator bound to ds. now anchors TODAY() and any
// relative-date arithmetic for the lifetime of the evaluator, so a run
// sees a constant "today" regardless of wall-clock time elapsed while it
// executes.
func New(ds *dataset.Dataset, now time.Time) *Evaluator {
	return &Evaluator{ds: ds, now: now}
}

// Eval executes tree and returns a column the same length as the bound
// dataset, along with warnings gathered during evaluation.
func (e *Evaluator) Eval(tree lang.Node) (*dataset.Column, []Warning, error) {
	e.warnings = nil
	e.depth = 0
	col, err := e.evalNode(tree)
	if err != nil {
		return nil, e.warnings, err
	}
	return col, e.warnings, nil
}

func (e *Evaluator) warn(row int, msg string) {
	e.warnings = append(e.warnings, Warning{Row: row, Msg: msg})
}

func (e *Evaluator) rows() int { return e.ds.Len() }

func (e *Evaluator) evalNode(n lang.Node) (*dataset.Column, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxDepth {
		return nil, &EvalError{Pos: n.Pos(), Msg: fmt.Sprintf("recursion depth exceeds %d", maxDepth)}
	}

	switch v := n.(type) {
	case *lang.Literal:
		return e.evalLiteral(v), nil
	case *lang.ColumnRef:
		return e.evalColumnRef(v)
	case *lang.Unary:
		return e.evalUnary(v)
	case *lang.Binary:
		return e.evalBinary(v)
	case *lang.Call:
		return e.evalCall(v)
	default:
		return nil, &EvalError{Pos: n.Pos(), Msg: fmt.Sprintf("unsupported node type %T", n)}
	}
}

func (e *Evaluator) evalLiteral(lit *lang.Literal) *dataset.Column {
	var v dataset.Value
	switch lit.Kind {
	case lang.LiteralNumber:
		v = dataset.Num(lit.Num)
	case lang.LiteralString:
		v = dataset.Str(lit.Str)
	case lang.LiteralBool:
		v = dataset.Bool(lit.Bool)
	}
	return dataset.Broadcast("", v, e.rows())
}

func (e *Evaluator) evalColumnRef(ref *lang.ColumnRef) (*dataset.Column, error) {
	col, ok := e.ds.Column(ref.Name)
	if !ok {
		return nil, &EvalError{Pos: ref.Pos(), Msg: fmt.Sprintf("unknown column %q", ref.Name)}
	}
	return col, nil
}

func (e *Evaluator) evalUnary(u *lang.Unary) (*dataset.Column, error) {
	operand, err := e.evalNode(u.Operand)
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		v := operand.At(i)
		switch u.Op {
		case lang.UnaryNegate:
			if n, ok := coerceNumber(v); ok {
				out[i] = dataset.Num(-n)
			} else {
				out[i] = dataset.Missing()
			}
		case lang.UnaryNot:
			out[i] = notTri(coerceBool(v)).toValue()
		}
	}
	return dataset.NewColumn("", out), nil
}

func notTri(t triBool) triBool {
	switch t {
	case triTrue:
		return triFalse
	case triFalse:
		return triTrue
	default:
		return triMissing
	}
}

func (e *Evaluator) evalBinary(b *lang.Binary) (*dataset.Column, error) {
	left, err := e.evalNode(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evalNode(b.Right)
	if err != nil {
		return nil, err
	}

	if isComparisonOp(b.Op) {
		if leftBin, ok := b.Left.(*lang.Binary); ok && isComparisonOp(leftBin.Op) {
			e.warn(-1, fmt.Sprintf("chained comparison at position %d parses as (%s) %s right, not as a conjunction", b.Pos(), lang.Print(b.Left), b.Op))
		}
	}

	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		lv, rv := left.At(i), right.At(i)
		out[i] = e.applyBinary(b.Op, lv, rv)
	}
	return dataset.NewColumn("", out), nil
}

func isComparisonOp(op lang.BinaryOp) bool {
	switch op {
	case lang.BinEq, lang.BinNotEq, lang.BinLess, lang.BinLessEq, lang.BinGreater, lang.BinGreaterEq:
		return true
	default:
		return false
	}
}

func (e *Evaluator) applyBinary(op lang.BinaryOp, lv, rv dataset.Value) dataset.Value {
	switch op {
	case lang.BinAdd, lang.BinSub, lang.BinMul, lang.BinDiv:
		return evalArithmetic(op, lv, rv)
	case lang.BinConcat:
		return dataset.Str(lv.String() + rv.String())
	case lang.BinEq, lang.BinNotEq, lang.BinLess, lang.BinLessEq, lang.BinGreater, lang.BinGreaterEq:
		return evalComparison(op, lv, rv).toValue()
	case lang.BinAnd:
		return andTri(coerceBool(lv), coerceBool(rv)).toValue()
	case lang.BinOr:
		return orTri(coerceBool(lv), coerceBool(rv)).toValue()
	default:
		return dataset.Missing()
	}
}

func andTri(a, b triBool) triBool {
	if a == triFalse || b == triFalse {
		return triFalse
	}
	if a == triTrue && b == triTrue {
		return triTrue
	}
	return triMissing
}

func orTri(a, b triBool) triBool {
	if a == triTrue || b == triTrue {
		return triTrue
	}
	if a == triFalse && b == triFalse {
		return triFalse
	}
	return triMissing
}

// evalArithmetic implements Date±Number arithmetic (so that expressions
// like TODAY()-30 yield a date rather than falling back to missing) in
// addition to the plain numeric rule from the type table.
func evalArithmetic(op lang.BinaryOp, lv, rv dataset.Value) dataset.Value {
	if lv.Kind == dataset.KindDate && op == lang.BinSub {
		if rd, ok := coerceDate(rv); ok {
			days := lv.DateVal().Sub(rd.DateVal()).Hours() / 24
			return dataset.Num(days)
		}
		if n, ok := coerceNumber(rv); ok {
			return dataset.Date(lv.DateVal().AddDate(0, 0, -int(n)))
		}
		return dataset.Missing()
	}
	if lv.Kind == dataset.KindDate && op == lang.BinAdd {
		if n, ok := coerceNumber(rv); ok {
			return dataset.Date(lv.DateVal().AddDate(0, 0, int(n)))
		}
		return dataset.Missing()
	}

	ln, lok := coerceNumber(lv)
	rn, rok := coerceNumber(rv)
	if !lok || !rok {
		return dataset.Missing()
	}
	switch op {
	case lang.BinAdd:
		return dataset.Num(ln + rn)
	case lang.BinSub:
		return dataset.Num(ln - rn)
	case lang.BinMul:
		return dataset.Num(ln * rn)
	case lang.BinDiv:
		if rn == 0 {
			return dataset.Missing()
		}
		return dataset.Num(ln / rn)
	default:
		return dataset.Missing()
	}
}
