package eval

import (
	"fmt"
	"strings"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/lang"
)

func (e *Evaluator) evalCall(c *lang.Call) (*dataset.Column, error) {
	name := strings.ToUpper(c.Name)

	switch name {
	case "IF":
		return e.evalIf(c)
	case "ISBLANK":
		return e.evalUnaryFunc(c, 1, func(v dataset.Value) dataset.Value {
			return dataset.Bool(v.IsMissing() || (v.Kind == dataset.KindString && v.StrVal() == ""))
		})
	case "ISNUMBER":
		return e.evalUnaryFunc(c, 1, func(v dataset.Value) dataset.Value {
			return dataset.Bool(isNumericLike(v))
		})
	case "ISERROR":
		return e.evalUnaryFunc(c, 1, func(v dataset.Value) dataset.Value {
			return dataset.Bool(v.Kind == dataset.KindError)
		})
	case "NOT":
		return e.evalUnaryFunc(c, 1, func(v dataset.Value) dataset.Value {
			return notTri(coerceBool(v)).toValue()
		})
	case "AND":
		return e.evalVariadicLogic(c, triTrue, andTri)
	case "OR":
		return e.evalVariadicLogic(c, triFalse, orTri)
	case "LEN":
		return e.evalUnaryFunc(c, 1, func(v dataset.Value) dataset.Value {
			if v.IsMissing() {
				return dataset.Missing()
			}
			return dataset.Num(float64(len(v.String())))
		})
	case "UPPER":
		return e.evalUnaryFunc(c, 1, stringOp(strings.ToUpper))
	case "LOWER":
		return e.evalUnaryFunc(c, 1, stringOp(strings.ToLower))
	case "TRIM":
		return e.evalUnaryFunc(c, 1, stringOp(strings.TrimSpace))
	case "LEFT":
		return e.evalSubstring(c, true)
	case "RIGHT":
		return e.evalSubstring(c, false)
	case "MID":
		return e.evalMid(c)
	case "TODAY":
		if len(c.Args) != 0 {
			return nil, &EvalError{Pos: c.Pos(), Msg: "TODAY takes no arguments"}
		}
		return dataset.Broadcast("", dataset.Date(e.now), e.rows()), nil
	case "DATE":
		return e.evalDate(c)
	case "COUNTIF":
		return e.evalCountIf(c)
	default:
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("unknown function %q", c.Name)}
	}
}

func stringOp(f func(string) string) func(dataset.Value) dataset.Value {
	return func(v dataset.Value) dataset.Value {
		if v.IsMissing() {
			return dataset.Missing()
		}
		return dataset.Str(f(v.String()))
	}
}

func (e *Evaluator) evalIf(c *lang.Call) (*dataset.Column, error) {
	if len(c.Args) != 3 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("IF expects 3 arguments, got %d", len(c.Args))}
	}
	cond, err := e.evalNode(c.Args[0])
	if err != nil {
		return nil, err
	}
	thenCol, err := e.evalNode(c.Args[1])
	if err != nil {
		return nil, err
	}
	elseCol, err := e.evalNode(c.Args[2])
	if err != nil {
		return nil, err
	}

	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		switch coerceBool(cond.At(i)) {
		case triTrue:
			out[i] = thenCol.At(i)
		case triFalse:
			out[i] = elseCol.At(i)
		default:
			out[i] = dataset.Missing()
		}
	}
	return dataset.NewColumn("", out), nil
}

func (e *Evaluator) evalUnaryFunc(c *lang.Call, wantArgs int, f func(dataset.Value) dataset.Value) (*dataset.Column, error) {
	if len(c.Args) != wantArgs {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("%s expects %d argument(s), got %d", c.Name, wantArgs, len(c.Args))}
	}
	arg, err := e.evalNode(c.Args[0])
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		out[i] = f(arg.At(i))
	}
	return dataset.NewColumn("", out), nil
}

func (e *Evaluator) evalVariadicLogic(c *lang.Call, identity triBool, fold func(a, b triBool) triBool) (*dataset.Column, error) {
	if len(c.Args) == 0 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("%s expects at least 1 argument", c.Name)}
	}
	cols := make([]*dataset.Column, len(c.Args))
	for i, a := range c.Args {
		col, err := e.evalNode(a)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	out := make([]dataset.Value, e.rows())
	for row := 0; row < e.rows(); row++ {
		acc := identity
		for _, col := range cols {
			acc = fold(acc, coerceBool(col.At(row)))
		}
		out[row] = acc.toValue()
	}
	return dataset.NewColumn("", out), nil
}

func (e *Evaluator) evalSubstring(c *lang.Call, fromLeft bool) (*dataset.Column, error) {
	if len(c.Args) != 2 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("%s expects 2 arguments, got %d", c.Name, len(c.Args))}
	}
	strCol, err := e.evalNode(c.Args[0])
	if err != nil {
		return nil, err
	}
	nCol, err := e.evalNode(c.Args[1])
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		sv, nv := strCol.At(i), nCol.At(i)
		n, ok := coerceNumber(nv)
		if sv.IsMissing() || !ok {
			out[i] = dataset.Missing()
			continue
		}
		s := sv.String()
		count := int(n)
		if count < 0 {
			count = 0
		}
		if count > len(s) {
			count = len(s)
		}
		if fromLeft {
			out[i] = dataset.Str(s[:count])
		} else {
			out[i] = dataset.Str(s[len(s)-count:])
		}
	}
	return dataset.NewColumn("", out), nil
}

func (e *Evaluator) evalMid(c *lang.Call) (*dataset.Column, error) {
	if len(c.Args) != 3 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("MID expects 3 arguments, got %d", len(c.Args))}
	}
	strCol, err := e.evalNode(c.Args[0])
	if err != nil {
		return nil, err
	}
	startCol, err := e.evalNode(c.Args[1])
	if err != nil {
		return nil, err
	}
	lenCol, err := e.evalNode(c.Args[2])
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		sv, startv, lenv := strCol.At(i), startCol.At(i), lenCol.At(i)
		startF, sok := coerceNumber(startv)
		lenF, lok := coerceNumber(lenv)
		if sv.IsMissing() || !sok || !lok {
			out[i] = dataset.Missing()
			continue
		}
		s := sv.String()
		start := int(startF) - 1 // MID is 1-indexed
		length := int(lenF)
		if start < 0 {
			start = 0
		}
		if start >= len(s) || length <= 0 {
			out[i] = dataset.Str("")
			continue
		}
		end := start + length
		if end > len(s) {
			end = len(s)
		}
		out[i] = dataset.Str(s[start:end])
	}
	return dataset.NewColumn("", out), nil
}

func (e *Evaluator) evalDate(c *lang.Call) (*dataset.Column, error) {
	if len(c.Args) != 3 {
		return nil, &EvalError{Pos: c.Pos(), Msg: fmt.Sprintf("DATE expects 3 arguments, got %d", len(c.Args))}
	}
	yCol, err := e.evalNode(c.Args[0])
	if err != nil {
		return nil, err
	}
	mCol, err := e.evalNode(c.Args[1])
	if err != nil {
		return nil, err
	}
	dCol, err := e.evalNode(c.Args[2])
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Value, e.rows())
	for i := 0; i < e.rows(); i++ {
		y, yok := coerceNumber(yCol.At(i))
		m, mok := coerceNumber(mCol.At(i))
		d, dok := coerceNumber(dCol.At(i))
		if !yok || !mok || !dok {
			out[i] = dataset.Missing()
			continue
		}
		out[i] = dataset.Date(dateFromYMD(int(y), int(m), int(d)))
	}
	return dataset.NewColumn("", out), nil
}
