package rules

import (
	"fmt"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/eval"
)

// CustomFormula parses original_formula (cached by text) and evaluates
// it against the dataset. Boolean positions of the result are kept as
// they are; every other position (a number, a string, or a missing
// value) becomes missing and is reported as a warning rather than
// failing the whole rule.
func CustomFormula(ds *dataset.Dataset, params Params, ctx Context) (*dataset.Column, []eval.Warning, error) {
	formula, err := getString(params, "custom_formula", "original_formula")
	if err != nil {
		return nil, nil, err
	}
	displayName, _ := getOptionalString(params, "display_name")

	tree, err := ctx.Cache.Parse(formula)
	if err != nil {
		return nil, nil, fmt.Errorf("custom formula %q (%s): %w", formula, displayOrAnon(displayName), err)
	}

	col, warnings, err := eval.New(ds, ctx.Now).Eval(tree)
	if err != nil {
		return nil, warnings, fmt.Errorf("custom formula %q (%s): %w", formula, displayOrAnon(displayName), err)
	}

	out := make([]dataset.Value, col.Len())
	for i := 0; i < col.Len(); i++ {
		v := col.At(i)
		switch v.Kind {
		case dataset.KindBool:
			out[i] = v
		default:
			out[i] = dataset.Missing()
			warnings = append(warnings, eval.Warning{Row: i, Msg: fmt.Sprintf("result of %q did not coerce to Boolean at row %d", formula, i)})
		}
	}
	return dataset.NewColumn("", out), warnings, nil
}

func displayOrAnon(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
