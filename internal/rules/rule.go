// Package rules implements the built-in validation rule library: named
// checks that desugar to a Boolean column the same way a user-authored
// formula does, plus the custom_formula rule that routes through the
// formula frontend and evaluator directly.
package rules

import (
	"time"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/eval"
	"github.com/lblanes25/tabvalid/internal/lang"
)

// Params is a validation rule's parameter bag, as decoded from
// configuration.
type Params map[string]any

// Context carries the collaborators a rule needs beyond its own
// parameters: the formula cache (for custom_formula) and the evaluation
// clock (for TODAY()-relative formulas).
type Context struct {
	Cache *lang.Cache
	Now   time.Time
}

// Func is a named validation rule: a total function from a dataset and
// its parameters to a Boolean column. Parameter validation happens
// before the Boolean logic executes; an invalid parameter is a
// ConfigError, never an EvalError.
type Func func(ds *dataset.Dataset, params Params, ctx Context) (*dataset.Column, []eval.Warning, error)

// Descriptor names a rule implementation for registration.
type Descriptor struct {
	Name string
	Fn   Func
}

// Registry resolves a rule name to its implementation.
type Registry struct {
	byName map[string]Func
}

// NewRegistry builds a Registry preloaded with the built-in rules.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Func)}
	for _, d := range builtinDescriptors() {
		r.byName[d.Name] = d.Fn
	}
	return r
}

// Register adds or overrides a rule implementation, letting a host
// extend the library without modifying this package.
func (r *Registry) Register(d Descriptor) {
	r.byName[d.Name] = d.Fn
}

// Lookup returns the rule implementation for name and whether it exists.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.byName[name]
	return fn, ok
}

func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{Name: "segregation_of_duties", Fn: SegregationOfDuties},
		{Name: "approval_sequence", Fn: ApprovalSequence},
		{Name: "title_based_approval", Fn: TitleBasedApproval},
		{Name: "third_party_risk_validation", Fn: ThirdPartyRiskValidation},
		{Name: "enumeration_validation", Fn: EnumerationValidation},
		{Name: "custom_formula", Fn: CustomFormula},
	}
}
