package config

import (
	"fmt"

	"github.com/lblanes25/tabvalid/internal/lang"
	"github.com/lblanes25/tabvalid/internal/rules"
	"github.com/lblanes25/tabvalid/internal/verr"
)

// Validate enforces the configuration's structural invariants: required
// top-level fields are present, every rule names a known implementation,
// the parameters that name columns (and a custom formula's text, which
// must parse) are present and of the right type, and every column any
// rule references is declared on the data source. Other parameters, such
// as allowed_titles, title_reference and valid_values, are not checked
// here; a rule reports them only when it runs.
func (c *Configuration) Validate(registry *rules.Registry, cache *lang.Cache) error {
	if c.AnalyticID == "" {
		return verr.NewConfigError("analytic_id", "required field is missing")
	}
	if c.AnalyticName == "" {
		return verr.NewConfigError("analytic_name", "required field is missing")
	}
	if len(c.Validations) == 0 {
		return verr.NewConfigError("validations", "must declare at least one validation")
	}
	if c.Thresholds.ErrorPercentage < 0 || c.Thresholds.ErrorPercentage > 100 {
		return verr.NewConfigError("thresholds.error_percentage", "must be between 0 and 100")
	}
	if c.Reporting.GroupBy == "" {
		return verr.NewConfigError("reporting.group_by", "required field is missing")
	}

	declared := make(map[string]bool, len(c.DataSource.RequiredColumns))
	for _, col := range c.DataSource.RequiredColumns {
		declared[col] = true
	}
	declared[c.Reporting.GroupBy] = true

	for i, v := range c.Validations {
		path := fmt.Sprintf("validations[%d]", i)
		if v.Rule == "" {
			return verr.NewConfigError(path+".rule", "required field is missing")
		}
		if _, ok := registry.Lookup(v.Rule); !ok {
			return verr.NewConfigError(path+".rule", fmt.Sprintf("unknown rule %q", v.Rule))
		}

		fields, err := rules.ReferencedFields(v.Rule, rules.Params(v.Parameters), cache)
		if err != nil {
			return err
		}
		for _, f := range fields {
			if !declared[f] {
				return verr.NewConfigError(path+".parameters", fmt.Sprintf("references undeclared column %q", f))
			}
		}
	}

	return nil
}
