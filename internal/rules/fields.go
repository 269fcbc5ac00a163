package rules

import "github.com/lblanes25/tabvalid/internal/lang"

// ReferencedFields returns the columns a validation rule descriptor
// touches: the structured field parameters for built-ins, or the parsed
// field set of a custom formula.
func ReferencedFields(ruleName string, params Params, cache *lang.Cache) ([]string, error) {
	switch ruleName {
	case "segregation_of_duties":
		fields, err := collectFields(params, "submitter_field")
		if err != nil {
			return nil, err
		}
		more, err := getStringSlice(params, ruleName, "approver_fields")
		if err != nil {
			return nil, err
		}
		return append(fields, more...), nil
	case "approval_sequence":
		return getStringSlice(params, ruleName, "date_fields_in_order")
	case "title_based_approval":
		return collectFields(params, "approver_field")
	case "third_party_risk_validation":
		return collectFields(params, "third_party_field", "risk_level_field")
	case "enumeration_validation":
		return collectFields(params, "field_name")
	case "custom_formula":
		formula, err := getString(params, ruleName, "original_formula")
		if err != nil {
			return nil, err
		}
		tree, err := cache.Parse(formula)
		if err != nil {
			return nil, err
		}
		return lang.ReferencedFields(tree), nil
	default:
		return nil, nil
	}
}

func collectFields(params Params, keys ...string) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		s, err := getString(params, "", k)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
