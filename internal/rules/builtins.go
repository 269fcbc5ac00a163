package rules

import (
	"strings"

	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/eval"
)

// SegregationOfDuties is true at row i iff the submitter differs,
// case-sensitively after trimming, from every approver. A missing value
// on either side counts as a violation rather than an indeterminate
// result, since an absent approver can never satisfy segregation.
func SegregationOfDuties(ds *dataset.Dataset, params Params, _ Context) (*dataset.Column, []eval.Warning, error) {
	submitterField, err := getString(params, "segregation_of_duties", "submitter_field")
	if err != nil {
		return nil, nil, err
	}
	approverFields, err := getStringSlice(params, "segregation_of_duties", "approver_fields")
	if err != nil {
		return nil, nil, err
	}
	submitterCol, err := requireColumn(ds, "segregation_of_duties", "submitter_field", submitterField)
	if err != nil {
		return nil, nil, err
	}
	approverCols := make([]*dataset.Column, len(approverFields))
	for i, f := range approverFields {
		col, err := requireColumn(ds, "segregation_of_duties", "approver_fields", f)
		if err != nil {
			return nil, nil, err
		}
		approverCols[i] = col
	}

	out := make([]dataset.Value, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		sv := submitterCol.At(row)
		if sv.IsMissing() {
			out[row] = dataset.Bool(false)
			continue
		}
		ok := true
		for _, ac := range approverCols {
			av := ac.At(row)
			if av.IsMissing() || trimmed(sv) == trimmed(av) {
				ok = false
				break
			}
		}
		out[row] = dataset.Bool(ok)
	}
	return dataset.NewColumn("", out), nil, nil
}

func trimmed(v dataset.Value) string {
	return strings.TrimSpace(v.String())
}

// ApprovalSequence is true at row i iff the dated fields, in the
// configured order, are non-strictly increasing. Any missing date in the
// sequence violates the rule.
func ApprovalSequence(ds *dataset.Dataset, params Params, _ Context) (*dataset.Column, []eval.Warning, error) {
	fields, err := getStringSlice(params, "approval_sequence", "date_fields_in_order")
	if err != nil {
		return nil, nil, err
	}
	cols := make([]*dataset.Column, len(fields))
	for i, f := range fields {
		col, err := requireColumn(ds, "approval_sequence", "date_fields_in_order", f)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = col
	}

	out := make([]dataset.Value, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		ok := true
		for i := 1; i < len(cols); i++ {
			prev, cur := cols[i-1].At(row), cols[i].At(row)
			if prev.IsMissing() || cur.IsMissing() {
				ok = false
				break
			}
			if prev.Kind != dataset.KindDate || cur.Kind != dataset.KindDate {
				ok = false
				break
			}
			if prev.DateVal().After(cur.DateVal()) {
				ok = false
				break
			}
		}
		if len(cols) > 0 && cols[0].At(row).IsMissing() {
			ok = false
		}
		out[row] = dataset.Bool(ok)
	}
	return dataset.NewColumn("", out), nil, nil
}

// TitleBasedApproval looks up the approver's title in titleReference
// (approver name to title) and checks membership in allowedTitles. A
// missing reference entry violates the rule.
func TitleBasedApproval(ds *dataset.Dataset, params Params, _ Context) (*dataset.Column, []eval.Warning, error) {
	approverField, err := getString(params, "title_based_approval", "approver_field")
	if err != nil {
		return nil, nil, err
	}
	allowedTitles, err := getStringSlice(params, "title_based_approval", "allowed_titles")
	if err != nil {
		return nil, nil, err
	}
	titleReference, err := getStringMap(params, "title_based_approval", "title_reference")
	if err != nil {
		return nil, nil, err
	}
	approverCol, err := requireColumn(ds, "title_based_approval", "approver_field", approverField)
	if err != nil {
		return nil, nil, err
	}

	allowed := make(map[string]bool, len(allowedTitles))
	for _, t := range allowedTitles {
		allowed[t] = true
	}

	out := make([]dataset.Value, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		av := approverCol.At(row)
		if av.IsMissing() {
			out[row] = dataset.Bool(false)
			continue
		}
		title, ok := titleReference[av.String()]
		out[row] = dataset.Bool(ok && allowed[title])
	}
	return dataset.NewColumn("", out), nil, nil
}

// ThirdPartyRiskValidation is true iff thirdPartyField is missing, or
// riskLevelField is present and not the literal string "N/A".
func ThirdPartyRiskValidation(ds *dataset.Dataset, params Params, _ Context) (*dataset.Column, []eval.Warning, error) {
	thirdPartyField, err := getString(params, "third_party_risk_validation", "third_party_field")
	if err != nil {
		return nil, nil, err
	}
	riskLevelField, err := getString(params, "third_party_risk_validation", "risk_level_field")
	if err != nil {
		return nil, nil, err
	}
	thirdPartyCol, err := requireColumn(ds, "third_party_risk_validation", "third_party_field", thirdPartyField)
	if err != nil {
		return nil, nil, err
	}
	riskCol, err := requireColumn(ds, "third_party_risk_validation", "risk_level_field", riskLevelField)
	if err != nil {
		return nil, nil, err
	}

	out := make([]dataset.Value, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		if thirdPartyCol.At(row).IsMissing() {
			out[row] = dataset.Bool(true)
			continue
		}
		risk := riskCol.At(row)
		out[row] = dataset.Bool(!risk.IsMissing() && risk.String() != "N/A")
	}
	return dataset.NewColumn("", out), nil, nil
}

// EnumerationValidation is true iff the named field's value is a member
// of validValues.
func EnumerationValidation(ds *dataset.Dataset, params Params, _ Context) (*dataset.Column, []eval.Warning, error) {
	fieldName, err := getString(params, "enumeration_validation", "field_name")
	if err != nil {
		return nil, nil, err
	}
	validValues, err := getStringSlice(params, "enumeration_validation", "valid_values")
	if err != nil {
		return nil, nil, err
	}
	col, err := requireColumn(ds, "enumeration_validation", "field_name", fieldName)
	if err != nil {
		return nil, nil, err
	}

	allowed := make(map[string]bool, len(validValues))
	for _, v := range validValues {
		allowed[v] = true
	}

	out := make([]dataset.Value, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		v := col.At(row)
		out[row] = dataset.Bool(!v.IsMissing() && allowed[v.String()])
	}
	return dataset.NewColumn("", out), nil, nil
}

func requireColumn(ds *dataset.Dataset, rule, paramKey, name string) (*dataset.Column, error) {
	col, ok := ds.Column(name)
	if !ok {
		return nil, configErrorMissingColumn(rule, paramKey, name)
	}
	return col, nil
}
