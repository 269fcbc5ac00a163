package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblanes25/tabvalid/internal/lang"
	"github.com/lblanes25/tabvalid/internal/rules"
)

const sampleYAML = `
analytic_id: "AN-001"
analytic_name: Segregation of Duties
data_source:
  required_columns:
    - Submitter
    - Approver
validations:
  - rule: segregation_of_duties
    description: submitter must differ from approver
    parameters:
      submitter_field: Submitter
      approver_fields:
        - Approver
thresholds:
  error_percentage: 5
reporting:
  group_by: Region
`

func TestLoadYAMLAndValidate(t *testing.T) {
	cfg, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "AN-001", cfg.AnalyticID)
	assert.Equal(t, 5.0, cfg.Thresholds.ErrorPercentage)

	err = cfg.Validate(rules.NewRegistry(), lang.NewCache())
	assert.NoError(t, err)
}

func TestValidateUnknownRule(t *testing.T) {
	cfg, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)
	cfg.Validations[0].Rule = "not_a_real_rule"

	err = cfg.Validate(rules.NewRegistry(), lang.NewCache())
	require.Error(t, err)
}

func TestValidateUndeclaredColumn(t *testing.T) {
	cfg, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)
	cfg.DataSource.RequiredColumns = []string{"Submitter"} // drop Approver

	err = cfg.Validate(rules.NewRegistry(), lang.NewCache())
	require.Error(t, err)
}

func TestValidateThresholdOutOfRange(t *testing.T) {
	cfg, err := LoadYAML([]byte(sampleYAML))
	require.NoError(t, err)
	cfg.Thresholds.ErrorPercentage = 150

	err = cfg.Validate(rules.NewRegistry(), lang.NewCache())
	require.Error(t, err)
}

const sampleTOML = `
analytic_id = "AN-002"
analytic_name = "Third Party Risk"
thresholds.error_percentage = 10.0
reporting.group_by = "Region"

[data_source]
required_columns = ["Vendor", "Risk"]

[[validations]]
rule = "third_party_risk_validation"
description = "flag unassessed vendors"
[validations.parameters]
third_party_field = "Vendor"
risk_level_field = "Risk"
`

func TestLoadTOML(t *testing.T) {
	cfg, err := LoadTOML([]byte(sampleTOML))
	require.NoError(t, err)
	assert.Equal(t, "AN-002", cfg.AnalyticID)
	err = cfg.Validate(rules.NewRegistry(), lang.NewCache())
	assert.NoError(t, err)
}
