// Package config loads and validates the structured document that
// drives one analytic run: which rules to evaluate, the threshold to
// judge groups against, and the data source's declared columns.
package config

// RuleDescriptor names one validation to run, with its parameters as
// decoded from the configuration document.
type RuleDescriptor struct {
	Rule        string         `yaml:"rule" toml:"rule"`
	Description string         `yaml:"description" toml:"description"`
	Parameters  map[string]any `yaml:"parameters" toml:"parameters"`
}

// DataSource declares the columns an analytic's dataset must provide.
type DataSource struct {
	RequiredColumns []string `yaml:"required_columns" toml:"required_columns"`
}

// Thresholds holds the non-conformance threshold a group must stay under.
type Thresholds struct {
	ErrorPercentage float64 `yaml:"error_percentage" toml:"error_percentage"`
}

// Reporting configures how results are grouped.
type Reporting struct {
	GroupBy string `yaml:"group_by" toml:"group_by"`
}

// Configuration is one analytic's complete validation configuration.
type Configuration struct {
	AnalyticID          string                    `yaml:"analytic_id" toml:"analytic_id"`
	AnalyticName        string                    `yaml:"analytic_name" toml:"analytic_name"`
	AnalyticDescription string                    `yaml:"analytic_description" toml:"analytic_description"`
	DataSource          DataSource                `yaml:"data_source" toml:"data_source"`
	Validations         []RuleDescriptor          `yaml:"validations" toml:"validations"`
	Thresholds          Thresholds                `yaml:"thresholds" toml:"thresholds"`
	Reporting           Reporting                 `yaml:"reporting" toml:"reporting"`
	ReferenceData       map[string]map[string]any `yaml:"reference_data" toml:"reference_data"`
	ReportMetadata      map[string]any            `yaml:"report_metadata" toml:"report_metadata"`
}
