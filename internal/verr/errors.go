// Package verr holds the error kinds shared across the configuration
// loader, the built-in rule library, and the orchestration engine — the
// one error type (ConfigError) that isn't owned by a single pipeline
// stage.
package verr

import "fmt"

// ConfigError reports a structural or referential violation in a
// validation configuration: a missing required field, an unknown rule
// name, a parameter that doesn't match a rule's signature, or a column
// referenced by a rule but not declared on the data source. A
// ConfigError from loading or validating the configuration stops the
// analytic before any row is evaluated; one that a rule returns while it
// runs (for example, a column absent from the dataset) fails only that
// rule.
type ConfigError struct {
	// Path names the offending field, e.g. "validations[2].rule" or
	// "validations[segregation_of_duties].parameters.submitter_field".
	Path string
	Msg  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error at %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("config error at %s: %s", e.Path, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a ConfigError rooted at path.
func NewConfigError(path, msg string) *ConfigError {
	return &ConfigError{Path: path, Msg: msg}
}

// WrapConfigError builds a ConfigError rooted at path, wrapping cause.
func WrapConfigError(path, msg string, cause error) *ConfigError {
	return &ConfigError{Path: path, Msg: msg, Err: cause}
}
