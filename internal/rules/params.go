package rules

import (
	"fmt"

	"github.com/lblanes25/tabvalid/internal/verr"
)

func path(rule, key string) string {
	return fmt.Sprintf("validations[%s].parameters.%s", rule, key)
}

func getString(params Params, rule, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", verr.NewConfigError(path(rule, key), "required parameter is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", verr.NewConfigError(path(rule, key), fmt.Sprintf("expected a string, got %T", v))
	}
	return s, nil
}

func getOptionalString(params Params, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getStringSlice(params Params, rule, key string) ([]string, error) {
	v, ok := params[key]
	if !ok {
		return nil, verr.NewConfigError(path(rule, key), "required parameter is missing")
	}
	switch vs := v.(type) {
	case []string:
		return vs, nil
	case []any:
		out := make([]string, len(vs))
		for i, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil, verr.NewConfigError(path(rule, key), fmt.Sprintf("element %d is not a string", i))
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, verr.NewConfigError(path(rule, key), fmt.Sprintf("expected a list of strings, got %T", v))
	}
}

func configErrorMissingColumn(rule, paramKey, column string) error {
	return verr.NewConfigError(path(rule, paramKey), fmt.Sprintf("references undeclared column %q", column))
}

func getStringMap(params Params, rule, key string) (map[string]string, error) {
	v, ok := params[key]
	if !ok {
		return nil, verr.NewConfigError(path(rule, key), "required parameter is missing")
	}
	switch vm := v.(type) {
	case map[string]string:
		return vm, nil
	case map[string]any:
		out := make(map[string]string, len(vm))
		for k, item := range vm {
			s, ok := item.(string)
			if !ok {
				return nil, verr.NewConfigError(path(rule, key), fmt.Sprintf("value for key %q is not a string", k))
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, verr.NewConfigError(path(rule, key), fmt.Sprintf("expected a string-keyed map, got %T", v))
	}
}
