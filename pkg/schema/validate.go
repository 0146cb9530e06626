package schema

import (
	"sort"
	"strings"
)

// Schema is a map of parameter names to their expected types.
type Schema map[string]Type

// Infer derives a schema from a node type's default parameters.
func Infer(defaults map[string]any) Schema {
	s := make(Schema, len(defaults))
	for key, value := range defaults {
		s[key] = Of(value)
	}
	return s
}

// IsReference reports whether value is a "$key" blackboard reference.
func IsReference(value any) bool {
	s, ok := value.(string)
	return ok && len(s) > 1 && strings.HasPrefix(s, "$")
}

// Validate checks that every schema field is present in data and well typed.
func Validate(schema Schema, data map[string]any) error {
	var errs []error
	for _, key := range sortedKeys(schema) {
		value, exists := data[key]
		if !exists {
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}
		if err := check(schema[key], value); err != nil {
			errs = append(errs, err.withKey(key))
		}
	}
	return aggregate(errs)
}

// CheckParams checks authored node parameters. Missing parameters fall back
// to defaults, so only present ones are checked. References and parameters
// the schema does not know are accepted.
func CheckParams(schema Schema, params map[string]any) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		typ, known := schema[key]
		if !known {
			continue
		}
		if err := check(typ, params[key]); err != nil {
			errs = append(errs, err.withKey(key))
		}
	}
	return aggregate(errs)
}

func check(typ Type, value any) *ValidationError {
	if IsReference(value) {
		return nil
	}
	if err := typ.Validate(value); err != nil {
		return &ValidationError{Reason: err.Error(), Value: value}
	}
	return nil
}

func aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
