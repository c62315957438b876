// File: optionsconfig/validate.go
package optionsconfig

import "errors"

// validateDependencies checks every dependent option against the
// resolved values. A dependent option whose value is nil or an empty
// string while at least one of its dependencies resolved to true is a
// violation. All violations are collected and joined; validation never
// stops at the first failing option.
func validateDependencies(s *Schema, values map[string]any) error {
	var errs []error

	for _, opt := range s.Options() {
		if len(opt.DependsOn) == 0 {
			continue
		}

		var active []string
		for _, dep := range opt.DependsOn {
			if b, ok := values[dep].(bool); ok && b {
				active = append(active, dep)
			}
		}
		if len(active) == 0 {
			// No active dependency, the option may stay unresolved.
			continue
		}

		if isEmptyValue(values[opt.Name]) {
			errs = append(errs, &MissingDependentError{
				Option:    opt.Name,
				DependsOn: opt.DependsOn,
				Active:    active,
			})
		}
	}

	return errors.Join(errs...)
}

// isEmptyValue reports whether a resolved value counts as missing for
// dependency purposes: nil, or an empty string for the string-backed
// types.
func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
