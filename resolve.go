// File: optionsconfig/resolve.go
package optionsconfig

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// Inputs carries explicit option values keyed by attribute name (flag
// without the leading dashes, dashes as underscores). This is the shape
// produced by Schema.FlagValues; callers may also build one by hand.
// A nil entry counts as "not provided".
type Inputs map[string]any

// Environ snapshots the process environment as a plain map. Resolution
// takes such a snapshot instead of reading os.Getenv so tests and
// embedders can inject an environment.
func Environ() map[string]string {
	env := make(map[string]string, len(os.Environ()))
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}
	return env
}

// resolve computes the value of every option in schema order.
// Precedence per option: explicit input > environment variable >
// schema default. Environment strings are coerced per declared type;
// an uncoercible value stops resolution with an InvalidValueError.
func resolve(s *Schema, inputs Inputs, env map[string]string) (map[string]any, error) {
	values := make(map[string]any, s.Len())

	for _, opt := range s.Options() {
		if v, ok := inputs[opt.AttrName()]; ok && v != nil {
			// Explicit inputs arrive already typed by the input source
			// and are used verbatim.
			values[opt.Name] = v
			continue
		}

		if raw, ok := env[opt.Env]; ok {
			v, err := coerceEnv(opt, raw)
			if err != nil {
				return nil, err
			}
			values[opt.Name] = v
			continue
		}

		values[opt.Name] = opt.Default
	}

	return values, nil
}

// coerceEnv converts one environment string according to the option's
// declared type. An empty string maps to the schema default for every
// type except bool, where the truthy-set check already makes it false.
func coerceEnv(opt Option, raw string) (any, error) {
	switch opt.Type {
	case TypeBool:
		return isTruthy(raw), nil

	case TypePath:
		if raw == "" {
			return opt.Default, nil
		}
		return raw, nil

	case TypeChoice:
		if raw == "" {
			return opt.Default, nil
		}
		if !slices.Contains(opt.Choices, raw) {
			return nil, &InvalidValueError{Option: opt.Name, Raw: raw, Type: opt.Type}
		}
		return raw, nil

	case TypeString:
		if raw == "" {
			return opt.Default, nil
		}
		return raw, nil

	case TypeInt:
		if raw == "" {
			return opt.Default, nil
		}
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &InvalidValueError{Option: opt.Name, Raw: raw, Type: opt.Type, Err: err}
		}
		return i, nil

	case TypeFloat:
		if raw == "" {
			return opt.Default, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &InvalidValueError{Option: opt.Name, Raw: raw, Type: opt.Type, Err: err}
		}
		return f, nil
	}

	return nil, &InvalidValueError{Option: opt.Name, Raw: raw, Type: opt.Type}
}

// applyRootDefaults forces every root option to true when none of them
// was explicitly provided. "Explicitly provided" means a non-nil
// explicit input for the option's attribute name, or its environment
// variable key being present in the snapshot regardless of value. A
// single explicitly provided root leaves every root's resolved value
// untouched, so one flag switches from "enable everything" to precise
// opt-in behavior.
func applyRootDefaults(s *Schema, values map[string]any, inputs Inputs, env map[string]string) {
	roots := s.Roots()
	for _, name := range roots {
		opt, _ := s.Option(name)
		if v, ok := inputs[opt.AttrName()]; ok && v != nil {
			return
		}
		if _, ok := env[opt.Env]; ok {
			return
		}
	}

	for _, name := range roots {
		values[name] = true
	}
}

// isTruthy implements the fixed truthy set for bool options: a
// case-insensitive "true", "t", or "1". Anything else, the empty
// string included, is false.
func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "t", "1":
		return true
	}
	return false
}
