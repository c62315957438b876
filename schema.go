// File: optionsconfig/schema.go
package optionsconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueType identifies the declared type of an option value. Coercion
// from environment strings is resolved through exhaustive switching on
// this tag rather than runtime type inspection.
type ValueType int

const (
	TypeBool ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypePath
	TypeChoice
)

// String returns the schema-file spelling of the type.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypePath:
		return "path"
	case TypeChoice:
		return "choice"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// ParseValueType converts a schema-file type name to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool", "boolean":
		return TypeBool, nil
	case "string", "str":
		return TypeString, nil
	case "int", "integer":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "path":
		return TypePath, nil
	case "choice":
		return TypeChoice, nil
	default:
		return 0, fmt.Errorf("unknown value type %q", s)
	}
}

// Option is one entry of the schema table.
type Option struct {
	// Name is the unique key for the option, conventionally UPPER_CASE.
	Name string

	// Env is the environment variable the option is read from.
	Env string

	// Flag is the command-line spelling, including the leading "--".
	Flag string

	// Type declares how raw values are coerced.
	Type ValueType

	// Default is the value used when neither an explicit input nor an
	// environment variable is present. A nil Default on a dependent
	// option means the option is required whenever any of its
	// dependencies resolves to true.
	Default any

	// Section groups options in generated documentation. It has no
	// effect on resolution.
	Section string

	// Help is the one-line description used by flags and documentation.
	Help string

	// Choices lists the accepted values for TypeChoice options.
	Choices []string

	// DependsOn names the options whose truthiness activates a
	// requirement on this option.
	DependsOn []string

	// Sensitive marks values that must never appear in diagnostics.
	Sensitive bool

	// Links holds name -> URL references rendered in README output.
	Links map[string]string
}

// AttrName derives the attribute key for the option: the flag with
// leading dashes stripped and remaining dashes turned to underscores.
func (o Option) AttrName() string {
	return strings.ReplaceAll(strings.TrimLeft(o.Flag, "-"), "-", "_")
}

// Schema is a validated, ordered table of option definitions.
// Resolution and documentation both iterate options in declaration
// order. A Schema is immutable once constructed.
type Schema struct {
	opts  []Option
	index map[string]int
	roots []string
}

// NewSchema validates the given definitions and builds a Schema.
// All schema problems are reported together as joined SchemaError
// values; nothing resolves against a malformed schema.
func NewSchema(opts ...Option) (*Schema, error) {
	if len(opts) == 0 {
		return nil, ErrEmptySchema
	}

	s := &Schema{
		opts:  make([]Option, len(opts)),
		index: make(map[string]int, len(opts)),
	}
	copy(s.opts, opts)

	var errs []error
	fail := func(option, format string, args ...any) {
		errs = append(errs, &SchemaError{Option: option, Reason: fmt.Sprintf(format, args...)})
	}

	// Flags, env vars, and derived attribute names must each be unique
	// across the table: a duplicated flag makes the generated flag set
	// unusable, and two options deriving the same attribute name would
	// receive the same explicit input.
	seenEnv := make(map[string]string, len(opts))
	seenFlag := make(map[string]string, len(opts))
	seenAttr := make(map[string]string, len(opts))

	for i, opt := range s.opts {
		if opt.Name == "" {
			fail("", "option at position %d has no name", i)
			continue
		}
		if _, dup := s.index[opt.Name]; dup {
			fail(opt.Name, "duplicate option name")
			continue
		}
		s.index[opt.Name] = i

		if opt.Env == "" {
			fail(opt.Name, "missing required field 'env'")
		} else if opt.Env != strings.ToUpper(opt.Env) {
			fail(opt.Name, "'env' should be UPPER_CASE (got %q)", opt.Env)
		} else if prev, dup := seenEnv[opt.Env]; dup {
			fail(opt.Name, "'env' %q already used by option %s", opt.Env, prev)
		} else {
			seenEnv[opt.Env] = opt.Name
		}

		if opt.Flag == "" {
			fail(opt.Name, "missing required field 'flag'")
		} else if !strings.HasPrefix(opt.Flag, "--") {
			fail(opt.Name, "'flag' should start with \"--\" (got %q)", opt.Flag)
		} else if !isValidFlagName(strings.TrimPrefix(opt.Flag, "--")) {
			fail(opt.Name, "'flag' contains invalid characters (got %q)", opt.Flag)
		} else if prev, dup := seenFlag[opt.Flag]; dup {
			fail(opt.Name, "'flag' %q already used by option %s", opt.Flag, prev)
		} else if prev, dup := seenAttr[opt.AttrName()]; dup {
			fail(opt.Name, "'flag' %q derives attribute %q already used by option %s", opt.Flag, opt.AttrName(), prev)
		} else {
			seenFlag[opt.Flag] = opt.Name
			seenAttr[opt.AttrName()] = opt.Name
		}

		if opt.Type == TypeChoice && len(opt.Choices) == 0 {
			fail(opt.Name, "choice option declares no choices")
		}

		if opt.Default != nil {
			normalized, err := normalizeValue(opt.Type, opt.Choices, opt.Default)
			if err != nil {
				fail(opt.Name, "default value %v: %v", opt.Default, err)
			} else {
				s.opts[i].Default = normalized
			}
		}
	}

	// Dependency references are checked against the full name set so a
	// forward reference within one schema is fine.
	for _, opt := range s.opts {
		for _, dep := range opt.DependsOn {
			if _, ok := s.index[dep]; !ok {
				fail(opt.Name, "depends on non-existent option %q", dep)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Roots in declaration order, each listed once.
	for _, opt := range s.opts {
		if s.isRoot(opt.Name) {
			s.roots = append(s.roots, opt.Name)
		}
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for
// package-level schema declarations.
func MustSchema(opts ...Option) *Schema {
	s, err := NewSchema(opts...)
	if err != nil {
		panic(fmt.Sprintf("optionsconfig: invalid schema: %v", err))
	}
	return s
}

// Options returns the definitions in declaration order.
// The returned slice must not be modified.
func (s *Schema) Options() []Option {
	return s.opts
}

// Option looks up a definition by option name.
func (s *Schema) Option(name string) (Option, bool) {
	i, ok := s.index[name]
	if !ok {
		return Option{}, false
	}
	return s.opts[i], true
}

// Len reports the number of options in the schema.
func (s *Schema) Len() int {
	return len(s.opts)
}

// Roots returns, in declaration order, the options that appear in some
// other option's DependsOn list.
func (s *Schema) Roots() []string {
	return s.roots
}

// Sections returns the section labels in order of first appearance.
func (s *Schema) Sections() []string {
	var sections []string
	for _, opt := range s.opts {
		section := opt.Section
		if section == "" {
			section = "Other"
		}
		if !slices.Contains(sections, section) {
			sections = append(sections, section)
		}
	}
	return sections
}

// SectionOptions returns the options of one section in declaration order.
func (s *Schema) SectionOptions(section string) []Option {
	var out []Option
	for _, opt := range s.opts {
		name := opt.Section
		if name == "" {
			name = "Other"
		}
		if name == section {
			out = append(out, opt)
		}
	}
	return out
}

func (s *Schema) isRoot(name string) bool {
	for _, opt := range s.opts {
		if slices.Contains(opt.DependsOn, name) {
			return true
		}
	}
	return false
}

// normalizeValue coerces a schema default (or file-decoded value) to
// the canonical Go representation of its declared type: bool, string,
// int64, or float64.
func normalizeValue(t ValueType, choices []string, v any) (any, error) {
	switch t {
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("expected bool, got %T", v)

	case TypeString, TypePath:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected string, got %T", v)

	case TypeChoice:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if !slices.Contains(choices, s) {
			return nil, fmt.Errorf("%q is not one of the declared choices %v", s, choices)
		}
		return s, nil

	case TypeInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint64:
			return int64(n), nil
		case float64:
			if n == float64(int64(n)) {
				return int64(n), nil
			}
			return nil, fmt.Errorf("expected integer, got %v", n)
		case json.Number:
			i, err := strconv.ParseInt(n.String(), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", n.String())
			}
			return i, nil
		}
		return nil, fmt.Errorf("expected integer, got %T", v)

	case TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			f, err := strconv.ParseFloat(n.String(), 64)
			if err != nil {
				return nil, fmt.Errorf("expected float, got %q", n.String())
			}
			return f, nil
		}
		return nil, fmt.Errorf("expected float, got %T", v)
	}

	return nil, fmt.Errorf("unhandled value type %v", t)
}

// isValidFlagName checks the flag spelling after the leading dashes.
func isValidFlagName(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
