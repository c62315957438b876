// File: optionsconfig/errors.go
package optionsconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySchema indicates a schema with no option definitions.
	ErrEmptySchema = errors.New("schema has no options")

	// ErrSchemaNotFound indicates that no schema file could be located
	// through the explicit path, environment variable, or search paths.
	ErrSchemaNotFound = errors.New("no schema file found")

	// ErrMarkersNotFound indicates a README without the generated
	// options markers.
	ErrMarkersNotFound = errors.New("generated-options markers not found")
)

// SchemaError describes one malformed entry in a schema table.
// NewSchema reports all schema problems joined together.
type SchemaError struct {
	Option string // option name, empty when the problem is not tied to one
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Option == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Option, e.Reason)
}

// InvalidValueError reports a supplied value that cannot be coerced to
// the option's declared type. It names the option and the raw value.
type InvalidValueError struct {
	Option string
	Raw    string
	Type   ValueType
	Err    error // underlying parse error, may be nil
}

func (e *InvalidValueError) Error() string {
	msg := fmt.Sprintf("invalid value %q for %s option %s", e.Raw, e.Type, e.Option)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// MissingDependentError reports a dependent option left unresolved
// while at least one of its dependencies is active.
type MissingDependentError struct {
	Option    string
	DependsOn []string // full declared dependency list
	Active    []string // the subset currently resolved to true
}

func (e *MissingDependentError) Error() string {
	return fmt.Sprintf("%s is required when any of the following are true: %s. Currently active: %s",
		e.Option, strings.Join(e.DependsOn, ", "), strings.Join(e.Active, ", "))
}
