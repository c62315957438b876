// File: optionsconfig/flags.go
package optionsconfig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Flags builds a pflag.FlagSet with one flag per schema option. Bool
// options become valueless flags; every flag's help text carries the
// schema default. Flag defaults are deliberately zero values: whether
// the user actually set a flag is read back through FlagValues, which
// only extracts changed flags.
func (s *Schema) Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("options", pflag.ContinueOnError)

	for _, opt := range s.opts {
		name := flagName(opt)
		help := opt.Help
		if help != "" {
			help += " "
		}
		if opt.Default == nil {
			help += "(default: None)"
		} else {
			help += fmt.Sprintf("(default: %v)", opt.Default)
		}

		switch opt.Type {
		case TypeBool:
			fs.Bool(name, false, help)
		case TypeInt:
			fs.Int64(name, 0, help)
		case TypeFloat:
			fs.Float64(name, 0, help)
		case TypeChoice:
			fs.String(name, "", help+fmt.Sprintf(" (choices: %s)", strings.Join(opt.Choices, ", ")))
		default: // TypeString, TypePath
			fs.String(name, "", help)
		}
	}

	return fs
}

// FlagValues extracts the flags the user actually set into an explicit
// input map keyed by attribute name. Unchanged flags are omitted
// entirely so flag defaults never shadow environment variables or
// schema defaults. Choice flags are validated against the declared
// choices here, the way a generated argument parser would.
func (s *Schema) FlagValues(fs *pflag.FlagSet) (Inputs, error) {
	inputs := make(Inputs)

	for _, opt := range s.opts {
		name := flagName(opt)
		if !fs.Changed(name) {
			continue
		}

		switch opt.Type {
		case TypeBool:
			v, err := fs.GetBool(name)
			if err != nil {
				return nil, err
			}
			inputs[opt.AttrName()] = v
		case TypeInt:
			v, err := fs.GetInt64(name)
			if err != nil {
				return nil, err
			}
			inputs[opt.AttrName()] = v
		case TypeFloat:
			v, err := fs.GetFloat64(name)
			if err != nil {
				return nil, err
			}
			inputs[opt.AttrName()] = v
		case TypeChoice:
			v, err := fs.GetString(name)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(opt.Choices, v) {
				return nil, &InvalidValueError{Option: opt.Name, Raw: v, Type: opt.Type}
			}
			inputs[opt.AttrName()] = v
		default:
			v, err := fs.GetString(name)
			if err != nil {
				return nil, err
			}
			inputs[opt.AttrName()] = v
		}
	}

	return inputs, nil
}

// ParseArgs generates the schema's flag set, parses the given
// command-line arguments with it, and returns the explicit inputs.
func (s *Schema) ParseArgs(args []string) (Inputs, error) {
	fs := s.Flags()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return s.FlagValues(fs)
}

// flagName is the pflag name: the declared flag without leading dashes.
func flagName(opt Option) string {
	return strings.TrimLeft(opt.Flag, "-")
}
