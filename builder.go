// File: optionsconfig/builder.go
package optionsconfig

import (
	"fmt"
	"log/slog"
)

// ValidatorFunc validates a fully resolved Options instance. It runs
// after dependency validation and should return an error on failure.
type ValidatorFunc func(o *Options) error

// Builder provides a fluent interface for resolving options.
type Builder struct {
	schema     *Schema
	schemaFile string
	inputs     Inputs
	args       []string
	env        map[string]string
	logger     *slog.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a new options builder.
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithSchema sets the schema directly. It takes precedence over
// WithSchemaFile and discovery.
func (b *Builder) WithSchema(s *Schema) *Builder {
	b.schema = s
	return b
}

// WithSchemaFile sets the path of the schema file to load.
func (b *Builder) WithSchemaFile(path string) *Builder {
	b.schemaFile = path
	return b
}

// WithArgs sets command-line arguments to parse into explicit inputs
// using the schema's generated flag set.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithInputs merges pre-built explicit inputs. Entries set here win
// over values parsed from WithArgs.
func (b *Builder) WithInputs(inputs Inputs) *Builder {
	if b.inputs == nil {
		b.inputs = make(Inputs, len(inputs))
	}
	for k, v := range inputs {
		b.inputs[k] = v
	}
	return b
}

// WithEnvironment sets the environment snapshot to resolve against.
// When unset, the process environment is used.
func (b *Builder) WithEnvironment(env map[string]string) *Builder {
	b.env = env
	return b
}

// WithLogger sets the logger the builder reports the resolved, masked
// option state to. Without a logger nothing is reported.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the
// build. Multiple validators execute in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build resolves the options: schema loading, argument parsing, value
// resolution with root defaulting, dependency validation, and custom
// validators, in that order.
func (b *Builder) Build() (*Options, error) {
	schema := b.schema
	if schema == nil {
		path, err := DiscoverFile(b.schemaFile)
		if err != nil {
			return nil, err
		}
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		schema = file.Schema
	}

	inputs := make(Inputs)
	if len(b.args) > 0 {
		parsed, err := schema.ParseArgs(b.args)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			inputs[k] = v
		}
	}
	for k, v := range b.inputs {
		inputs[k] = v
	}

	opts, err := Resolve(schema, inputs, b.env)
	if err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(opts); err != nil {
			return nil, fmt.Errorf("options validation failed: %w", err)
		}
	}

	if b.logger != nil {
		b.logger.Info("options resolved", "options", opts)
	}

	return opts, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Options {
	opts, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("options build failed: %v", err))
	}
	return opts
}

// BuildAndScan builds and decodes the resolved options into the given
// target struct pointer via Options.Scan.
func (b *Builder) BuildAndScan(target any) error {
	opts, err := b.Build()
	if err != nil {
		return err
	}

	if err := opts.Scan(target); err != nil {
		return fmt.Errorf("failed to scan resolved options into target: %w", err)
	}

	return nil
}
