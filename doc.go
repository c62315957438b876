// File: optionsconfig/doc.go

// Package optionsconfig provides schema-driven option management for Go
// applications. A single declarative table of option definitions drives
// command-line flag generation, environment-variable and default-value
// resolution, cross-option dependency validation, and documentation
// generation (.env.example and README sections).
//
// Features:
//   - Single source of truth: one schema describes every option
//   - Resolution precedence: explicit input > environment > default
//   - Typed values with explicit coercion (bool, string, int, float, path, choice)
//   - Dependency constraints ("EXPORT_DIR is required when EXPORT is true")
//   - Root-option auto-defaulting for zero-flag invocations
//   - Sensitive value masking in all diagnostic output
//   - pflag flag set generation from the schema
//   - Schema files in TOML, JSON, or YAML with format auto-detection
//   - Documentation builders for .env.example and README sections
//
// Quick Start:
//
//	schema, err := optionsconfig.NewSchema(
//	    optionsconfig.Option{
//	        Name:    "EXPORT",
//	        Env:     "EXPORT",
//	        Flag:    "--export",
//	        Type:    optionsconfig.TypeBool,
//	        Default: false,
//	        Section: "Export",
//	        Help:    "Enable result export",
//	    },
//	    optionsconfig.Option{
//	        Name:      "EXPORT_DIR",
//	        Env:       "EXPORT_DIR",
//	        Flag:      "--export-dir",
//	        Type:      optionsconfig.TypePath,
//	        Section:   "Export",
//	        Help:      "Directory to export results into",
//	        DependsOn: []string{"EXPORT"},
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := optionsconfig.NewBuilder().
//	    WithSchema(schema).
//	    WithArgs(os.Args[1:]).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	export, _ := opts.Bool("EXPORT")
//	dir, _ := opts.Path("EXPORT_DIR")
//
// Resolution Precedence (highest to lowest):
//  1. Explicit inputs (parsed command-line flags or a caller-supplied map)
//  2. Environment variables (by the option's declared Env name)
//  3. Schema defaults
//
// Root-Option Defaulting:
// An option listed in another option's DependsOn is a "root" option.
// When no root option is explicitly provided through flags or the
// environment, all roots default to true so a zero-flag invocation
// enables everything. A single explicitly provided root switches back
// to precise opt-in behavior.
//
// Concurrency:
// Resolution is a single synchronous pass over in-memory data. Options
// instances are immutable after construction and safe for concurrent
// reads; separate resolutions share no state.
package optionsconfig
