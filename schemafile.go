// File: optionsconfig/schemafile.go
package optionsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SchemaFileEnvVar names the environment variable checked for an
// explicit schema file path during discovery.
const SchemaFileEnvVar = "OPTIONSCONFIG_CONFIG"

// schemaFileName is the base name searched for during discovery.
const schemaFileName = "optionsconfig"

// schemaFileExtensions are tried in order during discovery.
var schemaFileExtensions = []string{".toml", ".json", ".yaml", ".yml"}

// Output holds the documentation target paths configured in the schema
// file's [output] table. Zero values fall back to the defaults.
type Output struct {
	EnvExample string `toml:"env_example" json:"env_example" yaml:"env_example"`
	Readme     string `toml:"readme" json:"readme" yaml:"readme"`
}

// DefaultOutput returns the standard documentation target paths.
func DefaultOutput() Output {
	return Output{
		EnvExample: ".env.example",
		Readme:     "README.md",
	}
}

// File is a parsed schema file: the validated schema plus the
// documentation output paths.
type File struct {
	Schema *Schema
	Output Output
}

// optionSpec is the on-disk shape of one option definition.
type optionSpec struct {
	Name      string            `toml:"name" json:"name" yaml:"name"`
	Env       string            `toml:"env" json:"env" yaml:"env"`
	Flag      string            `toml:"flag" json:"flag" yaml:"flag"`
	Type      string            `toml:"type" json:"type" yaml:"type"`
	Default   any               `toml:"default" json:"default" yaml:"default"`
	Section   string            `toml:"section" json:"section" yaml:"section"`
	Help      string            `toml:"help" json:"help" yaml:"help"`
	Choices   []string          `toml:"choices" json:"choices" yaml:"choices"`
	DependsOn []string          `toml:"depends_on" json:"depends_on" yaml:"depends_on"`
	Sensitive bool              `toml:"sensitive" json:"sensitive" yaml:"sensitive"`
	Links     map[string]string `toml:"links" json:"links" yaml:"links"`
}

// schemaFile is the on-disk shape of a whole schema file. Options are
// an array of tables so declaration order survives parsing.
type schemaFile struct {
	Output  Output       `toml:"output" json:"output" yaml:"output"`
	Options []optionSpec `toml:"option" json:"option" yaml:"option"`
}

// LoadFile reads and validates a schema file. The format is detected
// from the extension first, then from the content (strict JSON, then
// YAML, then TOML).
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}

	format := formatFromExtension(path)
	if format == "" {
		format = sniffFormat(data)
		if format == "" {
			return nil, fmt.Errorf("schema file '%s' is not valid TOML, JSON, or YAML", path)
		}
	}

	var raw schemaFile
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML schema file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON schema file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema file '%s': %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q for file '%s'", format, path)
	}

	schema, err := buildSchema(raw.Options)
	if err != nil {
		return nil, fmt.Errorf("schema file '%s': %w", path, err)
	}

	output := raw.Output
	defaults := DefaultOutput()
	if output.EnvExample == "" {
		output.EnvExample = defaults.EnvExample
	}
	if output.Readme == "" {
		output.Readme = defaults.Readme
	}

	return &File{Schema: schema, Output: output}, nil
}

// buildSchema converts decoded option specs into a validated Schema.
func buildSchema(specs []optionSpec) (*Schema, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySchema
	}

	var errs []error
	opts := make([]Option, 0, len(specs))

	for _, spec := range specs {
		opt := Option{
			Name:      spec.Name,
			Env:       spec.Env,
			Flag:      spec.Flag,
			Default:   spec.Default,
			Section:   spec.Section,
			Help:      spec.Help,
			Choices:   spec.Choices,
			DependsOn: spec.DependsOn,
			Sensitive: spec.Sensitive,
			Links:     spec.Links,
		}

		t, err := ParseValueType(spec.Type)
		if err != nil {
			errs = append(errs, &SchemaError{Option: spec.Name, Reason: err.Error()})
			continue
		}
		opt.Type = t

		opts = append(opts, opt)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return NewSchema(opts...)
}

// DiscoverFile locates a schema file. Search order: the explicit path
// if non-empty, the OPTIONSCONFIG_CONFIG environment variable, the
// current directory, then XDG config directories. Returns
// ErrSchemaNotFound when nothing matches.
func DiscoverFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if path := os.Getenv(SchemaFileEnvVar); path != "" {
		return path, nil
	}

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	searchPaths = append(searchPaths, xdgConfigPaths(schemaFileName)...)

	for _, dir := range searchPaths {
		for _, ext := range schemaFileExtensions {
			path := filepath.Join(dir, schemaFileName+ext)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", ErrSchemaNotFound
}

// xdgConfigPaths returns XDG-compliant config search paths.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}

// formatFromExtension maps a known file extension to a format name.
// An unrecognized extension yields "" so the content sniffer decides.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// sniffFormat identifies a format by trial parsing. JSON goes before
// YAML because every JSON document also parses as YAML; TOML last.
func sniffFormat(data []byte) string {
	var doc any
	if json.Unmarshal(data, &doc) == nil {
		return "json"
	}
	if yaml.Unmarshal(data, &doc) == nil {
		return "yaml"
	}
	if toml.Unmarshal(data, &doc) == nil {
		return "toml"
	}
	return ""
}
