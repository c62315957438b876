// File: optionsconfig/envfile.go
package optionsconfig

import (
	"fmt"
	"os"
	"strings"
)

// envExampleHeader is the first line of every generated env file.
const envExampleHeader = `# Use forward slashes "/" in paths for compatibility across platforms`

// helpWrapWidth is the column budget for wrapped help comments.
const helpWrapWidth = 80

// EnvBuilder generates a .env.example file from a schema so the
// environment template stays in sync with the option definitions.
type EnvBuilder struct {
	schema *Schema
	path   string
}

// NewEnvBuilder returns a builder targeting the given path. An empty
// path uses the default location.
func NewEnvBuilder(s *Schema, path string) *EnvBuilder {
	if path == "" {
		path = DefaultOutput().EnvExample
	}
	return &EnvBuilder{schema: s, path: path}
}

// Path returns the target file path.
func (b *EnvBuilder) Path() string {
	return b.path
}

// Build writes the generated env example file atomically and verifies
// the written result.
func (b *EnvBuilder) Build() error {
	content := b.Generate()

	if err := atomicWriteFile(b.path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write env example '%s': %w", b.path, err)
	}

	return b.validateGenerated()
}

// Generate renders the env example content: the header, then each
// section with its options as commented, quoted assignments.
func (b *EnvBuilder) Generate() string {
	lines := []string{envExampleHeader, ""}

	for i, section := range b.schema.Sections() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "# "+section)

		for _, opt := range b.schema.SectionOptions(section) {
			lines = append(lines, envOptionLines(opt)...)
		}
	}

	return strings.Join(lines, "\n")
}

// envOptionLines renders one option: wrapped help comment, dependency
// note, and the ENV="default" assignment followed by a blank line.
func envOptionLines(opt Option) []string {
	var lines []string

	if opt.Help != "" {
		lines = append(lines, wrapComment(opt.Help, helpWrapWidth)...)
	}

	if len(opt.DependsOn) > 0 {
		lines = append(lines, fmt.Sprintf("# Required when %s is True", strings.Join(opt.DependsOn, " or ")))
	}

	lines = append(lines, fmt.Sprintf("%s=%q", opt.Env, envDefaultString(opt.Default)))
	lines = append(lines, "")

	return lines
}

// envDefaultString renders a default for the env file: nil is empty,
// bools use the True/False spelling the truthy set accepts, everything
// else formats naturally.
func envDefaultString(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case bool:
		if d {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", d)
	}
}

// wrapComment breaks a help text into "# " comment lines no wider than
// the given column budget. Short texts stay on one line.
func wrapComment(text string, width int) []string {
	if len(text) <= width {
		return []string{"# " + text}
	}

	var lines []string
	current := "# "
	for _, word := range strings.Fields(text) {
		if len(current)+len(word) > width && current != "# " {
			lines = append(lines, strings.TrimRight(current, " "))
			current = "# "
		}
		current += word + " "
	}
	if strings.TrimSpace(current) != "#" {
		lines = append(lines, strings.TrimRight(current, " "))
	}
	return lines
}

// validateGenerated sanity-checks the written file: the header must be
// near the top and at least one uncommented assignment must exist.
func (b *EnvBuilder) validateGenerated() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("failed to read generated file '%s': %w", b.path, err)
	}

	lines := strings.Split(string(data), "\n")

	headerFound := false
	for i, line := range lines {
		if i >= 5 {
			break
		}
		if strings.Contains(line, "Use forward slashes") {
			headerFound = true
			break
		}
	}
	if !headerFound {
		return fmt.Errorf("generated file '%s' is missing the expected header", b.path)
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "=") && !strings.HasPrefix(trimmed, "#") {
			return nil
		}
	}
	return fmt.Errorf("generated file '%s' contains no environment variables", b.path)
}
