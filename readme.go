// File: optionsconfig/readme.go
package optionsconfig

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Markers delimiting the generated options section in a README.
const (
	BeginOptionsMarker = "<!-- BEGIN_GENERATED_OPTIONS -->"
	EndOptionsMarker   = "<!-- END_GENERATED_OPTIONS -->"
)

// ReadmeBuilder splices generated option documentation into an
// existing README between fixed marker comments.
type ReadmeBuilder struct {
	schema *Schema
	path   string
}

// NewReadmeBuilder returns a builder targeting the given README path.
// An empty path uses the default location.
func NewReadmeBuilder(s *Schema, path string) *ReadmeBuilder {
	if path == "" {
		path = DefaultOutput().Readme
	}
	return &ReadmeBuilder{schema: s, path: path}
}

// Path returns the target file path.
func (b *ReadmeBuilder) Path() string {
	return b.path
}

// Build replaces the content between the markers with freshly
// generated documentation and writes the README back atomically.
// A README without both markers is an error; the message tells the
// user what to add.
func (b *ReadmeBuilder) Build() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return fmt.Errorf("failed to read README '%s': %w", b.path, err)
	}
	content := string(data)

	start := strings.Index(content, BeginOptionsMarker)
	end := strings.Index(content, EndOptionsMarker)
	if start < 0 || end < 0 || end < start {
		return fmt.Errorf("%w in '%s': add %s and %s where the option docs belong",
			ErrMarkersNotFound, b.path, BeginOptionsMarker, EndOptionsMarker)
	}

	updated := content[:start] +
		BeginOptionsMarker + "\n" +
		b.Generate() + "\n" +
		content[end:]

	if err := atomicWriteFile(b.path, []byte(updated)); err != nil {
		return fmt.Errorf("failed to write README '%s': %w", b.path, err)
	}

	return nil
}

// Generate renders the per-section markdown documentation for every
// option in the schema.
func (b *ReadmeBuilder) Generate() string {
	var lines []string

	for _, section := range b.schema.Sections() {
		lines = append(lines, "#### "+section, "")
		for _, opt := range b.schema.SectionOptions(section) {
			lines = append(lines, readmeOptionLines(opt)...)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// readmeOptionLines renders one option entry. Dependent options use a
// "*" bullet so they read as refinements of their roots.
func readmeOptionLines(opt Option) []string {
	bullet := "-"
	if len(opt.DependsOn) > 0 {
		bullet = "*"
	}

	lines := []string{
		fmt.Sprintf("%s **%s** - %s", bullet, opt.Env, opt.Help),
		fmt.Sprintf("  - Default: %s", readmeDefaultString(opt)),
		fmt.Sprintf("  - Command line: `%s`", opt.Flag),
	}

	if len(opt.DependsOn) > 0 {
		deps := make([]string, len(opt.DependsOn))
		for i, dep := range opt.DependsOn {
			deps[i] = "`" + dep + "`"
		}
		lines = append(lines, "  - Depends on: "+strings.Join(deps, ", "))
	}

	if len(opt.Links) > 0 {
		names := make([]string, 0, len(opt.Links))
		for name := range opt.Links {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("  - See [%s](%s) for available values", name, opt.Links[name]))
		}
	}

	lines = append(lines, "")
	return lines
}

// readmeDefaultString renders an option default for the README. A nil
// default on a dependent option is documented as conditionally
// required instead of just "None".
func readmeDefaultString(opt Option) string {
	switch d := opt.Default.(type) {
	case nil:
		if len(opt.DependsOn) > 0 {
			return fmt.Sprintf("None - required when %s is True", strings.Join(opt.DependsOn, " or "))
		}
		return "None"
	case bool:
		return fmt.Sprintf("`%q`", fmt.Sprintf("%t", d))
	case string:
		if d == "" {
			return "`\"\"` (empty)"
		}
		return fmt.Sprintf("`%q`", d)
	default:
		return fmt.Sprintf("`\"%v\"`", d)
	}
}
