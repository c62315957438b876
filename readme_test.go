// File: optionsconfig/readme_test.go
package optionsconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadmeGenerate(t *testing.T) {
	content := NewReadmeBuilder(docsSchema(t), "").Generate()

	t.Run("Section Headings", func(t *testing.T) {
		assert.Contains(t, content, "#### Export")
		assert.Contains(t, content, "#### Network")
	})

	t.Run("Root Options Use Dash Bullets", func(t *testing.T) {
		assert.Contains(t, content, "- **EXPORT** - Enable exporting of results")
	})

	t.Run("Dependent Options Use Star Bullets", func(t *testing.T) {
		assert.Contains(t, content, "* **EXPORT_DIR** - Directory results are exported into")
		assert.Contains(t, content, "  - Depends on: `EXPORT`")
	})

	t.Run("Command Line Spelling", func(t *testing.T) {
		assert.Contains(t, content, "  - Command line: `--export-dir`")
	})

	t.Run("Default Formatting", func(t *testing.T) {
		assert.Contains(t, content, "  - Default: `\"false\"`")
		assert.Contains(t, content, "  - Default: `\"3\"`")
		assert.Contains(t, content, "  - Default: None - required when EXPORT is True")
	})
}

func TestReadmeDefaultString(t *testing.T) {
	assert.Equal(t, "None", readmeDefaultString(Option{}))
	assert.Equal(t, "None - required when A or B is True",
		readmeDefaultString(Option{DependsOn: []string{"A", "B"}}))
	assert.Equal(t, "`\"true\"`", readmeDefaultString(Option{Default: true}))
	assert.Equal(t, "`\"\"` (empty)", readmeDefaultString(Option{Default: ""}))
	assert.Equal(t, "`\"text\"`", readmeDefaultString(Option{Default: "text"}))
	assert.Equal(t, "`\"8080\"`", readmeDefaultString(Option{Default: int64(8080)}))
}

func TestReadmeLinks(t *testing.T) {
	s, err := NewSchema(
		Option{
			Name: "MODE", Env: "MODE", Flag: "--mode", Type: TypeChoice,
			Choices: []string{"fast", "slow"}, Default: "fast",
			Section: "General", Help: "Run mode",
			Links: map[string]string{"run modes": "https://example.com/modes"},
		},
	)
	require.NoError(t, err)

	content := NewReadmeBuilder(s, "").Generate()
	assert.Contains(t, content, "  - See [run modes](https://example.com/modes) for available values")
}

func TestReadmeBuild(t *testing.T) {
	t.Run("Splices Between Markers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "README.md")
		original := strings.Join([]string{
			"# My Project",
			"",
			"## Options",
			"",
			BeginOptionsMarker,
			"stale generated text",
			EndOptionsMarker,
			"",
			"## License",
			"",
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(original), 0644))

		builder := NewReadmeBuilder(docsSchema(t), path)
		require.NoError(t, builder.Build())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		updated := string(data)

		assert.Contains(t, updated, "# My Project")
		assert.Contains(t, updated, "## License")
		assert.Contains(t, updated, BeginOptionsMarker)
		assert.Contains(t, updated, EndOptionsMarker)
		assert.Contains(t, updated, "#### Export")
		assert.NotContains(t, updated, "stale generated text")

		// Rebuild is stable.
		require.NoError(t, builder.Build())
		again, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, updated, string(again))
	})

	t.Run("Missing Markers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "README.md")
		require.NoError(t, os.WriteFile(path, []byte("# No markers here\n"), 0644))

		err := NewReadmeBuilder(docsSchema(t), path).Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMarkersNotFound)
		assert.Contains(t, err.Error(), BeginOptionsMarker)
	})

	t.Run("Missing README", func(t *testing.T) {
		err := NewReadmeBuilder(docsSchema(t), filepath.Join(t.TempDir(), "README.md")).Build()
		assert.Error(t, err)
	})
}
