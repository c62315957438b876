// File: optionsconfig/schema_test.go
package optionsconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	t.Run("Valid Schema", func(t *testing.T) {
		s, err := NewSchema(
			Option{Name: "EXPORT", Env: "EXPORT", Flag: "--export", Type: TypeBool, Default: false, Section: "Export", Help: "Enable export"},
			Option{Name: "EXPORT_DIR", Env: "EXPORT_DIR", Flag: "--export-dir", Type: TypePath, Section: "Export", Help: "Export directory", DependsOn: []string{"EXPORT"}},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, s.Len())

		opt, ok := s.Option("EXPORT_DIR")
		require.True(t, ok)
		assert.Equal(t, "export_dir", opt.AttrName())
		assert.Equal(t, []string{"EXPORT"}, opt.DependsOn)
	})

	t.Run("Empty Schema", func(t *testing.T) {
		_, err := NewSchema()
		assert.ErrorIs(t, err, ErrEmptySchema)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "A", Env: "A", Flag: "--a", Type: TypeBool, Default: false},
			Option{Name: "A", Env: "A", Flag: "--a", Type: TypeBool, Default: false},
		)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "A", schemaErr.Option)
		assert.Contains(t, schemaErr.Reason, "duplicate")
	})

	t.Run("Duplicate Flag", func(t *testing.T) {
		// Two options with one flag spelling would collide in the
		// generated flag set.
		_, err := NewSchema(
			Option{Name: "A", Env: "A", Flag: "--shared", Type: TypeBool, Default: false},
			Option{Name: "B", Env: "B", Flag: "--shared", Type: TypeBool, Default: false},
		)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "B", schemaErr.Option)
		assert.Contains(t, schemaErr.Reason, `"--shared" already used by option A`)
	})

	t.Run("Duplicate Env", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "A", Env: "SHARED", Flag: "--a", Type: TypeString},
			Option{Name: "B", Env: "SHARED", Flag: "--b", Type: TypeString},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `'env' "SHARED" already used by option A`)
	})

	t.Run("Colliding Attribute Names", func(t *testing.T) {
		// Distinct flags deriving the same attribute name would both
		// receive the same explicit input.
		_, err := NewSchema(
			Option{Name: "X", Env: "X", Flag: "--out-dir", Type: TypePath},
			Option{Name: "Y", Env: "Y", Flag: "--out_dir", Type: TypePath},
		)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "Y", schemaErr.Option)
		assert.Contains(t, schemaErr.Reason, `derives attribute "out_dir" already used by option X`)
	})

	t.Run("All Problems Reported Together", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "ONE", Env: "lower_case", Flag: "--one", Type: TypeString},
			Option{Name: "TWO", Env: "TWO", Flag: "no-dashes", Type: TypeString},
			Option{Name: "THREE", Env: "THREE", Flag: "--three", Type: TypeString, DependsOn: []string{"MISSING"}},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UPPER_CASE")
		assert.Contains(t, err.Error(), `should start with "--"`)
		assert.Contains(t, err.Error(), `non-existent option "MISSING"`)
	})

	t.Run("Choice Without Choices", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "MODE", Env: "MODE", Flag: "--mode", Type: TypeChoice},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declares no choices")
	})

	t.Run("Choice Default Must Be Declared", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "MODE", Env: "MODE", Flag: "--mode", Type: TypeChoice, Choices: []string{"fast", "slow"}, Default: "medium"},
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not one of the declared choices")
	})

	t.Run("Default Type Mismatch", func(t *testing.T) {
		_, err := NewSchema(
			Option{Name: "PORT", Env: "PORT", Flag: "--port", Type: TypeInt, Default: "eighty"},
		)
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "PORT", schemaErr.Option)
	})

	t.Run("Int Default Normalized To Int64", func(t *testing.T) {
		s, err := NewSchema(
			Option{Name: "PORT", Env: "PORT", Flag: "--port", Type: TypeInt, Default: 8080},
		)
		require.NoError(t, err)
		opt, _ := s.Option("PORT")
		assert.Equal(t, int64(8080), opt.Default)
	})

	t.Run("Forward Dependency Reference", func(t *testing.T) {
		// A dependent declared before its root is valid.
		s, err := NewSchema(
			Option{Name: "OUT", Env: "OUT", Flag: "--out", Type: TypePath, DependsOn: []string{"ENABLE"}},
			Option{Name: "ENABLE", Env: "ENABLE", Flag: "--enable", Type: TypeBool, Default: false},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"ENABLE"}, s.Roots())
	})
}

func TestSchemaRoots(t *testing.T) {
	s, err := NewSchema(
		Option{Name: "EXPORT", Env: "EXPORT", Flag: "--export", Type: TypeBool, Default: false},
		Option{Name: "UPLOAD", Env: "UPLOAD", Flag: "--upload", Type: TypeBool, Default: false},
		Option{Name: "OUT", Env: "OUT", Flag: "--out", Type: TypePath, DependsOn: []string{"EXPORT", "UPLOAD"}},
		Option{Name: "VERBOSE", Env: "VERBOSE", Flag: "--verbose", Type: TypeBool, Default: false},
	)
	require.NoError(t, err)

	// Roots in declaration order; VERBOSE is not a root.
	assert.Equal(t, []string{"EXPORT", "UPLOAD"}, s.Roots())
}

func TestSchemaSections(t *testing.T) {
	s, err := NewSchema(
		Option{Name: "A", Env: "A", Flag: "--a", Type: TypeString, Section: "First"},
		Option{Name: "B", Env: "B", Flag: "--b", Type: TypeString, Section: "Second"},
		Option{Name: "C", Env: "C", Flag: "--c", Type: TypeString, Section: "First"},
		Option{Name: "D", Env: "D", Flag: "--d", Type: TypeString},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"First", "Second", "Other"}, s.Sections())

	first := s.SectionOptions("First")
	require.Len(t, first, 2)
	assert.Equal(t, "A", first[0].Name)
	assert.Equal(t, "C", first[1].Name)
}

func TestParseValueType(t *testing.T) {
	cases := map[string]ValueType{
		"bool":    TypeBool,
		"boolean": TypeBool,
		"string":  TypeString,
		"int":     TypeInt,
		"integer": TypeInt,
		"float":   TypeFloat,
		"path":    TypePath,
		"choice":  TypeChoice,
	}
	for raw, want := range cases {
		got, err := ParseValueType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseValueType("duration")
	assert.Error(t, err)
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustSchema(Option{Name: "BAD", Env: "bad", Flag: "bad", Type: TypeString})
	})
}

func TestSchemaErrorUnwrapsFromJoin(t *testing.T) {
	_, err := NewSchema(
		Option{Name: "X", Env: "x", Flag: "--x", Type: TypeString},
	)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}
