package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codgen/internal/binding"
	"codgen/internal/schema"
)

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
schema: schema/person.schema
bindingStyle: jackson-style
outputDir: build/generated
packageName: org.example.model
jakarta: true
typeOverrides:
  jaxb-style:
    binary: byte[]
`))
	require.NoError(t, err)

	assert.Equal(t, "schema/person.schema", s.Schema)
	assert.Equal(t, "jackson-style", s.BindingStyle)
	assert.Equal(t, "build/generated", s.OutputDir)
	assert.Equal(t, "org.example.model", s.PackageName)
	assert.True(t, s.Jakarta)
	assert.Equal(t, "byte[]", s.TypeOverrides["jaxb-style"]["binary"])
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("bindingstyle: plain\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bindingstyle")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("outputDir: out\n"), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out", s.OutputDir)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CODGEN_BINDING_STYLE", "jaxb")
	t.Setenv("CODGEN_PACKAGE_NAME", "org.env")
	t.Setenv("CODGEN_JAKARTA", "true")

	s, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "jaxb", s.BindingStyle)
	assert.Equal(t, "org.env", s.PackageName)
	assert.True(t, s.Jakarta)
	assert.Empty(t, s.OutputDir)
}

func TestFromEnv_Unset(t *testing.T) {
	for _, key := range []string{
		"CODGEN_SCHEMA", "CODGEN_FORMAT", "CODGEN_BINDING_STYLE",
		"CODGEN_OUTPUT_DIR", "CODGEN_PACKAGE_NAME", "CODGEN_JAKARTA",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestResolve_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"bindingStyle: jackson-style\noutputDir: from-file\n"), 0o600))

	t.Setenv("CODGEN_OUTPUT_DIR", "from-env")

	s, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "jackson-style", s.BindingStyle, "file overrides default")
	assert.Equal(t, "from-env", s.OutputDir, "env overrides file")
	assert.Equal(t, Default().PackageName, s.PackageName, "default kept")

	flags := Settings{OutputDir: "from-flag"}
	assert.Equal(t, "from-flag", s.Merge(flags).OutputDir, "flags override env")
}

func TestMerge_TypeOverrides(t *testing.T) {
	base := Settings{TypeOverrides: map[string]map[string]string{
		"plain": {"date": "java.util.Date", "decimal": "double"},
	}}
	top := Settings{TypeOverrides: map[string]map[string]string{
		"plain":      {"decimal": "java.math.BigInteger"},
		"jaxb-style": {"binary": "byte[]"},
	}}

	merged := base.Merge(top)

	assert.Equal(t, map[string]map[string]string{
		"plain":      {"date": "java.util.Date", "decimal": "java.math.BigInteger"},
		"jaxb-style": {"binary": "byte[]"},
	}, merged.TypeOverrides)
	assert.Equal(t, "double", base.TypeOverrides["plain"]["decimal"], "receiver not mutated")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{
			name:    "bad style",
			mutate:  func(s *Settings) { s.BindingStyle = "xml" },
			wantErr: `unknown binding style "xml"`,
		},
		{
			name:    "bad format",
			mutate:  func(s *Settings) { s.Format = "toml" },
			wantErr: `unknown schema format "toml"`,
		},
		{
			name:    "empty output dir",
			mutate:  func(s *Settings) { s.OutputDir = "" },
			wantErr: "outputDir is required",
		},
		{
			name:    "bad package",
			mutate:  func(s *Settings) { s.PackageName = "org.class.model" },
			wantErr: `invalid packageName "org.class.model"`,
		},
		{
			name: "override of non-primitive",
			mutate: func(s *Settings) {
				s.TypeOverrides = map[string]map[string]string{"plain": {"Person": "Object"}}
			},
			wantErr: `"Person" is not a primitive (want one of string, int, long,`,
		},
		{
			name: "override with unknown style",
			mutate: func(s *Settings) {
				s.TypeOverrides = map[string]map[string]string{"gson": {"date": "String"}}
			},
			wantErr: `unknown binding style "gson"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaFormat(t *testing.T) {
	f, err := Settings{Schema: "model.yml"}.SchemaFormat()
	require.NoError(t, err)
	assert.Equal(t, schema.FormatYAML, f)

	f, err = Settings{Schema: "model.yml", Format: "json"}.SchemaFormat()
	require.NoError(t, err)
	assert.Equal(t, schema.FormatJSON, f)
}

func TestMapperOptions(t *testing.T) {
	s := Default()
	s.TypeOverrides = map[string]map[string]string{"jaxb": {"binary": "byte[]"}}

	opts, err := s.MapperOptions()
	require.NoError(t, err)

	m := binding.NewMapper(opts...)
	rule, ok := m.Rules(binding.StyleJAXB)["binary"]
	require.True(t, ok)
	assert.Equal(t, "byte[]", rule.Name)
}
