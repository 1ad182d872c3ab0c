package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"codgen/internal/binding"
	"codgen/internal/common"
	"codgen/internal/naming"
	"codgen/internal/schema"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "codgen.yaml"

// Settings configures one generation request.
type Settings struct {
	// Schema is the schema file path. ENV: CODGEN_SCHEMA
	Schema string `yaml:"schema,omitempty" env:"CODGEN_SCHEMA"`
	// Format is the schema format tag; empty infers it from Schema. ENV: CODGEN_FORMAT
	Format string `yaml:"format,omitempty" env:"CODGEN_FORMAT"`
	// BindingStyle is plain, jaxb-style or jackson-style. ENV: CODGEN_BINDING_STYLE
	BindingStyle string `yaml:"bindingStyle,omitempty" env:"CODGEN_BINDING_STYLE"`
	// OutputDir receives the generated sources. ENV: CODGEN_OUTPUT_DIR
	OutputDir string `yaml:"outputDir,omitempty" env:"CODGEN_OUTPUT_DIR"`
	// PackageName is the Java package of generated classes. ENV: CODGEN_PACKAGE_NAME
	PackageName string `yaml:"packageName,omitempty" env:"CODGEN_PACKAGE_NAME"`
	// Jakarta selects jakarta.xml.bind for jaxb-style. ENV: CODGEN_JAKARTA
	Jakarta bool `yaml:"jakarta,omitempty" env:"CODGEN_JAKARTA"`
	// TypeOverrides maps style -> primitive -> Java type.
	TypeOverrides map[string]map[string]string `yaml:"typeOverrides,omitempty"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		BindingStyle: binding.StylePlain.String(),
		OutputDir:    "./generated",
		PackageName:  "generated",
	}
}

// LoadFile reads settings from a YAML file. Unknown keys are rejected.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML settings.
func Parse(data []byte) (Settings, error) {
	var s Settings

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	return s, nil
}

// FromEnv reads settings from CODGEN_* environment variables.
// Unset variables leave fields empty.
func FromEnv() (Settings, error) {
	var s Settings

	err := envdecode.Decode(&s)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Settings{}, fmt.Errorf("failed to decode settings from environment: %w", err)
	}

	return s, nil
}

// Resolve layers defaults, the settings file and the environment.
// An empty path uses DefaultFile when it exists.
func Resolve(path string) (Settings, error) {
	s := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("checking %s: %w", DefaultFile, err)
		}
	}

	if path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return Settings{}, err
		}

		s = s.Merge(file)
	}

	env, err := FromEnv()
	if err != nil {
		return Settings{}, err
	}

	return s.Merge(env), nil
}

// Merge returns s with every non-zero field of other applied on top.
// Type overrides are merged per style and primitive.
func (s Settings) Merge(other Settings) Settings {
	out := s

	if other.Schema != "" {
		out.Schema = other.Schema
	}

	if other.Format != "" {
		out.Format = other.Format
	}

	if other.BindingStyle != "" {
		out.BindingStyle = other.BindingStyle
	}

	if other.OutputDir != "" {
		out.OutputDir = other.OutputDir
	}

	if other.PackageName != "" {
		out.PackageName = other.PackageName
	}

	if other.Jakarta {
		out.Jakarta = true
	}

	if len(s.TypeOverrides) > 0 || len(other.TypeOverrides) > 0 {
		out.TypeOverrides = map[string]map[string]string{}

		for _, src := range []map[string]map[string]string{s.TypeOverrides, other.TypeOverrides} {
			for style, rules := range src {
				if out.TypeOverrides[style] == nil {
					out.TypeOverrides[style] = map[string]string{}
				}

				for prim, javaType := range rules {
					out.TypeOverrides[style][prim] = javaType
				}
			}
		}
	}

	return out
}

// Validate checks that the settings describe a runnable request.
func (s Settings) Validate() error {
	var errs []error

	if _, err := binding.ParseStyle(s.BindingStyle); err != nil {
		errs = append(errs, err)
	}

	if _, err := schema.ParseFormat(s.Format); err != nil {
		errs = append(errs, err)
	}

	if s.OutputDir == "" {
		errs = append(errs, errors.New("outputDir is required"))
	}

	if s.PackageName != "" && !naming.IsPackageName(s.PackageName) {
		errs = append(errs, fmt.Errorf("invalid packageName %q", s.PackageName))
	}

	for _, styleName := range common.SortedKeys(s.TypeOverrides) {
		if _, err := binding.ParseStyle(styleName); err != nil {
			errs = append(errs, fmt.Errorf("typeOverrides: %w", err))
			continue
		}

		for _, prim := range common.SortedKeys(s.TypeOverrides[styleName]) {
			if !schema.IsPrimitive(prim) {
				errs = append(errs, fmt.Errorf("typeOverrides.%s: %q is not a primitive (want one of %s)",
					styleName, prim, strings.Join(schema.Primitives(), ", ")))
			}

			if s.TypeOverrides[styleName][prim] == "" {
				errs = append(errs, fmt.Errorf("typeOverrides.%s.%s: empty Java type", styleName, prim))
			}
		}
	}

	return errors.Join(errs...)
}

// Style returns the parsed binding style.
func (s Settings) Style() (binding.Style, error) {
	return binding.ParseStyle(s.BindingStyle)
}

// SchemaFormat returns the schema format, inferred from Schema when unset.
func (s Settings) SchemaFormat() (schema.Format, error) {
	if s.Format == "" {
		return schema.FormatFromPath(s.Schema), nil
	}

	return schema.ParseFormat(s.Format)
}

// MapperOptions converts the settings into binding.Mapper options.
func (s Settings) MapperOptions() ([]binding.Option, error) {
	opts := []binding.Option{binding.WithJakarta(s.Jakarta)}

	for _, styleName := range common.SortedKeys(s.TypeOverrides) {
		style, err := binding.ParseStyle(styleName)
		if err != nil {
			return nil, fmt.Errorf("typeOverrides: %w", err)
		}

		rules := binding.RuleTable{}
		for prim, javaType := range s.TypeOverrides[styleName] {
			rules[prim] = binding.ParseJavaType(javaType)
		}

		opts = append(opts, binding.WithOverrides(style, rules))
	}

	return opts, nil
}
