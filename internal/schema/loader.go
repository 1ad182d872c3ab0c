package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the schema input syntax.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format tag. An empty tag means FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown schema format %q (want text, yaml or json)", s)
	}
}

// FormatFromPath picks a format from a file extension.
// Unknown extensions are treated as FormatText.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// LoadFile reads and loads a schema file. An empty format is inferred from
// the file extension.
func LoadFile(path string, format Format) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	if format == "" {
		format = FormatFromPath(path)
	}

	return Load(data, format)
}

// Load parses schema text in the given format and validates it.
// Any failure is reported as a *SchemaParseError.
func Load(data []byte, format Format) (*Model, error) {
	var (
		types []TypeDefinition
		err   error
	)

	switch format {
	case FormatText, "":
		types, err = parseText(string(data))
	case FormatYAML:
		types, err = decodeYAML(data)
	case FormatJSON:
		types, err = decodeJSON(data)
	default:
		return nil, &SchemaParseError{Code: CodeSyntax, Message: fmt.Sprintf("unknown schema format %q", format)}
	}

	if err != nil {
		return nil, err
	}

	diags := Validate(types)
	if diags.HasErrors() {
		return nil, fromDiagnostics(diags)
	}

	m := newModel(types)
	m.Warnings = diags.Warnings

	return m, nil
}
