package schema

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// Document is the YAML/JSON form of a schema.
type Document struct {
	Types []TypeDocument `yaml:"types" json:"types" jsonschema:"description=Type definitions in declaration order"`
}

// TypeDocument is one type definition within a Document.
type TypeDocument struct {
	Name   string          `yaml:"name" json:"name" jsonschema:"description=Type name"`
	Fields []FieldDocument `yaml:"fields,omitempty" json:"fields,omitempty" jsonschema:"description=Fields in declaration order"`

	line int
}

// FieldDocument is one field within a TypeDocument.
type FieldDocument struct {
	Name           string `yaml:"name" json:"name" jsonschema:"description=Field name"`
	Type           string `yaml:"type" json:"type" jsonschema:"description=Type reference such as string or Address[]?"`
	SerializedName string `yaml:"serializedName,omitempty" json:"serializedName,omitempty" jsonschema:"description=Serialized name override"`
	Attribute      bool   `yaml:"attribute,omitempty" json:"attribute,omitempty" jsonschema:"description=Render as an XML attribute"`
	Required       bool   `yaml:"required,omitempty" json:"required,omitempty" jsonschema:"description=Mark the field as required"`

	line int
}

var (
	documentKeys = []string{"types"}
	typeKeys     = []string{"name", "fields"}
	fieldKeys    = []string{"name", "type", "serializedName", "attribute", "required"}
)

// UnmarshalYAML implements custom YAML unmarshaling for Document.
// Unknown keys are rejected.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "schema document", documentKeys); err != nil {
		return err
	}

	type plain Document

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*d = Document(p)

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for TypeDocument.
// It records the source line and rejects unknown keys.
func (t *TypeDocument) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "type", typeKeys); err != nil {
		return err
	}

	type plain TypeDocument

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*t = TypeDocument(p)
	t.line = node.Line

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for FieldDocument.
// It records the source line and rejects unknown keys.
func (f *FieldDocument) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "field", fieldKeys); err != nil {
		return err
	}

	type plain FieldDocument

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*f = FieldDocument(p)
	f.line = node.Line

	return nil
}

func checkKeys(node *yaml.Node, construct string, allowed []string) error {
	if node.Kind != yaml.MappingNode {
		return &SchemaParseError{
			Line:      node.Line,
			Column:    node.Column,
			Construct: construct,
			Code:      CodeSyntax,
			Message:   "expected a mapping",
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return syntaxError(key.Line, key.Column, construct, "unknown key %q", key.Value)
		}
	}

	return nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

func decodeYAML(data []byte) ([]TypeDefinition, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		var spe *SchemaParseError
		if errors.As(err, &spe) {
			return nil, spe
		}

		line := 0
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			line, _ = strconv.Atoi(m[1])
		}

		return nil, syntaxError(line, 0, "", "invalid YAML: %v", err)
	}

	return doc.toTypes()
}

func decodeJSON(data []byte) ([]TypeDefinition, error) {
	var doc Document

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&doc); err != nil {
		return nil, syntaxError(jsonErrorLine(data, err), 0, "", "invalid JSON: %v", err)
	}

	doc.setJSONLines(data)

	return doc.toTypes()
}

// setJSONLines fills source lines of a decoded JSON document. The JSON text
// is read again as YAML flow nodes, which carry positions; input YAML cannot
// read keeps line 0.
func (d *Document) setJSONLines(data []byte) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil || len(root.Content) == 0 {
		return
	}

	types := mappingValue(root.Content[0], "types")
	if types == nil || types.Kind != yaml.SequenceNode {
		return
	}

	for i, tn := range types.Content {
		if i >= len(d.Types) {
			break
		}

		d.Types[i].line = tn.Line

		fields := mappingValue(tn, "fields")
		if fields == nil || fields.Kind != yaml.SequenceNode {
			continue
		}

		for j, fn := range fields.Content {
			if j >= len(d.Types[i].Fields) {
				break
			}

			d.Types[i].Fields[j].line = fn.Line
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return nil
}

// jsonErrorLine maps a decoder error offset to a 1-based line, or 0.
func jsonErrorLine(data []byte, err error) int {
	var offset int64 = -1

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}

	if offset < 0 {
		return 0
	}

	offset = min(offset, int64(len(data)))

	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}

func (d *Document) toTypes() ([]TypeDefinition, error) {
	types := make([]TypeDefinition, 0, len(d.Types))

	for i, td := range d.Types {
		def := TypeDefinition{Name: td.Name, Line: td.line}
		if td.Name == "" {
			return nil, syntaxError(td.line, 0, fmt.Sprintf("types[%d]", i), "type name is required")
		}

		for j, fd := range td.Fields {
			construct := fmt.Sprintf("field %s.%s", td.Name, fd.Name)
			if fd.Name == "" {
				return nil, syntaxError(fd.line, 0, fmt.Sprintf("type %s fields[%d]", td.Name, j), "field name is required")
			}

			ref, err := ParseTypeRef(fd.Type)
			if err != nil {
				return nil, syntaxError(fd.line, 0, construct, "%v", err)
			}

			def.Fields = append(def.Fields, FieldDefinition{
				Name: fd.Name,
				Type: ref,
				Metadata: Metadata{
					SerializedName: fd.SerializedName,
					Attribute:      fd.Attribute,
					Required:       fd.Required,
				},
				Line: fd.line,
			})
		}

		types = append(types, def)
	}

	return types, nil
}

// DocumentJSONSchema returns the JSON Schema of the YAML/JSON document format.
func DocumentJSONSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}

	s := r.Reflect(&Document{})
	s.Title = "codgen schema document"

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling document schema: %w", err)
	}

	return out, nil
}
