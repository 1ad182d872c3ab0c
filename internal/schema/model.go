package schema

import (
	"fmt"
	"slices"
	"strings"

	"codgen/internal/diagnostic"
	"codgen/internal/naming"
)

// Primitive type names understood by every binding style.
const (
	PrimitiveString   = "string"
	PrimitiveInt      = "int"
	PrimitiveLong     = "long"
	PrimitiveFloat    = "float"
	PrimitiveDouble   = "double"
	PrimitiveBoolean  = "boolean"
	PrimitiveDecimal  = "decimal"
	PrimitiveDate     = "date"
	PrimitiveDateTime = "datetime"
	// PrimitiveBinary is a raw binary blob.
	PrimitiveBinary = "binary"
)

var primitives = []string{
	PrimitiveString, PrimitiveInt, PrimitiveLong, PrimitiveFloat, PrimitiveDouble,
	PrimitiveBoolean, PrimitiveDecimal, PrimitiveDate, PrimitiveDateTime, PrimitiveBinary,
}

// Primitives returns the fixed set of primitive type names.
func Primitives() []string {
	return slices.Clone(primitives)
}

// IsPrimitive reports whether name is a primitive type.
func IsPrimitive(name string) bool {
	return slices.Contains(primitives, name)
}

// Model is an ordered, name-indexed set of type definitions.
// It is created once by Load and must not be modified afterwards.
type Model struct {
	// Types in declaration order.
	Types []TypeDefinition
	// Warnings collected during validation.
	Warnings []diagnostic.Diagnostic

	index map[string]int
}

// TypeDefinition describes one named record type.
type TypeDefinition struct {
	Name   string
	Fields []FieldDefinition
	// Line is the 1-based source line of the definition, or 0 when unknown.
	Line int
}

// FieldDefinition describes one field of a TypeDefinition.
type FieldDefinition struct {
	Name     string
	Type     TypeRef
	Metadata Metadata
	Line     int
}

// Metadata holds binding-specific options attached to a field.
type Metadata struct {
	// SerializedName overrides the name used on the wire.
	SerializedName string
	// Attribute renders the field as an XML attribute.
	Attribute bool
	// Required marks the field as required.
	Required bool
}

// TypeRef is a reference to a primitive or a named type.
type TypeRef struct {
	Name     string
	List     bool
	Optional bool
}

// IsPrimitive reports whether the referenced element type is a primitive.
func (r TypeRef) IsPrimitive() bool {
	return IsPrimitive(r.Name)
}

// String returns the reference in DSL syntax (e.g., "string[]?").
func (r TypeRef) String() string {
	s := r.Name
	if r.List {
		s += "[]"
	}

	if r.Optional {
		s += "?"
	}

	return s
}

// ParseTypeRef parses a type reference in DSL syntax.
func ParseTypeRef(s string) (TypeRef, error) {
	var ref TypeRef

	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "?"); ok {
		ref.Optional = true
		s = strings.TrimSpace(rest)
	}

	if rest, ok := strings.CutSuffix(s, "[]"); ok {
		ref.List = true
		s = strings.TrimSpace(rest)
	}

	if !naming.IsIdent(s) {
		return TypeRef{}, fmt.Errorf("invalid type reference %q", s)
	}

	ref.Name = s

	return ref, nil
}

// Lookup returns the type definition with the given name.
func (m *Model) Lookup(name string) (*TypeDefinition, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}

	return &m.Types[i], true
}

// Names returns the type names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Types))
	for i, t := range m.Types {
		names[i] = t.Name
	}

	return names
}

// Field returns the field with the given name.
func (t *TypeDefinition) Field(name string) (*FieldDefinition, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

func newModel(types []TypeDefinition) *Model {
	m := &Model{Types: types, index: make(map[string]int, len(types))}
	for i, t := range types {
		if _, dup := m.index[t.Name]; !dup {
			m.index[t.Name] = i
		}
	}

	return m
}
