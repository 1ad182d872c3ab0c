package binding

// Plan is the immutable output of the Mapper, consumed once by the emitter.
type Plan struct {
	Style       Style
	PackageName string
	// Descriptors in schema declaration order.
	Descriptors []Descriptor

	index map[string]int
}

// Descriptor holds everything needed to render one Java class.
type Descriptor struct {
	// TypeName is the schema type name.
	TypeName  string
	ClassName string
	// Imports are fully qualified, sorted and unique.
	Imports          []string
	ClassAnnotations []string
	// Fields in schema declaration order.
	Fields []FieldDescriptor
}

// FieldDescriptor holds the rendering information for one field.
type FieldDescriptor struct {
	SchemaName     string
	JavaName       string
	SerializedName string
	JavaType       string
	Annotations    []string
	Getter         string
	Setter         string
	Required       bool
}

// Lookup returns the descriptor for a schema type name.
func (p *Plan) Lookup(typeName string) (*Descriptor, bool) {
	i, ok := p.index[typeName]
	if !ok {
		return nil, false
	}

	return &p.Descriptors[i], true
}

// FieldNames returns the schema field names of the descriptor in order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.SchemaName
	}

	return names
}
