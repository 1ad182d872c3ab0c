package binding

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"codgen/internal/common"
	"codgen/internal/naming"
	"codgen/internal/schema"
)

const listImport = "java.util.List"

// Mapper converts schema models into binding plans.
type Mapper struct {
	overrides map[Style]RuleTable
	jakarta   bool
	logger    *slog.Logger
}

// Option customizes a Mapper.
type Option func(*Mapper)

// WithOverrides merges rules into the default table of a style. Entries in
// rules replace the defaults for the same primitive.
func WithOverrides(style Style, rules RuleTable) Option {
	return func(m *Mapper) {
		if len(rules) == 0 {
			return
		}

		if m.overrides[style] == nil {
			m.overrides[style] = RuleTable{}
		}

		maps.Copy(m.overrides[style], rules)
	}
}

// WithJakarta switches jaxb-style annotations to the jakarta.xml.bind namespace.
func WithJakarta(enabled bool) Option {
	return func(m *Mapper) { m.jakarta = enabled }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMapper creates a Mapper with the given options.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		overrides: map[Style]RuleTable{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Rules returns the effective rule table for a style.
func (m *Mapper) Rules(style Style) RuleTable {
	rules := DefaultRules(style)
	maps.Copy(rules, m.overrides[style])

	return rules
}

// Map builds a Plan for the model in the given style. Every type yields
// exactly one descriptor; field order follows the schema.
func (m *Mapper) Map(model *schema.Model, style Style, packageName string) (*Plan, error) {
	if model == nil {
		return nil, fmt.Errorf("mapping schema: model is nil")
	}

	if packageName != "" && !naming.IsPackageName(packageName) {
		return nil, fmt.Errorf("mapping schema: invalid Java package name %q", packageName)
	}

	dec, err := decoratorFor(style, m.jakarta)
	if err != nil {
		return nil, err
	}

	rules := m.Rules(style)
	plan := &Plan{
		Style:       style,
		PackageName: packageName,
		Descriptors: make([]Descriptor, 0, len(model.Types)),
		index:       make(map[string]int, len(model.Types)),
	}

	for i := range model.Types {
		td := &model.Types[i]

		desc, err := m.mapType(td, rules, style, dec)
		if err != nil {
			return nil, err
		}

		plan.index[td.Name] = len(plan.Descriptors)
		plan.Descriptors = append(plan.Descriptors, *desc)
	}

	m.logger.Debug("binding plan built",
		slog.String("style", style.String()),
		slog.Int("types", len(plan.Descriptors)))

	return plan, nil
}

func (m *Mapper) mapType(td *schema.TypeDefinition, rules RuleTable, style Style, dec decorator) (*Descriptor, error) {
	desc := &Descriptor{
		TypeName:  td.Name,
		ClassName: naming.ClassName(td.Name),
		Fields:    make([]FieldDescriptor, 0, len(td.Fields)),
	}

	imports := map[string]struct{}{}
	classes := []string{desc.ClassName}

	for _, fd := range td.Fields {
		if !fd.Type.IsPrimitive() {
			classes = append(classes, naming.ClassName(fd.Type.Name))
		}

		javaType, err := resolveType(fd.Type, rules, imports)
		if err != nil {
			err.Style = style
			err.TypeName = td.Name
			err.FieldName = fd.Name

			return nil, err
		}

		javaName := naming.EscapeKeyword(naming.FieldName(fd.Name))
		serialized := fd.Name
		if fd.Metadata.SerializedName != "" {
			serialized = fd.Metadata.SerializedName
		}

		field := FieldDescriptor{
			SchemaName:     fd.Name,
			JavaName:       javaName,
			SerializedName: serialized,
			JavaType:       javaType,
			Getter:         naming.Getter(javaName, javaType == "boolean"),
			Setter:         naming.Setter(javaName),
			Required:       fd.Metadata.Required,
		}
		field.Annotations = dec.fieldAnnotations(&field, fd.Metadata, imports)

		desc.Fields = append(desc.Fields, field)
	}

	desc.ClassAnnotations = dec.classAnnotations(desc, td.Fields, imports)
	desc.Imports = common.SortedKeys(imports)

	if imp, cls, clash := importClash(desc.Imports, classes); clash {
		return nil, &NameClashError{TypeName: td.Name, ClassName: cls, Import: imp, Style: style}
	}

	return desc, nil
}

// importClash finds a class name that equals the simple name of an import.
func importClash(imports, classes []string) (imp, cls string, clash bool) {
	for _, full := range imports {
		simple := full[strings.LastIndexByte(full, '.')+1:]
		if slices.Contains(classes, simple) {
			return full, simple, true
		}
	}

	return "", "", false
}

// resolveType renders a schema type reference as a Java type, recording the
// imports it needs.
func resolveType(ref schema.TypeRef, rules RuleTable, imports map[string]struct{}) (string, *UnsupportedTypeError) {
	var elem string

	if ref.IsPrimitive() {
		jt, ok := rules[ref.Name]
		if !ok {
			return "", &UnsupportedTypeError{Type: ref.Name}
		}

		if jt.Import != "" {
			imports[jt.Import] = struct{}{}
		}

		elem = jt.Name
		if ref.List || ref.Optional {
			elem = jt.Ref()
		}
	} else {
		elem = naming.ClassName(ref.Name)
	}

	if ref.List {
		imports[listImport] = struct{}{}
		return "List<" + elem + ">", nil
	}

	return elem, nil
}
