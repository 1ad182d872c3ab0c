package binding

import (
	"fmt"
	"strings"

	"codgen/internal/naming"
	"codgen/internal/schema"
)

// decorator adds style-specific annotations and their imports.
type decorator interface {
	fieldAnnotations(f *FieldDescriptor, meta schema.Metadata, imports map[string]struct{}) []string
	classAnnotations(d *Descriptor, fields []schema.FieldDefinition, imports map[string]struct{}) []string
}

func decoratorFor(style Style, jakarta bool) (decorator, error) {
	switch style {
	case StylePlain:
		return plainDecorator{}, nil
	case StyleJackson:
		return jacksonDecorator{}, nil
	case StyleJAXB:
		ns := "javax.xml.bind.annotation"
		if jakarta {
			ns = "jakarta.xml.bind.annotation"
		}

		return jaxbDecorator{ns: ns}, nil
	default:
		return nil, fmt.Errorf("unsupported binding style %v", style)
	}
}

type plainDecorator struct{}

func (plainDecorator) fieldAnnotations(*FieldDescriptor, schema.Metadata, map[string]struct{}) []string {
	return nil
}

func (plainDecorator) classAnnotations(*Descriptor, []schema.FieldDefinition, map[string]struct{}) []string {
	return nil
}

const jacksonPkg = "com.fasterxml.jackson.annotation."

type jacksonDecorator struct{}

func (jacksonDecorator) fieldAnnotations(f *FieldDescriptor, _ schema.Metadata, imports map[string]struct{}) []string {
	imports[jacksonPkg+"JsonProperty"] = struct{}{}

	if f.Required {
		return []string{fmt.Sprintf("@JsonProperty(value = %s, required = true)", javaQuote(f.SerializedName))}
	}

	return []string{fmt.Sprintf("@JsonProperty(%s)", javaQuote(f.SerializedName))}
}

func (jacksonDecorator) classAnnotations(d *Descriptor, _ []schema.FieldDefinition, imports map[string]struct{}) []string {
	imports[jacksonPkg+"JsonInclude"] = struct{}{}
	out := []string{"@JsonInclude(JsonInclude.Include.NON_NULL)"}

	if len(d.Fields) > 0 {
		imports[jacksonPkg+"JsonPropertyOrder"] = struct{}{}

		names := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			names[i] = javaQuote(f.SerializedName)
		}

		out = append(out, "@JsonPropertyOrder({"+strings.Join(names, ", ")+"})")
	}

	return out
}

type jaxbDecorator struct {
	ns string
}

func (j jaxbDecorator) use(imports map[string]struct{}, names ...string) {
	for _, n := range names {
		imports[j.ns+"."+n] = struct{}{}
	}
}

func (j jaxbDecorator) fieldAnnotations(f *FieldDescriptor, meta schema.Metadata, imports map[string]struct{}) []string {
	kind := "XmlElement"
	if meta.Attribute {
		kind = "XmlAttribute"
	}

	j.use(imports, kind)

	args := "name = " + javaQuote(f.SerializedName)
	if f.Required {
		args += ", required = true"
	}

	return []string{"@" + kind + "(" + args + ")"}
}

func (j jaxbDecorator) classAnnotations(d *Descriptor, fields []schema.FieldDefinition, imports map[string]struct{}) []string {
	j.use(imports, "XmlRootElement", "XmlAccessorType", "XmlAccessType", "XmlType")

	// propOrder lists element properties only; attributes are unordered in XML.
	var order []string

	for i, f := range d.Fields {
		if !fields[i].Metadata.Attribute {
			order = append(order, javaQuote(f.JavaName))
		}
	}

	return []string{
		fmt.Sprintf("@XmlRootElement(name = %s)", javaQuote(naming.FieldName(d.TypeName))),
		"@XmlAccessorType(XmlAccessType.FIELD)",
		fmt.Sprintf("@XmlType(name = %s, propOrder = {%s})", javaQuote(d.ClassName), strings.Join(order, ", ")),
	}
}

// javaQuote renders s as a Java string literal. Control characters use
// octal escapes; \u escapes are avoided because javac translates them
// before lexing.
func javaQuote(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\%03o`, r)
				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
