package emit

import (
	"strings"
	"text/template"

	"codgen/internal/binding"
)

// templateData holds all data needed for the class template.
type templateData struct {
	TypeName         string
	Style            string
	PackageName      string
	ClassName        string
	Imports          []string
	ClassAnnotations []string
	Fields           []binding.FieldDescriptor
	// Params is the parameter list of the all-args constructor.
	Params string
}

func newTemplateData(plan *binding.Plan, d *binding.Descriptor) *templateData {
	params := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		params[i] = f.JavaType + " " + f.JavaName
	}

	return &templateData{
		TypeName:         d.TypeName,
		Style:            plan.Style.String(),
		PackageName:      plan.PackageName,
		ClassName:        d.ClassName,
		Imports:          d.Imports,
		ClassAnnotations: d.ClassAnnotations,
		Fields:           d.Fields,
		Params:           strings.Join(params, ", "),
	}
}

// classTemplate is shared by all styles; each style supplies the "doc",
// "constructors" and "extras" blocks.
var classTemplate = template.Must(template.New("class").Parse(`// Code generated by codgen. DO NOT EDIT.
// Schema type {{.TypeName}}, binding style {{.Style}}.
{{if .PackageName}}
package {{.PackageName}};
{{end}}
{{range .Imports}}import {{.}};
{{end}}
{{template "doc" .}}
{{range .ClassAnnotations}}{{.}}
{{end}}public class {{.ClassName}} {
{{range .Fields}}
{{range .Annotations}}    {{.}}
{{end}}    private {{.JavaType}} {{.JavaName}};
{{end}}
    public {{.ClassName}}() {
    }
{{template "constructors" .}}
{{range .Fields}}
    public {{.JavaType}} {{.Getter}}() {
        return {{.JavaName}};
    }

    public void {{.Setter}}({{.JavaType}} {{.JavaName}}) {
        this.{{.JavaName}} = {{.JavaName}};
    }
{{end}}
{{template "extras" .}}
}
`))

const toStringBlock = `{{define "extras"}}
    @Override
    public String toString() {
        return "{{.ClassName}}{"{{range $i, $f := .Fields}} + "{{if $i}}, {{end}}{{$f.JavaName}}=" + {{$f.JavaName}}{{end}} + "}";
    }
{{end}}`

var styleTemplates = map[binding.Style]*template.Template{
	binding.StylePlain: styleTemplate(`
{{define "doc"}}/**
 * Plain Java representation of {{.TypeName}}.
 */{{end}}
{{define "constructors"}}{{if .Fields}}
    public {{.ClassName}}({{.Params}}) {
{{range .Fields}}        this.{{.JavaName}} = {{.JavaName}};
{{end}}    }
{{end}}{{end}}
` + toStringBlock),

	binding.StyleJackson: styleTemplate(`
{{define "doc"}}/**
 * Jackson binding for {{.TypeName}}.
 */{{end}}
{{define "constructors"}}{{end}}
` + toStringBlock),

	binding.StyleJAXB: styleTemplate(`
{{define "doc"}}/**
 * JAXB binding for {{.TypeName}}.
 */{{end}}
{{define "constructors"}}{{end}}
{{define "extras"}}{{end}}
`),
}

func styleTemplate(blocks string) *template.Template {
	return template.Must(template.Must(classTemplate.Clone()).Parse(blocks))
}

// tidy normalizes blank lines in rendered source:
// trailing whitespace is trimmed, runs of blank lines collapse to one, and
// blank lines directly after an opening brace or before a closing brace are
// dropped. The result ends with exactly one newline.
func tidy(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	pendingBlank := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			pendingBlank = len(out) > 0
			continue
		}

		if pendingBlank && !strings.HasSuffix(out[len(out)-1], "{") &&
			!strings.HasPrefix(strings.TrimSpace(line), "}") {
			out = append(out, "")
		}

		pendingBlank = false
		out = append(out, line)
	}

	return strings.Join(out, "\n") + "\n"
}
