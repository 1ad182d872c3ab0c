package binding

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codgen/internal/schema"
)

func mustLoad(t *testing.T, src string) *schema.Model {
	t.Helper()

	m, err := schema.Load([]byte(src), schema.FormatText)
	require.NoError(t, err)

	return m
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input    string
		expected Style
		wantErr  bool
	}{
		{"", StylePlain, false},
		{"plain", StylePlain, false},
		{"jaxb-style", StyleJAXB, false},
		{"JAXB", StyleJAXB, false},
		{"jackson-style", StyleJackson, false},
		{"jackson", StyleJackson, false},
		{"gson", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStyle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestStyle_String(t *testing.T) {
	assert.Equal(t, "plain", StylePlain.String())
	assert.Equal(t, "jaxb-style", StyleJAXB.String())
	assert.Equal(t, "jackson-style", StyleJackson.String())
	assert.Equal(t, "Style(7)", Style(7).String())

	for _, s := range Styles() {
		parsed, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestMapper_Plain_PreservesFieldOrder(t *testing.T) {
	model := mustLoad(t, `Type Person { name: string; age: int }`)

	plan, err := NewMapper().Map(model, StylePlain, "org.example")
	require.NoError(t, err)
	t.Log(spew.Sdump(plan))

	require.Len(t, plan.Descriptors, 1)
	d := plan.Descriptors[0]
	assert.Equal(t, "Person", d.ClassName)
	assert.Equal(t, []string{"name", "age"}, d.FieldNames())
	assert.Equal(t, "String", d.Fields[0].JavaType)
	assert.Equal(t, "int", d.Fields[1].JavaType)
	assert.Equal(t, "getAge", d.Fields[1].Getter)
	assert.Empty(t, d.ClassAnnotations)
	assert.Empty(t, d.Fields[0].Annotations)
	assert.Empty(t, d.Imports)
}

func TestMapper_OneDescriptorPerType(t *testing.T) {
	model := mustLoad(t, `
type Order {
  id: long
  lines: OrderLine[]
  placed: datetime
  total: decimal?
}
type OrderLine {
  sku: string
  qty: int?
  gift: boolean
  flags: boolean[]
}
type Empty { }
`)

	for _, style := range Styles() {
		t.Run(style.String(), func(t *testing.T) {
			plan, err := NewMapper().Map(model, style, "shop")
			require.NoError(t, err)

			require.Len(t, plan.Descriptors, len(model.Types))

			for i, td := range model.Types {
				d, ok := plan.Lookup(td.Name)
				require.True(t, ok)
				assert.Same(t, &plan.Descriptors[i], d)
				require.Len(t, d.Fields, len(td.Fields))

				for j, f := range td.Fields {
					assert.Equal(t, f.Name, d.Fields[j].SchemaName)
				}
			}

			_, ok := plan.Lookup("Nope")
			assert.False(t, ok)
		})
	}
}

func TestMapper_TypeResolution(t *testing.T) {
	model := mustLoad(t, `
type OrderLine {
  sku: string
  qty: int?
  gift: boolean
  flags: boolean[]
  total: decimal
  shipped: date?
  parent: order_ref
}
type order_ref { id: long }
`)

	plan, err := NewMapper().Map(model, StylePlain, "")
	require.NoError(t, err)

	d, _ := plan.Lookup("OrderLine")

	types := map[string]string{}
	for _, f := range d.Fields {
		types[f.SchemaName] = f.JavaType
	}

	assert.Equal(t, map[string]string{
		"sku":     "String",
		"qty":     "Integer",
		"gift":    "boolean",
		"flags":   "List<Boolean>",
		"total":   "BigDecimal",
		"shipped": "LocalDate",
		"parent":  "OrderRef",
	}, types)

	assert.Equal(t, []string{"java.math.BigDecimal", "java.time.LocalDate", "java.util.List"}, d.Imports)
	assert.Equal(t, "isGift", d.Fields[2].Getter)
	assert.Equal(t, "getFlags", d.Fields[3].Getter)
}

func TestMapper_EscapesReservedWords(t *testing.T) {
	model := mustLoad(t, `type Thing { class: string; default_value: int }`)

	plan, err := NewMapper().Map(model, StylePlain, "")
	require.NoError(t, err)

	f := plan.Descriptors[0].Fields
	assert.Equal(t, "class_", f[0].JavaName)
	assert.Equal(t, "getClass_", f[0].Getter)
	assert.Equal(t, "setClass", f[0].Setter)
	assert.Equal(t, "class", f[0].SerializedName)
	assert.Equal(t, "defaultValue", f[1].JavaName)
}

func TestMapper_Jackson(t *testing.T) {
	model := mustLoad(t, `
type Person {
  name: string @required
  email: string? @name("email_address")
}
`)

	plan, err := NewMapper().Map(model, StyleJackson, "org.example")
	require.NoError(t, err)

	d := plan.Descriptors[0]
	assert.Equal(t, []string{
		"@JsonInclude(JsonInclude.Include.NON_NULL)",
		`@JsonPropertyOrder({"name", "email_address"})`,
	}, d.ClassAnnotations)
	assert.Equal(t, []string{`@JsonProperty(value = "name", required = true)`}, d.Fields[0].Annotations)
	assert.Equal(t, []string{`@JsonProperty("email_address")`}, d.Fields[1].Annotations)
	assert.Equal(t, []string{
		"com.fasterxml.jackson.annotation.JsonInclude",
		"com.fasterxml.jackson.annotation.JsonProperty",
		"com.fasterxml.jackson.annotation.JsonPropertyOrder",
	}, d.Imports)
}

func TestMapper_JAXB(t *testing.T) {
	model := mustLoad(t, `
type Person {
  id: long @attribute @required
  name: string
  born: date?
}
`)

	tests := []struct {
		name    string
		jakarta bool
		ns      string
	}{
		{name: "javax", ns: "javax.xml.bind.annotation."},
		{name: "jakarta", jakarta: true, ns: "jakarta.xml.bind.annotation."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewMapper(WithJakarta(tt.jakarta)).Map(model, StyleJAXB, "org.example")
			require.NoError(t, err)

			d := plan.Descriptors[0]
			assert.Equal(t, []string{
				`@XmlRootElement(name = "person")`,
				"@XmlAccessorType(XmlAccessType.FIELD)",
				`@XmlType(name = "Person", propOrder = {"name", "born"})`,
			}, d.ClassAnnotations)
			assert.Equal(t, []string{`@XmlAttribute(name = "id", required = true)`}, d.Fields[0].Annotations)
			assert.Equal(t, []string{`@XmlElement(name = "name")`}, d.Fields[1].Annotations)
			assert.Equal(t, "XMLGregorianCalendar", d.Fields[2].JavaType)

			assert.Contains(t, d.Imports, "javax.xml.datatype.XMLGregorianCalendar")
			assert.Contains(t, d.Imports, tt.ns+"XmlRootElement")
			assert.Contains(t, d.Imports, tt.ns+"XmlAttribute")
			assert.Contains(t, d.Imports, tt.ns+"XmlElement")
		})
	}
}

func TestMapper_UnsupportedType(t *testing.T) {
	model := mustLoad(t, `
type Person { name: string }
type Blob { data: binary }
`)

	plan, err := NewMapper().Map(model, StyleJAXB, "org.example")
	assert.Nil(t, plan)
	require.Error(t, err)

	var ute *UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "binary", ute.Type)
	assert.Equal(t, StyleJAXB, ute.Style)
	assert.Equal(t, "Blob", ute.TypeName)
	assert.Equal(t, "data", ute.FieldName)
	assert.Contains(t, err.Error(), `"binary"`)
	assert.Contains(t, err.Error(), `"jaxb-style"`)

	// binary is mapped in the other styles.
	for _, style := range []Style{StylePlain, StyleJackson} {
		plan, err := NewMapper().Map(model, style, "org.example")
		require.NoError(t, err)

		d, _ := plan.Lookup("Blob")
		assert.Equal(t, "byte[]", d.Fields[0].JavaType)
	}
}

func TestMapper_Overrides(t *testing.T) {
	model := mustLoad(t, `type Blob { data: binary; id: string }`)

	m := NewMapper(
		WithOverrides(StyleJAXB, RuleTable{schema.PrimitiveBinary: {Name: "byte[]"}}),
		WithOverrides(StyleJAXB, RuleTable{schema.PrimitiveString: ParseJavaType("java.util.UUID")}),
	)

	plan, err := m.Map(model, StyleJAXB, "")
	require.NoError(t, err)

	d := plan.Descriptors[0]
	assert.Equal(t, "byte[]", d.Fields[0].JavaType)
	assert.Equal(t, "UUID", d.Fields[1].JavaType)
	assert.Contains(t, d.Imports, "java.util.UUID")

	// Overrides are per style.
	assert.Equal(t, "String", m.Rules(StylePlain)[schema.PrimitiveString].Name)
	_, ok := DefaultRules(StyleJAXB)[schema.PrimitiveBinary]
	assert.False(t, ok)
}

func TestMapper_InvalidPackage(t *testing.T) {
	model := mustLoad(t, `type A { x: int }`)

	_, err := NewMapper().Map(model, StylePlain, "org.class")
	require.Error(t, err)

	_, err = NewMapper().Map(nil, StylePlain, "")
	require.Error(t, err)

	_, err = NewMapper().Map(model, Style(9), "")
	require.Error(t, err)
}

func TestMapper_Deterministic(t *testing.T) {
	model := mustLoad(t, `
type A { z: decimal; y: date; x: B[] }
type B { w: datetime? }
`)

	first, err := NewMapper().Map(model, StyleJackson, "p")
	require.NoError(t, err)

	for range 5 {
		again, err := NewMapper().Map(model, StyleJackson, "p")
		require.NoError(t, err)
		assert.Equal(t, first.Descriptors, again.Descriptors)
	}
}

func TestParseJavaType(t *testing.T) {
	tests := []struct {
		input    string
		expected JavaType
	}{
		{"long", JavaType{Name: "long", Boxed: "Long"}},
		{"String", JavaType{Name: "String"}},
		{"java.lang.String", JavaType{Name: "String"}},
		{"java.util.UUID", JavaType{Name: "UUID", Import: "java.util.UUID"}},
		{"byte[]", JavaType{Name: "byte[]"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseJavaType(tt.input))
		})
	}
}

func TestMapper_ImportedNameClash(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		style     Style
		typeName  string
		className string
		imp       string
	}{
		{
			name:      "class named List with a list field",
			schema:    `type List { xs: string[] }`,
			style:     StylePlain,
			typeName:  "List",
			className: "List",
			imp:       "java.util.List",
		},
		{
			name:      "class named BigDecimal with a decimal field",
			schema:    `type BigDecimal { amount: decimal }`,
			style:     StylePlain,
			typeName:  "BigDecimal",
			className: "BigDecimal",
			imp:       "java.math.BigDecimal",
		},
		{
			name:      "referenced class clashing with an import",
			schema:    "type Holder { when: date; at: LocalDate }\ntype LocalDate { day: int }",
			style:     StyleJackson,
			typeName:  "Holder",
			className: "LocalDate",
			imp:       "java.time.LocalDate",
		},
		{
			name:      "class named after a JAXB annotation",
			schema:    `type XmlElement { x: string }`,
			style:     StyleJAXB,
			typeName:  "XmlElement",
			className: "XmlElement",
			imp:       "javax.xml.bind.annotation.XmlElement",
		},
		{
			name:      "class named after a Jackson annotation",
			schema:    `type JsonProperty { x: string }`,
			style:     StyleJackson,
			typeName:  "JsonProperty",
			className: "JsonProperty",
			imp:       "com.fasterxml.jackson.annotation.JsonProperty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewMapper().Map(mustLoad(t, tt.schema), tt.style, "org.example")
			assert.Nil(t, plan)

			var clash *NameClashError
			require.ErrorAs(t, err, &clash)
			assert.Equal(t, tt.typeName, clash.TypeName)
			assert.Equal(t, tt.className, clash.ClassName)
			assert.Equal(t, tt.imp, clash.Import)
			assert.Equal(t, tt.style, clash.Style)
		})
	}
}

func TestMapper_NameWithoutImportClash(t *testing.T) {
	// List only clashes when the file imports java.util.List.
	plan, err := NewMapper().Map(mustLoad(t, `type List { size: int }`), StylePlain, "")
	require.NoError(t, err)
	assert.Equal(t, "List", plan.Descriptors[0].ClassName)

	// XmlElement is only imported by jaxb-style.
	_, err = NewMapper().Map(mustLoad(t, `type XmlElement { x: string }`), StyleJackson, "")
	require.NoError(t, err)
}

func TestJavaQuote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"email_address", `"email_address"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{"bell\a", `"bell\007"`},
		{"\x01x", `"\001x"`},
		{"del\x7f", `"del\177"`},
		{"naïve", `"naïve"`},
		{`\u0041`, `"\\u0041"`},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, javaQuote(tt.input))
		})
	}
}

func TestMapper_SerializedNameControlCharacters(t *testing.T) {
	model, err := schema.Load([]byte(`
types:
  - name: Odd
    fields:
      - name: x
        type: string
        serializedName: "a\x01b"
`), schema.FormatYAML)
	require.NoError(t, err)

	plan, err := NewMapper().Map(model, StyleJackson, "")
	require.NoError(t, err)

	f := plan.Descriptors[0].Fields[0]
	assert.Equal(t, []string{`@JsonProperty("a\001b")`}, f.Annotations)
	assert.NotContains(t, f.Annotations[0], `\x01`)
}
