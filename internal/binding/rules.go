package binding

import (
	"maps"
	"strings"

	"codgen/internal/schema"
)

// JavaType describes how a primitive is rendered in Java.
type JavaType struct {
	// Name is the simple type name used in declarations (e.g., "int", "BigDecimal").
	Name string
	// Boxed is the reference type used inside generics or for optional values.
	// Empty means Name is already a reference type.
	Boxed string
	// Import is the fully qualified name to import, empty for java.lang and
	// Java primitives.
	Import string
}

// Ref returns the reference form of the type.
func (t JavaType) Ref() string {
	if t.Boxed != "" {
		return t.Boxed
	}

	return t.Name
}

// RuleTable maps schema primitives to Java types for one style.
type RuleTable map[string]JavaType

var javaBoxes = map[string]string{
	"boolean": "Boolean",
	"byte":    "Byte",
	"short":   "Short",
	"char":    "Character",
	"int":     "Integer",
	"long":    "Long",
	"float":   "Float",
	"double":  "Double",
}

// ParseJavaType builds a JavaType from a simple or fully qualified name
// (e.g., "long", "String", "java.util.UUID").
func ParseJavaType(s string) JavaType {
	s = strings.TrimSpace(s)

	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		t := JavaType{Name: s[i+1:]}
		if !strings.HasPrefix(s, "java.lang.") || strings.Count(s, ".") > 2 {
			t.Import = s
		}

		return t
	}

	return JavaType{Name: s, Boxed: javaBoxes[s]}
}

var plainRules = RuleTable{
	schema.PrimitiveString:   {Name: "String"},
	schema.PrimitiveInt:      {Name: "int", Boxed: "Integer"},
	schema.PrimitiveLong:     {Name: "long", Boxed: "Long"},
	schema.PrimitiveFloat:    {Name: "float", Boxed: "Float"},
	schema.PrimitiveDouble:   {Name: "double", Boxed: "Double"},
	schema.PrimitiveBoolean:  {Name: "boolean", Boxed: "Boolean"},
	schema.PrimitiveDecimal:  {Name: "BigDecimal", Import: "java.math.BigDecimal"},
	schema.PrimitiveDate:     {Name: "LocalDate", Import: "java.time.LocalDate"},
	schema.PrimitiveDateTime: {Name: "OffsetDateTime", Import: "java.time.OffsetDateTime"},
	schema.PrimitiveBinary:   {Name: "byte[]"},
}

// DefaultRules returns a copy of the built-in rule table for a style.
func DefaultRules(style Style) RuleTable {
	rules := maps.Clone(plainRules)

	if style == StyleJAXB {
		calendar := JavaType{Name: "XMLGregorianCalendar", Import: "javax.xml.datatype.XMLGregorianCalendar"}
		rules[schema.PrimitiveDate] = calendar
		rules[schema.PrimitiveDateTime] = calendar
		// No default mapping for raw binary blobs.
		delete(rules, schema.PrimitiveBinary)
	}

	return rules
}
