package binding

import "fmt"

// UnsupportedTypeError reports a primitive with no mapping in the requested style.
type UnsupportedTypeError struct {
	// Type is the unmapped primitive.
	Type  string
	Style Style
	// TypeName and FieldName locate the first field using Type.
	TypeName  string
	FieldName string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("type %q is not supported by binding style %q", e.Type, e.Style)
	if e.TypeName != "" {
		msg += fmt.Sprintf(" (field %s.%s)", e.TypeName, e.FieldName)
	}

	return msg
}

// NameClashError reports a generated class name that is also the simple name
// of a type imported into a generated file.
type NameClashError struct {
	// TypeName is the schema type whose file would not compile.
	TypeName string
	// ClassName is the clashing class name.
	ClassName string
	Import    string
	Style     Style
}

func (e *NameClashError) Error() string {
	return fmt.Sprintf("class %s clashes with imported %s in type %s (binding style %q)",
		e.ClassName, e.Import, e.TypeName, e.Style)
}
