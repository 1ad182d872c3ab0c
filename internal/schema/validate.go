package schema

import (
	"fmt"
	"unicode"

	"codgen/internal/diagnostic"
	"codgen/internal/naming"
)

// Validate checks structural invariants of parsed type definitions:
// unique names, resolvable references and consistent metadata.
func Validate(types []TypeDefinition) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	defined := make(map[string]int, len(types))
	classNames := make(map[string]string, len(types))

	for _, td := range types {
		loc := diagnostic.Location{Line: td.Line, TypeName: td.Name}

		if !naming.IsIdent(td.Name) {
			res.AddError(CodeInvalidName, fmt.Sprintf("invalid type name %q", td.Name), loc)
			continue
		}

		if IsPrimitive(td.Name) {
			res.AddError(CodeInvalidName, fmt.Sprintf("type name %q shadows a primitive", td.Name), loc)
			continue
		}

		if prev, dup := defined[td.Name]; dup {
			msg := fmt.Sprintf("duplicate type %q", td.Name)
			if prev > 0 {
				msg += fmt.Sprintf(" (first defined at line %d)", prev)
			}

			res.AddError(CodeDuplicateType, msg, loc)

			continue
		}

		defined[td.Name] = td.Line

		cls := naming.ClassName(td.Name)
		if !naming.IsJavaName(cls) {
			res.AddError(CodeInvalidName, fmt.Sprintf("type name %q does not yield a Java class name", td.Name), loc)
			continue
		}

		if naming.IsJavaLangType(cls) {
			res.AddError(CodeInvalidName, fmt.Sprintf("type name %q clashes with java.lang.%s", td.Name, cls), loc)
			continue
		}

		if other, clash := classNames[cls]; clash {
			res.AddError(CodeNameCollision,
				fmt.Sprintf("type %q and type %q both map to class %q", other, td.Name, cls), loc)
		} else {
			classNames[cls] = td.Name
		}

		if r := []rune(td.Name)[0]; !unicode.IsUpper(r) {
			res.AddWarning(CodeTypeNameCase, fmt.Sprintf("type name %q is not capitalized", td.Name), loc)
		}
	}

	for _, td := range types {
		validateFields(res, td, defined)
	}

	return res
}

func validateFields(res *diagnostic.Diagnostics, td TypeDefinition, defined map[string]int) {
	seen := make(map[string]bool, len(td.Fields))
	normalized := make(map[string]string, len(td.Fields))
	serialized := make(map[string]string, len(td.Fields))

	for _, fd := range td.Fields {
		loc := diagnostic.Location{Line: fd.Line, TypeName: td.Name, FieldName: fd.Name}

		if !naming.IsIdent(fd.Name) {
			res.AddError(CodeInvalidName, fmt.Sprintf("invalid field name %q", fd.Name), loc)
			continue
		}

		if !naming.IsJavaName(naming.FieldName(fd.Name)) {
			res.AddError(CodeInvalidName, fmt.Sprintf("field name %q does not yield a Java field name", fd.Name), loc)
			continue
		}

		if seen[fd.Name] {
			res.AddError(CodeDuplicateField, fmt.Sprintf("duplicate field %q in type %q", fd.Name, td.Name), loc)
			continue
		}

		seen[fd.Name] = true

		norm := naming.NormalizeIdent(fd.Name)
		if other, clash := normalized[norm]; clash {
			res.AddError(CodeNameCollision,
				fmt.Sprintf("fields %q and %q map to the same Java name", other, fd.Name), loc)
		} else {
			normalized[norm] = fd.Name
		}

		wire := fd.Name
		if fd.Metadata.SerializedName != "" {
			wire = fd.Metadata.SerializedName
		}

		if other, clash := serialized[wire]; clash {
			res.AddError(CodeNameCollision,
				fmt.Sprintf("fields %q and %q share serialized name %q", other, fd.Name, wire), loc)
		} else {
			serialized[wire] = fd.Name
		}

		if _, ok := defined[fd.Type.Name]; !ok && !fd.Type.IsPrimitive() {
			res.AddError(CodeUnknownType,
				fmt.Sprintf("field type %q is neither a defined type nor a primitive", fd.Type.Name), loc)
		}

		if fd.Metadata.Attribute && (fd.Type.List || !fd.Type.IsPrimitive()) {
			res.AddError(CodeInvalidMetadata, "only single primitive fields can be attributes", loc)
		}

		if naming.IsJavaKeyword(naming.FieldName(fd.Name)) {
			res.AddWarning(CodeReservedWord,
				fmt.Sprintf("field name %q is a Java reserved word and will be escaped", fd.Name), loc)
		}
	}
}
