package schema

import (
	"fmt"
	"strings"

	"codgen/internal/diagnostic"
)

// Error codes carried by SchemaParseError.
const (
	CodeSyntax          = "syntax"
	CodeDuplicateType   = "duplicate_type"
	CodeDuplicateField  = "duplicate_field"
	CodeNameCollision   = "name_collision"
	CodeUnknownType     = "unknown_type"
	CodeInvalidName     = "invalid_name"
	CodeInvalidMetadata = "invalid_metadata"
	CodeReservedWord    = "reserved_word"
	CodeTypeNameCase    = "type_name_case"
)

// SchemaParseError reports malformed or ambiguous schema input.
type SchemaParseError struct {
	// Line and Column are 1-based; 0 means unknown.
	Line   int
	Column int
	// Construct names the offending construct (e.g., "type Person", "field Person.age").
	Construct string
	// Code classifies the failure.
	Code    string
	Message string
	// More holds further validation errors found in the same pass.
	More []diagnostic.Diagnostic
}

func (e *SchemaParseError) Error() string {
	var sb strings.Builder

	sb.WriteString("schema parse error")

	switch {
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&sb, " at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}

	if e.Construct != "" {
		fmt.Fprintf(&sb, " (%s)", e.Construct)
	}

	sb.WriteString(": ")
	sb.WriteString(e.Message)

	for _, d := range e.More {
		sb.WriteString("; ")
		sb.WriteString(d.String())
	}

	return sb.String()
}

func syntaxError(line, col int, construct, format string, args ...any) *SchemaParseError {
	return &SchemaParseError{
		Line:      line,
		Column:    col,
		Construct: construct,
		Code:      CodeSyntax,
		Message:   fmt.Sprintf(format, args...),
	}
}

// fromDiagnostics reports every validation error at once, located at the
// first one.
func fromDiagnostics(d *diagnostic.Diagnostics) *SchemaParseError {
	first, _ := d.FirstError()

	err := fromDiagnostic(first)
	err.More = d.Errors[1:]

	return err
}

// fromDiagnostic converts a validation diagnostic into a SchemaParseError.
func fromDiagnostic(d diagnostic.Diagnostic) *SchemaParseError {
	construct := ""

	switch {
	case d.Location.FieldName != "":
		construct = "field " + d.Location.Construct()
	case d.Location.TypeName != "":
		construct = "type " + d.Location.TypeName
	}

	return &SchemaParseError{
		Line:      d.Location.Line,
		Construct: construct,
		Code:      d.Code,
		Message:   d.Message,
	}
}
