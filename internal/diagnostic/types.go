package diagnostic

import (
	"fmt"
	"strings"

	"codgen/internal/common"
)

// Diagnostics holds all diagnostic information from validation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Location points at the schema construct a diagnostic relates to.
type Location struct {
	// Line is the 1-based source line, or 0 when unknown.
	Line int
	// TypeName identifies the type definition (if any).
	TypeName string
	// FieldName identifies the field within TypeName (if any).
	FieldName string
}

// Construct returns "Type" or "Type.field", or an empty string.
func (l Location) Construct() string {
	switch {
	case l.TypeName != "" && l.FieldName != "":
		return l.TypeName + "." + l.FieldName
	case l.TypeName != "":
		return l.TypeName
	default:
		return l.FieldName
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Location of the offending construct.
	Location Location
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc Location) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Location: loc,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, loc Location) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Location: loc,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// FirstError returns the first error diagnostic and true, or false if valid.
func (d *Diagnostics) FirstError() (Diagnostic, bool) {
	return common.First(d.Errors)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Location.Line > 0 {
		prefix = append(prefix, fmt.Sprintf("line %d", d.Location.Line))
	}

	if c := d.Location.Construct(); c != "" {
		prefix = append(prefix, c)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
