package naming

import (
	"unicode"
	"unicode/utf8"
)

var javaKeywords = map[string]struct{}{
	"abstract": {}, "assert": {}, "boolean": {}, "break": {}, "byte": {},
	"case": {}, "catch": {}, "char": {}, "class": {}, "const": {},
	"continue": {}, "default": {}, "do": {}, "double": {}, "else": {},
	"enum": {}, "extends": {}, "final": {}, "finally": {}, "float": {},
	"for": {}, "goto": {}, "if": {}, "implements": {}, "import": {},
	"instanceof": {}, "int": {}, "interface": {}, "long": {}, "native": {},
	"new": {}, "package": {}, "private": {}, "protected": {}, "public": {},
	"return": {}, "short": {}, "static": {}, "strictfp": {}, "super": {},
	"switch": {}, "synchronized": {}, "this": {}, "throw": {}, "throws": {},
	"transient": {}, "try": {}, "void": {}, "volatile": {}, "while": {},
	"true": {}, "false": {}, "null": {}, "var": {}, "record": {}, "yield": {},
}

// IsJavaKeyword reports whether s is a Java reserved word or literal.
func IsJavaKeyword(s string) bool {
	_, ok := javaKeywords[s]
	return ok
}

// EscapeKeyword appends an underscore to Java reserved words.
func EscapeKeyword(s string) string {
	if IsJavaKeyword(s) {
		return s + "_"
	}

	return s
}

// IsPackageName reports whether s is a dotted sequence of identifiers that
// are not reserved words (e.g., "org.example.model").
func IsPackageName(s string) bool {
	if s == "" {
		return false
	}

	start := 0

	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '.' {
			continue
		}

		part := s[start:i]
		if !IsIdent(part) || IsJavaKeyword(part) {
			return false
		}

		start = i + 1
	}

	return true
}

// javaLangTypes are java.lang names generated classes use without an import.
var javaLangTypes = map[string]struct{}{
	"Boolean": {}, "Byte": {}, "Character": {}, "Class": {}, "Double": {},
	"Enum": {}, "Float": {}, "Integer": {}, "Long": {}, "Math": {},
	"Number": {}, "Object": {}, "Override": {}, "Record": {}, "Short": {},
	"String": {}, "System": {}, "Void": {},
}

// IsJavaLangType reports whether s is a java.lang simple name that a
// generated class of the same name would shadow.
func IsJavaLangType(s string) bool {
	_, ok := javaLangTypes[s]
	return ok
}

// IsJavaName reports whether a derived class or field name can be used as a
// Java identifier: it must be non-empty and must not start with a digit.
func IsJavaName(s string) bool {
	if s == "" {
		return false
	}

	r, _ := utf8.DecodeRuneInString(s)

	return !unicode.IsDigit(r)
}
