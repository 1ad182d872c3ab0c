package naming

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for collision detection.
// The normalization pipeline:
// 1. Tokenize CamelCase and separators.
// 2. Case-fold to lower.
// 3. Join without separators.
func NormalizeIdent(s string) string {
	return strings.ToLower(strings.Join(tokenizeCamelCase(s), ""))
}

// ClassName converts an identifier to PascalCase.
// Acronyms are kept as written: "xml_parser" -> "XmlParser", "XMLParser" -> "XMLParser".
func ClassName(s string) string {
	var sb strings.Builder
	for _, tok := range tokenizeCamelCase(s) {
		sb.WriteString(upperFirst(tok))
	}

	return sb.String()
}

// FieldName converts an identifier to camelCase.
// A leading acronym is lowered as a whole: "URLPath" -> "urlPath".
func FieldName(s string) string {
	tokens := tokenizeCamelCase(s)
	if len(tokens) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(tokens[0]))

	for _, tok := range tokens[1:] {
		sb.WriteString(upperFirst(tok))
	}

	return sb.String()
}

// objectFinals are final methods of java.lang.Object an accessor must not hide.
var objectFinals = map[string]struct{}{
	"getClass": {},
}

// Getter returns the JavaBeans accessor name for a field. An escaped keyword
// loses its trailing underscore unless that would clash with Object.getClass.
func Getter(javaName string, boolean bool) string {
	prefix := "get"
	if boolean {
		prefix = "is"
	}

	name := prefix + upperFirst(strings.TrimSuffix(javaName, "_"))
	if _, clash := objectFinals[name]; clash {
		return prefix + upperFirst(javaName)
	}

	return name
}

// Setter returns the JavaBeans mutator name for a field.
func Setter(javaName string) string {
	return "set" + upperFirst(strings.TrimSuffix(javaName, "_"))
}

// IsIdent reports whether s is a valid schema identifier:
// a letter or underscore followed by letters, digits or underscores.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "first_name" -> ["first", "name"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)

	// "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prevRune) {
		return true
	}

	// "XMLParser" -> split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}

	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}
