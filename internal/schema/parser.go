package schema

import (
	"strings"
)

const typeKeyword = "type"

// Annotation names accepted by the text DSL.
const (
	annotationName      = "name"
	annotationAttribute = "attribute"
	annotationRequired  = "required"
)

// parser is a recursive-descent parser over the lexer's token stream with a
// single token of lookahead.
type parser struct {
	lex *lexer
	tok token
}

// parseText parses DSL source into type definitions. Semantic checks
// (duplicates, references) are left to validate.
func parseText(src string) ([]TypeDefinition, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var types []TypeDefinition

	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}

		if p.tok.kind == tokEOF {
			return types, nil
		}

		td, err := p.parseType()
		if err != nil {
			return nil, err
		}

		types = append(types, td)
	}
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *parser) skipNewlines() error {
	for p.tok.kind == tokNewline {
		if err := p.advance(); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) isPunct(s string) bool {
	return p.tok.kind == tokPunct && p.tok.text == s
}

func (p *parser) expectPunct(s, construct string) error {
	if !p.isPunct(s) {
		return syntaxError(p.tok.line, p.tok.col, construct, "expected %q, found %s", s, p.tok.describe())
	}

	return p.advance()
}

func (p *parser) expectIdent(construct, what string) (token, error) {
	if p.tok.kind != tokIdent {
		return token{}, syntaxError(p.tok.line, p.tok.col, construct, "expected %s, found %s", what, p.tok.describe())
	}

	tok := p.tok

	return tok, p.advance()
}

// parseType parses: type Name { field* }
func (p *parser) parseType() (TypeDefinition, error) {
	if p.tok.kind != tokIdent || !strings.EqualFold(p.tok.text, typeKeyword) {
		return TypeDefinition{}, syntaxError(p.tok.line, p.tok.col, "", "expected type declaration, found %s", p.tok.describe())
	}

	line := p.tok.line
	if err := p.advance(); err != nil {
		return TypeDefinition{}, err
	}

	nameTok, err := p.expectIdent("type", "type name")
	if err != nil {
		return TypeDefinition{}, err
	}

	td := TypeDefinition{Name: nameTok.text, Line: line}
	construct := "type " + td.Name

	if err := p.skipNewlines(); err != nil {
		return TypeDefinition{}, err
	}

	if err := p.expectPunct("{", construct); err != nil {
		return TypeDefinition{}, err
	}

	for {
		if err := p.skipSeparators(); err != nil {
			return TypeDefinition{}, err
		}

		if p.isPunct("}") {
			return td, p.advance()
		}

		if p.tok.kind == tokEOF {
			return TypeDefinition{}, syntaxError(p.tok.line, p.tok.col, construct, "unterminated type body, missing %q", "}")
		}

		fd, err := p.parseField(td.Name)
		if err != nil {
			return TypeDefinition{}, err
		}

		td.Fields = append(td.Fields, fd)

		// A field ends at a separator or the closing brace.
		if p.tok.kind != tokNewline && !p.isPunct(";") && !p.isPunct("}") {
			return TypeDefinition{}, syntaxError(p.tok.line, p.tok.col, "field "+td.Name+"."+fd.Name,
				"expected %q, newline or %q after field, found %s", ";", "}", p.tok.describe())
		}
	}
}

func (p *parser) skipSeparators() error {
	for p.tok.kind == tokNewline || p.isPunct(";") {
		if err := p.advance(); err != nil {
			return err
		}
	}

	return nil
}

// parseField parses: name ':' typeRef annotation*
func (p *parser) parseField(typeName string) (FieldDefinition, error) {
	nameTok, err := p.expectIdent("type "+typeName, "field name")
	if err != nil {
		return FieldDefinition{}, err
	}

	fd := FieldDefinition{Name: nameTok.text, Line: nameTok.line}
	construct := "field " + typeName + "." + fd.Name

	if err := p.expectPunct(":", construct); err != nil {
		return FieldDefinition{}, err
	}

	fd.Type, err = p.parseTypeRef(construct)
	if err != nil {
		return FieldDefinition{}, err
	}

	seen := map[string]bool{}

	for p.isPunct("@") {
		if err := p.parseAnnotation(&fd, construct, seen); err != nil {
			return FieldDefinition{}, err
		}
	}

	return fd, nil
}

func (p *parser) parseTypeRef(construct string) (TypeRef, error) {
	nameTok, err := p.expectIdent(construct, "type name")
	if err != nil {
		return TypeRef{}, err
	}

	ref := TypeRef{Name: nameTok.text}

	if p.isPunct("[") {
		if err := p.advance(); err != nil {
			return TypeRef{}, err
		}

		if err := p.expectPunct("]", construct); err != nil {
			return TypeRef{}, err
		}

		ref.List = true
	}

	if p.isPunct("?") {
		if err := p.advance(); err != nil {
			return TypeRef{}, err
		}

		ref.Optional = true
	}

	return ref, nil
}

// parseAnnotation parses: '@' ident [ '(' string ')' ]
func (p *parser) parseAnnotation(fd *FieldDefinition, construct string, seen map[string]bool) error {
	at := p.tok
	if err := p.advance(); err != nil {
		return err
	}

	nameTok, err := p.expectIdent(construct, "annotation name")
	if err != nil {
		return err
	}

	if seen[nameTok.text] {
		return syntaxError(at.line, at.col, construct, "duplicate annotation @%s", nameTok.text)
	}

	seen[nameTok.text] = true

	switch nameTok.text {
	case annotationName:
		if err := p.expectPunct("(", construct); err != nil {
			return err
		}

		if p.tok.kind != tokString || p.tok.text == "" {
			return syntaxError(p.tok.line, p.tok.col, construct, "@name expects a non-empty string, found %s", p.tok.describe())
		}

		fd.Metadata.SerializedName = p.tok.text
		if err := p.advance(); err != nil {
			return err
		}

		return p.expectPunct(")", construct)
	case annotationAttribute:
		fd.Metadata.Attribute = true
	case annotationRequired:
		fd.Metadata.Required = true
	default:
		return syntaxError(at.line, at.col, construct, "unknown annotation @%s", nameTok.text)
	}

	if p.isPunct("(") {
		return syntaxError(p.tok.line, p.tok.col, construct, "@%s takes no arguments", nameTok.text)
	}

	return nil
}
