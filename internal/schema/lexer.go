package schema

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokString
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokString:
		return "string " + `"` + t.text + `"`
	default:
		return `"` + t.text + `"`
	}
}

const punctuation = "{}:;?[]@(),"

// lexer splits DSL text into tokens, tracking 1-based line and column.
type lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1}
}

func (l *lexer) peekRune(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *lexer) skipComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.advance()
	}
}

// next returns the next token or a syntax error.
func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r := l.peekRune(0)

		switch {
		case r == '\n':
			tok := token{kind: tokNewline, text: "\n", line: l.line, col: l.col}
			l.advance()

			return tok, nil
		case unicode.IsSpace(r):
			l.advance()
		case r == '#' || (r == '/' && l.peekRune(1) == '/'):
			l.skipComment()
		case r == '"':
			return l.lexString()
		case r == '_' || unicode.IsLetter(r):
			return l.lexIdent(), nil
		case strings.ContainsRune(punctuation, r):
			tok := token{kind: tokPunct, text: string(r), line: l.line, col: l.col}
			l.advance()

			return tok, nil
		default:
			return token{}, syntaxError(l.line, l.col, "", "unexpected character %q", r)
		}
	}

	return token{kind: tokEOF, line: l.line, col: l.col}, nil
}

func (l *lexer) lexIdent() token {
	tok := token{kind: tokIdent, line: l.line, col: l.col}

	var sb strings.Builder

	for l.pos < len(l.src) {
		r := l.peekRune(0)
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		sb.WriteRune(l.advance())
	}

	tok.text = sb.String()

	return tok
}

func (l *lexer) lexString() (token, error) {
	tok := token{kind: tokString, line: l.line, col: l.col}
	l.advance() // opening quote

	var sb strings.Builder

	for {
		if l.pos >= len(l.src) || l.peekRune(0) == '\n' {
			return token{}, syntaxError(tok.line, tok.col, "", "unterminated string literal")
		}

		r := l.advance()
		switch r {
		case '"':
			tok.text = sb.String()
			return tok, nil
		case '\\':
			if l.pos >= len(l.src) {
				return token{}, syntaxError(tok.line, tok.col, "", "unterminated string literal")
			}

			esc := l.advance()
			switch esc {
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				return token{}, syntaxError(l.line, l.col-2, "", "unknown escape sequence \\%c", esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
}
