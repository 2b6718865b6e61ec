package sexpr

import (
	"unicode"
	"unicode/utf8"
)

// Lexer turns machine description text into tokens, one GetNext call at a
// time. It never backtracks.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	off  int // byte offset of src[pos]
	line int
	col  int
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) position() Pos {
	return Pos{Offset: l.off, Line: l.line, Col: l.col}
}

func (l *Lexer) advance() rune {
	if l.atEnd() {
		return 0
	}

	r := l.src[l.pos]
	l.pos++
	l.off += utf8.RuneLen(r)
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '-' || r == ':' || r == '_'
}

// '*' is accepted after the first character so that the wildcard operand
// type (match_operand:*) forms a single identifier.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '*'
}

// skipBlanks consumes whitespace and any run of ';' line comments.
func (l *Lexer) skipBlanks() {
	for !l.atEnd() {
		switch r := l.peek(); {
		case isWhitespace(r):
			l.advance()
		case r == ';':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanWhile(pred func(rune) bool) string {
	start := l.pos
	for !l.atEnd() && pred(l.peek()) {
		l.advance()
	}
	return string(l.src[start:l.pos])
}

// GetNext returns the next token. Once the input is exhausted every call
// returns an EOF token.
func (l *Lexer) GetNext() (Token, error) {
	l.skipBlanks()

	pos := l.position()
	if l.atEnd() {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	switch r := l.peek(); {
	case r == '(':
		l.advance()
		return Token{Kind: LParen, Text: "(", Pos: pos}, nil
	case r == ')':
		l.advance()
		return Token{Kind: RParen, Text: ")", Pos: pos}, nil
	case r == '[':
		l.advance()
		return Token{Kind: LBracket, Text: "[", Pos: pos}, nil
	case r == ']':
		l.advance()
		return Token{Kind: RBracket, Text: "]", Pos: pos}, nil
	case r == '"':
		return l.scanString(pos)
	case isDigit(r):
		return Token{Kind: NumberToken, Text: l.scanWhile(isDigit), Pos: pos}, nil
	case isIdentStart(r):
		return Token{Kind: Identifier, Text: l.scanWhile(isIdentPart), Pos: pos}, nil
	default:
		return Token{}, newLexicalError(pos, r, "unknown character %q", r)
	}
}

// scanString reads a quoted literal. There are no escapes: the next quote
// ends the literal, and the text may span lines.
func (l *Lexer) scanString(pos Pos) (Token, error) {
	l.advance()

	value := l.scanWhile(func(r rune) bool { return r != '"' })
	if l.atEnd() {
		return Token{}, newLexicalError(pos, '"', "unterminated string literal")
	}
	l.advance()

	return Token{Kind: StringToken, Text: value, Pos: pos}, nil
}

// Tokenize drains a lexer over src. The returned slice ends with the EOF
// token. On a lexical error it holds the tokens read before the error.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)

	var tokens []Token
	for {
		tok, err := l.GetNext()
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}
