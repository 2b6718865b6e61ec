package sexpr

import "fmt"

// ErrorKind separates lexical failures from syntax failures.
type ErrorKind int

const (
	LexicalError ErrorKind = iota
	SyntaxError
)

func (k ErrorKind) String() string {
	if k == LexicalError {
		return "lexical error"
	}
	return "syntax error"
}

// Error is returned by the lexer and the parser. Lexical errors set Char,
// syntax errors set Expected and Got.
type Error struct {
	Kind     ErrorKind
	Pos      Pos
	Message  string
	Char     rune
	Expected string
	Got      TokenKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

func newLexicalError(pos Pos, c rune, format string, args ...any) *Error {
	return &Error{
		Kind:    LexicalError,
		Pos:     pos,
		Char:    c,
		Message: fmt.Sprintf(format, args...),
	}
}

func newSyntaxError(tok Token, expected string) *Error {
	got := tok.Kind.String()
	if tok.Kind != EOF {
		got = fmt.Sprintf("%s '%s'", tok.Kind, tok.Text)
	}

	return &Error{
		Kind:     SyntaxError,
		Pos:      tok.Pos,
		Expected: expected,
		Got:      tok.Kind,
		Message:  fmt.Sprintf("expected %s, instead got %s", expected, got),
	}
}
