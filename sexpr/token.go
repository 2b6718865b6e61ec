package sexpr

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	LParen TokenKind = iota
	RParen
	LBracket
	RBracket
	NumberToken
	StringToken
	Identifier
	EOF
)

var tokenKindNames = [...]string{
	LParen:      "LParen",
	RParen:      "RParen",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	NumberToken: "Number",
	StringToken: "String",
	Identifier:  "Identifier",
	EOF:         "EndOfFile",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// Pos is a location in the source text. Offset is a byte offset, Line and
// Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexeme. String tokens carry the text between the quotes.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	return fmt.Sprintf("(%s '%s')", t.Kind, t.Text)
}
