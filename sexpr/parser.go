package sexpr

import (
	"strconv"
)

// Parser is a recursive-descent parser with a single token of lookahead.
//
//	node  := list | array | number | string | symbol
//	list  := '(' node* ')'
//	array := '[' node* ']'
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser creates a parser reading tokens from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse parses src and returns its top-level nodes.
func Parse(src string) ([]Node, error) {
	return NewParser(NewLexer(src)).Parse()
}

// Parse returns every top-level node found before the end of the input.
func (p *Parser) Parse() ([]Node, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	var nodes []Node
	for p.tok.Kind != EOF {
		n, err := p.parseNode()
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}

	return nodes, nil
}

func (p *Parser) next() error {
	tok, err := p.lex.GetNext()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// expect consumes the current token if it has the given kind.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, newSyntaxError(tok, kind.String())
	}

	return tok, p.next()
}

func (p *Parser) parseNode() (Node, error) {
	switch p.tok.Kind {
	case LParen:
		return p.parseList(LParen, RParen, Paren)
	case LBracket:
		return p.parseList(LBracket, RBracket, Square)
	case NumberToken:
		return p.parseNumber()
	case StringToken:
		tok, err := p.expect(StringToken)
		if err != nil {
			return nil, err
		}
		return &String{Value: tok.Text, Start: tok.Pos}, nil
	case Identifier:
		tok, err := p.expect(Identifier)
		if err != nil {
			return nil, err
		}
		return &Symbol{Value: tok.Text, Start: tok.Pos}, nil
	default:
		return nil, newSyntaxError(p.tok, "start of a node")
	}
}

func (p *Parser) parseList(opening, closing TokenKind, bracket Bracket) (Node, error) {
	start, err := p.expect(opening)
	if err != nil {
		return nil, err
	}

	list := &List{Bracket: bracket, Start: start.Pos}
	for p.tok.Kind != closing {
		switch p.tok.Kind {
		case EOF, RParen, RBracket:
			return nil, newSyntaxError(p.tok, closing.String())
		}

		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		list.Children = append(list.Children, child)
	}

	if _, err := p.expect(closing); err != nil {
		return nil, err
	}

	return list, nil
}

func (p *Parser) parseNumber() (Node, error) {
	tok := p.tok
	value, err := strconv.Atoi(tok.Text)
	if err != nil {
		syntaxErr := newSyntaxError(tok, "a number that fits in an int")
		syntaxErr.Message = "number literal " + tok.Text + " is out of range"
		return nil, syntaxErr
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	return &Number{Value: value, Start: tok.Pos}, nil
}
