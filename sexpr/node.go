// Package sexpr reads the S-expression syntax of machine description files.
//
// The tree it produces is untyped: a node is a Symbol, a String, a Number or
// a List. Lists come in two bracket styles, ( ) and [ ]; the style is kept so
// later passes can tell a pattern container apart from an expression, and so
// the tree prints back the way it was written.
package sexpr

// Node is one element of a parsed tree. The concrete types are *Symbol,
// *String, *Number and *List.
type Node interface {
	Pos() Pos
	node()
}

// Symbol is a bare identifier.
type Symbol struct {
	Value string
	Start Pos
}

// String is a quoted literal without its quotes.
type String struct {
	Value string
	Start Pos
}

// Number is an unsigned integer literal.
type Number struct {
	Value int
	Start Pos
}

// Bracket is the delimiter style of a List.
type Bracket int

const (
	Paren Bracket = iota
	Square
)

// Open returns the opening delimiter.
func (b Bracket) Open() string {
	if b == Square {
		return "["
	}
	return "("
}

// Close returns the closing delimiter.
func (b Bracket) Close() string {
	if b == Square {
		return "]"
	}
	return ")"
}

// List is an ordered sequence of nodes.
type List struct {
	Children []Node
	Bracket  Bracket
	Start    Pos
}

func (n *Symbol) Pos() Pos { return n.Start }
func (n *String) Pos() Pos { return n.Start }
func (n *Number) Pos() Pos { return n.Start }
func (n *List) Pos() Pos   { return n.Start }

func (*Symbol) node() {}
func (*String) node() {}
func (*Number) node() {}
func (*List) node()   {}

// Len returns the number of children.
func (n *List) Len() int {
	return len(n.Children)
}

// Child returns the i-th child, or nil if there is none.
func (n *List) Child(i int) Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsSymbol reports whether n is the symbol value.
func IsSymbol(n Node, value string) bool {
	s, ok := n.(*Symbol)
	return ok && s.Value == value
}
