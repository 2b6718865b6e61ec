package sexpr

import (
	"strconv"

	"github.com/sarchlab/mdgen/printing"
)

// treePrinter renders nodes for --print-ast. A nested list starts on a new,
// deeper-indented line unless it is the first child of its parent. The
// ancestor stack stands in for parent pointers.
type treePrinter struct {
	ctx       *printing.Context
	ancestors []*List
}

// Print writes n through ctx.
func Print(ctx *printing.Context, n Node) {
	p := treePrinter{ctx: ctx}
	p.print(n, 0)
}

// Format renders n into a string.
func Format(n Node) string {
	ctx := printing.NewBuffered()
	Print(ctx, n)
	return ctx.String()
}

func (p *treePrinter) startsOnNewLine(n Node, index int) bool {
	_, isList := n.(*List)
	return isList && len(p.ancestors) > 0 && index > 0
}

func (p *treePrinter) print(n Node, index int) {
	switch n := n.(type) {
	case *Symbol:
		p.ctx.Print(n.Value)
	case *String:
		p.ctx.Print(`"` + n.Value + `"`)
	case *Number:
		p.ctx.Print(strconv.Itoa(n.Value))
	case *List:
		p.printList(n, index)
	}
}

func (p *treePrinter) printList(l *List, index int) {
	newLine := p.startsOnNewLine(l, index)
	if newLine {
		p.ctx.Newline()
		p.ctx.IncreaseIndent(1)
		p.ctx.PrintIndent()
	}

	p.ctx.Print(l.Bracket.Open())

	p.ancestors = append(p.ancestors, l)
	for i, child := range l.Children {
		if i > 0 && !p.startsOnNewLine(child, i) {
			p.ctx.Print(" ")
		}
		p.print(child, i)
	}
	p.ancestors = p.ancestors[:len(p.ancestors)-1]

	p.ctx.Print(l.Bracket.Close())

	if newLine {
		p.ctx.DecreaseIndent(1)
	}
}
