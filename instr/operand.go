package instr

import (
	"sort"

	"github.com/sarchlab/mdgen/sexpr"
)

// Wildcard is the declared type that matches operands of any type.
const Wildcard = "*"

// Operand is one constraint of a matching pattern. The concrete types are
// *MatchOperand and *ConstIntOperand.
type Operand interface {
	DeclaredType() string
	Pos() sexpr.Pos
	operand()
}

// MatchOperand accepts any operand of its type that satisfies the named
// classification predicate. Slot is its place among the {N} placeholders
// and the factory parameters.
type MatchOperand struct {
	Type  string
	Slot  int
	Class string
	Start sexpr.Pos
}

// ConstIntOperand accepts only a constant integer equal to Value.
type ConstIntOperand struct {
	Type  string
	Value int
	Start sexpr.Pos
}

func (o *MatchOperand) DeclaredType() string    { return o.Type }
func (o *ConstIntOperand) DeclaredType() string { return o.Type }

func (o *MatchOperand) Pos() sexpr.Pos    { return o.Start }
func (o *ConstIntOperand) Pos() sexpr.Pos { return o.Start }

func (*MatchOperand) operand()    {}
func (*ConstIntOperand) operand() {}

// Template is the pattern an abstract instruction must match for the
// machine instruction to be selected.
type Template struct {
	Opcode   string
	Operands []Operand
	Start    sexpr.Pos
}

// Binding is a match operand together with its position in the pattern.
type Binding struct {
	Position int
	*MatchOperand
}

// Bindings returns the match operands in pattern order.
func (t *Template) Bindings() []Binding {
	var out []Binding
	for pos, op := range t.Operands {
		if mo, ok := op.(*MatchOperand); ok {
			out = append(out, Binding{Position: pos, MatchOperand: mo})
		}
	}
	return out
}

// BindingsBySlot returns the match operands ordered by slot. Operands that
// share a slot keep their pattern order.
func (t *Template) BindingsBySlot() []Binding {
	out := t.Bindings()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot < out[j].Slot
	})
	return out
}
