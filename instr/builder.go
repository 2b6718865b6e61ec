package instr

import (
	"fmt"
	"strings"

	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/diag"
	"github.com/sarchlab/mdgen/sexpr"
)

// DefineInsn is the head symbol of an instruction declaration.
const DefineInsn = "define-insn"

const (
	classMatchOperand = "match_operand"
	classConstInt     = "const_int"
)

// Builder turns parsed top-level nodes into an instruction set. Forms whose
// head is not define-insn are ignored.
type Builder struct {
	issues diag.List
}

// NewBuilder creates a builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build reads every define-insn form. A malformed form is reported and left
// out of the set; building continues with the next form so that all
// problems are reported together.
func (b *Builder) Build(nodes []sexpr.Node) (*Set, diag.List) {
	b.issues = nil
	set := &Set{}

	for _, n := range nodes {
		form, ok := n.(*sexpr.List)
		if !ok || !sexpr.IsSymbol(form.Child(0), DefineInsn) {
			continue
		}

		if insn := b.buildInst(form); insn != nil {
			config.Trace("instruction", "name", insn.Name, "mode", insn.Mode().String(),
				"matching", insn.IsMatching())
			set.Insts = append(set.Insts, insn)
		}
	}

	return set, b.issues
}

func (b *Builder) buildInst(form *sexpr.List) *Inst {
	name := ""
	if s, ok := form.Child(1).(*sexpr.String); ok {
		name = s.Value
	}

	if form.Len() != 4 {
		b.issues.Add(diag.Issue{
			Category:    diag.Semantic,
			Instruction: name,
			Pos:         form.Pos(),
			Message: fmt.Sprintf(
				"define-insn expects 4 elements (keyword, name, pattern, output format), got %d", form.Len()),
			Details: map[string]interface{}{"elements": form.Len()},
		})
		return nil
	}

	before := len(b.issues)

	if _, ok := form.Child(1).(*sexpr.String); !ok {
		b.issues.Addf(name, form.Child(1).Pos(), "instruction name must be a string")
	}
	container, ok := form.Child(2).(*sexpr.List)
	if !ok {
		b.issues.Addf(name, form.Child(2).Pos(), "pattern container must be a list")
	}
	format, ok := form.Child(3).(*sexpr.String)
	if !ok {
		b.issues.Addf(name, form.Child(3).Pos(), "output format must be a string")
	}
	if len(b.issues) > before {
		return nil
	}

	insn := &Inst{
		Name:         name,
		OutputFormat: format.Value,
		Pos:          form.Pos(),
	}
	insn.Template = b.buildTemplate(insn, container)

	if len(b.issues) > before {
		return nil
	}
	return insn
}

// buildTemplate reads the pattern container. An empty container, or one
// holding an empty pattern, makes the instruction non-matching.
func (b *Builder) buildTemplate(insn *Inst, container *sexpr.List) *Template {
	if container.Len() == 0 {
		return nil
	}
	if container.Len() > 1 {
		b.issues.Addf(insn.Name, container.Pos(),
			"pattern container holds %d elements, expected at most one pattern", container.Len())
		return nil
	}

	pattern, ok := container.Child(0).(*sexpr.List)
	if !ok {
		b.issues.Addf(insn.Name, container.Child(0).Pos(), "pattern must be a list")
		return nil
	}
	if pattern.Len() == 0 {
		return nil
	}

	opcode, ok := pattern.Child(0).(*sexpr.Symbol)
	if !ok {
		b.issues.Addf(insn.Name, pattern.Child(0).Pos(), "pattern must start with an opcode symbol")
		return nil
	}

	t := &Template{Opcode: opcode.Value, Start: pattern.Pos()}
	for i := 1; i < pattern.Len(); i++ {
		if op := b.buildOperand(insn, i, pattern.Child(i)); op != nil {
			t.Operands = append(t.Operands, op)
		}
	}

	return t
}

func (b *Builder) buildOperand(insn *Inst, index int, n sexpr.Node) Operand {
	form, ok := n.(*sexpr.List)
	if !ok || form.Len() == 0 {
		b.issues.Addf(insn.Name, n.Pos(), "pattern operand %d must be a non-empty list", index)
		return nil
	}

	head, ok := form.Child(0).(*sexpr.Symbol)
	if !ok {
		b.issues.Addf(insn.Name, form.Pos(), "pattern operand %d must start with a <class>:<type> symbol", index)
		return nil
	}

	class, typ, found := strings.Cut(head.Value, ":")
	if !found || class == "" || typ == "" {
		b.issues.Addf(insn.Name, head.Pos(), "operand %q must have the form <class>:<type>", head.Value)
		return nil
	}

	switch class {
	case classMatchOperand:
		return b.buildMatchOperand(insn, form, typ)
	case classConstInt:
		return b.buildConstInt(insn, form, typ)
	default:
		b.issues.Add(diag.Issue{
			Category:    diag.Semantic,
			Instruction: insn.Name,
			Pos:         head.Pos(),
			Message:     fmt.Sprintf("unknown operand class %q", class),
			Details:     map[string]interface{}{"class": class},
		})
		return nil
	}
}

func (b *Builder) buildMatchOperand(insn *Inst, form *sexpr.List, typ string) Operand {
	slot, okSlot := form.Child(1).(*sexpr.Number)
	class, okClass := form.Child(2).(*sexpr.String)
	if form.Len() != 3 || !okSlot || !okClass {
		b.issues.Addf(insn.Name, form.Pos(),
			"match_operand expects a slot number and a class string, as in (match_operand:%s 0 \"reg\")", typ)
		return nil
	}

	return &MatchOperand{Type: typ, Slot: slot.Value, Class: class.Value, Start: form.Pos()}
}

func (b *Builder) buildConstInt(insn *Inst, form *sexpr.List, typ string) Operand {
	value, ok := form.Child(1).(*sexpr.Number)
	if form.Len() != 2 || !ok {
		b.issues.Addf(insn.Name, form.Pos(),
			"const_int expects a single number, as in (const_int:%s 0)", typ)
		return nil
	}

	return &ConstIntOperand{Type: typ, Value: value.Value, Start: form.Pos()}
}
