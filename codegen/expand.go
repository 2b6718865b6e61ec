package codegen

import (
	"fmt"
	"path/filepath"

	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/instr"
	"github.com/sarchlab/mdgen/printing"
)

// expandFunction writes the selection cascade. Every matching instruction
// gets one guarded block, in declaration order. An input no block accepts
// is reported and aborts the compiler.
func (g *Generator) expandFunction(ctx *printing.Context) {
	config.Trace("generating Expand")

	ctx.PrintIndentedLine(fmt.Sprintf("%s* %s(Instruction* insn)",
		g.root("MachineInstruction"), g.machine("Expand")))
	ctx.PrintIndentedLineThenIndent("{")

	for _, insn := range g.set.Matching() {
		g.matchBlock(ctx, insn)
	}

	rt := g.target.Runtime
	ctx.PrintIndentedLine("char error_buf[256] = {};")
	ctx.PrintIndentedLine(fmt.Sprintf("%s os(error_buf, sizeof(error_buf));", g.root(rt.TextStream)))
	ctx.PrintIndentedLine(fmt.Sprintf("%s(os, *insn);", g.root(rt.Print)))
	ctx.PrintIndentedLine(fmt.Sprintf(`%s(%s, "Failed to match instruction '{}'", error_buf);`, rt.Error, rt.ErrorLog))
	ctx.PrintIndentedLine(fmt.Sprintf(`%s("cannot expand instruction to machine ir, check %s");`,
		rt.Unreachable, filepath.Base(g.sourceFile)))
	ctx.PrintIndentedLine("return nullptr;")
	ctx.PrintIndentedLineAfterUnindent("}")
}

func (g *Generator) matchBlock(ctx *printing.Context, insn *instr.Inst) {
	t := insn.Template

	ctx.PrintIndentedLine("/* " + insn.Name + " */")
	ctx.PrintIndentedLineThenIndent(fmt.Sprintf("if (insn->GetOpcode() == %s) {", t.Opcode))

	if len(t.Operands) > 0 {
		ctx.PrintIndented("if (")
		ctx.IncreaseIndent(1)
		for i, op := range t.Operands {
			if i == 0 {
				ctx.PrintLine("   " + g.condition(i, op))
			} else {
				ctx.PrintIndentedLine("&& " + g.condition(i, op))
			}
		}
		ctx.DecreaseIndent(1)
		ctx.PrintIndentedLineThenIndent(") {")
	} else {
		ctx.PrintIndentedLineThenIndent("{")
	}

	if insn.Mode() == instr.Delegate {
		ctx.PrintIndentedLine(fmt.Sprintf("return %s(insn);", insn.DelegateName()))
	} else {
		for _, b := range t.Bindings() {
			ctx.PrintIndentedLine(fmt.Sprintf("Value* %s = insn->GetOperand(%d);", slotVar("v", b.Slot), b.Position))
		}
		ctx.PrintIndentedLine(fmt.Sprintf("return %s(%s);",
			g.machine("Create"+insn.Identifier()), slotArgs("v", insn.Arity())))
	}

	ctx.PrintIndentedLineAfterUnindent("}")
	ctx.PrintIndentedLineAfterUnindent("}")
	ctx.Newline()
}

// condition is the test one pattern operand puts on the input operand at
// position pos.
func (g *Generator) condition(pos int, op instr.Operand) string {
	operand := fmt.Sprintf("insn->GetOperand(%d)", pos)
	rt := g.target.Runtime

	cond := ""
	if typ := op.DeclaredType(); typ != instr.Wildcard {
		fn, _ := g.target.BuiltinType(typ)
		cond = fmt.Sprintf("%s->GetType() == %s() && ", operand, fn)
	}

	switch op := op.(type) {
	case *instr.MatchOperand:
		cond += fmt.Sprintf("%s%s(%s)", rt.ClassPredicatePrefix, op.Class, operand)
	case *instr.ConstIntOperand:
		cond += fmt.Sprintf("%s(%s, %d)", rt.ConstIntPredicate, operand, op.Value)
	default:
		panic(fmt.Sprintf("unknown operand constraint %T", op))
	}

	return cond
}
