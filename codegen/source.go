package codegen

import (
	"fmt"
	"strings"

	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/instr"
	"github.com/sarchlab/mdgen/printing"
)

// source produces the definitions: Emit, Expand, the name lookup and one
// factory per public instruction.
func (g *Generator) source(headerName string) string {
	ctx := printing.NewBuffered()

	g.disclaimer(ctx)
	ctx.Newline()
	ctx.PrintLine(`#include "` + headerName + `"`)
	g.includes(ctx, g.target.SourceIncludes)
	ctx.Newline()

	g.emitFunction(ctx)
	ctx.Newline()
	g.expandFunction(ctx)
	ctx.Newline()
	g.nameFunction(ctx)
	g.factories(ctx)

	return ctx.String()
}

func (g *Generator) emitFunction(ctx *printing.Context) {
	config.Trace("generating Emit")

	ctx.PrintIndentedLine(fmt.Sprintf("void %s(FILE* file, Instruction& insn, SlotTracker& slots)", g.machine("Emit")))
	ctx.PrintIndentedLineThenIndent("{")
	ctx.PrintIndentedLine("switch (insn.GetOpcode()) {")

	for _, insn := range g.set.Public() {
		ctx.PrintIndentedLineThenIndent("case " + insn.Identifier() + ": {")

		switch insn.Mode() {
		case instr.Literal:
			g.emitLiteral(ctx, insn.Inst)
		case instr.Templated:
			g.emitTemplated(ctx, insn.Inst)
		case instr.Delegate:
		}

		ctx.PrintIndentedLine("break;")
		ctx.PrintIndentedLineAfterUnindent("}")
	}

	ctx.PrintIndentedLine("}")
	ctx.PrintIndentedLineAfterUnindent("}")
}

func (g *Generator) emitLiteral(ctx *printing.Context, insn *instr.Inst) {
	for _, line := range insn.OutputLines() {
		line = strings.ReplaceAll(line, "%", "%%")
		ctx.PrintIndentedLine(`fprintf(file, "\t` + line + `\n");`)
	}
}

// emitTemplated stringifies the operands into s<slot> and formats every
// line with them. With a pattern an operand is taken from its pattern
// position; without one the operands are taken in order.
func (g *Generator) emitTemplated(ctx *printing.Context, insn *instr.Inst) {
	stringify := g.target.Runtime.Stringify

	if insn.IsMatching() {
		for _, b := range insn.Template.Bindings() {
			ctx.PrintIndentedLine(fmt.Sprintf("const std::string& %s = %s(insn.GetOperand(%d), slots);",
				slotVar("s", b.Slot), stringify, b.Position))
		}
	} else {
		for i := 0; i < insn.Arity(); i++ {
			ctx.PrintIndentedLine(fmt.Sprintf("const std::string& %s = %s(insn.GetOperand(%d), slots);",
				slotVar("s", i), stringify, i))
		}
	}

	args := slotArgs("s", insn.Arity())
	for _, line := range insn.OutputLines() {
		ctx.PrintIndentedLine(fmt.Sprintf(`{const std::string as = %s("\t%s\n", %s);`,
			g.target.Runtime.Format, line, args))
		ctx.PrintIndentedLine(`fprintf(file, "%s",as.c_str());}`)
	}
}

func (g *Generator) nameFunction(ctx *printing.Context) {
	config.Trace("generating GetMachineInstructionName")

	ctx.PrintIndentedLine(fmt.Sprintf("const char* %s(%s opc)",
		g.machine("GetMachineInstructionName"), g.machine("Opcode")))
	ctx.PrintIndentedLineThenIndent("{")
	ctx.PrintIndentedLine("switch(opc) {")

	for _, insn := range g.set.Public() {
		ctx.PrintIndentedLine(fmt.Sprintf("case %s: return %q;", insn.Identifier(), insn.Name))
	}

	ctx.PrintIndentedLine("};")
	ctx.PrintIndentedLine("return nullptr;")
	ctx.PrintIndentedLineAfterUnindent("}")
}

func (g *Generator) factories(ctx *printing.Context) {
	config.Trace("generating factories")

	machineInsn := g.root("MachineInstruction")

	for _, insn := range g.set.Public() {
		n := insn.Arity()

		ctx.Newline()
		ctx.PrintIndentedLine(fmt.Sprintf("%s* %s(%s)",
			machineInsn, g.machine("Create"+insn.Identifier()), valueParams(n, true)))
		ctx.PrintIndentedLineThenIndent("{")
		ctx.PrintIndentedLine(fmt.Sprintf("%s* insn = new %s(%s, %d);",
			machineInsn, machineInsn, g.machine(insn.Identifier()), n))

		for i := 0; i < n; i++ {
			ctx.PrintIndentedLine(fmt.Sprintf("insn->SetOperand(%d, %s);", i, slotVar("v", i)))
		}

		ctx.PrintIndentedLine("return insn;")
		ctx.PrintIndentedLineAfterUnindent("}")
	}
}

// slotArgs lists prefix0..prefix(n-1).
func slotArgs(prefix string, n int) string {
	args := make([]string, n)
	for i := range args {
		args[i] = slotVar(prefix, i)
	}
	return strings.Join(args, ", ")
}
