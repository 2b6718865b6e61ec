package codegen

import (
	"fmt"

	"github.com/sarchlab/mdgen/printing"
)

// header produces the declarations: opcode enum, entry points, factory
// prototypes and the external expansion functions.
func (g *Generator) header() string {
	ctx := printing.NewBuffered()

	g.disclaimer(ctx)
	ctx.PrintLine("#pragma once")
	ctx.Newline()
	g.includes(ctx, g.target.HeaderIncludes)
	ctx.Newline()

	if len(g.target.ForwardTypes) > 0 {
		ctx.PrintLine("namespace " + g.target.RootNamespace)
		ctx.PrintIndentedLineThenIndent("{")
		for _, typ := range g.target.ForwardTypes {
			ctx.PrintIndentedLine("class " + typ + ";")
		}
		ctx.PrintIndentedLineAfterUnindent("}")
		ctx.Newline()
	}

	ctx.PrintLine("namespace " + g.target.MachineNamespace)
	ctx.PrintIndentedLineThenIndent("{")

	g.opcodeEnum(ctx)
	ctx.Newline()
	g.prototypes(ctx)

	ctx.PrintIndentedLineAfterUnindent("}")

	return ctx.String()
}

func (g *Generator) opcodeEnum(ctx *printing.Context) {
	ctx.PrintIndentedLine("enum Opcode : " + g.target.OpcodeType)
	ctx.PrintIndentedLineThenIndent("{")

	for _, insn := range g.set.Public() {
		ctx.PrintIndentedLine(fmt.Sprintf("%s = %d,", insn.Identifier(), g.target.OpcodeBase+insn.Index))
	}

	ctx.PrintIndentedLineAfterUnindent("};")
}

func (g *Generator) prototypes(ctx *printing.Context) {
	ctx.PrintIndentedLine("MachineInstruction* Expand(Instruction*);")
	ctx.PrintIndentedLine("const char* GetMachineInstructionName(Opcode);")
	ctx.PrintIndentedLine("void Emit(FILE*,Instruction&,SlotTracker&);")
	ctx.Newline()

	for _, insn := range g.set.Public() {
		ctx.PrintIndentedLine(fmt.Sprintf("MachineInstruction* Create%s(%s);",
			insn.Identifier(), valueParams(insn.Arity(), false)))
	}

	for _, fn := range g.set.DelegateFunctions() {
		ctx.PrintIndentedLine("MachineInstruction* " + fn + "(Instruction*);")
	}
}
