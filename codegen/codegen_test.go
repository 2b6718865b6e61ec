package codegen_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdgen/codegen"
	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/diag"
	"github.com/sarchlab/mdgen/instr"
	"github.com/sarchlab/mdgen/sexpr"
)

const addInsn = `(define-insn "add"
	[ (add (match_operand:i32 0 "reg") (match_operand:i32 1 "reg")) ]
	"add {0}, {0}, {1}")`

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func generate(src string) (*codegen.Documents, error) {
	nodes, err := sexpr.Parse(src)
	Expect(err).NotTo(HaveOccurred())

	set, issues := instr.NewBuilder().Build(nodes)
	Expect(issues).To(BeEmpty())

	return codegen.NewGenerator(set, config.DefaultTarget(), "testdata/arm.md").Generate()
}

func mustGenerate(src string) *codegen.Documents {
	docs, err := generate(src)
	Expect(err).NotTo(HaveOccurred())
	return docs
}

var _ = Describe("Generator", func() {
	It("should name the documents after the source file", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.HeaderName).To(Equal("arm-md.h"))
		Expect(docs.SourceName).To(Equal("arm-md.cpp"))
	})

	It("should generate the header", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.Header).To(Equal(lines(
			"/**",
			" * This file is generated from arm.md by mdgen.",
			" * Do not edit! Any changes will be overwritten by the next invocation",
			" * of the tool.",
			" */",
			"#pragma once",
			"",
			"#include <stdio.h>",
			`#include "opcodes.h"`,
			"",
			"namespace Helix",
			"{",
			"\tclass Instruction;",
			"\tclass SlotTracker;",
			"\tclass MachineInstruction;",
			"\tclass Value;",
			"}",
			"",
			"namespace Helix::ARMv7",
			"{",
			"\tenum Opcode : OpcodeType",
			"\t{",
			"\t\tAdd = 1024,",
			"\t};",
			"",
			"\tMachineInstruction* Expand(Instruction*);",
			"\tconst char* GetMachineInstructionName(Opcode);",
			"\tvoid Emit(FILE*,Instruction&,SlotTracker&);",
			"",
			"\tMachineInstruction* CreateAdd(Value*, Value*);",
			"}",
		)))
	})

	It("should substitute operand slots in Emit", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.Source).To(ContainSubstring(lines(
			"\tswitch (insn.GetOpcode()) {",
			"\tcase Add: {",
			"\t\tconst std::string& s0 = stringify_operand(insn.GetOperand(0), slots);",
			"\t\tconst std::string& s1 = stringify_operand(insn.GetOperand(1), slots);",
			`		{const std::string as = fmt::format("\tadd {0}, {0}, {1}\n", s0, s1);`,
			`		fprintf(file, "%s",as.c_str());}`,
			"\t\tbreak;",
			"\t}",
			"\t}",
			"}",
		)))
	})

	It("should generate a guarded block in Expand", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.Source).To(ContainSubstring(lines(
			"Helix::MachineInstruction* Helix::ARMv7::Expand(Instruction* insn)",
			"{",
			"\t/* add */",
			"\tif (insn->GetOpcode() == add) {",
			"\t\tif (   insn->GetOperand(0)->GetType() == BuiltinTypes::GetInt32() && is_reg(insn->GetOperand(0))",
			"\t\t\t&& insn->GetOperand(1)->GetType() == BuiltinTypes::GetInt32() && is_reg(insn->GetOperand(1))",
			"\t\t) {",
			"\t\t\tValue* v0 = insn->GetOperand(0);",
			"\t\t\tValue* v1 = insn->GetOperand(1);",
			"\t\t\treturn Helix::ARMv7::CreateAdd(v0, v1);",
			"\t\t}",
			"\t}",
			"",
			"\tchar error_buf[256] = {};",
			"\tHelix::TextOutputStream os(error_buf, sizeof(error_buf));",
			"\tHelix::Print(os, *insn);",
			"\thelix_error(logs::general, \"Failed to match instruction '{}'\", error_buf);",
			"\thelix_unreachable(\"cannot expand instruction to machine ir, check arm.md\");",
			"\treturn nullptr;",
			"}",
		)))
	})

	It("should generate the name lookup and the factory", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.Source).To(ContainSubstring(lines(
			"const char* Helix::ARMv7::GetMachineInstructionName(Helix::ARMv7::Opcode opc)",
			"{",
			"\tswitch(opc) {",
			"\tcase Add: return \"add\";",
			"\t};",
			"\treturn nullptr;",
			"}",
		)))
		Expect(docs.Source).To(HaveSuffix(lines(
			"Helix::MachineInstruction* Helix::ARMv7::CreateAdd(Value* v0, Value* v1)",
			"{",
			"\tHelix::MachineInstruction* insn = new Helix::MachineInstruction(Helix::ARMv7::Add, 2);",
			"\tinsn->SetOperand(0, v0);",
			"\tinsn->SetOperand(1, v1);",
			"\treturn insn;",
			"}",
		)))
	})

	It("should include its own header first", func() {
		docs := mustGenerate(addInsn)

		Expect(docs.Source).To(ContainSubstring(lines(
			" */",
			"",
			`#include "arm-md.h"`,
			`#include "../src/instructions.h"`,
		)))
	})

	It("should keep expansion-only instructions out of the public surface", func() {
		docs := mustGenerate(`
			(define-insn "$helper" [(sub (match_operand:i32 0 "reg") (const_int:i32 0))] "*expand_neg")
			(define-insn "neg" [] "rsb {0}, {0}, #0")`)

		Expect(docs.Header).NotTo(ContainSubstring("Helper"))
		Expect(docs.Header).NotTo(ContainSubstring("$helper"))
		Expect(docs.Header).To(ContainSubstring("\t\tNeg = 1025,\n"))
		Expect(docs.Source).NotTo(ContainSubstring("case Helper"))
		Expect(docs.Source).NotTo(ContainSubstring("CreateHelper"))

		Expect(docs.Source).To(ContainSubstring(lines(
			"\t/* $helper */",
			"\tif (insn->GetOpcode() == sub) {",
			"\t\tif (   insn->GetOperand(0)->GetType() == BuiltinTypes::GetInt32() && is_reg(insn->GetOperand(0))",
			"\t\t\t&& insn->GetOperand(1)->GetType() == BuiltinTypes::GetInt32() && is_const_int_with_value(insn->GetOperand(1), 0)",
			"\t\t) {",
			"\t\t\treturn expand_neg(insn);",
			"\t\t}",
			"\t}",
		)))
	})

	It("should declare a shared expansion function once", func() {
		docs := mustGenerate(`
			(define-insn "$a" [(a (match_operand:i32 0 "reg"))] "*customFn")
			(define-insn "b" [(b (match_operand:* 0 "reg"))] "*customFn")
			(define-insn "c" [] "*customFn")
			(define-insn "d" [] "*otherFn")`)

		Expect(strings.Count(docs.Header, "MachineInstruction* customFn(Instruction*);")).To(Equal(1))
		Expect(docs.Header).To(ContainSubstring(lines(
			"\tMachineInstruction* CreateB();",
			"\tMachineInstruction* CreateC();",
			"\tMachineInstruction* CreateD();",
			"\tMachineInstruction* customFn(Instruction*);",
			"\tMachineInstruction* otherFn(Instruction*);",
		)))

		Expect(docs.Source).To(ContainSubstring(lines(
			"\tcase B: {",
			"\t\tbreak;",
			"\t}",
		)))
		Expect(docs.Source).To(ContainSubstring(lines(
			"\t/* b */",
			"\tif (insn->GetOpcode() == b) {",
			"\t\tif (   is_reg(insn->GetOperand(0))",
			"\t\t) {",
			"\t\t\treturn customFn(insn);",
		)))
		Expect(docs.Source).NotTo(ContainSubstring("return Helix::ARMv7::CreateB"))
	})

	It("should leave non-matching instructions out of Expand", func() {
		docs := mustGenerate(`
			(define-insn "ret" [] "bx lr")
			(define-insn "nop" [()] "nop")`)

		Expect(docs.Source).NotTo(ContainSubstring("/* ret */"))
		Expect(docs.Source).NotTo(ContainSubstring("/* nop */"))
		Expect(docs.Header).To(ContainSubstring("\t\tRet = 1024,\n\t\tNop = 1025,\n"))
		Expect(docs.Source).To(ContainSubstring("\tcase Ret: {\n\t\tfprintf(file, \"\\tbx lr\\n\");\n"))
		Expect(docs.Source).To(ContainSubstring("Helix::MachineInstruction* Helix::ARMv7::CreateRet()\n"))
	})

	It("should bind operands by position when there is no pattern", func() {
		docs := mustGenerate(`(define-insn "bl" [] "bl {0}
  mov {1}, r0")`)

		Expect(docs.Source).To(ContainSubstring(lines(
			"\tcase Bl: {",
			"\t\tconst std::string& s0 = stringify_operand(insn.GetOperand(0), slots);",
			"\t\tconst std::string& s1 = stringify_operand(insn.GetOperand(1), slots);",
			`		{const std::string as = fmt::format("\tbl {0}\n", s0, s1);`,
			`		fprintf(file, "%s",as.c_str());}`,
			`		{const std::string as = fmt::format("\tmov {1}, r0\n", s0, s1);`,
			`		fprintf(file, "%s",as.c_str());}`,
		)))
	})

	It("should bind operands by slot when slots differ from positions", func() {
		docs := mustGenerate(`(define-insn "str"
			[(store (match_operand:ptr 1 "reg") (match_operand:* 0 "reg"))]
			"str {0}, [{1}]")`)

		Expect(docs.Source).To(ContainSubstring(lines(
			"\t\tconst std::string& s1 = stringify_operand(insn.GetOperand(0), slots);",
			"\t\tconst std::string& s0 = stringify_operand(insn.GetOperand(1), slots);",
			`		{const std::string as = fmt::format("\tstr {0}, [{1}]\n", s0, s1);`,
		)))
		Expect(docs.Source).To(ContainSubstring(lines(
			"\t\t\tValue* v1 = insn->GetOperand(0);",
			"\t\t\tValue* v0 = insn->GetOperand(1);",
			"\t\t\treturn Helix::ARMv7::CreateStr(v0, v1);",
		)))
	})

	It("should write literal lines directly", func() {
		docs := mustGenerate(`(define-insn "prologue" [] "@push {r7, lr}
			@add r7, sp, #0
			@and r0, r0, 100%")`)

		Expect(docs.Source).To(ContainSubstring(lines(
			"\tcase Prologue: {",
			`		fprintf(file, "\tpush {r7, lr}\n");`,
			`		fprintf(file, "\tadd r7, sp, #0\n");`,
			`		fprintf(file, "\tand r0, r0, 100%%\n");`,
			"\t\tbreak;",
		)))
	})

	It("should drop blank output lines", func() {
		docs := mustGenerate(`
			(define-insn "epilogue" [] "
				@mov sp, r7

				@pop {r7, pc}
			")
			(define-insn "ldc" [] "
				movw {0}, #:lower16:{1}

				movt {0}, #:upper16:{1}
			")`)

		Expect(docs.Source).To(ContainSubstring(lines(
			"\tcase Epilogue: {",
			`		fprintf(file, "\tmov sp, r7\n");`,
			`		fprintf(file, "\tpop {r7, pc}\n");`,
			"\t\tbreak;",
		)))
		Expect(docs.Source).To(ContainSubstring(lines(
			"\t\tconst std::string& s1 = stringify_operand(insn.GetOperand(1), slots);",
			`		{const std::string as = fmt::format("\tmovw {0}, #:lower16:{1}\n", s0, s1);`,
			`		fprintf(file, "%s",as.c_str());}`,
			`		{const std::string as = fmt::format("\tmovt {0}, #:upper16:{1}\n", s0, s1);`,
			`		fprintf(file, "%s",as.c_str());}`,
			"\t\tbreak;",
		)))
		Expect(docs.Source).NotTo(ContainSubstring(`"\t\n"`))
	})

	It("should name the documents after a dotted stem", func() {
		nodes, err := sexpr.Parse(addInsn)
		Expect(err).NotTo(HaveOccurred())
		set, _ := instr.NewBuilder().Build(nodes)

		gen := codegen.NewGenerator(set, config.DefaultTarget(), "/tmp/x86.64.md")
		docs, err := gen.Generate()

		Expect(err).NotTo(HaveOccurred())
		Expect(gen.MachineName()).To(Equal("x86.64"))
		Expect(docs.HeaderName).To(Equal("x86.64-md.h"))
		Expect(docs.Header).To(ContainSubstring(" * This file is generated from x86.64.md by mdgen.\n"))
	})

	It("should offset opcodes by declaration index", func() {
		docs := mustGenerate(`
			(define-insn "a" [] "a")
			(define-insn "$b" [] "*fb")
			(define-insn "c" [] "c")`)

		Expect(docs.Header).To(ContainSubstring("\t\tA = 1024,\n\t\tC = 1026,\n"))
	})

	It("should follow the target profile", func() {
		nodes, err := sexpr.Parse(addInsn)
		Expect(err).NotTo(HaveOccurred())
		set, _ := instr.NewBuilder().Build(nodes)

		target := config.DefaultTarget()
		target.MachineNamespace = "Helix::RV32"
		target.OpcodeBase = 4096
		target.ForwardTypes = nil
		target.Runtime.ClassPredicatePrefix = "match_"

		docs, err := codegen.NewGenerator(set, target, "rv32.md").Generate()
		Expect(err).NotTo(HaveOccurred())

		Expect(docs.HeaderName).To(Equal("rv32-md.h"))
		Expect(docs.Header).NotTo(ContainSubstring("namespace Helix\n"))
		Expect(docs.Header).To(ContainSubstring("namespace Helix::RV32\n"))
		Expect(docs.Header).To(ContainSubstring("Add = 4096,"))
		Expect(docs.Source).To(ContainSubstring("match_reg(insn->GetOperand(0))"))
		Expect(docs.Source).To(ContainSubstring("Helix::RV32::CreateAdd(Value* v0, Value* v1)"))
	})

	It("should be deterministic", func() {
		src := addInsn + `
			(define-insn "$x" [(x (match_operand:* 0 "reg"))] "*fx")
			(define-insn "y" [(y (match_operand:i8 1 "reg") (match_operand:i16 0 "imm"))] "y {0}, {1}")
			(define-insn "z" [] "*fx")`

		first := mustGenerate(src)
		second := mustGenerate(src)

		Expect(second.Header).To(Equal(first.Header))
		Expect(second.Source).To(Equal(first.Source))
	})

	Context("when the instruction set has issues", func() {
		It("should produce no documents", func() {
			docs, err := generate(`
				(define-insn "add" [(add (match_operand:f32 0 "reg"))] "add {0}")
				(define-insn "add" [] "add")`)

			Expect(docs).To(BeNil())

			issues, ok := err.(diag.List)
			Expect(ok).To(BeTrue())
			Expect(issues).To(HaveLen(2))
		})
	})
})
