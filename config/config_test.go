package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdgen/config"
)

var _ = Describe("Target", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	writeTarget := func(content string) string {
		path := filepath.Join(dir, "target.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should provide the ARMv7 defaults", func() {
		t := config.DefaultTarget()

		Expect(t.RootNamespace).To(Equal("Helix"))
		Expect(t.MachineNamespace).To(Equal("Helix::ARMv7"))
		Expect(t.OpcodeBase).To(Equal(1024))
		Expect(t.HeaderIncludes).To(Equal([]string{"<stdio.h>", `"opcodes.h"`}))
		Expect(t.Runtime.ConstIntPredicate).To(Equal("is_const_int_with_value"))

		fn, ok := t.BuiltinType("i32")
		Expect(ok).To(BeTrue())
		Expect(fn).To(Equal("BuiltinTypes::GetInt32"))

		_, ok = t.BuiltinType("f64")
		Expect(ok).To(BeFalse())
	})

	It("should return independent copies", func() {
		a := config.DefaultTarget()
		a.BuiltinTypes["f32"] = "BuiltinTypes::GetFloat"

		b := config.DefaultTarget()
		Expect(b.BuiltinTypes).NotTo(HaveKey("f32"))
	})

	It("should overlay a profile on the defaults", func() {
		path := writeTarget(`
machine_namespace: Helix::RV32
opcode_base: 2048
builtin_types:
  i64: BuiltinTypes::GetInt64
`)

		t, err := config.LoadTarget(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(t.MachineNamespace).To(Equal("Helix::RV32"))
		Expect(t.RootNamespace).To(Equal("Helix"))
		Expect(t.OpcodeBase).To(Equal(2048))
		Expect(t.BuiltinTypes).To(HaveKeyWithValue("i64", "BuiltinTypes::GetInt64"))
		Expect(t.BuiltinTypes).To(HaveKeyWithValue("i8", "BuiltinTypes::GetInt8"))
	})

	It("should accept an empty profile", func() {
		t, err := config.LoadTarget(writeTarget(""))

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(config.DefaultTarget()))
	})

	It("should reject unknown keys", func() {
		_, err := config.LoadTarget(writeTarget("opcode_bsae: 12\n"))

		Expect(err).To(HaveOccurred())
	})

	It("should reject an invalid profile", func() {
		_, err := config.LoadTarget(writeTarget("opcode_base: -1\n"))

		Expect(err).To(MatchError(ContainSubstring("opcode_base must not be negative")))
	})

	It("should report a missing file", func() {
		_, err := config.LoadTarget(filepath.Join(dir, "missing.yaml"))

		Expect(err).To(MatchError(ContainSubstring("failed to open target file")))
	})
})

var _ = Describe("Options", func() {
	It("should be built from functional options", func() {
		o := config.NewOptions("md/arm.md",
			config.WithOutputDir("out"),
			config.WithPrintAST(true),
			config.WithVerbose(true),
		)

		Expect(o.SourceFile()).To(Equal("md/arm.md"))
		Expect(o.OutputDir()).To(Equal("out"))
		Expect(o.PrintAST()).To(BeTrue())
		Expect(o.PrintTokens()).To(BeFalse())
		Expect(o.ShouldGenerate()).To(BeTrue())
	})

	It("should not generate without an output directory", func() {
		o := config.NewOptions("arm.md", config.WithOutputDir("  "))

		Expect(o.ShouldGenerate()).To(BeFalse())
	})
})

var _ = Describe("SetupLogger", func() {
	var previous *slog.Logger

	BeforeEach(func() {
		previous = slog.Default()
	})

	AfterEach(func() {
		slog.SetDefault(previous)
	})

	It("should hide trace records unless verbose", func() {
		var out bytes.Buffer
		config.SetupLogger(&out, config.NewOptions("a.md"))

		config.Trace("hidden")
		slog.Info("shown")

		Expect(out.String()).NotTo(ContainSubstring("hidden"))
		Expect(out.String()).To(ContainSubstring("shown"))
	})

	It("should write JSON trace records when asked", func() {
		var out bytes.Buffer
		config.SetupLogger(&out, config.NewOptions("a.md",
			config.WithVerbose(true), config.WithLogJSON(true)))

		config.Trace("step", "n", 1)

		Expect(out.String()).To(ContainSubstring(`"msg":"step"`))
		Expect(out.String()).To(ContainSubstring(`"n":1`))
	})
})
