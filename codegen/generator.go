// Package codegen turns an instruction set into the C++ declarations and
// definitions that the compiler backend is built from.
package codegen

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/instr"
	"github.com/sarchlab/mdgen/printing"
	"github.com/sarchlab/mdgen/verify"
)

// Documents holds the generated files.
type Documents struct {
	HeaderName string
	SourceName string
	Header     string
	Source     string
}

// Generator writes the code for one machine description.
type Generator struct {
	set        *instr.Set
	target     *config.Target
	sourceFile string
}

// NewGenerator creates a generator for the instructions read from
// sourceFile.
func NewGenerator(set *instr.Set, target *config.Target, sourceFile string) *Generator {
	return &Generator{
		set:        set,
		target:     target,
		sourceFile: sourceFile,
	}
}

// MachineName is the source file name without directory and extension.
func (g *Generator) MachineName() string {
	base := filepath.Base(g.sourceFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Generate lints the instruction set and produces both documents. If any
// issue is found no document is produced and the issues are returned as a
// diag.List.
func (g *Generator) Generate() (*Documents, error) {
	if err := verify.RunLint(g.set, g.target).Err(); err != nil {
		return nil, err
	}

	docs := &Documents{
		HeaderName: g.MachineName() + "-md.h",
		SourceName: g.MachineName() + "-md.cpp",
	}

	slog.Info("generating header", "file", docs.HeaderName)
	docs.Header = g.header()

	slog.Info("generating source", "file", docs.SourceName)
	docs.Source = g.source(docs.HeaderName)

	return docs, nil
}

func (g *Generator) disclaimer(ctx *printing.Context) {
	ctx.PrintLine("/**")
	ctx.PrintLine(" * This file is generated from " + filepath.Base(g.sourceFile) + " by mdgen.")
	ctx.PrintLine(" * Do not edit! Any changes will be overwritten by the next invocation")
	ctx.PrintLine(" * of the tool.")
	ctx.PrintLine(" */")
}

func (g *Generator) includes(ctx *printing.Context, paths []string) {
	for _, path := range paths {
		ctx.PrintLine("#include " + path)
	}
}

// machine qualifies name with the machine namespace.
func (g *Generator) machine(name string) string {
	return g.target.MachineNamespace + "::" + name
}

// root qualifies name with the root namespace.
func (g *Generator) root(name string) string {
	return g.target.RootNamespace + "::" + name
}

// valueParams lists n parameters for a factory function, named v0..v(n-1)
// when named is set.
func valueParams(n int, named bool) string {
	params := make([]string, n)
	for i := range params {
		params[i] = "Value*"
		if named {
			params[i] += " " + slotVar("v", i)
		}
	}
	return strings.Join(params, ", ")
}

func slotVar(prefix string, slot int) string {
	return prefix + strconv.Itoa(slot)
}
