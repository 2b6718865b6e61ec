// Package api runs the generator pipeline over one machine description.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mdgen/codegen"
	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/diag"
	"github.com/sarchlab/mdgen/instr"
	"github.com/sarchlab/mdgen/printing"
	"github.com/sarchlab/mdgen/sexpr"
	"github.com/sarchlab/mdgen/verify"
)

// Driver runs the generator.
type Driver interface {
	// Run reads the source file and, depending on the options, dumps its
	// tokens, dumps its tree, or generates code from it. Problems in the
	// description are reported and returned as a diag.List. Nothing is
	// written if there is any problem.
	Run() error
}

type driverImpl struct {
	opts   config.Options
	target *config.Target
	fs     FileSystem
	stdout io.Writer
	stderr io.Writer
}

func (d *driverImpl) Run() error {
	src, err := d.fs.ReadFile(d.opts.SourceFile())
	if err != nil {
		return fmt.Errorf("failed to read machine description: %w", err)
	}

	slog.Info("read machine description", "file", d.opts.SourceFile())

	if d.opts.PrintTokens() {
		slog.Info("skipping parsing, dumping tokens")
		return d.printTokens(string(src))
	}

	nodes, err := sexpr.Parse(string(src))
	if err != nil {
		return d.fail(err)
	}

	slog.Info("parsing complete", "roots", len(nodes))

	if d.opts.PrintAST() {
		slog.Info("skipping codegen, dumping tree")
		return d.printAST(nodes)
	}

	docs, err := d.generate(nodes)
	if err != nil {
		return d.fail(err)
	}

	if !d.opts.ShouldGenerate() {
		slog.Info("no output directory given, skipping codegen", "output", d.opts.OutputDir())
		return nil
	}

	return d.write(docs)
}

// generate builds and lints the whole description before giving up, so that
// one run reports every problem.
func (d *driverImpl) generate(nodes []sexpr.Node) (*codegen.Documents, error) {
	set, issues := instr.NewBuilder().Build(nodes)
	issues.Append(verify.RunLint(set, d.target))
	if err := issues.Err(); err != nil {
		return nil, err
	}

	slog.Debug("built instruction set", "instructions", len(set.Insts),
		"public", len(set.Public()), "matching", len(set.Matching()))

	return codegen.NewGenerator(set, d.target, d.opts.SourceFile()).Generate()
}

func (d *driverImpl) write(docs *codegen.Documents) error {
	dir := d.opts.OutputDir()

	slog.Info("generating code", "dir", dir)

	if err := d.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name, content string
	}{
		{docs.HeaderName, docs.Header},
		{docs.SourceName, docs.Source},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		slog.Info("writing file", "path", path)

		if err := d.fs.WriteFile(path, []byte(f.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return nil
}

// fail reports description problems and passes other errors through.
func (d *driverImpl) fail(err error) error {
	issues, ok := diag.FromError(err)
	if !ok {
		return err
	}

	verify.WriteReport(d.stderr, d.opts.SourceFile(), issues)

	return issues
}

func (d *driverImpl) printTokens(src string) error {
	tokenTable := table.NewWriter()
	tokenTable.SetOutputMirror(d.stdout)
	tokenTable.AppendHeader(table.Row{"#", "Kind", "Text", "Position"})

	tokens, lexErr := sexpr.Tokenize(src)
	for i, tok := range tokens {
		if tok.Kind == sexpr.EOF {
			break
		}
		tokenTable.AppendRow(table.Row{i + 1, tok.Kind, tok.Text, tok.Pos})
	}

	tokenTable.Render()

	if lexErr != nil {
		return d.fail(lexErr)
	}

	return nil
}

func (d *driverImpl) printAST(nodes []sexpr.Node) error {
	ctx := printing.New(d.stdout)
	for _, n := range nodes {
		sexpr.Print(ctx, n)
		ctx.Newline()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to print tree: %w", err)
	}

	rootTable := table.NewWriter()
	rootTable.SetOutputMirror(d.stdout)
	rootTable.SetTitle(fmt.Sprintf("%d root node(s)", len(nodes)))
	rootTable.AppendHeader(table.Row{"#", "Form", "Position"})

	for i, n := range nodes {
		rootTable.AppendRow(table.Row{i + 1, formName(n), n.Pos()})
	}

	rootTable.Render()

	return nil
}

// formName names a root node by its head symbol when it has one.
func formName(n sexpr.Node) string {
	l, ok := n.(*sexpr.List)
	if !ok {
		return "(atom)"
	}

	head, ok := l.Child(0).(*sexpr.Symbol)
	if !ok {
		return l.Bracket.Open() + l.Bracket.Close()
	}

	name := head.Value
	if s, ok := l.Child(1).(*sexpr.String); ok && head.Value == instr.DefineInsn {
		name += " " + s.Value
	}

	return name
}

// IsDiagnostic reports whether err is a problem in the description rather
// than a failure of the run itself.
func IsDiagnostic(err error) bool {
	var issues diag.List
	return errors.As(err, &issues)
}
