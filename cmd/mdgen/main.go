// Command mdgen generates the instruction selection and emission code of a
// compiler backend from a machine description file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/mdgen/api"
	"github.com/sarchlab/mdgen/config"
)

type flags struct {
	printTokens bool
	printAST    bool
	outputDir   string
	targetFile  string
	verbose     bool
	logJSON     bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "mdgen source-file",
		Short: "Machine description code generator",
		Long: `Mdgen reads a machine description, a list of define-insn forms, and
writes <stem>-md.h and <stem>-md.cpp into the output directory. The
generated code declares one opcode and one factory per instruction, and
defines the functions that select, name and print machine instructions.

Without --output the description is only checked.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f, args[0])
		},
	}

	cmd.Flags().BoolVar(&f.printTokens, "print-tokens", false, "dump the token stream and exit")
	cmd.Flags().BoolVar(&f.printAST, "print-ast", false, "dump the parsed tree and exit")
	cmd.Flags().StringVar(&f.outputDir, "output", "", "directory to write the generated files to")
	cmd.Flags().StringVar(&f.targetFile, "target", "", "YAML target profile overriding the built-in one")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every generation step")
	cmd.Flags().BoolVar(&f.logJSON, "log-json", false, "write logs as JSON")

	return cmd
}

func run(f *flags, sourceFile string) error {
	opts := config.NewOptions(sourceFile,
		config.WithPrintTokens(f.printTokens),
		config.WithPrintAST(f.printAST),
		config.WithOutputDir(f.outputDir),
		config.WithTargetFile(f.targetFile),
		config.WithVerbose(f.verbose),
		config.WithLogJSON(f.logJSON),
	)

	config.SetupLogger(os.Stderr, opts)

	target := config.DefaultTarget()
	if opts.TargetFile() != "" {
		var err error
		target, err = config.LoadTarget(opts.TargetFile())
		if err != nil {
			return err
		}
		slog.Info("loaded target profile", "file", opts.TargetFile(),
			"namespace", target.MachineNamespace)
	}

	driver := api.DriverBuilder{}.
		WithOptions(opts).
		WithTarget(target).
		Build()

	return driver.Run()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if api.IsDiagnostic(err) {
			slog.Error("machine description has errors, no files written")
		} else {
			fmt.Fprintln(os.Stderr, "mdgen:", err)
		}
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
