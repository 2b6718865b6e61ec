package config

import "strings"

// Options is the immutable configuration of one generator run.
type Options struct {
	sourceFile  string
	printTokens bool
	printAST    bool
	outputDir   string
	targetFile  string
	verbose     bool
	logJSON     bool
}

// Option sets one field of Options.
type Option func(*Options)

// WithPrintTokens makes the run dump the token stream and stop.
func WithPrintTokens(on bool) Option {
	return func(o *Options) { o.printTokens = on }
}

// WithPrintAST makes the run dump the parsed tree and stop.
func WithPrintAST(on bool) Option {
	return func(o *Options) { o.printAST = on }
}

// WithOutputDir sets the directory the generated files go to.
func WithOutputDir(dir string) Option {
	return func(o *Options) { o.outputDir = dir }
}

// WithTargetFile sets a YAML target profile to use instead of the default.
func WithTargetFile(path string) Option {
	return func(o *Options) { o.targetFile = path }
}

// WithVerbose enables trace logging.
func WithVerbose(on bool) Option {
	return func(o *Options) { o.verbose = on }
}

// WithLogJSON switches log output to JSON.
func WithLogJSON(on bool) Option {
	return func(o *Options) { o.logJSON = on }
}

// NewOptions creates the options for generating from sourceFile.
func NewOptions(sourceFile string, opts ...Option) Options {
	o := Options{sourceFile: sourceFile}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) SourceFile() string { return o.sourceFile }
func (o Options) PrintTokens() bool  { return o.printTokens }
func (o Options) PrintAST() bool     { return o.printAST }
func (o Options) OutputDir() string  { return o.outputDir }
func (o Options) TargetFile() string { return o.targetFile }
func (o Options) Verbose() bool      { return o.verbose }
func (o Options) LogJSON() bool      { return o.logJSON }

// ShouldGenerate reports whether an output directory was given.
func (o Options) ShouldGenerate() bool {
	return strings.TrimSpace(o.outputDir) != ""
}
