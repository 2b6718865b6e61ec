// Package config holds the settings of a generator run: the command-line
// options and the target profile that shapes the generated C++.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_target.yaml
var defaultTargetYAML []byte

// Runtime names the helper functions the generated code calls. They belong
// to the downstream compiler runtime.
type Runtime struct {
	Stringify            string `yaml:"stringify"`
	Format               string `yaml:"format"`
	ClassPredicatePrefix string `yaml:"class_predicate_prefix"`
	ConstIntPredicate    string `yaml:"const_int_predicate"`
	TextStream           string `yaml:"text_stream"`
	Print                string `yaml:"print"`
	Error                string `yaml:"error"`
	ErrorLog             string `yaml:"error_log"`
	Unreachable          string `yaml:"unreachable"`
}

// Target describes the C++ surface the generator writes against.
type Target struct {
	RootNamespace    string            `yaml:"root_namespace"`
	MachineNamespace string            `yaml:"machine_namespace"`
	OpcodeType       string            `yaml:"opcode_type"`
	OpcodeBase       int               `yaml:"opcode_base"`
	HeaderIncludes   []string          `yaml:"header_includes"`
	SourceIncludes   []string          `yaml:"source_includes"`
	ForwardTypes     []string          `yaml:"forward_types"`
	BuiltinTypes     map[string]string `yaml:"builtin_types"`
	Runtime          Runtime           `yaml:"runtime"`
}

// DefaultTarget returns the built-in ARMv7 target.
func DefaultTarget() *Target {
	t := &Target{}
	if err := decodeTarget(bytes.NewReader(defaultTargetYAML), t); err != nil {
		panic(fmt.Sprintf("embedded default target is invalid: %v", err))
	}
	return t
}

// LoadTarget reads a YAML target profile from path. Keys present in the file
// override the defaults; builtin_types entries are merged into the default
// table.
func LoadTarget(path string) (*Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open target file: %w", err)
	}
	defer f.Close()

	t := DefaultTarget()
	if err := decodeTarget(f, t); err != nil {
		return nil, fmt.Errorf("target file %s: %w", path, err)
	}

	return t, nil
}

func decodeTarget(r io.Reader, t *Target) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return t.Validate()
}

// Validate checks that the profile can produce compilable output.
func (t *Target) Validate() error {
	switch {
	case t.RootNamespace == "":
		return errors.New("root_namespace must not be empty")
	case t.MachineNamespace == "":
		return errors.New("machine_namespace must not be empty")
	case t.OpcodeType == "":
		return errors.New("opcode_type must not be empty")
	case t.OpcodeBase < 0:
		return fmt.Errorf("opcode_base must not be negative, got %d", t.OpcodeBase)
	}

	return nil
}

// BuiltinType returns the runtime function that yields the builtin type for
// a declared operand type keyword.
func (t *Target) BuiltinType(keyword string) (string, bool) {
	fn, ok := t.BuiltinTypes[keyword]
	return fn, ok
}
