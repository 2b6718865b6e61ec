// Package instr models the instructions declared by a machine description.
package instr

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sarchlab/mdgen/sexpr"
)

// OutputMode is the way an instruction's output format is interpreted.
type OutputMode int

const (
	// Templated output substitutes operands into {N} placeholders.
	Templated OutputMode = iota
	// Literal output is written as is.
	Literal
	// Delegate output hands expansion to an external function.
	Delegate
)

func (m OutputMode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Delegate:
		return "delegate"
	default:
		return "templated"
	}
}

// Inst is one define-insn declaration.
type Inst struct {
	Name         string
	OutputFormat string
	// Template is nil for a non-matching instruction, one that is emitted
	// but never selected automatically.
	Template *Template
	Pos      sexpr.Pos
}

// IsExpansionOnly reports whether the instruction only exists for
// selection. It gets no opcode and no factory.
func (i *Inst) IsExpansionOnly() bool {
	return strings.HasPrefix(i.Name, "$")
}

// IsMatching reports whether the instruction takes part in selection.
func (i *Inst) IsMatching() bool {
	return i.Template != nil
}

// Mode classifies the output format by its leading character and content.
func (i *Inst) Mode() OutputMode {
	switch {
	case strings.HasPrefix(i.OutputFormat, "*"):
		return Delegate
	case strings.HasPrefix(i.OutputFormat, "@"):
		return Literal
	case len(Placeholders(i.OutputFormat)) == 0:
		return Literal
	default:
		return Templated
	}
}

// DelegateName returns the function a delegating instruction hands its
// expansion to.
func (i *Inst) DelegateName() string {
	if i.Mode() != Delegate {
		return ""
	}
	return strings.TrimSpace(i.OutputFormat[1:])
}

// Placeholders returns the distinct slot indices referenced by the output
// format, in ascending order. Literal and delegating formats reference
// none.
func (i *Inst) Placeholders() []int {
	if i.Mode() != Templated {
		return nil
	}
	return Placeholders(i.OutputFormat)
}

// Arity is the number of operands of the machine instruction, and so of
// its factory function.
func (i *Inst) Arity() int {
	return len(i.Placeholders())
}

// OutputLines splits the output format into lines for emission. Each line
// is trimmed and empty lines are dropped. Literal lines lose a leading '@'.
func (i *Inst) OutputLines() []string {
	literal := i.Mode() == Literal

	var lines []string
	for _, line := range strings.Split(i.OutputFormat, "\n") {
		line = strings.TrimSpace(line)
		if literal {
			line = strings.TrimPrefix(line, "@")
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// Identifier is the C++ name derived from the instruction name.
func (i *Inst) Identifier() string {
	return Capitalise(i.Name)
}

// Capitalise upper-cases the first character of s if it is not upper case
// already. Nothing else changes.
func Capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Placeholders returns the distinct N of every {N} in format, where N is a
// single decimal digit, in ascending order.
func Placeholders(format string) []int {
	seen := map[int]bool{}
	for i := 0; i+2 < len(format); i++ {
		if format[i] == '{' && format[i+1] >= '0' && format[i+1] <= '9' && format[i+2] == '}' {
			seen[int(format[i+1]-'0')] = true
		}
	}

	slots := make([]int, 0, len(seen))
	for slot := range seen {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	return slots
}

// Set is the ordered instruction list of one machine description.
type Set struct {
	Insts []*Inst
}

// Public returns the instructions that get an opcode, a name and a factory,
// in declaration order, together with their declaration index.
func (s *Set) Public() []IndexedInst {
	var out []IndexedInst
	for idx, insn := range s.Insts {
		if !insn.IsExpansionOnly() {
			out = append(out, IndexedInst{Index: idx, Inst: insn})
		}
	}
	return out
}

// Matching returns the instructions that take part in selection, in
// declaration order.
func (s *Set) Matching() []*Inst {
	var out []*Inst
	for _, insn := range s.Insts {
		if insn.IsMatching() {
			out = append(out, insn)
		}
	}
	return out
}

// DelegateFunctions returns every external expansion function, each once,
// in order of first use.
func (s *Set) DelegateFunctions() []string {
	seen := map[string]bool{}

	var out []string
	for _, insn := range s.Insts {
		name := insn.DelegateName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}

	return out
}

// IndexedInst pairs an instruction with its position in the declaration
// order.
type IndexedInst struct {
	Index int
	*Inst
}
