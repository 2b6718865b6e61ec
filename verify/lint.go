// Package verify checks an instruction set for problems that would make the
// generated code wrong, and renders the problems found as a report.
package verify

import (
	"fmt"
	"regexp"

	"github.com/sarchlab/mdgen/config"
	"github.com/sarchlab/mdgen/diag"
	"github.com/sarchlab/mdgen/instr"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RunLint performs the static checks that need the whole instruction set
// or the target profile. The builder has already checked the shape of each
// declaration. Returns every issue found, or an empty list.
func RunLint(set *instr.Set, target *config.Target) diag.List {
	var issues diag.List

	issues.Append(checkNames(set))

	for _, insn := range set.Insts {
		issues.Append(checkTypes(insn, target))
		issues.Append(checkPlaceholders(insn))
		issues.Append(checkDelegate(insn))
	}

	return issues
}

// checkNames rejects duplicate names and names that would produce clashing
// or invalid C++ identifiers.
func checkNames(set *instr.Set) diag.List {
	var issues diag.List

	byName := make(map[string]*instr.Inst)
	byIdentifier := make(map[string]*instr.Inst)

	for _, insn := range set.Insts {
		if prev, exists := byName[insn.Name]; exists {
			issues.Add(diag.Issue{
				Category:    diag.Semantic,
				Instruction: insn.Name,
				Pos:         insn.Pos,
				Message:     fmt.Sprintf("duplicate instruction name, first declared at %s", prev.Pos),
				Details:     map[string]interface{}{"first": prev.Pos.String()},
			})
			continue
		}
		byName[insn.Name] = insn

		if insn.IsExpansionOnly() {
			continue
		}

		if !identifierPattern.MatchString(insn.Name) {
			issues.Addf(insn.Name, insn.Pos,
				"instruction name %q is not a valid identifier", insn.Name)
			continue
		}

		id := insn.Identifier()
		if prev, exists := byIdentifier[id]; exists {
			issues.Add(diag.Issue{
				Category:    diag.Semantic,
				Instruction: insn.Name,
				Pos:         insn.Pos,
				Message:     fmt.Sprintf("identifier %s is already used by instruction %q", id, prev.Name),
				Details:     map[string]interface{}{"identifier": id, "other": prev.Name},
			})
			continue
		}
		byIdentifier[id] = insn
	}

	return issues
}

func checkTypes(insn *instr.Inst, target *config.Target) diag.List {
	var issues diag.List
	if !insn.IsMatching() {
		return issues
	}

	for _, op := range insn.Template.Operands {
		typ := op.DeclaredType()
		if typ == instr.Wildcard {
			continue
		}
		if _, ok := target.BuiltinType(typ); !ok {
			issues.Add(diag.Issue{
				Category:    diag.Semantic,
				Instruction: insn.Name,
				Pos:         op.Pos(),
				Message:     fmt.Sprintf("unknown operand type %q", typ),
				Details:     map[string]interface{}{"type": typ},
			})
		}
	}

	return issues
}

// checkPlaceholders makes sure every {N} of the output has exactly one
// operand to take its value from.
func checkPlaceholders(insn *instr.Inst) diag.List {
	var issues diag.List

	slots := insn.Placeholders()
	for want, got := range slots {
		if want != got {
			issues.Add(diag.Issue{
				Category:    diag.Semantic,
				Instruction: insn.Name,
				Pos:         insn.Pos,
				Message:     "output placeholders must be numbered from {0} without gaps",
				Details:     map[string]interface{}{"placeholders": slots},
			})
			return issues
		}
	}

	if !insn.IsMatching() || insn.Mode() == instr.Delegate {
		return issues
	}

	bound := make(map[int]instr.Binding)
	for _, b := range insn.Template.BindingsBySlot() {
		if first, exists := bound[b.Slot]; exists {
			issues.Addf(insn.Name, b.Pos(),
				"slot %d is bound twice, by operands %d and %d", b.Slot, first.Position, b.Position)
			continue
		}
		bound[b.Slot] = b
	}

	for _, slot := range slots {
		if _, ok := bound[slot]; !ok {
			issues.Add(diag.Issue{
				Category:    diag.Semantic,
				Instruction: insn.Name,
				Pos:         insn.Template.Start,
				Message:     fmt.Sprintf("placeholder {%d} has no match_operand", slot),
				Details:     map[string]interface{}{"slot": slot},
			})
		}
	}

	return issues
}

func checkDelegate(insn *instr.Inst) diag.List {
	var issues diag.List

	if insn.Mode() == instr.Delegate {
		if name := insn.DelegateName(); !identifierPattern.MatchString(name) {
			issues.Addf(insn.Name, insn.Pos,
				"expansion function %q is not a valid identifier", name)
		}
		return issues
	}

	if insn.IsExpansionOnly() && insn.IsMatching() {
		issues.Addf(insn.Name, insn.Pos,
			"expansion-only instruction must delegate with *<function>, it has no factory")
	}

	return issues
}
