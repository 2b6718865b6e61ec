// Package diag collects the problems found in a machine description.
//
// Every stage of the pipeline reports through Issue values. Lexical and
// syntax problems stop parsing at the first one; semantic problems are
// gathered across the whole file so that one run shows all of them.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/mdgen/sexpr"
)

// Category classifies an issue.
type Category string

const (
	Lexical  Category = "LEXICAL"  // Unrecognized character, unterminated literal
	Syntax   Category = "SYNTAX"   // Wrong token where another was required
	Semantic Category = "SEMANTIC" // Malformed declaration, unknown type, bad slot
)

// Issue is a single problem in the input.
type Issue struct {
	Category    Category
	Instruction string // Instruction name, empty if not applicable
	Pos         sexpr.Pos
	Message     string
	Details     map[string]interface{}
}

func (i Issue) String() string {
	var sb strings.Builder

	sb.WriteString(string(i.Category))
	if i.Pos.Line > 0 {
		fmt.Fprintf(&sb, " %s", i.Pos)
	}
	if i.Instruction != "" {
		fmt.Fprintf(&sb, " [%s]", i.Instruction)
	}
	sb.WriteString(": ")
	sb.WriteString(i.Message)

	return sb.String()
}

// List is an ordered collection of issues. A non-empty List is an error.
type List []Issue

// Add appends an issue.
func (l *List) Add(issue Issue) {
	*l = append(*l, issue)
}

// Addf appends a semantic issue for the named instruction.
func (l *List) Addf(insn string, pos sexpr.Pos, format string, args ...any) {
	l.Add(Issue{
		Category:    Semantic,
		Instruction: insn,
		Pos:         pos,
		Message:     fmt.Sprintf(format, args...),
	})
}

// Append adds every issue of other.
func (l *List) Append(other List) {
	*l = append(*l, other...)
}

// Err returns the list as an error, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no issues"
	case 1:
		return l[0].String()
	}

	lines := make([]string, 0, len(l)+1)
	lines = append(lines, fmt.Sprintf("%d issues:", len(l)))
	for _, issue := range l {
		lines = append(lines, "  "+issue.String())
	}
	return strings.Join(lines, "\n")
}

// Count returns the number of issues in the given category.
func (l List) Count(c Category) int {
	n := 0
	for _, issue := range l {
		if issue.Category == c {
			n++
		}
	}
	return n
}

// FromError turns a lexer or parser error, or a List, into issues. Other
// errors are not diagnostics and yield false.
func FromError(err error) (List, bool) {
	var list List
	if errors.As(err, &list) {
		return list, true
	}

	var syntaxErr *sexpr.Error
	if !errors.As(err, &syntaxErr) {
		return nil, false
	}

	issue := Issue{
		Category: Syntax,
		Pos:      syntaxErr.Pos,
		Message:  syntaxErr.Message,
		Details:  map[string]interface{}{},
	}
	if syntaxErr.Kind == sexpr.LexicalError {
		issue.Category = Lexical
		issue.Details["char"] = string(syntaxErr.Char)
	} else {
		issue.Details["expected"] = syntaxErr.Expected
		issue.Details["got"] = syntaxErr.Got.String()
	}

	return List{issue}, true
}
