package verify

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/mdgen/diag"
)

// WriteReport writes every issue as a table row followed by a count per
// category.
func WriteReport(w io.Writer, source string, issues diag.List) {
	if len(issues) == 0 {
		fmt.Fprintf(w, "%s: no issues found\n", source)
		return
	}

	issueTable := table.NewWriter()
	issueTable.SetOutputMirror(w)
	issueTable.SetTitle(fmt.Sprintf("%s: %d issue(s)", source, len(issues)))
	issueTable.AppendHeader(table.Row{"#", "Category", "Instruction", "Position", "Message"})

	for i, issue := range issues {
		pos := "-"
		if issue.Pos.Line > 0 {
			pos = issue.Pos.String()
		}

		insn := issue.Instruction
		if insn == "" {
			insn = "-"
		}

		issueTable.AppendRow(table.Row{i + 1, issue.Category, insn, pos, issue.Message})
	}

	issueTable.AppendFooter(table.Row{"", "", "", "",
		fmt.Sprintf("%d lexical, %d syntax, %d semantic",
			issues.Count(diag.Lexical), issues.Count(diag.Syntax), issues.Count(diag.Semantic))})

	issueTable.Render()
}
