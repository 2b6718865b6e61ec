// Package printing provides the indented text emitter shared by the tree
// printer and the code generator.
package printing

import (
	"io"
	"strings"
)

// Context tracks an indent depth and writes indented text either into an
// in-memory buffer or straight through to a writer.
type Context struct {
	indent int

	buf *strings.Builder
	w   io.Writer
	err error
}

// NewBuffered creates a context that collects everything it prints. Use
// String to get the result.
func NewBuffered() *Context {
	buf := &strings.Builder{}
	return &Context{buf: buf, w: buf}
}

// New creates a context that passes everything through to w.
func New(w io.Writer) *Context {
	return &Context{w: w}
}

// IncreaseIndent moves the indent n levels deeper.
func (c *Context) IncreaseIndent(n int) {
	c.indent += n
}

// DecreaseIndent moves the indent n levels back. The depth never goes below
// zero.
func (c *Context) DecreaseIndent(n int) {
	c.indent -= n
	if c.indent < 0 {
		c.indent = 0
	}
}

// Print writes s as is.
func (c *Context) Print(s string) {
	if c.err != nil {
		return
	}

	_, c.err = io.WriteString(c.w, s)
}

// Newline ends the current line.
func (c *Context) Newline() {
	c.Print("\n")
}

// PrintLine writes s followed by a newline, without indenting.
func (c *Context) PrintLine(s string) {
	c.Print(s)
	c.Newline()
}

// PrintIndent writes the current indent and nothing else.
func (c *Context) PrintIndent() {
	c.Print(strings.Repeat("\t", c.indent))
}

// PrintIndented writes the current indent followed by s, leaving the line
// open.
func (c *Context) PrintIndented(s string) {
	c.PrintIndent()
	c.Print(s)
}

// PrintIndentedLine writes s on its own line at the current indent.
func (c *Context) PrintIndentedLine(s string) {
	c.PrintIndent()
	c.PrintLine(s)
}

// PrintIndentedLineThenIndent writes s and indents everything that follows.
// It opens a block.
func (c *Context) PrintIndentedLineThenIndent(s string) {
	c.PrintIndentedLine(s)
	c.IncreaseIndent(1)
}

// PrintIndentedLineAfterUnindent steps one level back and writes s. It
// closes a block opened with PrintIndentedLineThenIndent.
func (c *Context) PrintIndentedLineAfterUnindent(s string) {
	c.DecreaseIndent(1)
	c.PrintIndentedLine(s)
}

// String returns the buffered text. A pass-through context has no buffer and
// returns an empty string.
func (c *Context) String() string {
	if c.buf == nil {
		return ""
	}

	return c.buf.String()
}

// Err returns the first error the underlying writer reported.
func (c *Context) Err() error {
	return c.err
}
