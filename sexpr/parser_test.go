package sexpr_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdgen/sexpr"
)

func syntaxError(err error) *sexpr.Error {
	var e *sexpr.Error
	Expect(errors.As(err, &e)).To(BeTrue(), "expected *sexpr.Error, got %v", err)
	return e
}

var _ = Describe("Parser", func() {
	It("should parse every top-level node", func() {
		nodes, err := sexpr.Parse(`foo "bar" 42 () []`)

		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(5))
		Expect(nodes[0]).To(Equal(&sexpr.Symbol{Value: "foo", Start: sexpr.Pos{Offset: 0, Line: 1, Col: 1}}))
		Expect(nodes[1].(*sexpr.String).Value).To(Equal("bar"))
		Expect(nodes[2].(*sexpr.Number).Value).To(Equal(42))
		Expect(nodes[3].(*sexpr.List).Bracket).To(Equal(sexpr.Paren))
		Expect(nodes[4].(*sexpr.List).Bracket).To(Equal(sexpr.Square))
	})

	It("should return no nodes for a comment-only file", func() {
		nodes, err := sexpr.Parse("; nothing here\n; at all\n")

		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(BeEmpty())
	})

	It("should build nested lists", func() {
		nodes, err := sexpr.Parse(`(define-insn "add" [(add (match_operand:i32 0 "reg"))] "add {0}")`)
		Expect(err).NotTo(HaveOccurred())
		Expect(nodes).To(HaveLen(1))

		insn := nodes[0].(*sexpr.List)
		Expect(insn.Len()).To(Equal(4))
		Expect(sexpr.IsSymbol(insn.Child(0), "define-insn")).To(BeTrue())
		Expect(insn.Child(4)).To(BeNil())

		container := insn.Child(2).(*sexpr.List)
		Expect(container.Bracket).To(Equal(sexpr.Square))

		pattern := container.Child(0).(*sexpr.List)
		Expect(sexpr.IsSymbol(pattern.Child(0), "add")).To(BeTrue())

		operand := pattern.Child(1).(*sexpr.List)
		Expect(sexpr.IsSymbol(operand.Child(0), "match_operand:i32")).To(BeTrue())
		Expect(operand.Child(1).(*sexpr.Number).Value).To(Equal(0))
		Expect(operand.Child(2).(*sexpr.String).Value).To(Equal("reg"))
	})

	Context("when the input is malformed", func() {
		It("should report a missing closing parenthesis", func() {
			_, err := sexpr.Parse("(add x")

			e := syntaxError(err)
			Expect(e.Kind).To(Equal(sexpr.SyntaxError))
			Expect(e.Expected).To(Equal("RParen"))
			Expect(e.Got).To(Equal(sexpr.EOF))
		})

		It("should report a mismatched closing delimiter", func() {
			_, err := sexpr.Parse("[add x)")

			e := syntaxError(err)
			Expect(e.Expected).To(Equal("RBracket"))
			Expect(e.Got).To(Equal(sexpr.RParen))
			Expect(e.Pos).To(Equal(sexpr.Pos{Offset: 6, Line: 1, Col: 7}))
			Expect(e.Error()).To(ContainSubstring("expected RBracket, instead got RParen ')'"))
		})

		It("should report a stray closing delimiter at the top level", func() {
			_, err := sexpr.Parse("(a) )")

			e := syntaxError(err)
			Expect(e.Expected).To(Equal("start of a node"))
			Expect(e.Got).To(Equal(sexpr.RParen))
		})

		It("should report numbers that do not fit", func() {
			_, err := sexpr.Parse("(x 99999999999999999999999)")

			e := syntaxError(err)
			Expect(e.Kind).To(Equal(sexpr.SyntaxError))
			Expect(e.Message).To(ContainSubstring("out of range"))
		})

		It("should pass lexical errors through", func() {
			_, err := sexpr.Parse("(a ?)")

			e := syntaxError(err)
			Expect(e.Kind).To(Equal(sexpr.LexicalError))
			Expect(e.Char).To(Equal('?'))
		})
	})
})
