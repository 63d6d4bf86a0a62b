// Package printer implements the pretty-printer of spec.md §6: a walk over
// the structured AST that emits textual C-like output. Grounded on
// primitive.go's Stringer idiom, generalized from a single enum to a full
// statement/expression tree walk.
package printer

import (
	"fmt"
	"strings"

	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/stmt"
)

// Print renders s as C-like text.
func Print(s stmt.Statement) string {
	var sb strings.Builder
	p := &printer{sb: &sb}
	p.statement(s, 0)
	return sb.String()
}

type printer struct {
	sb *strings.Builder
}

func (p *printer) indent(depth int) {
	p.sb.WriteString(strings.Repeat("    ", depth))
}

func (p *printer) statement(s stmt.Statement, depth int) {
	switch n := s.(type) {
	case *stmt.Sequence:
		for _, child := range n.Children {
			p.statement(child, depth)
		}
	case *stmt.IfElse:
		p.indent(depth)
		fmt.Fprintf(p.sb, "if (%s) {\n", expression(n.Cond))
		p.statement(n.Then, depth+1)
		p.indent(depth)
		p.sb.WriteString("}")
		if n.Else != nil {
			p.sb.WriteString(" else {\n")
			p.statement(n.Else, depth+1)
			p.indent(depth)
			p.sb.WriteString("}")
		}
		p.sb.WriteString("\n")
	case *stmt.Loop:
		switch n.Position {
		case stmt.Endless:
			p.indent(depth)
			p.sb.WriteString("while (true) {\n")
			p.statement(n.Body, depth+1)
			p.indent(depth)
			p.sb.WriteString("}\n")
		case stmt.PreTested:
			p.indent(depth)
			fmt.Fprintf(p.sb, "while (%s) {\n", expression(n.Cond))
			p.statement(n.Body, depth+1)
			p.indent(depth)
			p.sb.WriteString("}\n")
		case stmt.PostTested:
			p.indent(depth)
			p.sb.WriteString("do {\n")
			p.statement(n.Body, depth+1)
			p.indent(depth)
			fmt.Fprintf(p.sb, "} while (%s);\n", expression(n.Cond))
		}
	case *stmt.ExprStmt:
		p.indent(depth)
		fmt.Fprintf(p.sb, "%s;\n", expression(n.E))
	default:
		// stmt.Break is the only remaining variant: a process-wide singleton
		// with no fields to print.
		p.indent(depth)
		p.sb.WriteString("break;\n")
	}
}

// expression renders e as C-like text, parenthesizing a binary operand
// whose own operator differs from its parent's.
func expression(e stmt.Expr) string {
	switch n := e.(type) {
	case *expr.Value:
		return fmt.Sprintf("%v", n.V)
	case *expr.Unary:
		return fmt.Sprintf("!%s", parenthesize(n.Operand, ""))
	case *expr.Binary:
		return fmt.Sprintf("%s %s %s", parenthesize(n.Left, n.Op.String()), n.Op, parenthesize(n.Right, n.Op.String()))
	default:
		return "<nil>"
	}
}

func parenthesize(e stmt.Expr, parentOp string) string {
	b, ok := e.(*expr.Binary)
	if !ok || b.Op.String() == parentOp {
		return expression(e)
	}
	return fmt.Sprintf("(%s)", expression(e))
}
