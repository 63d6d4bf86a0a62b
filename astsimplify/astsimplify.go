// Package astsimplify implements the AST simplifier of spec.md §4.J: a
// bottom-up rewriter that flattens sequences, rotates negated conditions,
// folds else-less nested ifs, and recognizes do-while loops. Grounded on
// primitive.go's PrimitiveKind classification idiom and structure.go's
// bottom-up statement rewriting, generalized to the reaching-condition AST.
package astsimplify

import (
	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/stmt"
)

// Simplify recursively rewrites s per spec §4.J and returns the simplified
// statement (which may differ in type from s, e.g. a single-child Sequence
// collapsing to its child).
func Simplify(a *arena.Arena, s stmt.Statement) stmt.Statement {
	switch n := s.(type) {
	case *stmt.Sequence:
		return simplifySequence(a, n)
	case *stmt.IfElse:
		return simplifyIfElse(a, n)
	case *stmt.Loop:
		return simplifyLoop(a, n)
	default:
		return s
	}
}

func simplifySequence(a *arena.Arena, seq *stmt.Sequence) stmt.Statement {
	var flat []stmt.Statement
	for _, child := range seq.Children {
		simplified := Simplify(a, child)
		if inner, ok := simplified.(*stmt.Sequence); ok {
			flat = append(flat, inner.Children...)
		} else {
			flat = append(flat, simplified)
		}
	}
	seq.Children = flat

	if len(seq.Children) == 1 {
		return seq.Children[0]
	}
	return seq
}

func simplifyIfElse(a *arena.Arena, n *stmt.IfElse) stmt.Statement {
	for {
		u, ok := n.Cond.(*expr.Unary)
		if !ok || u.Op != expr.OpLogicalNegate || n.Else == nil {
			break
		}
		n.Cond = u.Operand
		n.Then, n.Else = n.Else, n.Then
	}

	n.Then = Simplify(a, n.Then)
	if n.Else != nil {
		n.Else = Simplify(a, n.Else)
	}

	if n.Else == nil {
		if folded := foldTrailingIf(a, n); folded != nil {
			return Simplify(a, folded)
		}
	}
	return n
}

// foldTrailingIf folds an else-less IfElse whose Then's last statement is
// itself an else-less IfElse into a single && condition: the statements
// preceding the inner if stay where they are, and the inner if's Then is
// spliced in as the new trailing statement. Covers both "Then is just the
// inner if" and "the inner if trails other statements in Then" (spec's
// nested-if-without-else scenario, where an earlier statement shares the
// outer condition and a later one needs both).
func foldTrailingIf(a *arena.Arena, n *stmt.IfElse) *stmt.IfElse {
	var prefix []stmt.Statement
	last := n.Then
	if seq, ok := n.Then.(*stmt.Sequence); ok {
		if len(seq.Children) == 0 {
			return nil
		}
		prefix = seq.Children[:len(seq.Children)-1]
		last = seq.Children[len(seq.Children)-1]
	}

	inner, ok := last.(*stmt.IfElse)
	if !ok || inner.Else != nil {
		return nil
	}

	newThen := stmt.NewSequence(a)
	for _, s := range prefix {
		newThen.Append(s)
	}
	newThen.Append(inner.Then)
	return stmt.NewIfElse(a, expr.Coalesce(a, expr.ShortCircuitAnd, n.Cond, inner.Cond), newThen)
}

func simplifyLoop(a *arena.Arena, n *stmt.Loop) stmt.Statement {
	n.Body = Simplify(a, n.Body)

	for n.Position == stmt.Endless {
		seq, ok := n.Body.(*stmt.Sequence)
		if !ok || len(seq.Children) == 0 {
			break
		}
		brk, ok := seq.Last().(*stmt.IfElse)
		if !ok || brk.Else != nil || brk.Then != stmt.Break {
			break
		}

		seq.Children = seq.Children[:len(seq.Children)-1]
		body := stmt.Statement(seq)
		if len(seq.Children) == 1 {
			body = seq.Children[0]
		}
		n = stmt.NewLoop(a, body, expr.LogicalNegate(a, brk.Cond), stmt.PostTested)
	}
	return n
}
