// Package structurer implements the region structurer of spec.md §4.H:
// given a region's reaching conditions, walk it in reverse post-order and
// nest each node under `if`s matching its condition, coalescing with
// whatever `if` is already open when the conditions agree. Grounded on
// structure.go's StructureCFG, generalized from its interval-collapsing walk
// to the reaching-condition-driven nesting the spec requires.
package structurer

import (
	"fmt"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/cnf"
	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/grapher"
	"github.com/archerbroler/fcd/reach"
	"github.com/archerbroler/fcd/stmt"
)

// StructurizeRegion builds (entry, exit)'s reaching conditions, walks the
// region in reverse post-order, and returns the structured Sequence.
func StructurizeRegion(g *grapher.Grapher, a *arena.Arena, entry, exit *grapher.GraphNode) (*stmt.Sequence, error) {
	conditions, err := reach.Build(g, a, entry, exit)
	if err != nil {
		return nil, err
	}

	order := reversePostOrder(g, entry, exit)

	s := stmt.NewSequence(a)
	for _, n := range order {
		products, ok := conditions[n.AST]
		if !ok {
			return nil, fmt.Errorf("structurer: node %v has no reaching condition", n.AST)
		}

		sums := cnf.Simplify(products)
		body := s
		for _, sum := range sums {
			cond := foldOr(a, sum)
			body = openIf(a, body, cond)
		}
		body.Append(n.AST)
	}
	return s, nil
}

// reversePostOrder computes the reverse post-order of nodes reachable from
// entry within the region bounded by exit, using the grapher's child
// iteration (which already respects collapsed subregions). The visited set
// is seeded with exit so traversal halts there.
func reversePostOrder(g *grapher.Grapher, entry, exit *grapher.GraphNode) []*grapher.GraphNode {
	visited := make(map[*grapher.GraphNode]bool)
	if exit != nil {
		visited[exit] = true
	}

	var post []*grapher.GraphNode
	var visit func(n *grapher.GraphNode)
	visit = func(n *grapher.GraphNode) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		for _, child := range g.Children(n) {
			visit(child)
		}
		post = append(post, n)
	}
	visit(entry)

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// foldOr collapses a CNF sum (a slice of factors meant to be OR'd together)
// to a single Expression via left-fold of ShortCircuitOr.
func foldOr(a *arena.Arena, sum []expr.Expression) expr.Expression {
	var acc expr.Expression
	for _, factor := range sum {
		acc = expr.Coalesce(a, expr.ShortCircuitOr, acc, factor)
	}
	return acc
}

// openIf finds or creates the IfElse body that sum should be nested under,
// given the sequence currently being appended to, per spec §4.H step 4's
// coalescing rule.
func openIf(a *arena.Arena, body *stmt.Sequence, cond expr.Expression) *stmt.Sequence {
	if last, ok := body.Last().(*stmt.IfElse); ok {
		if match, inverted := expr.EqualUpToOneNegation(last.Cond, cond); match {
			if !inverted {
				if then, ok := last.Then.(*stmt.Sequence); ok {
					return then
				}
			} else {
				if last.Else == nil {
					last.Else = stmt.NewSequence(a)
				}
				if els, ok := last.Else.(*stmt.Sequence); ok {
					return els
				}
			}
		}
	}

	ifBody := stmt.NewSequence(a)
	body.Append(stmt.NewIfElse(a, cond, ifBody))
	return ifBody
}

