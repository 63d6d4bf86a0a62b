// Package reach implements the reaching-conditions builder of spec.md §4.F:
// a depth-first walk from a region's entry to its exit that accumulates,
// per node, a sum-of-products (DNF) Boolean formula over branch predicates.
// Grounded line-for-line on program_output.cpp's GraphSlice::build /
// ReachingConditions::build / buildReachingCondition, with the LinkedNode
// condition chain replaced by an explicit condition stack.
package reach

import (
	"fmt"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/grapher"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/stmt"
)

// Conditions maps each AST node reached within a region to its reaching
// condition in disjunctive normal form: the outer slice is OR, each inner
// slice is AND. An absent key or empty outer slice means "unreachable from
// entry without crossing exit"; an outer slice containing a single empty
// inner slice means "reached unconditionally".
type Conditions map[stmt.Statement][][]expr.Expression

// Build walks region (entry, exit) and returns the reaching condition of
// every node visited. exit may be nil (GraphNodeFromEntry(nil) is always
// nil), meaning the region runs to the end of the function.
func Build(g *grapher.Grapher, a *arena.Arena, entry, exit *grapher.GraphNode) (Conditions, error) {
	b := &builder{
		g:          g,
		a:          a,
		conditions: make(Conditions),
		onStack:    make(map[*grapher.GraphNode]bool),
		values:     make(map[*ir.Value]*expr.Value),
	}
	if exit != nil {
		b.onStack[exit] = true
	}
	if err := b.walk(entry); err != nil {
		return nil, err
	}
	return b.conditions, nil
}

type builder struct {
	g          *grapher.Grapher
	a          *arena.Arena
	conditions Conditions
	onStack    map[*grapher.GraphNode]bool
	condStack  []expr.Expression

	// values memoizes the *expr.Value wrapper built for each canonical
	// *ir.Value, so the same predicate tested at two different CondBr sites
	// (e.g. after a merge) shares one Expression pointer. cnf.Simplify and
	// structurer.openIf only coalesce by reference, never structurally.
	values map[*ir.Value]*expr.Value
}

// predicate returns the memoized *expr.Value for v, allocating and caching
// one on first use.
func (b *builder) predicate(v *ir.Value) *expr.Value {
	if cond, ok := b.values[v]; ok {
		return cond
	}
	cond := expr.NewValue(b.a, v)
	b.values[v] = cond
	return cond
}

func (b *builder) walk(n *grapher.GraphNode) error {
	if n == nil || b.onStack[n] {
		// Cuts back edges and the exit, per spec §4.F step 1.
		return nil
	}

	b.onStack[n] = true
	defer delete(b.onStack, n)

	term := make([]expr.Expression, len(b.condStack))
	copy(term, b.condStack)
	b.conditions[n.AST] = append(b.conditions[n.AST], term)

	if n.Collapsed() {
		// A structured subregion contributes no extra predicate; it is
		// entered sequentially.
		return b.walk(b.g.GraphNodeFromEntry(n.Exit))
	}

	switch t := n.Entry.Terminator.(type) {
	case *ir.CondBr:
		cond := b.predicate(t.Cond)
		if err := b.pushAndWalk(cond, t.True); err != nil {
			return err
		}
		negCond := expr.LogicalNegate(b.a, cond)
		if err := b.pushAndWalk(negCond, t.False); err != nil {
			return err
		}
	case *ir.Br:
		return b.walk(b.g.GraphNodeFromEntry(t.Succ))
	case *ir.Ret:
		// Terminal sink; no successors to recurse into.
	case *ir.Switch:
		return fmt.Errorf("reach: block %q: %w", n.Entry.Name, ir.ErrUnsupportedTerminator)
	default:
		return fmt.Errorf("reach: block %q: %w", n.Entry.Name, ir.ErrUnsupportedTerminator)
	}
	return nil
}

func (b *builder) pushAndWalk(cond expr.Expression, succ *ir.BasicBlock) error {
	b.condStack = append(b.condStack, cond)
	err := b.walk(b.g.GraphNodeFromEntry(succ))
	b.condStack = b.condStack[:len(b.condStack)-1]
	return err
}
