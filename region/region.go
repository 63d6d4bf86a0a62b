// Package region implements the classical single-entry single-exit region
// test of spec.md §4.E: a worklist-based check stricter than a host compiler
// framework's built-in region analysis, because "exit = nil" (end of
// function) must post-dominate everything and the interval is half-open
// (exit itself is excluded).
package region

import (
	"github.com/archerbroler/fcd/dominator"
	"github.com/archerbroler/fcd/graph"
	"github.com/archerbroler/fcd/internal/worklist"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/postdom"
)

// IsRegion reports whether (entry, exit) bounds a classical SESE region:
// for every block b reachable from entry without passing through exit,
// entry dominates b and exit post-dominates b. exit == nil means "end of
// function", which post-dominates everything.
func IsRegion(domTree *dominator.Tree[*ir.BasicBlock], domGraph *graph.Graph[*ir.BasicBlock], postDomTree *postdom.Tree, entry, exit *ir.BasicBlock) bool {
	toVisit := worklist.NewQueue[*ir.BasicBlock]()
	toVisit.Push(domGraph.Node(entry))

	visited := worklist.NewQueue[*ir.BasicBlock]()
	visited.Push(domGraph.Node(exit))

	for !toVisit.Empty() {
		b := toVisit.Pop()
		if visited.Contains(b) {
			continue
		}

		if !domTree.Dominates(domGraph.Node(entry), b) {
			return false
		}
		if !postDomTree.Dominates(exit, b.Value) {
			return false
		}

		visited.Push(b)
		for _, succ := range domGraph.Successors(b) {
			if !visited.Contains(succ) {
				toVisit.Push(succ)
			}
		}
	}
	return true
}
