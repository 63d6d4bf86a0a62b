// Package loopdriver implements the loop driver of spec.md §4.I: back-edge
// discovery and the per-function driving loop that walks the post-dominator
// tree, deciding at each step whether a discovered region is a loop body or
// a plain region, and structuring it accordingly. Grounded on structure.go's
// StructureCFG driving loop (findLatch/findLoopKind/findLoopFollow pipeline
// over post-order blocks), generalized to the region-based algorithm.
package loopdriver

import (
	"fmt"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/astsimplify"
	"github.com/archerbroler/fcd/dominator"
	"github.com/archerbroler/fcd/grapher"
	"github.com/archerbroler/fcd/graph"
	"github.com/archerbroler/fcd/internal/worklist"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/postdom"
	"github.com/archerbroler/fcd/region"
	"github.com/archerbroler/fcd/stmt"
	"github.com/archerbroler/fcd/structurer"
)

// Run structures fn's entire control flow and returns the resulting AST for
// fn's entry block.
func Run(a *arena.Arena, g *grapher.Grapher, fn *ir.Function) (stmt.Statement, error) {
	domGraph := fn.Graph()
	domTree := dominator.New(domGraph, domGraph.Node(fn.Entry))
	postDomTree := postdom.New(fn)
	backEdges := discoverBackEdges(domGraph, fn)

	for _, entry := range fn.PostOrder() {
		g.AddBasicBlock(entry)

		// The shortcut node under consideration starts at entry itself and
		// advances to each successive exit, so that once a sub-region has
		// collapsed, the walk skips straight over its internals. entry stays
		// fixed: every step re-structures the region from entry out to a
		// progressively larger exit, overwriting the smaller result.
		node := g.GraphNodeFromEntry(entry)
		for {
			exitBlock := postDomTree.IDom(node.Exit)

			if region.IsRegion(domTree, domGraph, postDomTree, entry, exitBlock) {
				if backEdges[entry] {
					if err := structureLoop(a, g, entry, exitBlock); err != nil {
						return nil, err
					}
					delete(backEdges, entry)
				} else if err := structureRegion(a, g, entry, exitBlock); err != nil {
					return nil, err
				}
			}

			if exitBlock == nil {
				break
			}
			if !domTree.Dominates(domGraph.Node(entry), domGraph.Node(exitBlock)) {
				break
			}
			node = g.GraphNodeFromEntry(exitBlock)
		}
	}

	return g.GraphNodeFromEntry(fn.Entry).AST, nil
}

// discoverBackEdges runs a recursive DFS from fn.Entry maintaining path as
// the current root-to-node stack; an edge u→v where v is still on path
// contributes v to the returned set.
func discoverBackEdges(domGraph *graph.Graph[*ir.BasicBlock], fn *ir.Function) map[*ir.BasicBlock]bool {
	visited := make(map[*ir.BasicBlock]bool)
	dests := make(map[*ir.BasicBlock]bool)
	path := worklist.NewStack[*ir.BasicBlock]()

	var dfs func(n *graph.Node[*ir.BasicBlock])
	dfs = func(n *graph.Node[*ir.BasicBlock]) {
		visited[n.Value] = true
		path.Push(n)
		for _, succ := range domGraph.Successors(n) {
			if path.Contains(succ) {
				dests[succ.Value] = true
				continue
			}
			if !visited[succ.Value] {
				dfs(succ)
			}
		}
		path.Pop()
	}
	dfs(domGraph.Node(fn.Entry))
	return dests
}

func structureRegion(a *arena.Arena, g *grapher.Grapher, entry, exit *ir.BasicBlock) error {
	body, err := structurer.StructurizeRegion(g, a, g.GraphNodeFromEntry(entry), g.GraphNodeFromEntry(exit))
	if err != nil {
		return fmt.Errorf("loopdriver: region (%v, %v): %w", entry, exit, err)
	}
	g.UpdateRegion(entry, exit, astsimplify.Simplify(a, body))
	return nil
}

// structureLoop structures a loop body. Unlike a plain region, falling off
// the end of a loop's body means "continue", not "proceed to exit" — so any
// edge leaving the loop toward exit must surface as an explicit break rather
// than being cut at the region boundary. exit's current binding is swapped
// for the Break singleton for the duration of the inner structuring call
// (passing a nil exit to StructurizeRegion so the walk reaches it instead of
// cutting there) and restored before returning, since exit's real content
// still needs structuring by a later step of the driving loop.
func structureLoop(a *arena.Arena, g *grapher.Grapher, entry, exit *ir.BasicBlock) error {
	var saved *grapher.GraphNode
	if exit != nil {
		saved = g.GraphNodeFromEntry(exit)
		g.UpdateRegion(exit, nil, stmt.Break)
	}

	body, err := structurer.StructurizeRegion(g, a, g.GraphNodeFromEntry(entry), nil)

	if exit != nil {
		g.UpdateRegion(exit, saved.Exit, saved.AST)
	}
	if err != nil {
		return fmt.Errorf("loopdriver: loop (%v, %v): %w", entry, exit, err)
	}

	simplified := astsimplify.Simplify(a, body)
	loop := stmt.NewLoop(a, simplified, nil, stmt.Endless)
	g.UpdateRegion(entry, exit, loop)
	return nil
}
