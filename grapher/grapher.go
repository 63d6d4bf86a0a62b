// Package grapher implements the AST grapher of spec.md §4.D: a
// bidirectional map between original basic blocks and AST nodes, with child
// iteration that follows either the current CFG successor (for raw blocks)
// or the stored single exit (for already-structured subregions). Grounded
// on ast_grapher.cpp's AstGrapher/AstGraphNode/AstGraphNodeIterator.
package grapher

import (
	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/stmt"
)

// GraphNode is a region-entry marker mapping a basic block (or a whole
// previously-structured subregion) to its current AST node.
type GraphNode struct {
	AST   stmt.Statement
	Entry *ir.BasicBlock
	// Exit is non-nil and equal to Entry for a raw, not-yet-structured
	// block. When Exit differs from Entry, this GraphNode represents a
	// collapsed region whose structured children must be traversed via Exit
	// rather than Entry's raw CFG successors; Exit may itself be nil,
	// meaning the region's single exit is "end of function".
	Exit *ir.BasicBlock
}

// Collapsed reports whether n represents a structured subregion rather than
// a single raw block.
func (n *GraphNode) Collapsed() bool {
	return n.Exit != n.Entry
}

// Grapher holds the two mappings described in spec.md §3 ("Grapher state"):
// nodeByEntry and graphNodeByAst, plus an append-only node storage that owns
// every GraphNode created during a pass.
type Grapher struct {
	arena          *arena.Arena
	nodeByEntry    map[*ir.BasicBlock]stmt.Statement
	graphNodeByAst map[stmt.Statement]*GraphNode
	storage        []*GraphNode
}

// New creates an empty grapher backed by a.
func New(a *arena.Arena) *Grapher {
	return &Grapher{
		arena:          a,
		nodeByEntry:    make(map[*ir.BasicBlock]stmt.Statement),
		graphNodeByAst: make(map[stmt.Statement]*GraphNode),
	}
}

// AddBasicBlock materializes a Sequence from bb's non-terminator
// instructions, registers entry = exit = bb, and returns the Statement.
func (g *Grapher) AddBasicBlock(bb *ir.BasicBlock) stmt.Statement {
	seq := stmt.NewSequence(g.arena)
	for _, inst := range bb.Insts {
		seq.Append(stmt.NewExprStmt(g.arena, expr.NewValue(g.arena, inst)))
	}
	g.register(bb, bb, seq)
	return seq
}

// UpdateRegion pushes a new GraphNode {ast, entry, exit} and rebinds
// nodeByEntry[entry] = ast. Prior bindings remain retrievable via
// GraphNodeOf, since entries are only ever added, never removed.
func (g *Grapher) UpdateRegion(entry, exit *ir.BasicBlock, ast stmt.Statement) {
	g.register(entry, exit, ast)
}

func (g *Grapher) register(entry, exit *ir.BasicBlock, ast stmt.Statement) {
	node := &GraphNode{AST: ast, Entry: entry, Exit: exit}
	g.storage = append(g.storage, node)
	g.nodeByEntry[entry] = ast
	g.graphNodeByAst[ast] = node
}

// GraphNodeOf looks up the GraphNode that was registered for the given AST
// node.
func (g *Grapher) GraphNodeOf(s stmt.Statement) *GraphNode {
	if s == nil {
		return nil
	}
	return g.graphNodeByAst[s]
}

// GraphNodeFromEntry looks up the GraphNode currently bound to entry. A nil
// entry (meaning "end of function") has no GraphNode and returns nil.
func (g *Grapher) GraphNodeFromEntry(entry *ir.BasicBlock) *GraphNode {
	if entry == nil {
		return nil
	}
	s, ok := g.nodeByEntry[entry]
	if !ok {
		return nil
	}
	return g.graphNodeByAst[s]
}

// Children returns n's children under the grapher's current collapse state:
// if n is a collapsed region, its single child is the node at its stored
// exit; otherwise its children are the nodes at entry's CFG successors. A
// successor with no current GraphNode (not yet visited, or "end of
// function") is omitted.
func (g *Grapher) Children(n *GraphNode) []*GraphNode {
	if n.Collapsed() {
		child := g.GraphNodeFromEntry(n.Exit)
		if child == nil {
			return nil
		}
		return []*GraphNode{child}
	}

	succs := n.Entry.Succs()
	children := make([]*GraphNode, 0, len(succs))
	for _, succ := range succs {
		if c := g.GraphNodeFromEntry(succ); c != nil {
			children = append(children, c)
		}
	}
	return children
}
