// Package postdom computes post-dominator trees by running the dominator
// package on the reverse CFG from a synthetic exit node. Grounded on the
// same Lengauer-Tarjan construction as dominator, combined with the
// well-known reverse-CFG technique for post-dominance described in
// _examples/other_examples/uber-research-GOCC__postDom.go's doc comment
// ("A post-dominates B iff all paths from B travel through A").
package postdom

import (
	"github.com/archerbroler/fcd/dominator"
	"github.com/archerbroler/fcd/graph"
	"github.com/archerbroler/fcd/ir"
)

// Tree is a post-dominator tree. Per spec.md §4.E, a nil *ir.BasicBlock
// stands for "end of function" and post-dominates everything; it is
// represented internally as a synthetic exit node with an edge from every
// block that has no CFG successors.
type Tree struct {
	inner *dominator.Tree[*ir.BasicBlock]
	exit  *graph.Node[*ir.BasicBlock]
	g     *graph.Graph[*ir.BasicBlock]
}

// New computes the post-dominator tree of fn.
func New(fn *ir.Function) *Tree {
	rev := graph.New[*ir.BasicBlock]()
	exit := rev.Node(nil)

	for _, b := range fn.Blocks {
		rev.Node(b)
	}
	for _, b := range fn.Blocks {
		to := rev.Node(b)
		succs := b.Succs()
		if len(succs) == 0 {
			rev.SetEdge(exit, to)
			continue
		}
		for _, s := range succs {
			rev.SetEdge(rev.Node(s), to)
		}
	}

	return &Tree{
		inner: dominator.New(rev, exit),
		exit:  exit,
		g:     rev,
	}
}

// NodeOf returns the post-dominator-tree node for block, or the synthetic
// exit node when block is nil.
func (t *Tree) NodeOf(block *ir.BasicBlock) *graph.Node[*ir.BasicBlock] {
	return t.g.Node(block)
}

// BlockOf returns the block a post-dominator-tree node represents, or nil
// for the synthetic exit node.
func (t *Tree) BlockOf(n *graph.Node[*ir.BasicBlock]) *ir.BasicBlock {
	return n.Value
}

// Dominates reports whether a post-dominates b. A nil block always
// post-dominates (it stands for the synthetic exit).
func (t *Tree) Dominates(a, b *ir.BasicBlock) bool {
	if a == nil {
		return true
	}
	return t.inner.Dominates(t.NodeOf(a), t.NodeOf(b))
}

// IDom returns block's immediate post-dominator, or nil if block's
// immediate post-dominator is the end of the function (or block is nil,
// i.e. block is already the end of the function, which has none).
func (t *Tree) IDom(block *ir.BasicBlock) *ir.BasicBlock {
	if block == nil {
		return nil
	}
	idomNode := t.inner.IDom(t.NodeOf(block))
	if idomNode == nil {
		return nil
	}
	return t.BlockOf(idomNode)
}
