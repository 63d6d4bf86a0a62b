// Package dominator computes dominator trees with the Lengauer-Tarjan
// algorithm. Grounded on go/ssa's dom.go, as plundered in
// _examples/other_examples/adonovan-spaghetti__dom.go, adapted from ssa's
// own block/function types to this module's generic graph.Graph[N].
package dominator

import "github.com/archerbroler/fcd/graph"

// Tree is a dominator tree over a graph.Graph[N] rooted at a single node.
type Tree[N comparable] struct {
	root  *graph.Node[N]
	info  map[*graph.Node[N]]*domInfo[N]
	order []*graph.Node[N] // reachable nodes in dominator-tree preorder
}

type domInfo[N comparable] struct {
	idom      *graph.Node[N]
	children  []*graph.Node[N]
	pre, post int32
	index     int32 // preorder index among reachable nodes; -1 if unset
}

// ltState holds the Lengauer-Tarjan algorithm's working state. Each slice is
// indexed by domInfo.index.
type ltState[N comparable] struct {
	tree     *Tree[N]
	g        *graph.Graph[N]
	sdom     []*graph.Node[N]
	parent   []*graph.Node[N]
	ancestor []*graph.Node[N]
}

// New computes the dominator tree of g rooted at root.
func New[N comparable](g *graph.Graph[N], root *graph.Node[N]) *Tree[N] {
	t := &Tree[N]{root: root, info: make(map[*graph.Node[N]]*domInfo[N])}
	for _, n := range g.Nodes() {
		t.info[n] = &domInfo[N]{index: -1}
	}
	if _, ok := t.info[root]; !ok {
		t.info[root] = &domInfo[N]{index: -1}
	}

	// Filter out unreachable nodes with a DFS from root; domInfo.index is
	// relative to this reachable-only ordering (the "reachable hack").
	var reachable []*graph.Node[N]
	var visit func(n *graph.Node[N])
	visit = func(n *graph.Node[N]) {
		info := t.infoOf(n)
		if info.index >= 0 {
			return
		}
		info.index = int32(len(reachable))
		reachable = append(reachable, n)
		for _, s := range g.Successors(n) {
			visit(s)
		}
	}
	visit(root)
	t.order = reachable

	n := len(reachable)
	if n == 0 {
		return t
	}
	space := make([]*graph.Node[N], 5*n)
	lt := &ltState[N]{
		tree:     t,
		g:        g,
		sdom:     space[0:n],
		parent:   space[n : 2*n],
		ancestor: space[2*n : 3*n],
	}

	preorder := space[3*n : 4*n]
	lt.dfs(root, 0, preorder)

	buckets := space[4*n : 5*n]
	copy(buckets, preorder)

	for i := n - 1; i > 0; i-- {
		w := preorder[i]
		wInfo := t.infoOf(w)

		// Step 3. Implicitly define the immediate dominator of each node.
		for v := buckets[i]; v != w; v = buckets[t.infoOf(v).pre] {
			u := lt.eval(v)
			if t.infoOf(lt.sdom[t.infoOf(u).index]).pre < int32(i) {
				t.infoOf(v).idom = u
			} else {
				t.infoOf(v).idom = w
			}
		}

		// Step 2. Compute the semidominators of all nodes.
		lt.sdom[wInfo.index] = lt.parent[wInfo.index]
		for _, v := range g.Predecessors(w) {
			vInfo := t.infoOf(v)
			if vInfo.index < 0 {
				continue // unreachable; see "reachable hack"
			}
			u := lt.eval(v)
			if t.infoOf(lt.sdom[t.infoOf(u).index]).pre < t.infoOf(lt.sdom[wInfo.index]).pre {
				lt.sdom[wInfo.index] = lt.sdom[t.infoOf(u).index]
			}
		}

		lt.link(lt.parent[wInfo.index], w)

		if lt.parent[wInfo.index] == lt.sdom[wInfo.index] {
			wInfo.idom = lt.parent[wInfo.index]
		} else {
			buckets[i] = buckets[t.infoOf(lt.sdom[wInfo.index]).pre]
			buckets[t.infoOf(lt.sdom[wInfo.index]).pre] = w
		}
	}

	for v := buckets[0]; v != preorder[0]; v = buckets[t.infoOf(v).pre] {
		t.infoOf(v).idom = preorder[0]
	}

	// Step 4. Explicitly define the immediate dominator of each node, in
	// preorder, and build the children relation as the inverse of idom.
	for _, w := range preorder[1:] {
		wInfo := t.infoOf(w)
		if wInfo.idom != lt.sdom[wInfo.index] {
			wInfo.idom = t.infoOf(wInfo.idom).idom
		}
		idomInfo := t.infoOf(wInfo.idom)
		idomInfo.children = append(idomInfo.children, w)
	}

	t.numberTree(root, 0, 0)
	return t
}

func (t *Tree[N]) infoOf(n *graph.Node[N]) *domInfo[N] {
	info, ok := t.info[n]
	if !ok {
		info = &domInfo[N]{index: -1}
		t.info[n] = info
	}
	return info
}

// dfs implements the depth-first search part of the LT algorithm; domInfo.pre
// is repurposed here for CFG DFS preorder number.
func (lt *ltState[N]) dfs(v *graph.Node[N], i int32, preorder []*graph.Node[N]) int32 {
	preorder[i] = v
	vInfo := lt.tree.infoOf(v)
	vInfo.pre = i
	i++
	lt.sdom[vInfo.index] = v
	lt.link(nil, v)
	for _, w := range lt.g.Successors(v) {
		wInfo := lt.tree.infoOf(w)
		if lt.sdom[wInfo.index] == nil {
			lt.parent[wInfo.index] = v
			i = lt.dfs(w, i, preorder)
		}
	}
	return i
}

// eval implements the EVAL part of the LT algorithm.
func (lt *ltState[N]) eval(v *graph.Node[N]) *graph.Node[N] {
	u := v
	for lt.ancestor[lt.tree.infoOf(v).index] != nil {
		v = lt.ancestor[lt.tree.infoOf(v).index]
		if lt.tree.infoOf(lt.sdom[lt.tree.infoOf(v).index]).pre < lt.tree.infoOf(lt.sdom[lt.tree.infoOf(u).index]).pre {
			u = v
		}
	}
	return u
}

// link implements the LINK part of the LT algorithm.
func (lt *ltState[N]) link(v, w *graph.Node[N]) {
	lt.ancestor[lt.tree.infoOf(w).index] = v
}

// numberTree sets pre/post order numbers of a depth-first traversal of the
// dominator tree, used to answer Dominates queries in constant time.
func (t *Tree[N]) numberTree(v *graph.Node[N], pre, post int32) (int32, int32) {
	info := t.infoOf(v)
	info.pre = pre
	pre++
	for _, child := range info.children {
		pre, post = t.numberTree(child, pre, post)
	}
	info.post = post
	post++
	return pre, post
}

// Dominates reports whether a dominates b (reflexively: a dominates a).
func (t *Tree[N]) Dominates(a, b *graph.Node[N]) bool {
	aInfo, bInfo := t.info[a], t.info[b]
	if aInfo == nil || bInfo == nil {
		return false
	}
	return aInfo.pre <= bInfo.pre && bInfo.post <= aInfo.post
}

// IDom returns n's immediate dominator, or nil if n is the root or
// unreachable.
func (t *Tree[N]) IDom(n *graph.Node[N]) *graph.Node[N] {
	info := t.info[n]
	if info == nil {
		return nil
	}
	return info.idom
}

// DominatedBy returns the nodes n immediately dominates (its children in
// the dominator tree).
func (t *Tree[N]) DominatedBy(n *graph.Node[N]) []*graph.Node[N] {
	info := t.info[n]
	if info == nil {
		return nil
	}
	return info.children
}

// Root returns the tree's root node.
func (t *Tree[N]) Root() *graph.Node[N] {
	return t.root
}
