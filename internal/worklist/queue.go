package worklist

import "github.com/archerbroler/fcd/graph"

// Queue is a FIFO queue of nodes which keeps track of all nodes that have
// ever been in the queue, so membership can be queried after draining.
type Queue[N comparable] struct {
	all   map[graph.ID[N]]struct{}
	nodes []*graph.Node[N]
}

// NewQueue creates a new queue.
func NewQueue[N comparable]() *Queue[N] {
	return &Queue[N]{
		all:   make(map[graph.ID[N]]struct{}),
		nodes: make([]*graph.Node[N], 0),
	}
}

// Push adds a node to the queue if it has never been in the queue; a node
// that was pushed and later popped is not added again.
func (q *Queue[N]) Push(node *graph.Node[N]) {
	if _, ok := q.all[node.ID()]; !ok {
		q.nodes = append(q.nodes, node)
		q.all[node.ID()] = struct{}{}
	}
}

// Pop removes and returns the first node in the queue.
func (q *Queue[N]) Pop() *graph.Node[N] {
	node := q.nodes[0]
	q.nodes = q.nodes[1:]
	return node
}

// Empty returns true if the queue is empty.
func (q *Queue[N]) Empty() bool {
	return len(q.nodes) == 0
}

// Contains reports whether the given node is present in the queue or has
// been present before.
func (q *Queue[N]) Contains(node *graph.Node[N]) bool {
	_, ok := q.all[node.ID()]
	return ok
}
