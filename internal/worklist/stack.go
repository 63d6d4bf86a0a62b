// Package worklist provides the small node worklists used by region
// detection (Queue) and the loop driver's back-edge discovery (Stack).
package worklist

import "github.com/archerbroler/fcd/graph"

// Stack is a LIFO stack of nodes.
type Stack[N comparable] struct {
	nodes []*graph.Node[N]
}

// NewStack creates a new stack.
func NewStack[N comparable]() *Stack[N] {
	return &Stack[N]{nodes: make([]*graph.Node[N], 0)}
}

// Push appends the node to the end of the stack.
func (s *Stack[N]) Push(node *graph.Node[N]) {
	s.nodes = append(s.nodes, node)
}

// Pop removes and returns the last node in the stack.
func (s *Stack[N]) Pop() *graph.Node[N] {
	last := len(s.nodes) - 1
	node := s.nodes[last]
	s.nodes = s.nodes[:last]
	return node
}

// Peek returns the last node in the stack without removing it.
func (s *Stack[N]) Peek() *graph.Node[N] {
	return s.nodes[len(s.nodes)-1]
}

// Empty returns true if the stack is empty.
func (s *Stack[N]) Empty() bool {
	return len(s.nodes) == 0
}

// Contains reports whether the given node is currently on the stack.
func (s *Stack[N]) Contains(node *graph.Node[N]) bool {
	for _, n := range s.nodes {
		if n.ID() == node.ID() {
			return true
		}
	}
	return false
}
