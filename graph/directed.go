package graph

import (
	"strings"
)

// Graph represents a directed graph.
type Graph[N comparable] struct {
	nodes    map[ID[N]]*Node[N]
	incoming map[*Node[N]]map[*Node[N]]struct{}
	outgoing map[*Node[N]]map[*Node[N]]struct{}
}

// New creates a new directed graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		nodes:    map[ID[N]]*Node[N]{},
		incoming: map[*Node[N]]map[*Node[N]]struct{}{},
		outgoing: map[*Node[N]]map[*Node[N]]struct{}{},
	}
}

// String returns a string representation of the graph.
func (g *Graph[N]) String() string {
	var sb strings.Builder
	for _, node := range g.nodes {
		sb.WriteString(node.String())
		sb.WriteString(" -> ")
		for _, succ := range g.Successors(node) {
			sb.WriteString(succ.String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Node adds a new node with the given value to the graph.
// If a node with the same value already exists, it returns the existing node.
func (g *Graph[N]) Node(value N) *Node[N] {
	id := ID[N]{Value: value}
	if node, ok := g.nodes[id]; ok {
		return node
	}
	node := &Node[N]{Value: value}
	g.nodes[node.ID()] = node
	g.incoming[node] = make(map[*Node[N]]struct{})
	g.outgoing[node] = make(map[*Node[N]]struct{})
	return node
}

// SetEdge creates an edge from the "from" node to the "to" node.
func (g *Graph[N]) SetEdge(from, to *Node[N]) {
	if _, ok := g.outgoing[from]; !ok {
		g.outgoing[from] = make(map[*Node[N]]struct{})
	}
	g.outgoing[from][to] = struct{}{}

	if _, ok := g.incoming[to]; !ok {
		g.incoming[to] = make(map[*Node[N]]struct{})
	}
	g.incoming[to][from] = struct{}{}
}

// Nodes returns a slice of all nodes in the graph.
func (g *Graph[N]) Nodes() []*Node[N] {
	var nodes []*Node[N]
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// Successors returns a slice of nodes that are directly reachable from the given node.
func (g *Graph[N]) Successors(n *Node[N]) []*Node[N] {
	var succ []*Node[N]
	for neighbor := range g.outgoing[n] {
		succ = append(succ, neighbor)
	}
	return succ
}

// Predecessors returns a slice of nodes that have a direct edge to the given node.
func (g *Graph[N]) Predecessors(n *Node[N]) []*Node[N] {
	var preds []*Node[N]
	for neighbor := range g.incoming[n] {
		preds = append(preds, neighbor)
	}
	return preds
}
