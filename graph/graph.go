// Package graph provides the append-only indexed graph that pattern
// expressions compile into, along with the subgraph instantiation step that
// splices a pattern fragment into it.
//
// Nodes are identified by dense NodeIDs assigned in insertion order starting
// at 0. Nodes and edges are never removed or renumbered.
package graph

import (
	"fmt"

	"github.com/coregx/matchkit/internal/conv"
)

// NodeID uniquely identifies a node within a Graph.
// This is a 32-bit unsigned integer for compact representation.
type NodeID uint32

// Edge is an outgoing arc as stored on its source node.
type Edge[E any] struct {
	To    NodeID
	Value E
}

// EdgeDefinition is a fully qualified arc, as produced by a linking function
// or returned by Graph.Edges.
type EdgeDefinition[E any] struct {
	From  NodeID
	To    NodeID
	Value E
}

// Reader is the read side of a graph, used on the automaton hot path.
type Reader[E, V any] interface {
	// NodeValue returns the value of a node, or false if the id is unknown.
	NodeValue(id NodeID) (V, bool)
	// NodeEdges returns the outgoing edges of a node, empty if the id is unknown.
	NodeEdges(id NodeID) []Edge[E]
}

// Enumerable extends Reader with whole-graph enumeration.
// Enumeration is meant for inspection and tests, not the hot path.
type Enumerable[E, V any] interface {
	Reader[E, V]
	Keys() []NodeID
	Values() []V
	Edges() []EdgeDefinition[E]
	NumNodes() int
	NumEdges() int
}

// Mutable extends Reader with append-only insertion.
type Mutable[E, V any] interface {
	Reader[E, V]
	// InsertNode appends a node and returns its id, equal to the prior node count.
	InsertNode(value V) NodeID
	// InsertEdge appends an edge to from's outgoing list.
	InsertEdge(from, to NodeID, value E)
}

// Graph is a directed graph with per-node values of type V and per-edge
// values of type E, indexed by NodeID.
type Graph[E, V any] struct {
	nodes []V
	edges [][]Edge[E]
}

var (
	_ Enumerable[any, any] = (*Graph[any, any])(nil)
	_ Mutable[any, any]    = (*Graph[any, any])(nil)
)

// New creates a graph seeded with the given nodes and edges.
// Edge endpoints must reference indices of nodes.
func New[E, V any](nodes []V, edges []EdgeDefinition[E]) *Graph[E, V] {
	g := &Graph[E, V]{
		nodes: make([]V, 0, len(nodes)),
		edges: make([][]Edge[E], 0, len(nodes)),
	}
	for _, v := range nodes {
		g.InsertNode(v)
	}
	for _, e := range edges {
		g.InsertEdge(e.From, e.To, e.Value)
	}
	return g
}

// NodeValue returns the value stored on the given node.
// Returns the zero value and false if the id is not in the graph.
func (g *Graph[E, V]) NodeValue(id NodeID) (V, bool) {
	if int(id) >= len(g.nodes) {
		var zero V
		return zero, false
	}
	return g.nodes[id], true
}

// NodeEdges returns the outgoing edges of the given node in insertion order.
// Returns nil (an empty sequence) if the id is not in the graph.
// The returned slice must not be modified.
func (g *Graph[E, V]) NodeEdges(id NodeID) []Edge[E] {
	if int(id) >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}

// InsertNode appends a node and returns its id.
func (g *Graph[E, V]) InsertNode(value V) NodeID {
	id := NodeID(conv.IntToUint32(len(g.nodes)))
	g.nodes = append(g.nodes, value)
	g.edges = append(g.edges, nil)
	return id
}

// InsertEdge appends an edge to from's outgoing list.
// Both endpoints must already exist; the compiler always inserts nodes
// before the edges that reference them.
func (g *Graph[E, V]) InsertEdge(from, to NodeID, value E) {
	g.edges[from] = append(g.edges[from], Edge[E]{To: to, Value: value})
}

// Keys returns every node id in insertion order.
func (g *Graph[E, V]) Keys() []NodeID {
	keys := make([]NodeID, len(g.nodes))
	for i := range keys {
		keys[i] = NodeID(conv.IntToUint32(i))
	}
	return keys
}

// Values returns every node value in insertion order.
func (g *Graph[E, V]) Values() []V {
	values := make([]V, len(g.nodes))
	copy(values, g.nodes)
	return values
}

// Edges returns every edge, grouped by source node in id order and then in
// insertion order.
func (g *Graph[E, V]) Edges() []EdgeDefinition[E] {
	defs := make([]EdgeDefinition[E], 0, g.NumEdges())
	for from, edges := range g.edges {
		for _, e := range edges {
			defs = append(defs, EdgeDefinition[E]{
				From:  NodeID(conv.IntToUint32(from)),
				To:    e.To,
				Value: e.Value,
			})
		}
	}
	return defs
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph[E, V]) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the total number of edges in the graph.
func (g *Graph[E, V]) NumEdges() int {
	n := 0
	for _, edges := range g.edges {
		n += len(edges)
	}
	return n
}

// String returns a short summary of the graph.
func (g *Graph[E, V]) String() string {
	return fmt.Sprintf("Graph{nodes: %d, edges: %d}", g.NumNodes(), g.NumEdges())
}
