// Package pattern provides the combinators used to describe token patterns.
//
// A pattern expression is a blueprint: it lists the nodes it needs and a pure
// linking function that wires those nodes, once allocated, to the entry
// points of whatever follows. Expressions compose freely and are compiled by
// graph.Instantiate, working backward from the accept state so that every
// successor already exists when a fragment is linked.
//
// Basic usage:
//
//	p := pattern.Concat(
//	    pattern.Value('a'),
//	    pattern.OneOrMore(pattern.Value('b')),
//	    pattern.Value('c'),
//	)
//	matchkit.MatchString(p, "abbbc") // true
package pattern

import (
	"github.com/coregx/matchkit/graph"
	"github.com/coregx/matchkit/nfa"
)

// Links is the output of an expression's linking function.
type Links[T any] = graph.Links[nfa.TokenMatcher[T]]

// Edge is a single edge produced by a linking function.
type Edge[T any] = graph.EdgeDefinition[nfa.TokenMatcher[T]]

// LinkFunc wires an expression's nodes to its successors.
//
// nodes holds the ids assigned to the expression's nodes, in declaration
// order; next holds the entry points of the successor. The function returns
// the expression's edges and its own entry points.
//
// A LinkFunc must be referentially pure: equal arguments must yield equal
// results. OneOrMore and ZeroOrMore call it twice to build their loop.
type LinkFunc[T any] func(nodes, next []graph.NodeID) Links[T]

// Expr is a pattern expression over tokens of type T.
// The zero value is not usable; build expressions with the combinators.
type Expr[T any] struct {
	// accepting flag of each node the expression contributes
	nodes []bool
	link  LinkFunc[T]
}

var _ graph.Definition[nfa.TokenMatcher[int], bool] = Expr[int]{}

// Custom creates an expression from raw parts, for callers writing their own
// combinators. nodes lists the accepting flag of each node the expression
// needs; link must be referentially pure (see LinkFunc). Violating purity is
// not detected and yields an unspecified automaton.
func Custom[T any](nodes []bool, link LinkFunc[T]) Expr[T] {
	ns := make([]bool, len(nodes))
	copy(ns, nodes)
	return Expr[T]{nodes: ns, link: link}
}

// Nodes returns the accepting flag of each node the expression contributes.
func (e Expr[T]) Nodes() []bool {
	return e.nodes
}

// Links wires the expression given its assigned node ids and the entry
// points of its successor.
func (e Expr[T]) Links(nodes, next []graph.NodeID) Links[T] {
	return e.link(nodes, next)
}

// NumNodes returns the number of nodes the expression contributes.
func (e Expr[T]) NumNodes() int {
	return len(e.nodes)
}

// concatNodes joins the node lists of exprs in order.
func concatNodes[T any](exprs []Expr[T]) []bool {
	n := 0
	for _, e := range exprs {
		n += len(e.nodes)
	}
	nodes := make([]bool, 0, n)
	for _, e := range exprs {
		nodes = append(nodes, e.nodes...)
	}
	return nodes
}

// union returns a fresh slice holding a followed by b.
// Fresh slices keep linking functions from aliasing each other's results.
func union(a, b []graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
