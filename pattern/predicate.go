package pattern

import (
	"github.com/coregx/matchkit/graph"
	"github.com/coregx/matchkit/nfa"
)

// Predicate matches a single token for which fn returns true.
//
// It contributes one non-accepting node, which is also its only entry point,
// with an edge carrying fn to every successor.
func Predicate[T any](fn func(token T) bool) Expr[T] {
	m := nfa.TokenMatcher[T](fn)
	return Expr[T]{
		nodes: []bool{false},
		link: func(nodes, next []graph.NodeID) Links[T] {
			from := nodes[0]
			edges := make([]Edge[T], len(next))
			for i, to := range next {
				edges[i] = Edge[T]{From: from, To: to, Value: m}
			}
			return Links[T]{Edges: edges, Roots: []graph.NodeID{from}}
		},
	}
}

// Value matches a single token equal to v.
func Value[T comparable](v T) Expr[T] {
	return Predicate(func(token T) bool {
		return token == v
	})
}

// Wildcard matches any single token.
func Wildcard[T any]() Expr[T] {
	return Predicate(func(T) bool {
		return true
	})
}

// Literal matches the runes of s in order.
func Literal(s string) Expr[rune] {
	exprs := make([]Expr[rune], 0, len(s))
	for _, r := range s {
		exprs = append(exprs, Value(r))
	}
	return Concat(exprs...)
}

// Bytes matches the bytes of b in order.
func Bytes(b []byte) Expr[byte] {
	exprs := make([]Expr[byte], len(b))
	for i, c := range b {
		exprs[i] = Value(c)
	}
	return Concat(exprs...)
}

// Sequence matches the tokens of vs in order.
func Sequence[T comparable](vs ...T) Expr[T] {
	exprs := make([]Expr[T], len(vs))
	for i, v := range vs {
		exprs[i] = Value(v)
	}
	return Concat(exprs...)
}
