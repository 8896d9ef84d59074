package pattern

import (
	"github.com/coregx/matchkit/graph"
)

// Concat matches each of exprs in turn.
//
// The node list is the concatenation of the sub-expressions' nodes. Linking
// folds right to left: the last expression is linked against next, its entry
// points become the successors of the expression before it, and so on. The
// first expression's entry points are the result's.
//
// Concat() contributes no nodes and forwards next as its entry points, so it
// is satisfied without consuming any token.
func Concat[T any](exprs ...Expr[T]) Expr[T] {
	exprs = append([]Expr[T](nil), exprs...)
	return Expr[T]{
		nodes: concatNodes(exprs),
		link: func(nodes, next []graph.NodeID) Links[T] {
			var edges []Edge[T]
			roots := next
			end := len(nodes)
			for i := len(exprs) - 1; i >= 0; i-- {
				start := end - len(exprs[i].nodes)
				l := exprs[i].Links(nodes[start:end:end], roots)
				edges = append(edges, l.Edges...)
				roots = l.Roots
				end = start
			}
			return Links[T]{Edges: edges, Roots: union(roots, nil)}
		},
	}
}

// Maybe matches expr zero or one times.
//
// Its entry points are expr's plus next, giving every path a route through
// expr and a route straight to the successor.
func Maybe[T any](expr Expr[T]) Expr[T] {
	return Expr[T]{
		nodes: expr.nodes,
		link: func(nodes, next []graph.NodeID) Links[T] {
			l := expr.Links(nodes, next)
			return Links[T]{Edges: l.Edges, Roots: union(l.Roots, next)}
		},
	}
}

// OneOf matches any one of exprs.
//
// Each alternative is linked on its own slice of the node ids against the
// same successors; edges and entry points are unioned. OneOf() has no entry
// points and never matches.
func OneOf[T any](exprs ...Expr[T]) Expr[T] {
	exprs = append([]Expr[T](nil), exprs...)
	return Expr[T]{
		nodes: concatNodes(exprs),
		link: func(nodes, next []graph.NodeID) Links[T] {
			var edges []Edge[T]
			roots := []graph.NodeID{}
			start := 0
			for _, e := range exprs {
				end := start + len(e.nodes)
				l := e.Links(nodes[start:end:end], next)
				edges = append(edges, l.Edges...)
				roots = append(roots, l.Roots...)
				start = end
			}
			return Links[T]{Edges: edges, Roots: roots}
		},
	}
}

// OneOrMore matches expr one or more times.
//
// The loop is built without knowing node ids in advance: expr is linked once
// to learn its entry points, then again with those entry points added to the
// successors. Only the second call's edges are kept, so every exit of expr
// leads both back into expr and on to next. This relies on expr's linking
// function being pure.
func OneOrMore[T any](expr Expr[T]) Expr[T] {
	return Expr[T]{
		nodes: expr.nodes,
		link: func(nodes, next []graph.NodeID) Links[T] {
			roots, edges := loop(expr, nodes, next)
			return Links[T]{Edges: edges, Roots: roots}
		},
	}
}

// ZeroOrMore matches expr any number of times, including none.
//
// It is OneOrMore with next added to the entry points, as in Maybe.
func ZeroOrMore[T any](expr Expr[T]) Expr[T] {
	return Expr[T]{
		nodes: expr.nodes,
		link: func(nodes, next []graph.NodeID) Links[T] {
			roots, edges := loop(expr, nodes, next)
			return Links[T]{Edges: edges, Roots: union(roots, next)}
		},
	}
}

// loop links expr twice to wire its exits back to its own entry points.
func loop[T any](expr Expr[T], nodes, next []graph.NodeID) ([]graph.NodeID, []Edge[T]) {
	roots := union(expr.Links(nodes, next).Roots, nil)
	edges := expr.Links(nodes, union(roots, next)).Edges
	return roots, edges
}
