package graph

// Links is the output of a linking function: the fragment's internal edges
// and its own entry points.
type Links[E any] struct {
	Edges []EdgeDefinition[E]
	Roots []NodeID
}

// Definition describes a graph fragment before it is placed in a graph.
//
// Nodes lists the values of the nodes the fragment needs. Links receives the
// ids those nodes were assigned (same order and length as Nodes) and the
// entry points of whatever follows the fragment, and returns the fragment's
// edges and entry points.
//
// Links must be referentially pure: two calls with equal arguments must
// return equal results. Repetition relies on this to discover a fragment's
// entry points with one call and feed them back as successors in a second.
// Violations are not detected and produce an unspecified graph.
type Definition[E, V any] interface {
	Nodes() []V
	Links(nodes, next []NodeID) Links[E]
}

// Rooted pairs a graph with the entry points of the fragment most recently
// instantiated into it.
type Rooted[E, V any] struct {
	Graph Mutable[E, V]
	Roots []NodeID
}

// Instantiate places def into next.Graph in front of next.Roots.
//
// One node is inserted per value of def.Nodes, in order; def.Links is then
// called with the new ids and next.Roots, and every returned edge is
// inserted. The result holds the same graph and the fragment's entry points.
// Previous roots are not carried over: they remain entry points only if the
// fragment returned them.
//
// Compilation works backward from the accept state, so every successor a
// fragment links to already exists when the fragment is instantiated.
func Instantiate[E, V any](def Definition[E, V], next Rooted[E, V]) Rooted[E, V] {
	values := def.Nodes()
	ids := make([]NodeID, len(values))
	for i, v := range values {
		ids[i] = next.Graph.InsertNode(v)
	}

	links := def.Links(ids, next.Roots)
	for _, e := range links.Edges {
		next.Graph.InsertEdge(e.From, e.To, e.Value)
	}

	roots := make([]NodeID, len(links.Roots))
	copy(roots, links.Roots)
	return Rooted[E, V]{Graph: next.Graph, Roots: roots}
}
