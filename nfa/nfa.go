package nfa

import (
	"fmt"

	"github.com/coregx/matchkit/graph"
	"github.com/coregx/matchkit/internal/conv"
	"github.com/coregx/matchkit/internal/sparse"
)

// TokenMatcher is an edge predicate: the transition is valid for tokens it
// accepts. A panicking matcher propagates out of Run.Next.
type TokenMatcher[T any] func(token T) bool

// Result is the observable state of a run after a step.
type Result struct {
	// Accepting is true if any active node is an accept state
	Accepting bool
	// Terminated is true once no node is active; it never resets
	Terminated bool
}

// Automaton is a compiled pattern: a graph whose node values mark accept
// states and whose edges carry token predicates, plus the entry points.
//
// Thread safety: an Automaton is immutable after New. Any number of runs may
// execute against it concurrently, each owning its private state.
type Automaton[T any] struct {
	graph *graph.Graph[TokenMatcher[T], bool]
	roots []graph.NodeID
}

// New creates an automaton over g entered at roots.
// The graph must not be modified afterwards.
// Returns a *BuildError if a root is not a node of g.
func New[T any](g *graph.Graph[TokenMatcher[T], bool], roots []graph.NodeID) (*Automaton[T], error) {
	if g == nil {
		return nil, &BuildError{Err: ErrNilGraph}
	}
	n := g.NumNodes()
	for _, r := range roots {
		if int(r) >= n {
			return nil, &BuildError{
				Message: fmt.Sprintf("graph has %d nodes", n),
				NodeID:  r,
				Err:     ErrInvalidRoot,
			}
		}
	}
	rs := make([]graph.NodeID, len(roots))
	copy(rs, roots)
	return &Automaton[T]{graph: g, roots: rs}, nil
}

// Graph returns the underlying graph. It must be treated as read-only.
func (a *Automaton[T]) Graph() *graph.Graph[TokenMatcher[T], bool] {
	return a.graph
}

// Roots returns a copy of the entry points.
func (a *Automaton[T]) Roots() []graph.NodeID {
	rs := make([]graph.NodeID, len(a.roots))
	copy(rs, a.roots)
	return rs
}

// States returns the total number of nodes in the automaton
func (a *Automaton[T]) States() int {
	return a.graph.NumNodes()
}

// IsMatch returns true if the given node is an accept state
func (a *Automaton[T]) IsMatch(id graph.NodeID) bool {
	v, _ := a.graph.NodeValue(id)
	return v
}

// String returns a human-readable representation of the automaton
func (a *Automaton[T]) String() string {
	return fmt.Sprintf("NFA{states: %d, edges: %d, roots: %v}",
		a.graph.NumNodes(), a.graph.NumEdges(), a.roots)
}

// Start begins a new run with every root active.
//
// The run accepts immediately if any root is an accept state, and is
// terminated immediately if there are no roots.
func (a *Automaton[T]) Start() *Run[T] {
	r := &Run[T]{
		automaton: a,
		state:     sparse.NewSparseSets(conv.IntToUint32(a.graph.NumNodes())),
	}
	active := r.state.Current()
	for _, root := range a.roots {
		active.Insert(uint32(root))
		if a.IsMatch(root) {
			r.result.Accepting = true
		}
	}
	r.result.Terminated = active.IsEmpty()
	return r
}

// Run is a single execution of an automaton over one token stream.
// A Run is not safe for concurrent use.
type Run[T any] struct {
	automaton *Automaton[T]
	// Active nodes for the current and next step; roles swap every step
	state  *sparse.SparseSets
	result Result
}

// Current reports whether the run is in an accepting state.
func (r *Run[T]) Current() bool {
	return r.result.Accepting
}

// Done reports whether the run has terminated.
func (r *Run[T]) Done() bool {
	return r.result.Terminated
}

// Result returns the run's current observable state.
func (r *Run[T]) Result() Result {
	return r.result
}

// Active returns the number of currently active nodes.
func (r *Run[T]) Active() int {
	return r.state.Current().Len()
}

// Next feeds one token to the run.
//
// Every edge leaving an active node whose predicate accepts the token
// activates its target for the next step. The run terminates when no node
// becomes active; after that Next returns the terminal result unchanged
// without evaluating any predicate.
//
// Next visits only active nodes and their edges and performs no allocation.
func (r *Run[T]) Next(token T) Result {
	if r.result.Terminated {
		return r.result
	}

	g := r.automaton.graph
	current := r.state.Current()
	next := r.state.Next()
	next.Clear()

	accepting := false
	for _, id := range current.Values() {
		for _, e := range g.NodeEdges(graph.NodeID(id)) {
			if !e.Value(token) {
				continue
			}
			if next.Insert(uint32(e.To)) && r.automaton.IsMatch(e.To) {
				accepting = true
			}
		}
	}

	r.state.Swap()
	r.result.Accepting = accepting
	r.result.Terminated = next.IsEmpty()
	return r.result
}
