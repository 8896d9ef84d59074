// Package nfa implements the parallel-state automaton that executes compiled
// pattern graphs.
//
// An Automaton pairs an immutable graph with its entry points. Each call to
// Start creates an independent Run that tracks the set of active nodes in a
// pair of reusable buffers, so stepping over input never allocates. The
// automaton itself is never mutated by a run and may be shared freely.
package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/matchkit/graph"
)

// Common NFA errors
var (
	// ErrInvalidRoot indicates a root id that does not name a node in the graph
	ErrInvalidRoot = errors.New("invalid NFA root")

	// ErrNilGraph indicates an automaton was requested for a nil graph
	ErrNilGraph = errors.New("nil NFA graph")
)

// BuildError reports why an automaton could not be constructed
type BuildError struct {
	Message string
	NodeID  graph.NodeID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("NFA build error at node %d: %s: %v", e.NodeID, e.Message, e.Err)
	}
	return fmt.Sprintf("NFA build error: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}
