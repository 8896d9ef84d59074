// Package matchkit matches token sequences against declarative patterns.
//
// Patterns are built from the combinators in package pattern and compiled
// into a nondeterministic automaton whose states are all simulated in
// parallel, so matching is linear in the input for a fixed pattern and never
// backtracks. Tokens can be of any type; they are only ever passed to the
// predicates the pattern was built from.
//
// Basic usage:
//
//	p := pattern.Concat(
//	    pattern.Value('a'),
//	    pattern.OneOrMore(pattern.Value('b')),
//	    pattern.Value('c'),
//	)
//	matchkit.MatchString(p, "abbbc") // true
//	matchkit.MatchString(p, "ac")    // false
//
// By default a match succeeds as soon as any prefix of the input is
// accepted, and the rest of the input is not read: the pattern "ab" matches
// "abc". Set Config.Mode to ModeWholeInput to require the whole input to be
// accepted instead.
package matchkit

import (
	"errors"
	"fmt"
	"iter"

	"github.com/coregx/matchkit/graph"
	"github.com/coregx/matchkit/nfa"
	"github.com/coregx/matchkit/pattern"
)

var (
	// ErrTooComplex indicates the pattern needs more states than
	// Config.MaxStates allows
	ErrTooComplex = errors.New("pattern too complex")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	States int
	Err    error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.States > 0 {
		return fmt.Sprintf("matchkit: compile failed (%d states): %v", e.States, e.Err)
	}
	return fmt.Sprintf("matchkit: compile failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// acceptState is the node every compiled graph starts with.
const acceptState graph.NodeID = 0

// Matcher is a compiled pattern.
//
// A Matcher is safe to use concurrently from multiple goroutines: every
// match creates its own run state and the compiled automaton is never
// modified.
type Matcher[T any] struct {
	automaton *nfa.Automaton[T]
	mode      Mode
}

// Compile compiles expr with the default configuration.
//
// Expressions built from the pattern combinators always compile; an error
// means a Custom expression returned entry points outside its graph.
func Compile[T any](expr pattern.Expr[T]) (*Matcher[T], error) {
	return CompileWithConfig(expr, DefaultConfig())
}

// MustCompile is like Compile but panics if the expression cannot be compiled.
func MustCompile[T any](expr pattern.Expr[T]) *Matcher[T] {
	m, err := Compile(expr)
	if err != nil {
		panic("matchkit: Compile: " + err.Error())
	}
	return m
}

// CompileWithConfig compiles expr.
//
// Compilation starts from a graph holding only the accept state and
// instantiates expr in front of it, so every edge points at a node that
// already exists. The entry points returned by the expression become the
// automaton's roots.
func CompileWithConfig[T any](expr pattern.Expr[T], config Config) (*Matcher[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	states := expr.NumNodes() + 1
	if config.MaxStates > 0 && states > config.MaxStates {
		return nil, &CompileError{States: states, Err: ErrTooComplex}
	}

	g := graph.New[nfa.TokenMatcher[T]]([]bool{true}, nil)
	rooted := graph.Instantiate(expr, graph.Rooted[nfa.TokenMatcher[T], bool]{
		Graph: g,
		Roots: []graph.NodeID{acceptState},
	})

	automaton, err := nfa.New(g, rooted.Roots)
	if err != nil {
		return nil, &CompileError{States: states, Err: err}
	}

	if config.Logger != nil {
		config.Logger.Debug("pattern compiled",
			"states", g.NumNodes(),
			"edges", g.NumEdges(),
			"roots", len(rooted.Roots),
			"mode", config.Mode.String(),
		)
	}

	return &Matcher[T]{automaton: automaton, mode: config.Mode}, nil
}

// Automaton returns the compiled automaton.
func (m *Matcher[T]) Automaton() *nfa.Automaton[T] {
	return m.automaton
}

// Mode returns the matching mode the matcher was compiled with.
func (m *Matcher[T]) Mode() Mode {
	return m.mode
}

// String returns a human-readable representation of the matcher
func (m *Matcher[T]) String() string {
	return fmt.Sprintf("Matcher{mode: %s, %s}", m.mode, m.automaton)
}

// Match reports whether tokens match the pattern.
func (m *Matcher[T]) Match(tokens []T) bool {
	run := m.automaton.Start()
	if m.mode == ModeWholeInput {
		if run.Done() {
			return false
		}
		for _, t := range tokens {
			if run.Next(t).Terminated {
				return false
			}
		}
		return run.Current()
	}

	isMatch := run.Current()
	if isMatch || run.Done() {
		return isMatch
	}
	for _, t := range tokens {
		res := run.Next(t)
		isMatch = res.Accepting
		if isMatch || res.Terminated {
			break
		}
	}
	return isMatch
}

// MatchSeq reports whether the tokens produced by seq match the pattern.
// seq is consumed at most once and iteration stops as soon as the result is
// known.
func (m *Matcher[T]) MatchSeq(seq iter.Seq[T]) bool {
	run := m.automaton.Start()
	if m.mode == ModeWholeInput {
		if run.Done() {
			return false
		}
		for t := range seq {
			if run.Next(t).Terminated {
				return false
			}
		}
		return run.Current()
	}

	isMatch := run.Current()
	if isMatch || run.Done() {
		return isMatch
	}
	for t := range seq {
		res := run.Next(t)
		isMatch = res.Accepting
		if isMatch || res.Terminated {
			break
		}
	}
	return isMatch
}

// Match compiles expr and reports whether tokens match it.
// Like MustCompile, it panics if expr cannot be compiled.
func Match[T any](expr pattern.Expr[T], tokens []T) bool {
	return MustCompile(expr).Match(tokens)
}

// MatchSeq compiles expr and reports whether the tokens produced by seq
// match it.
func MatchSeq[T any](expr pattern.Expr[T], seq iter.Seq[T]) bool {
	return MustCompile(expr).MatchSeq(seq)
}

// MatchString compiles expr and reports whether the runes of s match it.
func MatchString(expr pattern.Expr[rune], s string) bool {
	return MustCompile(expr).MatchSeq(Runes(s))
}

// MatchBytes compiles expr and reports whether the bytes of b match it.
func MatchBytes(expr pattern.Expr[byte], b []byte) bool {
	return MustCompile(expr).Match(b)
}

// Runes iterates over the runes of s without allocating a []rune.
// Invalid UTF-8 bytes are yielded as utf8.RuneError.
func Runes(s string) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s {
			if !yield(r) {
				return
			}
		}
	}
}
