// Package textpred provides token predicates for string tokens, such as the
// words or lines produced by the patternfile tokenizers.
//
// Every function returns an nfa.TokenMatcher, ready for pattern.Predicate:
//
//	severe, err := textpred.ContainsAny("error", "fatal")
//	if err != nil {
//	    return err
//	}
//	p := pattern.Concat(
//	    pattern.Predicate(textpred.HasPrefix("2024-")),
//	    pattern.Predicate(severe),
//	)
package textpred

import (
	"errors"
	"strings"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/matchkit/nfa"
)

// ErrNoKeywords indicates a keyword predicate was built without keywords.
var ErrNoKeywords = errors.New("textpred: no keywords")

// ContainsAny returns a predicate that accepts tokens containing at least one
// of words as a substring.
//
// The keywords are compiled once into an Aho-Corasick automaton, so the cost
// per token is linear in the token length regardless of how many keywords
// are given. Empty keywords are ignored; ErrNoKeywords is returned if none
// remain.
func ContainsAny(words ...string) (nfa.TokenMatcher[string], error) {
	builder := ahocorasick.NewBuilder()
	n := 0
	for _, w := range words {
		if w == "" {
			continue
		}
		builder.AddPattern([]byte(w))
		n++
	}
	if n == 0 {
		return nil, ErrNoKeywords
	}

	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return func(token string) bool {
		return auto.IsMatch([]byte(token))
	}, nil
}

// MustContainsAny is like ContainsAny but panics on error.
func MustContainsAny(words ...string) nfa.TokenMatcher[string] {
	m, err := ContainsAny(words...)
	if err != nil {
		panic(err)
	}
	return m
}

// HasPrefix returns a predicate that accepts tokens starting with prefix.
func HasPrefix(prefix string) nfa.TokenMatcher[string] {
	return func(token string) bool {
		return strings.HasPrefix(token, prefix)
	}
}

// EqualFold returns a predicate that accepts tokens equal to word under
// Unicode case folding.
func EqualFold(word string) nfa.TokenMatcher[string] {
	return func(token string) bool {
		return strings.EqualFold(token, word)
	}
}

// OneOfWords returns a predicate that accepts tokens equal to any of words.
func OneOfWords(words ...string) nfa.TokenMatcher[string] {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(token string) bool {
		_, ok := set[token]
		return ok
	}
}
