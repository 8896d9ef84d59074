package patternfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/matchkit/pattern"
	"github.com/coregx/matchkit/textpred"
)

// Node is one pattern node. Exactly one field must be set.
type Node struct {
	// Value matches one token equal to the string.
	Value *string `mapstructure:"value" json:"value,omitempty"`
	// Literal matches the tokens the document's tokenizer splits it into.
	Literal *string `mapstructure:"literal" json:"literal,omitempty"`
	// Any matches any single token when true.
	Any *bool `mapstructure:"any" json:"any,omitempty"`
	// Contains matches one token containing any of the keywords.
	Contains []string `mapstructure:"contains" json:"contains,omitempty"`
	// Prefix matches one token starting with the string.
	Prefix *string `mapstructure:"prefix" json:"prefix,omitempty"`
	// Fold matches one token equal to the string ignoring case.
	Fold *string `mapstructure:"fold" json:"fold,omitempty"`
	// In matches one token equal to any of the strings.
	In []string `mapstructure:"in" json:"in,omitempty"`

	Concat     []Node `mapstructure:"concat" json:"concat,omitempty"`
	OneOf      []Node `mapstructure:"oneOf" json:"oneOf,omitempty"`
	Maybe      *Node  `mapstructure:"maybe" json:"maybe,omitempty"`
	OneOrMore  *Node  `mapstructure:"oneOrMore" json:"oneOrMore,omitempty"`
	ZeroOrMore *Node  `mapstructure:"zeroOrMore" json:"zeroOrMore,omitempty"`
}

// kinds lists the keys set on n.
func (n *Node) kinds() []string {
	var ks []string
	add := func(set bool, k string) {
		if set {
			ks = append(ks, k)
		}
	}
	add(n.Value != nil, "value")
	add(n.Literal != nil, "literal")
	add(n.Any != nil, "any")
	add(n.Contains != nil, "contains")
	add(n.Prefix != nil, "prefix")
	add(n.Fold != nil, "fold")
	add(n.In != nil, "in")
	add(n.Concat != nil, "concat")
	add(n.OneOf != nil, "oneOf")
	add(n.Maybe != nil, "maybe")
	add(n.OneOrMore != nil, "oneOrMore")
	add(n.ZeroOrMore != nil, "zeroOrMore")
	sort.Strings(ks)
	return ks
}

type builder struct {
	tokenize Tokenizer
}

func (b builder) build(n *Node, path string) (pattern.Expr[string], error) {
	ks := n.kinds()
	switch len(ks) {
	case 0:
		return pattern.Expr[string]{}, &NodeError{Path: path, Message: "node has no kind", Err: ErrInvalidNode}
	case 1:
	default:
		return pattern.Expr[string]{}, &NodeError{
			Path:    path,
			Message: fmt.Sprintf("node has %d kinds (%s)", len(ks), strings.Join(ks, ", ")),
			Err:     ErrInvalidNode,
		}
	}

	switch {
	case n.Value != nil:
		return pattern.Value(*n.Value), nil
	case n.Literal != nil:
		return pattern.Sequence(b.tokenize(*n.Literal)...), nil
	case n.Any != nil:
		if !*n.Any {
			return pattern.Expr[string]{}, &NodeError{Path: path + ".any", Message: "must be true", Err: ErrInvalidNode}
		}
		return pattern.Wildcard[string](), nil
	case n.Contains != nil:
		m, err := textpred.ContainsAny(n.Contains...)
		if err != nil {
			return pattern.Expr[string]{}, &NodeError{Path: path + ".contains", Err: err}
		}
		return pattern.Predicate(m), nil
	case n.Prefix != nil:
		return pattern.Predicate(textpred.HasPrefix(*n.Prefix)), nil
	case n.Fold != nil:
		return pattern.Predicate(textpred.EqualFold(*n.Fold)), nil
	case n.In != nil:
		return pattern.Predicate(textpred.OneOfWords(n.In...)), nil
	case n.Concat != nil:
		exprs, err := b.buildAll(n.Concat, path+".concat")
		if err != nil {
			return pattern.Expr[string]{}, err
		}
		return pattern.Concat(exprs...), nil
	case n.OneOf != nil:
		exprs, err := b.buildAll(n.OneOf, path+".oneOf")
		if err != nil {
			return pattern.Expr[string]{}, err
		}
		return pattern.OneOf(exprs...), nil
	case n.Maybe != nil:
		e, err := b.build(n.Maybe, path+".maybe")
		if err != nil {
			return pattern.Expr[string]{}, err
		}
		return pattern.Maybe(e), nil
	case n.OneOrMore != nil:
		e, err := b.build(n.OneOrMore, path+".oneOrMore")
		if err != nil {
			return pattern.Expr[string]{}, err
		}
		return pattern.OneOrMore(e), nil
	default:
		e, err := b.build(n.ZeroOrMore, path+".zeroOrMore")
		if err != nil {
			return pattern.Expr[string]{}, err
		}
		return pattern.ZeroOrMore(e), nil
	}
}

func (b builder) buildAll(nodes []Node, path string) ([]pattern.Expr[string], error) {
	exprs := make([]pattern.Expr[string], len(nodes))
	for i := range nodes {
		e, err := b.build(&nodes[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}
