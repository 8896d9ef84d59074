// Package patternfile loads pattern definitions from YAML documents.
//
// A document names a tokenizer, a matching mode and a pattern tree:
//
//	name: api-error
//	tokens: words
//	mode: prefix
//	pattern:
//	  concat:
//	    - in: [GET, POST]
//	    - prefix: /api/
//	    - zeroOrMore: {any: true}
//	    - contains: ["500", "503"]
//
// Every pattern node has exactly one key. Patterns match string tokens; the
// tokenizer decides what a token is (a rune, a word or a line).
package patternfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/coregx/matchkit"
	"github.com/coregx/matchkit/pattern"
)

var (
	// ErrInvalidNode indicates a pattern node with zero or several kinds,
	// or with an unusable argument
	ErrInvalidNode = errors.New("invalid pattern node")

	// ErrUnknownTokens indicates an unsupported tokens value
	ErrUnknownTokens = errors.New("unknown tokenizer")

	// ErrUnknownMode indicates an unsupported mode value
	ErrUnknownMode = errors.New("unknown mode")
)

// NodeError reports a problem with the pattern node at Path.
type NodeError struct {
	// Path locates the node, e.g. "pattern.concat[2].maybe"
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("patternfile: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("patternfile: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *NodeError) Unwrap() error {
	return e.Err
}

// Document is a decoded pattern file.
type Document struct {
	Name string `mapstructure:"name" json:"name"`

	// Tokens selects the tokenizer: runes, words or lines.
	// Default: runes
	Tokens string `mapstructure:"tokens" json:"tokens"`

	// Mode is prefix or whole.
	// Default: prefix
	Mode string `mapstructure:"mode" json:"mode"`

	// MaxStates caps the compiled automaton size. Zero means no limit.
	MaxStates int `mapstructure:"maxStates" json:"maxStates"`

	Pattern Node `mapstructure:"pattern" json:"pattern"`
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("patternfile: parse yaml: %w", err)
	}
	if raw == nil {
		return nil, errors.New("patternfile: empty document")
	}
	return Decode(raw)
}

// Load reads and decodes the YAML document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patternfile: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode builds a Document from a generic map, as produced by YAML or JSON
// decoders. Unknown keys are rejected. Scalars are converted leniently, so
// `value: 42` yields the token "42".
func Decode(raw map[string]any) (*Document, error) {
	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("patternfile: decode: %w", err)
	}
	return &doc, nil
}

// Tokenizer returns the tokenizer named by the document.
func (d *Document) Tokenizer() (Tokenizer, error) {
	t, ok := tokenizers[d.Tokens]
	if !ok {
		return nil, fmt.Errorf("patternfile: tokens %q: %w", d.Tokens, ErrUnknownTokens)
	}
	return t, nil
}

// MatchMode returns the matching mode named by the document.
func (d *Document) MatchMode() (matchkit.Mode, error) {
	switch d.Mode {
	case "", "prefix":
		return matchkit.ModePrefix, nil
	case "whole":
		return matchkit.ModeWholeInput, nil
	default:
		return matchkit.ModePrefix, fmt.Errorf("patternfile: mode %q: %w", d.Mode, ErrUnknownMode)
	}
}

// Expr builds the pattern expression described by the document.
func (d *Document) Expr() (pattern.Expr[string], error) {
	tokenize, err := d.Tokenizer()
	if err != nil {
		return pattern.Expr[string]{}, err
	}
	b := builder{tokenize: tokenize}
	return b.build(&d.Pattern, "pattern")
}

// Compiled is a document ready for matching raw text.
type Compiled struct {
	Name     string
	Matcher  *matchkit.Matcher[string]
	Tokenize Tokenizer
}

// Compile builds and compiles the document's pattern. logger may be nil.
func (d *Document) Compile(logger *slog.Logger) (*Compiled, error) {
	tokenize, err := d.Tokenizer()
	if err != nil {
		return nil, err
	}
	mode, err := d.MatchMode()
	if err != nil {
		return nil, err
	}
	expr, err := d.Expr()
	if err != nil {
		return nil, err
	}

	config := matchkit.DefaultConfig()
	config.Mode = mode
	config.MaxStates = d.MaxStates
	if logger != nil {
		config.Logger = logger.With("pattern", d.Name)
	}
	m, err := matchkit.CompileWithConfig(expr, config)
	if err != nil {
		return nil, fmt.Errorf("patternfile: %s: %w", d.Name, err)
	}
	return &Compiled{Name: d.Name, Matcher: m, Tokenize: tokenize}, nil
}

// MatchString tokenizes s and matches the tokens.
func (c *Compiled) MatchString(s string) bool {
	return c.Matcher.Match(c.Tokenize(s))
}
