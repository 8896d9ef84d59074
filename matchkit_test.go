package matchkit

import (
	"bytes"
	"errors"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/matchkit/graph"
	"github.com/coregx/matchkit/pattern"
)

// TestMatchString_Properties covers the behaviour every driver must keep
func TestMatchString_Properties(t *testing.T) {
	a, b, c := pattern.Value('a'), pattern.Value('b'), pattern.Value('c')

	tests := []struct {
		name    string
		pattern pattern.Expr[rune]
		input   string
		want    bool
	}{
		// maybe(p) admits the empty path before any token is read
		{"maybe empty", pattern.Maybe(a), "", true},
		{"maybe other", pattern.Maybe(a), "zzz", true},

		// concat() is satisfied at zero tokens
		{"empty concat", pattern.Concat[rune](), "", true},
		{"empty concat input", pattern.Concat[rune](), "xyz", true},

		// oneOf() never matches
		{"empty oneOf", pattern.OneOf[rune](), "", false},
		{"empty oneOf input", pattern.OneOf[rune](), "abc", false},

		{"concat exact", pattern.Concat(a, b, c), "abc", true},
		{"concat short", pattern.Concat(a, b, c), "ab", false},
		{"concat prefix", pattern.Concat(a, b, c), "abcd", true},
		{"concat wrong", pattern.Concat(a, b, c), "abd", false},

		{"oneOrMore 1", pattern.OneOrMore(a), "a", true},
		{"oneOrMore 2", pattern.OneOrMore(a), "aa", true},
		{"oneOrMore 3", pattern.OneOrMore(a), "aaa", true},
		{"oneOrMore empty", pattern.OneOrMore(a), "", false},
		{"oneOrMore other", pattern.OneOrMore(a), "b", false},

		{"zeroOrMore empty", pattern.ZeroOrMore(a), "", true},
		{"zeroOrMore 1", pattern.ZeroOrMore(a), "a", true},
		{"zeroOrMore 2", pattern.ZeroOrMore(a), "aa", true},
		{"zeroOrMore other", pattern.ZeroOrMore(a), "b", true},

		{"repeat inner", pattern.Concat(a, pattern.OneOrMore(b), c), "abbbc", true},
		{"repeat none", pattern.Concat(a, pattern.OneOrMore(b), c), "ac", false},
		{"repeat bad tail", pattern.Concat(a, pattern.OneOrMore(b), c), "abbbd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchString(tt.pattern, tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestMatch_Slices tests the slice entry point with several token types
func TestMatch_Slices(t *testing.T) {
	if !Match(pattern.Sequence("a", "b", "c"), []string{"a", "b", "c"}) {
		t.Error("string slice should match")
	}
	if !Match(pattern.Sequence(1, 2, 3), []int{1, 2, 3}) {
		t.Error("int slice should match")
	}
	if Match(pattern.Sequence(1, 2, 3), []int{1, 3}) {
		t.Error("int slice should not match")
	}
	if !MatchBytes(pattern.Bytes([]byte("GET ")), []byte("GET /index.html")) {
		t.Error("byte prefix should match")
	}
}

// TestMatchSeq_StopsEarly tests that iteration ends once the result is known
func TestMatchSeq_StopsEarly(t *testing.T) {
	tests := []struct {
		name     string
		pattern  pattern.Expr[int]
		input    []int
		want     bool
		consumed int
	}{
		{"accept after two", pattern.Sequence(1, 2), []int{1, 2, 3, 4}, true, 2},
		{"terminate after one", pattern.Sequence(1, 2), []int{9, 2, 3}, false, 1},
		{"accept before reading", pattern.Maybe(pattern.Value(1)), []int{1, 2}, true, 0},
		{"terminated before reading", pattern.OneOf[int](), []int{1, 2}, false, 0},
		{"exhausted", pattern.Sequence(1, 2, 3), []int{1, 2}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumed := 0
			seq := func(yield func(int) bool) {
				for _, v := range tt.input {
					consumed++
					if !yield(v) {
						return
					}
				}
			}
			if got := MatchSeq(tt.pattern, seq); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if consumed != tt.consumed {
				t.Errorf("consumed %d tokens, want %d", consumed, tt.consumed)
			}
		})
	}
}

// TestModeWholeInput tests whole-input matching
func TestModeWholeInput(t *testing.T) {
	ab := pattern.Concat(pattern.Value('a'), pattern.Value('b'))
	config := DefaultConfig()
	config.Mode = ModeWholeInput

	tests := []struct {
		name    string
		pattern pattern.Expr[rune]
		input   string
		want    bool
	}{
		{"exact", ab, "ab", true},
		{"longer", ab, "abc", false},
		{"shorter", ab, "a", false},
		{"empty", ab, "", false},
		{"empty concat empty", pattern.Concat[rune](), "", true},
		{"empty concat input", pattern.Concat[rune](), "a", false},
		{"maybe skip", pattern.Maybe(pattern.Value('a')), "", true},
		{"maybe take", pattern.Maybe(pattern.Value('a')), "a", true},
		{"maybe extra", pattern.Maybe(pattern.Value('a')), "aa", false},
		{"star", pattern.ZeroOrMore(pattern.Value('a')), "aaaa", true},
		{"star mixed", pattern.ZeroOrMore(pattern.Value('a')), "aab", false},
		{"never", pattern.OneOf[rune](), "", false},
		// accepting midway is not enough
		{"loop then tail", pattern.Concat(pattern.OneOrMore(pattern.Value('a')), pattern.Value('b')), "aab", true},
		{"loop accept midway", pattern.Concat(pattern.OneOrMore(pattern.Value('a')), pattern.Value('b')), "aaba", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := CompileWithConfig(tt.pattern, config)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			if got := m.MatchSeq(Runes(tt.input)); got != tt.want {
				t.Errorf("MatchSeq(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := m.Match([]rune(tt.input)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestModeWholeInput_StopsOnTermination tests the early exit on a dead run
func TestModeWholeInput_StopsOnTermination(t *testing.T) {
	config := DefaultConfig()
	config.Mode = ModeWholeInput
	m, err := CompileWithConfig(pattern.Sequence(1, 2), config)
	if err != nil {
		t.Fatal(err)
	}

	consumed := 0
	seq := func(yield func(int) bool) {
		for _, v := range []int{7, 1, 2} {
			consumed++
			if !yield(v) {
				return
			}
		}
	}
	if m.MatchSeq(seq) {
		t.Error("should not match")
	}
	if consumed != 1 {
		t.Errorf("consumed %d tokens, want 1", consumed)
	}
}

// TestCompile_Graph tests the shape of a compiled automaton
func TestCompile_Graph(t *testing.T) {
	m := MustCompile(pattern.Concat(pattern.Value('a'), pattern.Value('b')))
	a := m.Automaton()

	// accept state + one node per value
	if a.States() != 3 {
		t.Errorf("expected 3 states, got %d", a.States())
	}
	if !a.IsMatch(0) {
		t.Error("node 0 should be the accept state")
	}
	if a.Graph().NumEdges() != 2 {
		t.Errorf("expected 2 edges, got %d", a.Graph().NumEdges())
	}
	roots := a.Roots()
	if len(roots) != 1 || roots[0] != 1 {
		t.Errorf("expected roots [1], got %v", roots)
	}
	if m.Mode() != ModePrefix {
		t.Errorf("expected prefix mode, got %s", m.Mode())
	}
	if !strings.HasPrefix(m.String(), "Matcher{mode: prefix, NFA{states: 3") {
		t.Errorf("unexpected String(): %q", m.String())
	}
}

// TestCompile_CustomInvalidRoot tests a Custom expression with a bad root
func TestCompile_CustomInvalidRoot(t *testing.T) {
	bad := pattern.Custom[rune](nil, func(nodes, next []graph.NodeID) pattern.Links[rune] {
		return pattern.Links[rune]{Roots: []graph.NodeID{42}}
	})

	_, err := Compile(bad)
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustCompile should panic")
		}
	}()
	MustCompile(bad)
}

// TestCompileWithConfig_Validation tests config validation and limits
func TestCompileWithConfig_Validation(t *testing.T) {
	p := pattern.Literal("hello")

	_, err := CompileWithConfig(p, Config{Mode: Mode(9)})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "Mode" {
		t.Errorf("expected Mode ConfigError, got %v", err)
	}

	_, err = CompileWithConfig(p, Config{MaxStates: -1})
	if !errors.As(err, &cfgErr) || cfgErr.Field != "MaxStates" {
		t.Errorf("expected MaxStates ConfigError, got %v", err)
	}

	_, err = CompileWithConfig(p, Config{MaxStates: 5})
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("expected ErrTooComplex, got %v", err)
	}

	if _, err := CompileWithConfig(p, Config{MaxStates: 6}); err != nil {
		t.Errorf("6 states should fit: %v", err)
	}
}

// TestCompileWithConfig_Logger tests compile diagnostics
func TestCompileWithConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := CompileWithConfig(pattern.Literal("ab"), config); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"pattern compiled", "states=3", "edges=2", "roots=1", "mode=prefix"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

// TestMatcher_Reuse tests that one matcher serves independent inputs
func TestMatcher_Reuse(t *testing.T) {
	m := MustCompile(pattern.Concat(pattern.Value('x'), pattern.ZeroOrMore(pattern.Value('y')), pattern.Value('z')))

	inputs := map[string]bool{"xz": true, "xyyz": true, "xy": false, "zx": false, "xyz!": true}
	for in, want := range inputs {
		if got := m.MatchSeq(Runes(in)); got != want {
			t.Errorf("MatchSeq(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestMatcher_Concurrent tests sharing one matcher across goroutines
func TestMatcher_Concurrent(t *testing.T) {
	m := MustCompile(pattern.Concat(pattern.OneOrMore(pattern.Value('a')), pattern.Value('b')))

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			in := strings.Repeat("a", n+1) + "b"
			if !m.MatchSeq(Runes(in)) || m.MatchSeq(Runes("b"+in)) {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if failures != 0 {
		t.Errorf("%d goroutines saw wrong results", failures)
	}
}

// TestMatch_Pathological tests a pattern that makes backtrackers explode
func TestMatch_Pathological(t *testing.T) {
	// (a?){n}a{n} against a^n
	const n = 30
	var parts []pattern.Expr[rune]
	for i := 0; i < n; i++ {
		parts = append(parts, pattern.Maybe(pattern.Value('a')))
	}
	for i := 0; i < n; i++ {
		parts = append(parts, pattern.Value('a'))
	}
	config := DefaultConfig()
	config.Mode = ModeWholeInput
	m, err := CompileWithConfig(pattern.Concat(parts...), config)
	if err != nil {
		t.Fatal(err)
	}
	if !m.MatchSeq(Runes(strings.Repeat("a", n))) {
		t.Error("a^n should match")
	}
	if m.MatchSeq(Runes(strings.Repeat("a", n-1))) {
		t.Error("a^(n-1) should not match")
	}
}

// TestRunes tests rune iteration
func TestRunes(t *testing.T) {
	var got []rune
	for r := range Runes("añ\xff") {
		got = append(got, r)
	}
	want := []rune{'a', 'ñ', '�'}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rune %d: got %q, want %q", i, got[i], want[i])
		}
	}

	next, stop := iter.Pull(Runes("abc"))
	defer stop()
	if r, ok := next(); !ok || r != 'a' {
		t.Errorf("first rune = %q, %v", r, ok)
	}
}

func TestMode_String(t *testing.T) {
	if ModePrefix.String() != "prefix" || ModeWholeInput.String() != "whole" {
		t.Error("unexpected mode names")
	}
	if Mode(7).String() != "Unknown(7)" {
		t.Errorf("unexpected unknown mode name %q", Mode(7).String())
	}
}

func BenchmarkMatcher_Match(b *testing.B) {
	m := MustCompile(pattern.Concat(
		pattern.OneOrMore(pattern.Wildcard[byte]()),
		pattern.Bytes([]byte("needle")),
	))
	haystack := bytes.Repeat([]byte("hay "), 256)
	haystack = append(haystack, "needle"...)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Match(haystack)
	}
}
