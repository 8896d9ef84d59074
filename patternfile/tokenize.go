package patternfile

import "strings"

// Tokenizer splits text into string tokens.
type Tokenizer func(s string) []string

var tokenizers = map[string]Tokenizer{
	"":      Runes,
	"runes": Runes,
	"words": Words,
	"lines": Lines,
}

// Runes yields each rune of s as a token.
func Runes(s string) []string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		tokens = append(tokens, string(r))
	}
	return tokens
}

// Words splits s around runs of white space.
func Words(s string) []string {
	return strings.Fields(s)
}

// Lines splits s into lines without their terminators. A trailing newline
// does not produce an empty final line, and "\r\n" endings are accepted.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
