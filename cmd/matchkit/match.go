package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/matchkit/patternfile"
)

func newMatchCmd(opts *options) *cobra.Command {
	var whole, eachLine bool

	cmd := &cobra.Command{
		Use:   "match [files...]",
		Short: "Match files or stdin against a pattern",
		Long: `Reads each file (or stdin when none is given), tokenizes it with the
pattern's tokenizer and prints "name: true|false". Exits with status 1 unless
every input matched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(whole)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ok := true
			if len(args) == 0 {
				ok = matchInput(out, c, "-", cmd.InOrStdin(), eachLine)
			}
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				if !matchInput(out, c, path, f, eachLine) {
					ok = false
				}
				f.Close()
			}

			if !ok {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&whole, "whole", false, "Require the whole input to match")
	cmd.Flags().BoolVar(&eachLine, "each-line", false, "Match every line separately")
	return cmd
}

// matchInput matches r and reports whether every match succeeded.
func matchInput(w io.Writer, c *patternfile.Compiled, name string, r io.Reader, eachLine bool) bool {
	if !eachLine {
		data, err := io.ReadAll(r)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", name, err)
			return false
		}
		matched := c.MatchString(string(data))
		fmt.Fprintf(w, "%s: %t\n", name, matched)
		return matched
	}

	ok := true
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		matched := c.MatchString(line)
		fmt.Fprintf(w, "%s:%d: %t\n", name, n, matched)
		ok = ok && matched
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return false
	}
	return ok
}
