package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the compiled automaton of a pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(false)
			if err != nil {
				return err
			}

			a := c.Matcher.Automaton()
			g := a.Graph()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "name:   %s\n", c.Name)
			fmt.Fprintf(out, "mode:   %s\n", c.Matcher.Mode())
			fmt.Fprintf(out, "states: %d\n", a.States())
			fmt.Fprintf(out, "edges:  %d\n", g.NumEdges())
			fmt.Fprintf(out, "roots:  %v\n", a.Roots())
			for _, id := range g.Keys() {
				marker := " "
				if a.IsMatch(id) {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %d:", marker, id)
				for _, e := range g.NodeEdges(id) {
					fmt.Fprintf(out, " ->%d", e.To)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
