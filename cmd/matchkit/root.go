package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coregx/matchkit/internal/logging"
	"github.com/coregx/matchkit/patternfile"
)

// errNoMatch makes the process exit with status 1 without printing an error.
var errNoMatch = errors.New("no match")

// options holds the persistent flags shared by all subcommands.
type options struct {
	patternPath string
	logLevel    string
	logger      *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "matchkit",
		Short: "Match text against token patterns",
		Long: `matchkit compiles pattern files into parallel-state automata and
matches text against them in a single pass, without backtracking.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	cmd.PersistentFlags().StringVarP(&opts.patternPath, "pattern", "p", "", "Pattern file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newMatchCmd(opts), newInspectCmd(opts), newServeCmd(opts))
	return cmd
}

// load reads and compiles the pattern file. whole forces whole-input mode.
func (o *options) load(whole bool) (*patternfile.Compiled, error) {
	if o.patternPath == "" {
		return nil, errors.New("missing --pattern")
	}
	doc, err := patternfile.Load(o.patternPath)
	if err != nil {
		return nil, err
	}
	if whole {
		doc.Mode = "whole"
	}
	return doc.Compile(o.logger)
}
