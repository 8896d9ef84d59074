package matchkit

import (
	"fmt"
	"log/slog"
)

// Mode selects how much of the input a match must cover.
type Mode uint8

const (
	// ModePrefix reports a match as soon as any prefix of the input is
	// accepted; remaining tokens are never read. This is the default.
	ModePrefix Mode = iota

	// ModeWholeInput reports a match only if the automaton accepts after the
	// last token. Input is abandoned early once no path can continue.
	ModeWholeInput
)

// String returns a human-readable representation of the Mode
func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeWholeInput:
		return "whole"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Config controls compilation and matching.
//
// Example:
//
//	config := matchkit.DefaultConfig()
//	config.Mode = matchkit.ModeWholeInput
//	m, err := matchkit.CompileWithConfig(p, config)
type Config struct {
	// Mode selects prefix or whole-input matching.
	// Default: ModePrefix
	Mode Mode

	// MaxStates caps the number of automaton states, including the implicit
	// accept state. Zero means no limit.
	// Default: 0
	MaxStates int

	// Logger receives compile diagnostics at debug level. Matching never logs.
	// Default: nil (discard)
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with prefix matching, no state limit
// and no logging.
func DefaultConfig() Config {
	return Config{
		Mode: ModePrefix,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Mode != ModePrefix && c.Mode != ModeWholeInput {
		return &ConfigError{
			Field:   "Mode",
			Message: fmt.Sprintf("unknown mode %d", c.Mode),
		}
	}
	if c.MaxStates < 0 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be >= 0",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "matchkit: invalid config: " + e.Field + ": " + e.Message
}
