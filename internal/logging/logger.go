// Package logging builds the slog loggers used by the sieve CLI and HTTP
// server. The core validation packages take no logger at all; diagnostics
// belong to the surfaces that wrap them.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger on stderr filtered at level. Stdout stays
// reserved for validation results so the CLI output remains pipeable.
// Attribute keys named "error" are rewritten to "err" so log lines stay
// uniform no matter which call site emitted them.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: normalizeKeys,
	}))
}

// FromVerbose maps the CLI's --verbose flag to a logger: debug level when
// set, info otherwise.
func FromVerbose(verbose bool) *slog.Logger {
	if verbose {
		return New(slog.LevelDebug)
	}
	return New(slog.LevelInfo)
}

// NewNop returns a logger that discards everything. Used as the default
// when a server is constructed without one, and in tests.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func normalizeKeys(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
