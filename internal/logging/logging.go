// Package logging builds the slog logger used across the pipeline. The
// logger is always passed explicitly; nothing here mutates global state
// beyond the optional log file it opens.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls logger construction.
type Options struct {
	Verbose bool   // debug level
	Quiet   bool   // errors only
	Level   string // explicit level, overridden by Verbose/Quiet
	File    string // also append to this run-scoped log file
}

// New builds a logger writing to w (and Options.File when set). The returned
// closer releases the log file; it is a no-op when no file was opened.
func New(w io.Writer, opts Options) (*slog.Logger, func() error, error) {
	closer := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G304 -- user-provided log path
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(w, f)
		closer = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: resolveLevel(opts)})
	return slog.New(handler), closer, nil
}

// resolveLevel maps options to a slog level. Verbose and Quiet win over the
// configured level string.
func resolveLevel(opts Options) slog.Level {
	if opts.Verbose {
		return slog.LevelDebug
	}
	if opts.Quiet {
		return slog.LevelError
	}
	switch strings.ToLower(opts.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
