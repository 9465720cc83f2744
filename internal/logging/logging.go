// Package logging configures the structured logger shared by the CLI and
// the library packages.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Logger wraps slog.Logger with helpers that keep field names consistent
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w. format is "text" or "json".
func New(w io.Writer, level slog.Level, format string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json)", format)
	}

	return &Logger{Logger: slog.New(handler)}, nil
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// WithModel tags every record with the model file
func (l *Logger) WithModel(path string) *Logger {
	return &Logger{Logger: l.Logger.With("model", path)}
}

// LogLoad logs the outcome of loading a model file
func (l *Logger) LogLoad(ctx context.Context, path string, parts, triangles int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "model load failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "model loaded",
		"path", path,
		"parts", parts,
		"triangles", triangles,
	)
}

// LogSnap logs a completed snap computation
func (l *Logger) LogSnap(ctx context.Context, category, kind string, candidates int, confidence float64) {
	l.DebugContext(ctx, "snap computed",
		"category", category,
		"kind", kind,
		"candidates", candidates,
		"confidence", confidence,
	)
}

// LogAnnotation logs a store mutation
func (l *Logger) LogAnnotation(ctx context.Context, op, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "annotation "+op+" failed",
			"id", id,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "annotation "+op,
		"id", id,
	)
}
