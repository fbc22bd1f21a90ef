// Package logging installs the process-wide slog handler.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/tyler180/sportsref/internal/env"
)

// Setup sends text logs to w, or stderr when w is nil. Debug output is on
// when debug is set or DEBUG is truthy.
func Setup(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if debug || env.Bool("DEBUG", false) {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}

// JSON is Setup with JSON lines, used inside Lambda where logs are indexed.
func JSON(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	level := slog.LevelInfo
	if env.Bool("DEBUG", false) {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
