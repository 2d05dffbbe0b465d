// Package logging provides structured logging setup for delc.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup initializes the default slog logger on stderr.
// Dev mode uses human-readable text; otherwise JSON at info level.
func Setup(devMode bool) {
	SetupWriter(os.Stderr, devMode)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, devMode bool) {
	var handler slog.Handler
	if devMode {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
