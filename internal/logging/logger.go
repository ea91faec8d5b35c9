// Package logging builds the process logger and the gin request logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger at debug level in development and a JSON logger
// at info level otherwise.
func New(development bool) *slog.Logger {
	return newWithWriter(os.Stdout, development)
}

func newWithWriter(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
