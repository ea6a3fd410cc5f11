package main

import (
	"log/slog"
	"os"
)

// NewLogger returns the annotator's structured slog.Logger: JSON records
// on stdout at the given level.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
