package main

import (
	"io"
	"log/slog"
	"os"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewLogger opens a debug log at path. An empty path discards everything,
// since the terminal UI owns stdout and stderr.
func NewLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return discardLogger(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f, nil
}
