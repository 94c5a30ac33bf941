package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a debug-level JSON logger backed by a buffer, and the buffer
// for assertions on field values.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, &buf
}
