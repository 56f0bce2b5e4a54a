package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a debug-level text logger writing into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}
