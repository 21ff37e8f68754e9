package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything. Keeps service test
// output free of log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
