package testhelpers

import (
	"io"
	"log/slog"

	"github.com/lendfolio/lendfolio/internal/logging"
)

// NewLogger creates a logger writing to the given sink, usually io.Discard.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
