package observability

import (
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger writing to stdout and installs it as
// the process default.
func NewLogger() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
