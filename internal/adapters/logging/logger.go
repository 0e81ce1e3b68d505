// Package logging builds the daemon's structured logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sdcops/muppet/internal/buildinfo"
)

// New creates a JSON slog logger at the given level, stamped with the build
// version and a per-process run id so restarts can be told apart in
// aggregated logs.
func New(w io.Writer, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h).With(
		slog.String("version", buildinfo.Version),
		slog.String("run_id", uuid.NewString()),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
