package injective

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	defaultLogger.Store(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	)
}

// SetDefaultLogger replaces logger used by Contexts created without WithLogger.
// nil restores default one, that writes warnings and errors to stderr.
func SetDefaultLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	defaultLogger.Store(l)
}

func logger() *slog.Logger {
	return defaultLogger.Load()
}
