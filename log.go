package kontrol

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// Logger returns the logger used for diagnostics, slog.Default() unless
// SetLogger has been called.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger replaces the diagnostics logger. Passing nil restores
// slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}
