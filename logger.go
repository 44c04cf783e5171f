package notifier

import (
	"log/slog"
	"sync/atomic"
)

// current receives one record per delivery attempt.
var current atomic.Pointer[slog.Logger]

// SetLogger overrides the package logger. It may be called while senders are
// running.
//
// If not set, or set to nil, slog.Default() is used.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

func logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}

	return slog.Default()
}
