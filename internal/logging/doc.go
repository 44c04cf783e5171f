// Package logging builds the slog loggers used by notifier binaries: a
// zerolog-backed slog.Handler (console or JSON) configured from a profile and
// NOTIFIER_LOG_* environment overrides.
package logging
