package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	notifier "github.com/rnkv/notifier-go"
)

const (
	EnvLogLevel     = "NOTIFIER_LOG_LEVEL"
	EnvLogTimestamp = "NOTIFIER_LOG_TIMESTAMP"
	EnvLogNoColor   = "NOTIFIER_LOG_NOCOLOR"
	EnvLogJSON      = "NOTIFIER_LOG_JSON"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Options selects the output of a logger built by New.
type Options struct {
	Level     slog.Level
	Timestamp bool
	NoColor   bool
	JSON      bool
}

func DefaultOptions(profile Profile) Options {
	switch profile {
	case ProfileTest:
		return Options{Level: slog.LevelDebug}
	default:
		return Options{Level: slog.LevelInfo, Timestamp: true}
	}
}

// ApplyEnv overrides opts from the NOTIFIER_LOG_* variables; unset or
// malformed values are ignored.
func ApplyEnv(opts *Options, getenv func(string) string) {
	if level, ok := ParseLevel(getenv(EnvLogLevel)); ok {
		opts.Level = level
	}
	if v, ok := parseBool(getenv(EnvLogTimestamp)); ok {
		opts.Timestamp = v
	}
	if v, ok := parseBool(getenv(EnvLogNoColor)); ok {
		opts.NoColor = v
	}
	if v, ok := parseBool(getenv(EnvLogJSON)); ok {
		opts.JSON = v
	}
}

// New returns a slog.Logger writing to w through zerolog: console formatted
// unless opts.JSON is set.
func New(w io.Writer, opts Options) *slog.Logger {
	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    opts.NoColor,
			TimeFormat: time.RFC3339,
		}
	}

	return slog.New(NewHandler(zerolog.New(out), opts.Level, opts.Timestamp))
}

var (
	configureOnce sync.Once
	configured    *slog.Logger
)

func ConfigureRuntime() *slog.Logger {
	return Configure(ProfileRuntime)
}

func ConfigureTests() *slog.Logger {
	return Configure(ProfileTest)
}

// Configure builds the stderr logger for profile once, installs it as the
// slog default and as the notifier delivery logger, and returns it.
func Configure(profile Profile) *slog.Logger {
	configureOnce.Do(func() {
		opts := DefaultOptions(profile)
		ApplyEnv(&opts, os.Getenv)
		configured = New(os.Stderr, opts)
		slog.SetDefault(configured)
		notifier.SetLogger(configured)
	})

	return configured
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
