package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		records = append(records, record)
	}
	return records
}

func TestHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelDebug, JSON: true})

	logger.With("owner", "Bus").WithGroup("send").Warn(
		"Send failed.",
		"to", 3,
		"error", errors.New("channel full"),
		slog.Group("slot", "index", 2),
		"wait", 1500*time.Millisecond,
		"active", true,
	)

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	record := records[0]
	checks := map[string]any{
		"level":           "warn",
		"message":         "Send failed.",
		"owner":           "Bus",
		"send.to":         float64(3),
		"send.error":      "channel full",
		"send.slot.index": float64(2),
		"send.active":     true,
	}

	for key, want := range checks {
		if got := record[key]; got != want {
			t.Errorf("%s = %v (%T), want %v", key, got, got, want)
		}
	}

	if _, ok := record["send.wait"]; !ok {
		t.Error("missing duration field")
	}

	if _, ok := record["time"]; ok {
		t.Error("timestamp written although disabled")
	}
}

func TestHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, JSON: true})

	logger.Debug("Sent.")

	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %s", buf.String())
	}

	logger.Info("Bound.")
	logger.Error("Broken.")

	records := decodeRecords(t, &buf)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	if records[0]["level"] != "info" || records[1]["level"] != "error" {
		t.Fatalf("levels = %v, %v", records[0]["level"], records[1]["level"])
	}
}

func TestHandlerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, JSON: true, Timestamp: true})

	logger.Info("Bound.")

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if _, ok := records[0]["time"]; !ok {
		t.Fatalf("missing time field: %v", records[0])
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelDebug, NoColor: true})

	logger.Debug("Sent.", "to", "[B](Id: 1)")

	output := buf.String()
	if !strings.Contains(output, "Sent.") || !strings.Contains(output, "DBG") {
		t.Fatalf("unexpected console output %q", output)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:     "warning",
		EnvLogTimestamp: "false",
		EnvLogNoColor:   "1",
		EnvLogJSON:      "nope",
	}

	opts := DefaultOptions(ProfileRuntime)
	ApplyEnv(&opts, func(key string) string { return env[key] })

	if opts.Level != slog.LevelWarn {
		t.Errorf("Level = %v, want WARN", opts.Level)
	}
	if opts.Timestamp {
		t.Error("Timestamp should be overridden to false")
	}
	if !opts.NoColor {
		t.Error("NoColor should be true")
	}
	if opts.JSON {
		t.Error("malformed JSON flag should be ignored")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{" INFO ", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"trace", slog.LevelDebug - 4, true},
		{"", slog.LevelInfo, false},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

type emptyValuer struct{}

func (emptyValuer) LogValue() slog.Value {
	return slog.Value{}
}

func TestHandlerDropsEmptyResolvedAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, JSON: true})

	logger.Info("Bound.", slog.Any("", emptyValuer{}), "to", 1)

	records := decodeRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	if _, ok := records[0][""]; ok {
		t.Fatalf("empty attribute written: %v", records[0])
	}
	if records[0]["to"] != float64(1) {
		t.Fatalf("to = %v, want 1", records[0]["to"])
	}
}
