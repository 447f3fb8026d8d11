package logging

import (
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWriterLoggerFiltersByLevel(t *testing.T) {
	var buf strings.Builder
	log := New(&buf, LevelWarn)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	log.Warn("shown %s", "warning")
	log.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below the level leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown warning") {
		t.Fatalf("warn line missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR] shown error") {
		t.Fatalf("error line missing: %q", out)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) must return a usable logger")
	}
	var buf strings.Builder
	log := New(&buf, LevelDebug)
	if OrNop(log) != log {
		t.Fatal("OrNop must pass a non-nil logger through")
	}
	// Must not panic.
	OrNop(nil).Error("ignored %v", 42)
}
