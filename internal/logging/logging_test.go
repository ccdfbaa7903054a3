package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level lines leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 4") {
		t.Errorf("missing expected lines: %q", out)
	}
	if !strings.Contains(out, l.Session()) {
		t.Errorf("lines should carry session %q: %q", l.Session(), out)
	}
}

func TestLoggerSessionIDs(t *testing.T) {
	a, b := New(LevelInfo), New(LevelInfo)
	if len(a.Session()) != 8 {
		t.Errorf("session length = %d, want 8", len(a.Session()))
	}
	if a.Session() == b.Session() {
		t.Error("two loggers share a session ID")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "here")
}

func TestThrottle(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	th := l.Throttled(time.Hour, 2)
	for i := 0; i < 5; i++ {
		th.Debug("pick %d", i)
	}

	lines := strings.Count(buf.String(), "\n")
	if lines != 2 {
		t.Errorf("got %d lines, want 2 within the burst", lines)
	}
	if th.dropped != 3 {
		t.Errorf("dropped = %d, want 3", th.dropped)
	}
}
