// Package logging provides a simple leveled logger tagged with a per-run
// session ID.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a simple leveled logger.
type Logger struct {
	mu      sync.Mutex
	level   Level
	output  io.Writer
	session string
}

// New creates a logger writing to stderr with a fresh session ID.
func New(level Level) *Logger {
	return &Logger{
		level:   level,
		output:  os.Stderr,
		session: uuid.New().String()[:8],
	}
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Session returns the short session ID printed on every line.
func (l *Logger) Session() string {
	return l.session
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s [%s] %s %s\n", timestamp, level.String(), l.session, msg)

	_, _ = l.output.Write([]byte(line))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level:   LevelError + 1, // Higher than any level
		output:  io.Discard,
		session: "discard",
	}
}

// Throttle drops debug lines that arrive faster than its limit. Per-frame
// code logs through one so a 60 fps loop does not flood the log.
type Throttle struct {
	logger  *Logger
	limiter *rate.Limiter
	dropped int
}

// Throttled returns a Throttle allowing one line per interval, with bursts
// of up to burst lines.
func (l *Logger) Throttled(interval time.Duration, burst int) *Throttle {
	return &Throttle{
		logger:  l,
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Debug logs a debug message if the limiter allows it. The next line that
// gets through reports how many were dropped in between.
func (t *Throttle) Debug(format string, args ...interface{}) {
	if !t.limiter.Allow() {
		t.dropped++
		return
	}
	if t.dropped > 0 {
		format += fmt.Sprintf(" (%d suppressed)", t.dropped)
		t.dropped = 0
	}
	t.logger.Debug(format, args...)
}
