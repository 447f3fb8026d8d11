package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Level controls which messages a writer logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type writerLogger struct {
	mu        sync.Mutex
	w         io.Writer
	level     Level
	component string
}

// New returns a logger writing timestamped lines to w at the given level.
func New(w io.Writer, level Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &writerLogger{w: w, level: level}
}

// NewComponentLogger returns the default stderr logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &writerLogger{w: os.Stderr, level: LevelInfo, component: component}
}

func (l *writerLogger) emit(level Level, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.component != "" {
		fmt.Fprintf(l.w, "%s [%s] [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), tag, l.component, msg)
		return
	}
	fmt.Fprintf(l.w, "%s [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), tag, msg)
}

func (l *writerLogger) Debug(format string, args ...any) {
	l.emit(LevelDebug, "DEBUG", format, args...)
}

func (l *writerLogger) Info(format string, args ...any) {
	l.emit(LevelInfo, "INFO", format, args...)
}

func (l *writerLogger) Warn(format string, args ...any) {
	l.emit(LevelWarn, "WARN", format, args...)
}

func (l *writerLogger) Error(format string, args ...any) {
	l.emit(LevelError, "ERROR", format, args...)
}
