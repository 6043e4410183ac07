package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Logger provides leveled logging throughout the application. It writes to
// stderr so that stdout carries only the report itself.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	color bool
	now   func() time.Time
}

// NewLogger creates a Logger at info level writing to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr, LevelInfo)
}

// NewLoggerTo creates a Logger writing uncolored lines to w at the given level.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
		color: w == os.Stderr,
		now:   time.Now,
	}
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, "\033[32mINFO\033[0m ", "INFO ", format, args)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, "\033[33mWARN\033[0m ", "WARN ", format, args)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, "\033[31mERROR\033[0m", "ERROR", format, args)
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelDebug, "\033[36mDEBUG\033[0m", "DEBUG", format, args)
}

func (l *Logger) write(level Level, colored, plain, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	tag := plain
	if l.color {
		tag = colored
	}
	fmt.Fprintf(l.out, "[%s] %s %s\n", l.now().Format("2006-01-02 15:04:05"), tag, fmt.Sprintf(format, args...))
}
