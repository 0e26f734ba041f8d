// Package logging holds the process-wide leveled logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogLevel is the verbosity selected with --loglevel.
type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

var (
	mu     sync.Mutex
	level  = LogLevelNone
	logger *slog.Logger
)

// Setup configures the logger to write to stderr at the given level.
func Setup(optslevel LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	level = optslevel
	setup(os.Stderr)
}

// SetOutput redirects log records to w, keeping the configured level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setup(w)
}

func setup(w io.Writer) {
	sink := w
	if level == LogLevelNone {
		sink = io.Discard
	}
	lvl := slog.LevelDebug
	if level == LogLevelInfo {
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: lvl,
	})
	logger = slog.New(handler)
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes msg at the given level, which must be LogLevelInfo or
// LogLevelDebug. It does nothing before Setup is called.
func Log(level LogLevel, msg string, args ...any) {
	l := current()
	if l == nil {
		return
	}
	switch level {
	case LogLevelDebug:
		l.Debug(msg, args...)
	case LogLevelInfo:
		l.Info(msg, args...)
	default:
		panic(fmt.Sprintf("logging: Log called with level %q; use LogLevelInfo or LogLevelDebug", level))
	}
}

// LogErr logs msg with err attached at error level. A nil err is ignored.
func LogErr(err error, msg string) {
	l := current()
	if err == nil || l == nil {
		return
	}
	l.Error(msg, "error", err.Error())
}
