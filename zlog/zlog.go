// Package zlog is a small leveled logger for the emitter and its CLI.
//
// None of the example projects this codebase draws on pull in a
// structured-logging library (zerolog, zap, logrus): the reference
// interpreter just does fmt.Fprintf(os.Stderr, "Warning: ...") at the
// couple of spots it needs to tell the user something (see main.go's
// sound-effect warning, cmd/gametest/main.go's run summary). zlog
// keeps that register - plain, line-oriented, stderr by default - but
// gives it the level gate spec.md section 6 asks for via
// ZIL_LOG_LEVEL, which the ad hoc fmt calls had no way to express.
package zlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	Trace Level = iota
	Debug
	Info
	Notice
	Warning
	Error
	Critical
)

func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return Trace, true
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "notice":
		return Notice, true
	case "warning":
		return Warning, true
	case "error":
		return Error, true
	case "critical":
		return Critical, true
	default:
		return Info, false
	}
}

func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Logger writes level-gated, line-oriented messages to an io.Writer.
// Safe for concurrent use (the emitter itself is single-threaded, but
// the CLI's build/run/analyze commands may share one Logger across
// goroutines feeding a bubbletea program).
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New returns a Logger writing to out at the given minimum level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level}
}

// Default returns a Logger writing to os.Stderr at the level named by
// ZIL_LOG_LEVEL, defaulting to Info if unset or unrecognized.
func Default() *Logger {
	level := Info
	if v, ok := os.LookupEnv("ZIL_LOG_LEVEL"); ok {
		if parsed, ok := ParseLevel(v); ok {
			level = parsed
		}
	}
	return New(os.Stderr, level)
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s: %s\n", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Tracef(format string, args ...interface{})    { l.log(Trace, format, args...) }
func (l *Logger) Debugf(format string, args ...interface{})    { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})     { l.log(Info, format, args...) }
func (l *Logger) Noticef(format string, args ...interface{})   { l.log(Notice, format, args...) }
func (l *Logger) Warningf(format string, args ...interface{})  { l.log(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})    { l.log(Error, format, args...) }
func (l *Logger) Criticalf(format string, args ...interface{}) { l.log(Critical, format, args...) }
