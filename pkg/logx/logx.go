package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is the minimum severity that gets written
type Level int32

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

var (
	level  atomic.Int32
	logger = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	level.Store(int32(LevelInfo))
}

// SetLevel changes the global level
func SetLevel(l Level) { level.Store(int32(l)) }

// GetLevel returns the global level
func GetLevel() Level { return Level(level.Load()) }

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) { logger.SetOutput(w) }

// ParseLevel maps "debug", "info", "warn", "error" to a Level, defaulting to info
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

func write(l Level, msg string) {
	if l < GetLevel() {
		return
	}
	_ = logger.Output(3, fmt.Sprintf("[%s] %s", l, msg))
}

func Debug(msg string)                  { write(LevelDebug, msg) }
func Debugf(format string, args ...any) { write(LevelDebug, fmt.Sprintf(format, args...)) }
func Info(msg string)                   { write(LevelInfo, msg) }
func Infof(format string, args ...any)  { write(LevelInfo, fmt.Sprintf(format, args...)) }
func Warn(msg string)                   { write(LevelWarn, msg) }
func Warnf(format string, args ...any)  { write(LevelWarn, fmt.Sprintf(format, args...)) }
func Error(msg string)                  { write(LevelError, msg) }
func Errorf(format string, args ...any) { write(LevelError, fmt.Sprintf(format, args...)) }

// Fatalf logs at error level regardless of the configured level and exits
func Fatalf(format string, args ...any) {
	_ = logger.Output(2, fmt.Sprintf("[FATAL] %s", fmt.Sprintf(format, args...)))
	os.Exit(1)
}
