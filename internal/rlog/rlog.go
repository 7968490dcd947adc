// Package rlog wraps charmbracelet/log into the single process-wide
// logger every cmd/* entry point initializes before anything else runs.
package rlog

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

// Init sets up the process logger with the given name as its prefix
// and level ("debug", "info", "warn", "error"; unrecognized values
// fall back to info).
func Init(name string, level string) {
	logger = log.New(os.Stderr)
	logger.SetPrefix(name)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func ensure() {
	if logger == nil {
		Init("riichiengine", "info")
	}
}

func Debug(format string, args ...any) {
	ensure()
	if len(args) == 0 {
		logger.Debug(format)
		return
	}
	logger.Debug(format, args...)
}

func Info(format string, args ...any) {
	ensure()
	if len(args) == 0 {
		logger.Info(format)
		return
	}
	logger.Info(format, args...)
}

func Warn(format string, args ...any) {
	ensure()
	if len(args) == 0 {
		logger.Warn(format)
		return
	}
	logger.Warn(format, args...)
}

func Error(format string, args ...any) {
	ensure()
	if len(args) == 0 {
		logger.Error(format)
		return
	}
	logger.Error(format, args...)
}

func Fatal(format string, args ...any) {
	ensure()
	if len(args) == 0 {
		logger.Fatal(format)
		return
	}
	logger.Fatal(format, args...)
}
