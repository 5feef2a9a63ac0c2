// Package logger holds the process-wide diagnostic loggers. Both discard
// their output until the CLI raises the verbosity.
package logger

import (
	"io"
	"log"
)

// StdLogger is the subset of *log.Logger used across wordmask.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

const (
	prefix      = "[wordmask] "
	debugPrefix = "debug: "
)

var (
	// Logger receives regular diagnostics such as skipped caches and
	// charset fallbacks.
	Logger StdLogger = log.New(io.Discard, prefix, log.LstdFlags)

	// DebugLogger receives per-file detail. By default it forwards to Logger
	// with a "debug: " marker.
	DebugLogger StdLogger = &debugLogger{}
)

type debugLogger struct{}

func (d *debugLogger) Print(v ...interface{}) {
	Logger.Print(append([]interface{}{debugPrefix}, v...)...)
}

func (d *debugLogger) Printf(format string, v ...interface{}) {
	Logger.Printf(debugPrefix+format, v...)
}

func (d *debugLogger) Println(v ...interface{}) {
	Logger.Println(append([]interface{}{"debug:"}, v...)...)
}

// SetLogger replaces the process logger.
func SetLogger(l StdLogger) {
	Logger = l
}

// SetDebugLogger replaces the debug logger.
func SetDebugLogger(l StdLogger) {
	DebugLogger = l
}

// Configure routes the loggers to w by verbosity: 0 keeps both silent, 1
// enables Logger, 2 or more adds DebugLogger.
func Configure(w io.Writer, verbosity int) {
	if verbosity <= 0 {
		SetLogger(log.New(io.Discard, prefix, 0))
		SetDebugLogger(log.New(io.Discard, "", 0))
		return
	}
	SetLogger(log.New(w, prefix, 0))
	if verbosity == 1 {
		SetDebugLogger(log.New(io.Discard, "", 0))
		return
	}
	SetDebugLogger(&debugLogger{})
}
