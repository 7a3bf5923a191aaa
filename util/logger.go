// Package util provides low-level helpers shared by all other packages.
package util

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes leveled diagnostics to stderr in the style of ssh's
// own -v output: errors and warnings carry a word prefix, deeper
// levels a debugN: prefix matching the -v count that enables them.
// Stdout is never touched; it belongs to the tunnel data plane.
type Logger struct {
	verbosity  int
	out        io.Writer
	mu         sync.Mutex
	timestamps bool // prepend wall-clock times, on at debug verbosity
}

// NewLogger returns a Logger printing messages at or below the given
// verbosity (0 = errors only, 1 = -v, 2 = -vv, 3 = -vvv).
func NewLogger(verbosity int) *Logger {
	return &Logger{
		verbosity:  verbosity,
		out:        os.Stderr,
		timestamps: verbosity >= 3,
	}
}

// SetOutput overrides the output writer (default: os.Stderr).
func (l *Logger) SetOutput(w io.Writer) { l.out = w }

// Error always prints.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(0, "error: ", format, args...)
}

// Warn prints at -v and above.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(1, "warning: ", format, args...)
}

// Info prints at -v and above.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(1, "debug1: ", format, args...)
}

// Verbose prints at -vv and above.
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.emit(2, "debug2: ", format, args...)
}

// Debug prints at -vvv.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(3, "debug3: ", format, args...)
}

func (l *Logger) emit(threshold int, prefix, format string, args ...interface{}) {
	if l.verbosity < threshold {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.timestamps {
		fmt.Fprintf(l.out, "%s ", time.Now().Format("15:04:05.000"))
	}
	fmt.Fprintf(l.out, prefix+format+"\n", args...)
}
