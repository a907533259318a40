// Package logger provides a small prefixed console logger with per-component
// coloring, used to tell the subsystems of the service apart in one stream.
package logger

import (
	"errors"
	"io"
	"log"
)

const colorReset = "\033[0m"

// Logger writes leveled, prefixed log lines to a single destination.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a Logger that tags every line with the given prefix, colored
// with the given ANSI escape sequence. Returns an error if the destination
// writer is nil or the prefix is empty.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if out == nil {
		return nil, errors.New("logger destination writer is nil")
	}
	if prefix == "" {
		return nil, errors.New("logger prefix is empty")
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(out, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) {
	prefix := "[" + l.prefix + "]"
	if l.color != "" {
		prefix = l.color + prefix + colorReset
	}
	l.out.Printf("%s [%s] %s", prefix, level, msg)
}
