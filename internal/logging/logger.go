// Package logging provides the console output sink shared by all mgit
// components. Components never print directly; they receive a *Logger so
// tests can capture everything written.
package logging

import (
	"fmt"
	"io"
	"os"
)

// Logger writes user-facing status lines with colored glyphs.
type Logger struct {
	out     io.Writer
	debug   bool
	noColor bool
}

// New creates a logger writing to out. The CLI passes os.Stdout; tests pass
// a buffer.
func New(out io.Writer, debug, noColor bool) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{out: out, debug: debug, noColor: noColor}
}

// Success logs a completed-action message.
func (l *Logger) Success(format string, args ...interface{}) {
	l.glyph("\033[32m✓\033[0m", "✓", format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.glyph("\033[34mℹ\033[0m", "ℹ", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.glyph("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.glyph("\033[31m✗\033[0m", "✗", format, args...)
}

// Debug logs a message only when debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.glyph("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

// Plain writes a line with no glyph or color, e.g. raw key material.
func (l *Logger) Plain(format string, args ...interface{}) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

func (l *Logger) glyph(colored, plain, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.noColor {
		fmt.Fprintf(l.out, "%s %s\n", plain, msg)
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", colored, msg)
}
