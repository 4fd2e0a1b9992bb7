package compiler

import (
	"fmt"
	"io"
	"os"
)

// Logger provides verbose output tracing a pattern's progress through the
// compile pipeline: parse, NFA construction, NFA simplification, codegen.
type Logger struct {
	enabled bool
	out     io.Writer
	stage   int
}

// NewLogger creates a new logger instance.
func NewLogger(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
	}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted message under the current pipeline stage if
// verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		fmt.Fprintf(l.out, "[rexforge]     "+format+"\n", args...)
	}
}

// Section starts a new numbered pipeline stage (Tokenize & Parse, NFA
// Construction, NFA Simplification, Code Generation, ...) and prints its
// header if verbose mode is enabled. Stage numbers increment across the
// lifetime of the Logger, so a Compile run with multiple Section calls
// reads as a numbered trace of the whole pipeline.
func (l *Logger) Section(name string) {
	l.stage++
	if l.enabled {
		fmt.Fprintf(l.out, "\n[rexforge] === stage %d: %s ===\n", l.stage, name)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
