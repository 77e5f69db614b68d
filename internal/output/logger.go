package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Logger provides colored output functions for CLI feedback.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	noColor bool
	verbose bool
}

// NewLogger creates a new Logger instance writing to stdout and stderr.
func NewLogger() *Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a Logger with explicit writers.
func NewLoggerWithWriters(out, errOut io.Writer) *Logger {
	return &Logger{
		out:    out,
		errOut: errOut,
	}
}

// SetNoColor disables colored output.
func (l *Logger) SetNoColor(noColor bool) {
	l.noColor = noColor
	color.NoColor = noColor
}

// SetVerbose enables verbose logging.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// Writer returns the standard output writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

func (l *Logger) write(w io.Writer, c *color.Color, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c == nil || l.noColor {
		fmt.Fprintf(w, format, args...)
		return
	}
	c.Fprintf(w, format, args...)
}

// Info prints an informational message in default color.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(l.out, nil, format+"\n", args...)
}

// Warn prints a warning message in yellow.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(l.errOut, color.New(color.FgYellow), "Warning: "+format+"\n", args...)
}

// Error prints an error message in red.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(l.errOut, color.New(color.FgRed), "Error: "+format+"\n", args...)
}

// Success prints a success message in green with checkmark.
func (l *Logger) Success(format string, args ...interface{}) {
	l.write(l.out, color.New(color.FgGreen), "✓ "+format+"\n", args...)
}

// Debug prints a debug message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.out, color.New(color.FgHiBlack), "[DEBUG] "+format+"\n", args...)
}

// PrintCommandError prints the captured streams of a failed external command.
func (l *Logger) PrintCommandError(info *CommandErrorInfo) {
	if info == nil {
		return
	}
	l.Error("%s exited with code %d", info.Command, info.ExitCode)
	if l.verbose && len(info.Args) > 0 {
		l.write(l.errOut, nil, "  command: %s %s\n", info.Command, strings.Join(info.Args, " "))
	}
	if s := strings.TrimSpace(info.Stdout); s != "" {
		l.write(l.errOut, nil, "  stdout: %s\n", s)
	}
	if s := strings.TrimSpace(info.Stderr); s != "" {
		l.write(l.errOut, color.New(color.FgRed), "  stderr: %s\n", s)
	}
}

// CommandErrorInfo contains error information for a failed external command.
type CommandErrorInfo struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
}

// DefaultLogger writes to the process stdout and stderr.
var DefaultLogger = NewLogger()
