package output

import "io"

// LoggerInterface is the logging surface the workflows depend on. Warn and
// Error go to the error stream; everything else goes to Writer.
type LoggerInterface interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Success(format string, args ...interface{})

	// Writer is where progress lines are printed.
	Writer() io.Writer

	PrintCommandError(info *CommandErrorInfo)
}

var _ LoggerInterface = (*Logger)(nil)
