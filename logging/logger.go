package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// GlobalLogger describes the top-level Logger for the process. Each module/package
// should create its own sub-logger from it, so that log lines are attributable to the
// component that emitted them.
var GlobalLogger *Logger

// Logger describes a logging object that writes unstructured output to console and,
// optionally, structured output to any number of arbitrary writers.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// multiLogger describes a logger that will be used to output structured logs to any
	// arbitrary channel(s).
	multiLogger zerolog.Logger

	// consoleLogger describes a logger that will be used to output unstructured output
	// to console.
	consoleLogger zerolog.Logger

	// writers describes a list of io.Writer objects where structured log output will go.
	writers []io.Writer
}

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger will
// output to console if consoleEnabled is true, and output structured logs to any number
// of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, consoleEnabled bool, writers ...io.Writer) *Logger {
	// The two base loggers are effectively disabled loggers, so that we do not get nil
	// pointer dereferences down the line if one of the two channels is unused.
	baseMultiLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	baseConsoleLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	// If we are provided a list of writers, update the multi logger
	if len(writers) > 0 {
		baseMultiLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	// If console logging is enabled, update the console logger
	if consoleEnabled {
		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
		baseConsoleLogger = zerolog.New(consoleWriter).Level(level)
	}

	return &Logger{
		level:         level,
		multiLogger:   baseMultiLogger,
		consoleLogger: baseConsoleLogger,
		writers:       writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value
// pair. The expected use of this function is for each package to have its own logger so
// that parsing of logs is "grep-able" based on some key.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	subMultiLogger := l.multiLogger.With().Str(key, value).Logger()
	subConsoleLogger := l.consoleLogger.With().Str(key, value).Logger()
	return &Logger{
		level:         l.level,
		multiLogger:   subMultiLogger,
		consoleLogger: subConsoleLogger,
		writers:       l.writers,
	}
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.multiLogger = l.multiLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	msg, err, info := buildMsg(args...)
	l.log(l.consoleLogger.Debug(), l.multiLogger.Debug(), msg, err, info)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	msg, err, info := buildMsg(args...)
	l.log(l.consoleLogger.Info(), l.multiLogger.Info(), msg, err, info)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	msg, err, info := buildMsg(args...)
	l.log(l.consoleLogger.Warn(), l.multiLogger.Warn(), msg, err, info)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	msg, err, info := buildMsg(args...)
	l.log(l.consoleLogger.Error(), l.multiLogger.Error(), msg, err, info)
}

// Panic is a wrapper function that will log a panic event
func (l *Logger) Panic(args ...any) {
	msg, err, info := buildMsg(args...)
	l.log(l.consoleLogger.Panic(), l.multiLogger.Panic(), msg, err, info)
}

// log chains any error and structured log info onto the given console and multi log
// events and sends them off with the built message.
func (l *Logger) log(consoleLog *zerolog.Event, multiLog *zerolog.Event, msg string, err error, info StructuredLogInfo) {
	if err != nil {
		// Stack traces are only useful for debugging, so only attach them when the
		// logger is verbose enough for them to be read.
		if l.level <= zerolog.DebugLevel {
			consoleLog.Stack().Err(err)
			multiLog.Stack().Err(err)
		} else {
			consoleLog.Err(err)
			multiLog.Err(err)
		}
	}
	if info != nil {
		consoleLog.Any("info", info)
		multiLog.Any("info", info)
	}
	consoleLog.Msg(msg)
	multiLog.Msg(msg)
}

// buildMsg takes in a variadic list of arguments of any type and returns the message
// string to log along with, optionally, an error and a StructuredLogInfo object that
// can be used to add additional context to the log event.
func buildMsg(args ...any) (string, error, StructuredLogInfo) {
	var (
		output []string
		err    error
		info   StructuredLogInfo
	)
	for _, arg := range args {
		switch t := arg.(type) {
		case StructuredLogInfo:
			// Note that only one structured log info can be provided for each log message
			info = t
		case error:
			// Note that only one error can be provided for each log message
			err = t
		default:
			output = append(output, fmt.Sprintf("%v", t))
		}
	}
	return strings.Join(output, ""), err, info
}
