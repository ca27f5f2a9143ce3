package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level represents the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is a minimal leveled logger writing one line per entry.
type Logger struct {
	level  Level
	logger *log.Logger
}

// New creates a logger writing entries at or above level to out.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		level:  level,
		logger: log.New(out, "", 0),
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) log(level Level, message string, args ...interface{}) {
	if level < l.level {
		return
	}

	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] %s %s\n", timestamp, level.String(), message)

	if level == FATAL {
		os.Exit(1)
	}
}

func (l *Logger) Debug(message string, args ...interface{}) { l.log(DEBUG, message, args...) }
func (l *Logger) Info(message string, args ...interface{})  { l.log(INFO, message, args...) }
func (l *Logger) Warn(message string, args ...interface{})  { l.log(WARN, message, args...) }
func (l *Logger) Error(message string, args ...interface{}) { l.log(ERROR, message, args...) }
func (l *Logger) Fatal(message string, args ...interface{}) { l.log(FATAL, message, args...) }

// Package-level default logger
var defaultLogger = New(INFO, os.Stdout)

// SetDefault replaces the default logger.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Debug logs a debug message using the default logger.
func Debug(message string, args ...interface{}) { defaultLogger.Debug(message, args...) }

// Info logs an info message using the default logger.
func Info(message string, args ...interface{}) { defaultLogger.Info(message, args...) }

// Warn logs a warning message using the default logger.
func Warn(message string, args ...interface{}) { defaultLogger.Warn(message, args...) }

// Error logs an error message using the default logger.
func Error(message string, args ...interface{}) { defaultLogger.Error(message, args...) }

// Fatal logs a fatal message using the default logger and exits.
func Fatal(message string, args ...interface{}) { defaultLogger.Fatal(message, args...) }
