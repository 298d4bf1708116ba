// Package logger provides the leveled logger used across the tool.
// Everything goes to stderr: standard output is reserved for the
// rewritten coverage report.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
}

// Logger is a leveled logger.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

var defaultLogger = &Logger{level: INFO, output: os.Stderr}

// SetLevel sets the logging level for the default logger.
func SetLevel(levelStr string) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.level = parseLevel(levelStr)
}

// SetOutput redirects the default logger, mainly for tests.
func SetOutput(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.output = w
}

// parseLevel converts a string to a Level.
func parseLevel(levelStr string) Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	message := fmt.Sprintf(format, args...)
	log.New(l.output, "", log.LstdFlags).Printf("[%s] %s", levelNames[level], message)
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) {
	defaultLogger.log(DEBUG, format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	defaultLogger.log(INFO, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	defaultLogger.log(WARN, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	defaultLogger.log(ERROR, format, args...)
}
