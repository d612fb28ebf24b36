package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message.
type LogLevel string

const (
	Debug LogLevel = "DEBUG"
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

var (
	mu         sync.Mutex
	minLevel   = Info
	console    io.Writer = os.Stderr
	fileLogger *lumberjack.Logger
)

// levelPriority returns the numeric priority of a log level (higher = more severe)
func levelPriority(level LogLevel) int {
	switch level {
	case Debug:
		return 0
	case Info:
		return 1
	case Warn:
		return 2
	case Error:
		return 3
	default:
		return 1
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a LogLevel. Anything
// else yields Info and false.
func ParseLevel(level string) (LogLevel, bool) {
	switch level {
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "warn":
		return Warn, true
	case "error":
		return Error, true
	default:
		return Info, false
	}
}

// SetLevel sets the minimum log level. Valid values: "debug", "info", "warn", "error"
func SetLevel(level string) {
	l, _ := ParseLevel(level)
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// GetLevel returns the current minimum log level.
func GetLevel() LogLevel {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

func init() {
	log.SetFlags(0) // Disable standard flags (date/time) so we can control format
	log.SetOutput(console)
}

// Init adds a rotated log file at path in addition to the console. An empty
// path logs to the console only.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if fileLogger != nil {
		_ = fileLogger.Close()
		fileLogger = nil
	}
	if path == "" {
		log.SetOutput(console)
		return nil
	}

	// Restricted permissions (owner only)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	fileLogger = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(console, fileLogger))
	return nil
}

// SetOutput replaces the console writer. Tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	console = w
	if fileLogger != nil {
		log.SetOutput(io.MultiWriter(console, fileLogger))
	} else {
		log.SetOutput(console)
	}
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if fileLogger == nil {
		return nil
	}
	err := fileLogger.Close()
	fileLogger = nil
	log.SetOutput(console)
	return err
}

// Log writes a formatted message at the specified level.
func Log(level LogLevel, format string, v ...interface{}) {
	// Filter messages below minimum level
	if levelPriority(level) < levelPriority(GetLevel()) {
		return
	}

	msg := fmt.Sprintf(format, v...)
	timestamp := time.Now().Format(time.RFC3339)

	// Format: timestamp [LEVEL] message
	log.Printf("%s [%s] %s", timestamp, level, msg)
}

// Infof logs a formatted message at INFO level.
func Infof(format string, v ...interface{}) {
	Log(Info, format, v...)
}

// Errorf logs a formatted message at ERROR level.
func Errorf(format string, v ...interface{}) {
	Log(Error, format, v...)
}

// Debugf logs a formatted message at DEBUG level.
func Debugf(format string, v ...interface{}) {
	Log(Debug, format, v...)
}

// Warnf logs a formatted message at WARN level.
func Warnf(format string, v ...interface{}) {
	Log(Warn, format, v...)
}
