package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Settings stores config for Logger
type Settings struct {
	Path       string `mapstructure:"path"`
	Name       string `mapstructure:"name"`
	Ext        string `mapstructure:"ext"`
	TimeFormat string `mapstructure:"time-format"`
}

type LogLevel int

// Output levels
const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	FATAL
)

const defaultCallerDepth = 2

var levelFlags = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// Logger writes leveled messages to stdout and optionally to a log file.
type Logger struct {
	mu      sync.Mutex
	out     *log.Logger
	logFile *os.File
	min     LogLevel
}

// DefaultLogger is the package-wide logger used by the helper functions.
var DefaultLogger = NewStdoutLogger()

// NewStdoutLogger creates a logger which prints to stdout only.
func NewStdoutLogger() *Logger {
	return &Logger{
		out: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// NewFileLogger creates a logger which prints to stdout and a log file named
// from the settings.
func NewFileLogger(settings *Settings) (*Logger, error) {
	fileName := fmt.Sprintf("%s-%s.%s",
		settings.Name, time.Now().Format(settings.TimeFormat), settings.Ext)
	if err := os.MkdirAll(settings.Path, 0755); err != nil {
		return nil, fmt.Errorf("logger: create dir %s: %w", settings.Path, err)
	}
	logFile, err := os.OpenFile(filepath.Join(settings.Path, fileName),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", fileName, err)
	}
	return &Logger{
		out:     log.New(io.MultiWriter(os.Stdout, logFile), "", log.LstdFlags),
		logFile: logFile,
	}, nil
}

// Setup initializes DefaultLogger with a file-backed logger.
func Setup(settings *Settings) {
	l, err := NewFileLogger(settings)
	if err != nil {
		panic(err)
	}
	DefaultLogger = l
}

// SetLevel drops messages below level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.min = level
	l.mu.Unlock()
}

// Output writes a msg at the given level, annotated with the caller position.
func (l *Logger) Output(level LogLevel, callerDepth int, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.min {
		return
	}
	if _, file, line, ok := runtime.Caller(callerDepth); ok {
		msg = fmt.Sprintf("[%s][%s:%d] %s", levelFlags[level], filepath.Base(file), line, msg)
	} else {
		msg = fmt.Sprintf("[%s] %s", levelFlags[level], msg)
	}
	_ = l.out.Output(0, msg)
	if level == FATAL {
		l.closeFile()
		os.Exit(1)
	}
}

// Close releases the log file if one is open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeFile()
}

func (l *Logger) closeFile() error {
	if l.logFile == nil {
		return nil
	}
	f := l.logFile
	l.logFile = nil
	return f.Close()
}

// Debug logs a debug message through DefaultLogger
func Debug(v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprint(v...))
}

// Debugf logs a debug message through DefaultLogger
func Debugf(format string, v ...interface{}) {
	DefaultLogger.Output(DEBUG, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Info logs a message through DefaultLogger
func Info(v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprint(v...))
}

// Infof logs a message through DefaultLogger
func Infof(format string, v ...interface{}) {
	DefaultLogger.Output(INFO, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Warn logs a warning message through DefaultLogger
func Warn(v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprint(v...))
}

// Warnf logs a warning message through DefaultLogger
func Warnf(format string, v ...interface{}) {
	DefaultLogger.Output(WARNING, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Error logs an error message through DefaultLogger
func Error(v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprint(v...))
}

// Errorf logs an error message through DefaultLogger
func Errorf(format string, v ...interface{}) {
	DefaultLogger.Output(ERROR, defaultCallerDepth, fmt.Sprintf(format, v...))
}

// Fatal logs an error message through DefaultLogger then stops the program
func Fatal(v ...interface{}) {
	DefaultLogger.Output(FATAL, defaultCallerDepth, fmt.Sprint(v...))
}
