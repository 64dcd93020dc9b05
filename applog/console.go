package applog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ConsoleLogger wraps a DefaultLogger with emoji-tagged, colorized events
type ConsoleLogger struct {
	*DefaultLogger
	useEmojis bool
}

// NewConsoleLogger creates a logger suitable for console output
func NewConsoleLogger(output io.Writer, level LogLevel) *ConsoleLogger {
	return &ConsoleLogger{
		DefaultLogger: NewLogger(output, level),
		useEmojis:     true,
	}
}

// SetUseEmojis enables or disables emoji output
func (l *ConsoleLogger) SetUseEmojis(use bool) {
	l.useEmojis = use
}

// Event logs an event with optional emoji
func (l *ConsoleLogger) Event(emoji, format string, args ...any) {
	l.event(nil, emoji, format, args...)
}

func (l *ConsoleLogger) event(c *color.Color, emoji, format string, args ...any) {
	prefix := ""
	if l.useEmojis && emoji != "" {
		prefix = emoji + " "
	}
	msg := fmt.Sprintf(format, args...)
	if c != nil {
		msg = c.Sprint(msg)
	}
	l.Info("%s%s", prefix, msg)
}

// Success logs a success message
func (l *ConsoleLogger) Success(format string, args ...any) {
	l.event(color.New(color.FgGreen), "✅", format, args...)
}

// Failure logs a failure message
func (l *ConsoleLogger) Failure(format string, args ...any) {
	l.event(color.New(color.FgRed, color.Bold), "❌", format, args...)
}

// Start logs a start event
func (l *ConsoleLogger) Start(format string, args ...any) {
	l.event(color.New(color.FgCyan), "🚀", format, args...)
}

// Stop logs a stop event
func (l *ConsoleLogger) Stop(format string, args ...any) {
	l.event(color.New(color.FgYellow), "🛑", format, args...)
}

// Global console logger
var consoleLogger = NewConsoleLogger(os.Stderr, LogLevelInfo)

// Default returns the global console logger
func Default() *ConsoleLogger {
	return consoleLogger
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	consoleLogger.SetLevel(level)
}

// GetLogLevel returns the current global log level
func GetLogLevel() LogLevel {
	return consoleLogger.GetLevel()
}

// SetUseEmojis enables or disables emoji output
func SetUseEmojis(use bool) {
	consoleLogger.SetUseEmojis(use)
}

func Event(emoji, format string, args ...any) {
	consoleLogger.Event(emoji, format, args...)
}

func Success(format string, args ...any) {
	consoleLogger.Success(format, args...)
}

func Failure(format string, args ...any) {
	consoleLogger.Failure(format, args...)
}

func Start(format string, args ...any) {
	consoleLogger.Start(format, args...)
}

func Stop(format string, args ...any) {
	consoleLogger.Stop(format, args...)
}

func Debug(format string, args ...any) {
	consoleLogger.Debug(format, args...)
}

func Info(format string, args ...any) {
	consoleLogger.Info(format, args...)
}

func Warn(format string, args ...any) {
	consoleLogger.Warn(format, args...)
}

func Error(format string, args ...any) {
	consoleLogger.Error(format, args...)
}
