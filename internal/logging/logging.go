// Package logging configures the application's slog loggers: a human
// readable text handler on stderr and an optional rotating JSON log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mkarvonen/neutron-go/internal/conf"
)

var structuredLogger *slog.Logger
var fileCloser func() error

// Init initializes the logging system from settings. The text handler on
// stderr is always active; the JSON file handler is added when file logging
// is enabled. Returns a close function for the file writer.
func Init(settings *conf.Settings) (func() error, error) {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	if settings.Main.Log.Enabled {
		fileLogger, closeFunc, err := newFileWriter(settings.Main.Log)
		if err != nil {
			return nil, err
		}
		fileCloser = closeFunc

		fileHandler := slog.NewJSONHandler(fileLogger, &slog.HandlerOptions{
			Level: level,
		})
		structuredLogger = slog.New(fileHandler).With("node", settings.Main.Name)
	} else {
		structuredLogger = slog.New(textHandler)
	}

	// Human-facing output goes through the default logger.
	slog.SetDefault(slog.New(textHandler))

	closeFunc := func() error {
		if fileCloser != nil {
			return fileCloser()
		}
		return nil
	}
	return closeFunc, nil
}

// newFileWriter creates the lumberjack writer for the main log file,
// creating parent directories as needed (lumberjack does not).
func newFileWriter(logConf conf.LogConfig) (io.Writer, func() error, error) {
	logDir := filepath.Dir(logConf.Path)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	logWriter := &lumberjack.Logger{
		Filename:   logConf.Path,
		MaxSize:    logConf.MaxSize,
		MaxBackups: logConf.MaxBackups,
		MaxAge:     logConf.MaxAge,
	}
	return logWriter, logWriter.Close, nil
}

// Structured returns the globally configured structured logger.
// Falls back to the default logger if Init() has not been called.
func Structured() *slog.Logger {
	if structuredLogger == nil {
		return slog.Default()
	}
	return structuredLogger
}

// ForService creates a new logger instance with the 'service' attribute
// added. It uses the structured logger as the base.
func ForService(serviceName string) *slog.Logger {
	return Structured().With("service", serviceName)
}

// --- Convenience functions using the default logger ---

// Debug logs a debug message using the default slog logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message using the default slog logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message using the default slog logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message using the default slog logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
