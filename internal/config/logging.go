package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/logging"
)

// fallbackLogPath is used when file logging is requested but no path is set.
const fallbackLogPath = "/tmp/pfadmin.log"

// Logger is the global zerolog logger instance.
//
//nolint:gochecknoglobals // Logger is intentionally global for application-wide structured logging
var Logger zerolog.Logger

// logFileHandle tracks the current log file for cleanup (prevents Windows file locking issues).
//
//nolint:gochecknoglobals // Tracks the global logger's file handle for proper cleanup
var logFileHandle *os.File

// logMu protects concurrent access to logFileHandle and Logger.
//
//nolint:gochecknoglobals // Guards the global logger state
var logMu sync.RWMutex

// InitLogger initializes the package-level Logger with the specified log
// level and optional file output. The console writer always goes to stderr
// so TUI output on stdout stays clean.
//
// level is parsed into a zerolog level and defaults to InfoLevel on parse error.
func InitLogger(level string, logToFile bool) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	writers = append(writers, consoleWriter)

	// Close any previously opened log file to prevent file handle leaks
	closeLogFileLocked()

	if logToFile {
		if logDirErr := EnsureLogDir(); logDirErr != nil {
			return logDirErr
		}

		cfg := GetGlobalConfig()
		logPath := cfg.Logging.File
		if logPath == "" {
			logPath = fallbackLogPath
		}

		logFile, fileErr := os.OpenFile(
			logPath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0600,
		)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	multi := zerolog.MultiLevelWriter(writers...)

	Logger = zerolog.New(multi).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()

	return nil
}

// SetLogLevel sets the global Logger's level to the value parsed from level.
// An unparseable level falls back to zerolog.InfoLevel.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// CloseLogFile closes the current log file handle, if any, and resets the
// Logger to a console-only writer so subsequent logs are not written to a
// closed file.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked closes the log file and resets the logger. Must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil

		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		Logger = zerolog.New(consoleWriter).
			Level(Logger.GetLevel()).
			With().
			Timestamp().
			Caller().
			Logger()
	}
}

// GetLogger returns the global logger instance.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// init sets up a console-only info-level logger so a logger is available
// before any configuration is loaded.
//
//nolint:gochecknoinits // intentional: package-level logger must be initialized before use
func init() {
	_ = InitLogger("info", false)
}

// ToLoggingConfig converts the config section to a logging.Config for use
// with the internal/logging package.
//
//   - Level and Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
		Caller: false,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global
// configuration. Flag-level overrides such as --debug are applied by the
// caller after retrieving this value.
func GetLoggingConfig() LoggingConfig {
	cfg := GetGlobalConfig()
	return cfg.Logging
}
