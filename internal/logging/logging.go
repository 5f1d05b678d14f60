// Package logging provides the zerolog infrastructure shared by every
// pfadmin component: logger construction from configuration, per-component
// child loggers, and context propagation of both the logger and a per
// invocation trace ID.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output targets accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Format values accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// DefaultFilePerm is the permission mode for created log files.
const DefaultFilePerm = 0600

// Config describes how loggers are constructed.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Invalid values
	// fall back to info.
	Level string

	// Format selects console or JSON output.
	Format string

	// Output selects the destination: stderr, stdout, or file.
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller enables caller annotation on every event.
	Caller bool
}

// LogPathResult reports where NewLoggerWithPath ended up writing logs,
// so the CLI can tell the user and close handles on shutdown.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when logs are going to FilePath.
	UsingFile bool

	// FilePath is the resolved log file path (empty unless UsingFile).
	FilePath string

	// FallbackUsed is true when file output was requested but could not be
	// opened, and stderr is used instead.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if any.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger from cfg, falling back to stderr console output
// when the configuration cannot be honored.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg and reports the resolved output
// destination. File open failures never fail the command; they downgrade to
// stderr and are reported through FallbackUsed.
func NewLoggerWithPath(cfg Config) LogPathResult {
	result := LogPathResult{}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case OutputFile:
		f, openErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, DefaultFilePerm)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
			out = os.Stderr
		} else {
			result.UsingFile = true
			result.FilePath = cfg.File
			result.file = f
			out = f
		}
	case OutputStdout:
		out = os.Stdout
	default:
		out = os.Stderr
	}

	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()

	return result
}

// ComponentLogger returns a child logger tagged with the component name.
// All pfadmin packages log through a component logger so entries can be
// filtered per subsystem.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled-by-default
// stderr logger when none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logs: %s\n", path)
}

// PrintFallbackWarning warns the user that file logging was requested but
// stderr is being used instead.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}
