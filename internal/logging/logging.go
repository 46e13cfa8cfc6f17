// Package logging provides a shared, structured logger for the cli-journal application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// CLI_JOURNAL_LOG_LEVEL environment variable (debug, info, warn, error).
// If unset, the default level is INFO.
//
// Usage:
//
//	log := logging.New("journal")       // creates a logger tagged with component="journal"
//	log.Info("listed entries", "dir", dir, "count", n)
//	log.Error("failed to save", "error", err)
//
// Output goes to stderr until Configure redirects it. The terminal UI calls
// Configure with a log file so log lines never land on top of the alt screen.
// Loggers created before Configure pick up the new destination and level.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger

	level  = new(slog.LevelVar)
	output = &swapWriter{w: os.Stderr}
)

// swapWriter lets Configure change the destination of loggers that were
// already handed out.
type swapWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *swapWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every log entry
// produced by the returned logger. If component is empty, the base logger is
// returned without any additional attributes.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		level.Set(parseLevel(os.Getenv("CLI_JOURNAL_LOG_LEVEL")))
		baseLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// Configure redirects all log output to w. A non-empty levelName overrides
// the level taken from CLI_JOURNAL_LOG_LEVEL.
func Configure(w io.Writer, levelName string) {
	New("")
	if w != nil {
		output.set(w)
	}
	if strings.TrimSpace(levelName) != "" {
		level.Set(parseLevel(levelName))
	}
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
