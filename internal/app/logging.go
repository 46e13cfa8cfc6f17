package app

import (
	"log/slog"

	"github.com/treykane/cli-journal/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// The log level is controlled by CLI_JOURNAL_LOG_LEVEL. The journal command
// redirects output to a file while the UI owns the terminal.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// logs a structured error entry with full context.
//
// The status parameter is displayed verbatim in the UI, while err and any
// additional key-value attrs are included only in the log entry.
//
//	m.setStatusError("Save failed", err, "path", entry.Path)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	if err != nil {
		m.status = status + ": " + userError(err)
	}
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
