package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/treykane/cli-journal/internal/session"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := statusStyle
	if m.focus == focusEditor {
		style = editStatus
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs help, context and status segments into at most
// rowLimit rows. The second result is false when something had to be cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := strings.TrimSpace(m.status)

	segments := make([]string, 0, len(help)+len(context)+2)
	if status != "" {
		segments = append(segments, "Status: "+status)
	}
	if len(context) > 0 {
		segments = append(segments, context...)
	}
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	switch m.mode {
	case modeCompose, modeOpenDir, modeOpenFile:
		return []string{"Enter confirm", "Esc cancel"}
	case modeFilter:
		return []string{"type to filter", "↑/↓ move", "Enter open", "Esc clear"}
	}
	if m.focus == focusEditor {
		return []string{"Ctrl+S save", "Esc/Tab entries", "Ctrl+F load file", "Ctrl+C quit"}
	}
	if m.ctrl.State() == session.NoDirectory {
		return []string{"Ctrl+O open folder", "? help", "q quit"}
	}
	return []string{
		"↑/↓ or k/j select",
		"Tab edit",
		"n new",
		"Ctrl+S save",
		"/ filter",
		"Ctrl+O folder",
		"y copy",
		"x export",
		"? help",
		"q quit",
	}
}

func (m *Model) statusContextSegments() []string {
	parts := make([]string, 0, 2)
	if m.ctrl.State() != session.NoDirectory {
		parts = append(parts, pluralEntries(m.ctrl.Len()))
	}
	if metrics := m.entryMetricsSummary(); metrics != "" {
		parts = append(parts, metrics)
	}
	return parts
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func (m *Model) renderHelp(width, height int) string {
	lines := []string{
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		"Entries",
		"  ↑/↓, k/j             Select entry (saves the current one first)",
		"  g / G                First / last entry",
		"  Tab, Enter, e        Edit the selected entry",
		"  n                    New entry titled today",
		"  /                    Fuzzy filter entries",
		"  Ctrl+O               Open journal directory",
		"  Ctrl+F               Load a file into the current entry",
		"  Ctrl+S               Save",
		"  R / Ctrl+R           Rescan directory",
		"  PgUp / PgDn          Scroll preview",
		"  y / Y                Copy entry content / path",
		"  x                    Export entry to HTML",
		"  ?                    Toggle help",
		"  q or Ctrl+C          Quit (saves first)",
		"",
		"Editor",
		"  Ctrl+S               Save",
		"  Esc / Tab            Back to entries",
		"  Ctrl+C               Quit (saves first)",
		"",
		"Press ? to return.",
	}

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
