package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	rw "github.com/mattn/go-runewidth"

	"github.com/treykane/cli-journal/internal/journal"
)

// View draws the full UI (entry list + editor + preview + status footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	footerHeight := m.footerHeightForWidth(m.width)
	layout := m.calculateLayout()
	row := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList(layout.ListWidth, layout.ContentHeight),
		m.renderEditor(layout.EditorWidth, layout.ContentHeight),
		m.renderPreview(layout.PreviewWidth, layout.ContentHeight),
	)
	row = padBlock(row, m.width, layout.ContentHeight)

	view := row + "\n" + m.renderStatus(m.width, footerHeight)
	return padBlock(view, m.width, m.height)
}

func (m *Model) renderList(width, height int) string {
	style := listPane
	if (m.focus == focusList && m.mode == modeBrowse) || m.mode == modeFilter {
		style = listPaneFocus
	}
	innerWidth := max(0, width-style.GetHorizontalFrameSize())
	innerHeight := max(0, height-style.GetVerticalFrameSize())

	dir := m.ctrl.Directory()
	header := "No directory"
	if dir != "" {
		header = dir
	}
	lines := []string{headerStyle.Width(innerWidth).Render(truncate(" "+header, innerWidth))}
	if m.filterActive() {
		lines = append(lines, truncate(m.filter.View(), innerWidth))
	}

	switch {
	case dir == "":
		lines = append(lines, mutedStyle.Render(truncate("Ctrl+O to open a folder", innerWidth)))
	case len(m.rows) == 0 && m.filterActive():
		lines = append(lines, mutedStyle.Render("(no matches)"))
	case len(m.rows) == 0:
		lines = append(lines, mutedStyle.Render(truncate("(empty) press n for a new entry", innerWidth)))
	}

	active := m.ctrl.Active()
	dirty := m.ctrl.Dirty()
	end := min(len(m.rows), m.listOffset+m.listVisibleRows())
	for i := m.listOffset; i < end; i++ {
		row := m.rows[i]
		marked := row.index == active && dirty
		if i == m.cursor {
			line := formatEntryRow(row.entry, m.dateLayout, innerWidth, marked)
			lines = append(lines, selectedStyle.Width(innerWidth).Render(line))
			continue
		}
		lines = append(lines, m.styledEntryRow(row.entry, innerWidth, marked))
	}

	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return style.Width(width).Height(height).Render(content)
}

// formatEntryRow lays out "title      date" in width columns. Titles are cut
// on display-width boundaries so wide runes keep the date column aligned.
func formatEntryRow(entry journal.EntryMetadata, layout string, width int, dirty bool) string {
	date := entry.DateLabel(layout)
	title := entry.Title
	if dirty {
		title = "* " + title
	}
	if date == "" {
		return rw.Truncate(title, width, "…")
	}
	titleWidth := width - rw.StringWidth(date) - 1
	if titleWidth < 4 {
		return rw.Truncate(title, width, "…")
	}
	return rw.FillRight(rw.Truncate(title, titleWidth, "…"), titleWidth) + " " + date
}

func (m *Model) styledEntryRow(entry journal.EntryMetadata, width int, dirty bool) string {
	plain := formatEntryRow(entry, m.dateLayout, width, dirty)
	if !entry.IsParsed() {
		return unparsedStyle.Render(plain)
	}
	date := entry.DateLabel(m.dateLayout)
	if !strings.HasSuffix(plain, date) {
		return plain
	}
	title := strings.TrimSuffix(plain, date)
	if dirty {
		return dirtyStyle.Render(title) + dateStyle.Render(date)
	}
	return title + dateStyle.Render(date)
}

func (m *Model) renderEditor(width, height int) string {
	style := editPane
	if m.focus == focusEditor || m.mode == modeCompose || m.mode == modeOpenDir || m.mode == modeOpenFile {
		style = editPaneFocus
	}
	innerWidth := max(0, width-style.GetHorizontalFrameSize())
	innerHeight := max(0, height-style.GetVerticalFrameSize())
	contentHeight := max(0, innerHeight-1)

	label := "Editor"
	var content string
	switch m.mode {
	case modeCompose, modeOpenDir, modeOpenFile:
		prompt, helper := m.promptMeta()
		label = prompt
		content = strings.Join([]string{
			titleStyle.Render(prompt),
			"",
			m.input.View(),
			"",
			mutedStyle.Render(helper),
		}, "\n")
	default:
		if entry, ok := m.ctrl.ActiveEntry(); ok {
			label = entry.Filename
			if m.ctrl.Dirty() {
				label += " [modified]"
			}
			content = m.editor.View()
		} else {
			content = mutedStyle.Render("No entry selected")
		}
	}

	header := headerStyle.Width(innerWidth).Render(truncate(" "+label, innerWidth))
	body := padBlock(content, innerWidth, contentHeight)
	return style.Width(width).Height(height).Render(header + "\n" + body)
}

func (m *Model) promptMeta() (string, string) {
	switch m.mode {
	case modeCompose:
		return "New entry", fmt.Sprintf("Saved as <title>_<%s>.md in %s", m.dateLayout, m.ctrl.Directory())
	case modeOpenDir:
		return "Open journal directory", "~ is expanded; Enter to open, Esc to cancel"
	case modeOpenFile:
		return "Load file into entry", ".md, .markdown or .txt; Enter to load, Esc to cancel"
	}
	return "", ""
}

func (m *Model) renderPreview(width, height int) string {
	innerWidth := max(0, width-previewPane.GetHorizontalFrameSize())
	innerHeight := max(0, height-previewPane.GetVerticalFrameSize())
	contentHeight := max(0, innerHeight-1)

	label := "Preview"
	var content string
	if m.showHelp {
		label = "Help"
		content = m.renderHelp(innerWidth, contentHeight)
	} else {
		if entry, ok := m.ctrl.ActiveEntry(); ok {
			label = entry.Title
			if created := entry.Created; !created.IsZero() {
				label += "  (created " + created.Format("Jan 2 2006 15:04") + ")"
			}
		}
		content = m.viewport.View()
	}

	header := headerStyle.Width(innerWidth).Render(truncate(" "+label, innerWidth))
	body := padBlock(content, innerWidth, contentHeight)
	return previewPane.Width(width).Height(height).Render(header + "\n" + body)
}
