package app

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/treykane/cli-journal/internal/journal"
)

// listRow is one visible line of the entry list. index points into the
// session's entry index, which stays the source of truth for selection.
type listRow struct {
	index int
	entry journal.EntryMetadata
}

// entrySource adapts the entry index for fuzzy matching on title and date.
type entrySource struct {
	entries []journal.EntryMetadata
	layout  string
}

func (s entrySource) String(i int) string {
	e := s.entries[i]
	if label := e.DateLabel(s.layout); label != "" {
		return e.Title + " " + label
	}
	return e.Title
}

func (s entrySource) Len() int { return len(s.entries) }

// rebuildRows recomputes the visible rows from the session index and the
// current filter query. Without a query rows keep the index order.
func (m *Model) rebuildRows() {
	index := m.ctrl.Session().Index
	query := strings.TrimSpace(m.filter.Value())

	if query == "" {
		m.rows = make([]listRow, len(index))
		for i, entry := range index {
			m.rows[i] = listRow{index: i, entry: entry}
		}
	} else {
		matches := fuzzy.FindFrom(query, entrySource{entries: index, layout: m.dateLayout})
		m.rows = make([]listRow, len(matches))
		for i, match := range matches {
			m.rows[i] = listRow{index: match.Index, entry: index[match.Index]}
		}
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(m.rows)-1))
	m.adjustListOffset()
}

// rowForIndex returns the row showing entry i, or -1 when it is filtered out.
func (m *Model) rowForIndex(i int) int {
	for row, r := range m.rows {
		if r.index == i {
			return row
		}
	}
	return -1
}

func (m *Model) filterActive() bool {
	return m.mode == modeFilter || strings.TrimSpace(m.filter.Value()) != ""
}

// moveCursor selects the entry delta rows away. The controller flushes the
// current buffer first; if that fails the cursor stays on the active entry.
func (m *Model) moveCursor(delta int) tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	return m.selectRow(clamp(m.cursor+delta, 0, len(m.rows)-1))
}

func (m *Model) selectRow(row int) tea.Cmd {
	if row < 0 || row >= len(m.rows) {
		return nil
	}
	target := m.rows[row]
	if err := m.ctrl.Select(target.index); err != nil {
		var writeErr *journal.WriteError
		if errors.As(err, &writeErr) {
			m.setStatusError("Save failed, staying on current entry", err, "path", writeErr.Path)
		} else {
			m.setStatusError("Could not open "+target.entry.Filename, err, "path", target.entry.Path)
		}
		if active := m.rowForIndex(m.ctrl.Active()); active >= 0 {
			m.cursor = active
		}
		m.adjustListOffset()
		return nil
	}
	m.cursor = row
	m.syncFromSession()
	m.status = target.entry.Filename
	return m.requestRender()
}

// adjustListOffset keeps the cursor inside the visible window of the list.
func (m *Model) adjustListOffset() {
	visible := m.listVisibleRows()
	if visible <= 0 {
		m.listOffset = 0
		return
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visible {
		m.listOffset = m.cursor - visible + 1
	}
	m.listOffset = clamp(m.listOffset, 0, max(0, len(m.rows)-visible))
}

// startFilter focuses the filter input.
func (m *Model) startFilter() tea.Cmd {
	m.mode = modeFilter
	m.status = "Filter: type to narrow, Enter to keep, Esc to clear"
	return m.filter.Focus()
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter.Reset()
		m.filter.Blur()
		m.mode = modeBrowse
		m.rebuildRows()
		if active := m.rowForIndex(m.ctrl.Active()); active >= 0 {
			m.cursor = active
			m.adjustListOffset()
		}
		m.status = "Filter cleared"
		return m, nil
	case "enter":
		m.filter.Blur()
		m.mode = modeBrowse
		m.status = ""
		if len(m.rows) == 0 {
			return m, nil
		}
		return m, m.selectRow(m.cursor)
	case "up", "ctrl+p":
		m.cursor = clamp(m.cursor-1, 0, max(0, len(m.rows)-1))
		m.adjustListOffset()
		return m, nil
	case "down", "ctrl+n":
		m.cursor = clamp(m.cursor+1, 0, max(0, len(m.rows)-1))
		m.adjustListOffset()
		return m, nil
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if before != m.filter.Value() {
		m.cursor = 0
		m.rebuildRows()
	}
	return m, cmd
}
