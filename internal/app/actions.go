package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-journal/internal/session"
	"github.com/treykane/cli-journal/internal/shell"
)

func (m *Model) focusEditorPane() tea.Cmd {
	if _, ok := m.ctrl.ActiveEntry(); !ok {
		m.status = "Select or create an entry first"
		return nil
	}
	m.focus = focusEditor
	return m.editor.Focus()
}

func (m *Model) focusListPane() {
	m.focus = focusList
	m.editor.Blur()
}

// saveActive writes the buffer through the shell bridge.
func (m *Model) saveActive() {
	entry, ok := m.ctrl.ActiveEntry()
	if err := m.bridge.Dispatch(shell.SaveRequested{}); err != nil {
		if errors.Is(err, session.ErrNoEntry) {
			m.status = "No entry to save"
			return
		}
		m.setStatusError("Save failed", err, "path", entry.Path)
		return
	}
	if ok {
		m.status = "Saved " + entry.Filename
	}
}

func (m *Model) startCompose() tea.Cmd {
	if err := m.ctrl.BeginCompose(); err != nil {
		m.status = "Choose a journal directory first (Ctrl+O)"
		return nil
	}
	m.focusListPane()
	m.mode = modeCompose
	m.input.Reset()
	m.input.Placeholder = "Entry title"
	m.input.Prompt = "> "
	m.status = "New entry: type a title"
	return m.input.Focus()
}

// submitCompose creates the entry. On failure the prompt stays open with the
// typed title so it can be corrected.
func (m *Model) submitCompose() tea.Cmd {
	entry, err := m.ctrl.SubmitCompose()
	if err != nil {
		m.setStatusError("Could not create entry", err, "title", m.input.Value())
		return nil
	}
	m.closePrompt()
	m.filter.Reset()
	m.rebuildRows()
	m.syncFromSession()
	m.status = "Created " + entry.Filename
	return tea.Batch(m.focusEditorPane(), m.requestRender())
}

func (m *Model) startPathPrompt(target mode) tea.Cmd {
	m.mode = target
	m.input.Reset()
	m.input.Prompt = "> "
	switch target {
	case modeOpenDir:
		m.input.Placeholder = "~/journal"
		if dir := m.ctrl.Directory(); dir != "" {
			m.input.SetValue(dir)
		}
		m.status = "Open directory: Enter to open, Esc to cancel"
	case modeOpenFile:
		if _, ok := m.ctrl.ActiveEntry(); !ok {
			m.mode = modeBrowse
			m.status = "Select an entry to load the file into"
			return nil
		}
		m.input.Placeholder = "~/notes/draft.md"
		m.status = "Load file into the current entry: Enter to load, Esc to cancel"
	}
	m.input.CursorEnd()
	return m.input.Focus()
}

// submitPathPrompt dispatches the typed path as a shell event. The prompt
// stays open when the event fails.
func (m *Model) submitPathPrompt() tea.Cmd {
	path := m.input.Value()
	var ev shell.Event = shell.DirectoryChosen{Path: path}
	if m.mode == modeOpenFile {
		ev = shell.FileChosen{Path: path}
	}
	if err := m.bridge.Dispatch(ev); err != nil {
		m.setStatusError(fmt.Sprintf("Could not open %s", path), err)
		return nil
	}

	opened := m.mode == modeOpenDir
	m.closePrompt()
	if opened {
		m.filter.Reset()
		m.rebuildRows()
		m.status = fmt.Sprintf("Opened %s (%d entries)", m.ctrl.Directory(), len(m.rows))
	} else {
		m.status = "Loaded " + path + " into the buffer"
	}
	m.syncFromSession()
	return m.requestRender()
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

// refresh rescans the directory, flushing the buffer first.
func (m *Model) refresh() tea.Cmd {
	if err := m.ctrl.Rescan(); err != nil {
		if errors.Is(err, session.ErrNoDirectory) {
			m.status = "No directory open"
			return nil
		}
		m.setStatusError("Refresh failed", err, "dir", m.ctrl.Directory())
		return nil
	}
	m.rebuildRows()
	m.syncFromSession()
	m.status = "Refreshed"
	return m.requestRender()
}

// quit flushes the buffer and exits. If the flush fails the first press only
// reports the error; a second press exits without saving.
// An open compose prompt is left untouched until the program actually exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Close(); err != nil && !m.quitArmed {
		m.quitArmed = true
		m.setStatusError("Save failed, press again to quit without saving", err)
		return m, nil
	}
	if m.mode == modeCompose {
		m.ctrl.CancelCompose()
		m.closePrompt()
	}
	return m, tea.Quit
}
