package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

func isQuitKey(key string) bool {
	return key == "q" || key == "ctrl+c"
}

// handleBrowseKey routes key presses while the entry list has focus.
func (m *Model) handleBrowseKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m.quit()
	case "?":
		return m.toggleHelp()
	case "up", "k":
		return m, m.moveCursor(-1)
	case "down", "j":
		return m, m.moveCursor(1)
	case "g", "home":
		return m, m.selectRow(0)
	case "G", "end":
		return m, m.selectRow(len(m.rows) - 1)
	case "tab", "enter", "e":
		return m, m.focusEditorPane()
	case "/":
		return m, m.startFilter()
	case "n":
		return m, m.startCompose()
	case "ctrl+o":
		return m, m.startPathPrompt(modeOpenDir)
	case "ctrl+f":
		return m, m.startPathPrompt(modeOpenFile)
	case "ctrl+s":
		m.saveActive()
		return m, nil
	case "R", "ctrl+r":
		return m, m.refresh()
	case "y":
		m.copyBufferToClipboard()
		return m, nil
	case "Y":
		m.copyEntryPathToClipboard()
		return m, nil
	case "x":
		return m, m.exportActiveHTML()
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}
	return m, nil
}

// handleEditorKey forwards keys to the textarea and pushes every change into
// the controller buffer.
func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "ctrl+s":
		m.saveActive()
		return m, nil
	case "esc", "tab":
		m.focusListPane()
		return m, nil
	case "ctrl+o":
		m.focusListPane()
		return m, m.startPathPrompt(modeOpenDir)
	case "ctrl+f":
		return m, m.startPathPrompt(modeOpenFile)
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.ctrl.Edit(m.buffer.merge(after))
		return m, tea.Batch(cmd, m.requestRender())
	}
	return m, cmd
}

// handleComposeKey edits the title of a new entry.
func (m *Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter", "ctrl+s":
		return m, m.submitCompose()
	case "esc":
		m.ctrl.CancelCompose()
		m.closePrompt()
		m.status = "New entry cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetPendingTitle(m.input.Value())
	return m, cmd
}

// handlePathPromptKey edits a directory or file path.
func (m *Model) handlePathPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter":
		return m, m.submitPathPrompt()
	case "esc":
		m.closePrompt()
		m.status = "Cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// toggleHelp shows or hides the help screen in the preview pane.
func (m *Model) toggleHelp() (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	if m.showHelp {
		m.status = ""
	}
	return m, nil
}
