package app

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// copyBufferToClipboard copies the active entry's buffer, including unsaved
// edits, to the system clipboard.
func (m *Model) copyBufferToClipboard() {
	if _, ok := m.ctrl.ActiveEntry(); !ok {
		m.status = "No entry selected"
		return
	}
	content := m.ctrl.Buffer()
	if content == "" {
		m.status = "Entry is empty"
		return
	}
	if err := clipboardWrite(content); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = fmt.Sprintf("Copied entry content (%d chars)", len([]rune(content)))
}

// copyEntryPathToClipboard copies the absolute path of the active entry.
func (m *Model) copyEntryPathToClipboard() {
	path := m.activePath()
	if path == "" {
		m.status = "No entry selected"
		return
	}
	if err := clipboardWrite(path); err != nil {
		m.setStatusError("Clipboard copy failed", err)
		return
	}
	m.status = "Copied entry path"
}
