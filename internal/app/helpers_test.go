package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-journal/internal/journal"
	"github.com/treykane/cli-journal/internal/prefs"
	"github.com/treykane/cli-journal/internal/session"
	"github.com/treykane/cli-journal/internal/shell"
)

// today is the clock used for entries created in tests.
var today = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local)

type testEnv struct {
	m     *Model
	dir   string
	prefs *prefs.Store
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// newTestEnv opens a journal directory seeded with files as the default
// directory and sizes the UI.
func newTestEnv(t *testing.T, files map[string]string) testEnv {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		mustWriteFile(t, filepath.Join(dir, name), content)
	}

	repo := journal.NewRepository(journal.Options{Now: func() time.Time { return today }})
	ctrl := session.New(repo)
	store, err := prefs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	m, err := New(Options{
		Controller: ctrl,
		Bridge:     shell.New(ctrl, repo, store, dir),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return testEnv{m: m, dir: dir, prefs: store}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys one at a time and returns the command from the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, key := range keys {
		_, cmd = m.Update(keyMsg(key))
	}
	return cmd
}

func typeText(m *Model, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func rowTitles(m *Model) []string {
	titles := make([]string, len(m.rows))
	for i, r := range m.rows {
		titles[i] = r.entry.Title
	}
	return titles
}
