package app

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yuin/goldmark"
)

// exportActiveHTML converts the active buffer to HTML next to the entry file.
// Unsaved edits are exported as shown; the entry itself is not written.
func (m *Model) exportActiveHTML() tea.Cmd {
	entry, ok := m.ctrl.ActiveEntry()
	if !ok {
		m.status = "Select an entry first"
		return nil
	}
	content := m.ctrl.Buffer()
	m.status = "Exporting " + entry.Filename + "..."
	return exportHTMLCmd(entry.Path, entry.Title, content)
}

func exportHTMLCmd(path, title, content string) tea.Cmd {
	return func() tea.Msg {
		htmlPath, err := exportHTML(path, title, content)
		if err != nil {
			return statusMsg{Text: "Export failed", Err: err}
		}
		return statusMsg{Text: "Exported HTML: " + filepath.Base(htmlPath)}
	}
}

// exportHTML writes <entry stem>.html and returns its path. It refuses to
// overwrite the entry itself.
func exportHTML(path, title, content string) (string, error) {
	htmlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
	if strings.EqualFold(htmlPath, path) {
		return "", fmt.Errorf("export target %s is the entry itself", filepath.Base(path))
	}

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(content), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(htmlPath, out.Bytes(), ExportPermission); err != nil {
		return "", fmt.Errorf("write %s: %w", htmlPath, err)
	}
	appLog.Info("exported entry", "path", path, "html", htmlPath)
	return htmlPath, nil
}
