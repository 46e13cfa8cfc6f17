package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// shouldIgnoreInput drops terminal replies that arrive as key runes, such as
// OSC background color responses, so they never reach the editor.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	if isOSCColorResponse(msg.String()) || containsControlRunes(msg.String()) {
		if m.debugInput {
			m.status = fmt.Sprintf("Ignored input: %q", msg.String())
		}
		return true
	}
	return false
}

// isOSCColorResponse matches replies like "]11;rgb:1e1e/1e1e/1e1e".
func isOSCColorResponse(sequence string) bool {
	for _, suffix := range []string{"\x1b\\", "\a", "\\", "\x1b"} {
		sequence = strings.TrimSuffix(sequence, suffix)
	}
	idx := strings.Index(sequence, "rgb:")
	if idx == -1 || !strings.Contains(sequence[:idx], ";") {
		return false
	}
	parts := strings.Split(sequence[idx+len("rgb:"):], "/")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if len(part) < 2 || !isHex(part) {
			return false
		}
	}
	return true
}

func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
