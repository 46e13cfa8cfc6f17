package app

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// editorTabWidth matches the spaces the textarea substitutes for a tab.
const editorTabWidth = 4

// editorBuffer tracks the entry text as loaded next to the form the textarea
// displays. The textarea rewrites tabs, carriage returns and other control
// runes on input, so lines the user has not changed are written back from
// the loaded text instead of from the widget.
type editorBuffer struct {
	raw   []string
	shown []string
	crlf  bool
}

func newEditorBuffer(content string) editorBuffer {
	raw := strings.Split(content, "\n")
	shown := make([]string, len(raw))
	crlf := false
	for i, line := range raw {
		if strings.HasSuffix(line, "\r") {
			crlf = true
		}
		shown[i] = displayLine(line)
	}
	return editorBuffer{raw: raw, shown: shown, crlf: crlf}
}

// displayLine is the textarea's rendition of one line.
func displayLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r == utf8.RuneError:
		case r == '\t':
			b.WriteString(strings.Repeat(" ", editorTabWidth))
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// display is the value handed to the textarea.
func (e editorBuffer) display() string {
	return strings.Join(e.shown, "\n")
}

// merge maps the textarea value back onto the loaded text. The unchanged
// leading and trailing lines keep their loaded bytes; the lines in between
// come from the widget.
func (e editorBuffer) merge(value string) string {
	lines := strings.Split(value, "\n")

	prefix := 0
	for prefix < len(lines) && prefix < len(e.shown) && lines[prefix] == e.shown[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(lines)-prefix && suffix < len(e.shown)-prefix &&
		lines[len(lines)-1-suffix] == e.shown[len(e.shown)-1-suffix] {
		suffix++
	}

	out := make([]string, 0, len(lines))
	fresh := make([]bool, 0, len(lines))
	for i := 0; i < prefix; i++ {
		out = append(out, e.raw[i])
		fresh = append(fresh, i == len(e.raw)-1)
	}
	for _, line := range lines[prefix : len(lines)-suffix] {
		out = append(out, line)
		fresh = append(fresh, true)
	}
	for i := len(e.raw) - suffix; i < len(e.raw); i++ {
		out = append(out, e.raw[i])
		fresh = append(fresh, false)
	}

	if e.crlf {
		for i := 0; i < len(out)-1; i++ {
			if fresh[i] && !strings.HasSuffix(out[i], "\r") {
				out[i] += "\r"
			}
		}
	}
	return strings.Join(out, "\n")
}
