// render.go implements debounced, cached markdown rendering for the preview pane.
//
// Rendering markdown through Glamour is relatively expensive, so every edit
// bumps a sequence number and schedules a render after RenderDebounce. A
// render request whose sequence number is stale by the time the timer fires
// is dropped, so typing a sentence produces one render, not one per key.
//
// Completed renders are cached per entry path together with the raw markdown
// and the width bucket they were produced for. Switching back to an entry
// whose buffer has not changed since its last render is instant.
//
// Glamour TermRenderer instances are cached per style and width bucket in a
// small LRU guarded by a mutex, since renders run on background goroutines.
package app

import (
	"container/list"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/treykane/cli-journal/internal/config"
)

// renderCacheEntry stores a completed render alongside the inputs that produced it.
type renderCacheEntry struct {
	width   int    // width bucket used for word wrapping
	raw     string // markdown source the render was produced from
	content string // ANSI-formatted output, ready for the viewport
}

// renderRequestMsg is emitted by the debounce timer to trigger the actual render.
type renderRequestMsg struct {
	path  string
	width int
	seq   int
}

// renderResultMsg carries the completed render back to the Update loop.
type renderResultMsg struct {
	path    string
	width   int
	seq     int
	raw     string
	content string
	err     error
}

type rendererKey struct {
	style string
	width int
}

var (
	// maxRendererCacheEntries bounds the number of Glamour renderers retained.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

const previewPlaceholder = "Select an entry to preview"

// requestRender schedules a debounced render of the active buffer. A cache hit
// is displayed immediately and returns no command.
func (m *Model) requestRender() tea.Cmd {
	path := m.activePath()
	if path == "" {
		m.viewport.SetContent(previewPlaceholder)
		m.clearRenderingState()
		return nil
	}
	raw := m.ctrl.Buffer()
	width := roundWidthToNearestBucket(m.viewport.Width)
	if entry, ok := m.renderCache[path]; ok && entry.width == width && entry.raw == raw {
		m.viewport.SetContent(entry.content)
		m.clearRenderingState()
		return nil
	}

	m.rendering = true
	m.viewport.SetContent(m.spinner.View() + " Rendering...")
	m.renderSeq++
	seq := m.renderSeq
	m.pendingPath = path
	m.pendingWidth = width
	m.renderingPath = path
	m.renderingSeq = seq
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{path: path, width: width, seq: seq}
	})
}

// renderMarkdownCmd renders raw on a background goroutine.
func renderMarkdownCmd(path, raw, style string, width, seq int) tea.Cmd {
	return func() tea.Msg {
		content, err := renderMarkdown(raw, style, width)
		return renderResultMsg{
			path:    path,
			width:   width,
			seq:     seq,
			raw:     raw,
			content: content,
			err:     err,
		}
	}
}

// renderMarkdown converts markdown to ANSI output. On failure the raw
// markdown is returned with the error so the user still sees the text.
func renderMarkdown(content, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		return content, err
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content, err
	}
	return out, nil
}

// getRenderer returns a cached Glamour TermRenderer for style and width.
func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: normalizeGlamourStyle(style), width: width}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		if node, ok := rendererCacheNodes[key]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(key.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		key, _ := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, key)
		delete(rendererCacheNodes, key)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// normalizeGlamourStyle maps unknown style names to the default. "auto"
// queries the terminal background and is only used when configured.
func normalizeGlamourStyle(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	switch style {
	case "auto", "dark", "light", "notty":
		return style
	default:
		return config.DefaultGlamourStyle
	}
}

func glamourStyleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(style)
}
