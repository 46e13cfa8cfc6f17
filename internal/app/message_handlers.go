package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// statusMsg reports the outcome of a background command.
type statusMsg struct {
	Text string
	Err  error
}

// handleSpinnerTick updates the spinner animation state.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.rendering {
		m.viewport.SetContent(m.spinner.View() + " Rendering...")
	}
	return m, cmd
}

// handleWindowResize updates layout dimensions after terminal resize.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.updateLayout()
	return m, m.requestRender()
}

// handleRenderRequest validates and dispatches a render command. The buffer
// is read when the timer fires so the latest edit is rendered.
func (m *Model) handleRenderRequest(msg renderRequestMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.renderSeq || msg.path != m.pendingPath || msg.width != m.pendingWidth {
		return m, nil
	}
	if msg.path != m.activePath() {
		return m, nil
	}
	return m, renderMarkdownCmd(msg.path, m.ctrl.Buffer(), m.glamourStyle, msg.width, msg.seq)
}

// handleRenderResult caches the completed render and displays it when it is
// still the latest one for the active entry at the current width.
func (m *Model) handleRenderResult(msg renderResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		appLog.Error("render markdown", "path", msg.path, "seq", msg.seq, "error", msg.err)
	} else {
		m.renderCache[msg.path] = renderCacheEntry{
			width:   msg.width,
			raw:     msg.raw,
			content: msg.content,
		}
	}

	if msg.seq != m.renderSeq || msg.path != m.activePath() {
		return m, nil
	}
	if msg.err != nil {
		m.viewport.SetContent(msg.content)
		m.setStatusError("Preview render failed", msg.err, "path", msg.path)
		m.clearRenderingState()
		return m, nil
	}
	if msg.width == roundWidthToNearestBucket(m.viewport.Width) {
		m.viewport.SetContent(msg.content)
		m.clearRenderingState()
	}
	return m, nil
}

// clearRenderingState resets rendering flags after completion or error.
func (m *Model) clearRenderingState() {
	m.rendering = false
	m.renderingPath = ""
	m.renderingSeq = 0
}
