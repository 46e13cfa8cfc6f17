package app

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-journal/internal/config"
	"github.com/treykane/cli-journal/internal/session"
	"github.com/treykane/cli-journal/internal/shell"
)

// mode controls which input widget receives keys.
type mode int

const (
	modeBrowse mode = iota
	modeCompose
	modeOpenDir
	modeOpenFile
	modeFilter
)

// focus selects the pane that receives keys in browse mode.
type focus int

const (
	focusList focus = iota
	focusEditor
)

// Options wires the model to the journal session.
type Options struct {
	Controller   *session.Controller
	Bridge       *shell.Bridge
	DateLayout   string
	GlamourStyle string
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	ctrl         *session.Controller
	bridge       *shell.Bridge
	dateLayout   string
	glamourStyle string

	// Entry list
	cursor     int
	listOffset int
	filter     textinput.Model
	rows       []listRow

	// UI widgets
	viewport viewport.Model
	input    textinput.Model
	editor   textarea.Model
	buffer   editorBuffer
	mode     mode
	focus    focus
	status   string
	showHelp bool

	// quitArmed is set after a quit whose final flush failed.
	quitArmed  bool
	debugInput bool

	width  int
	height int

	spinner   spinner.Model
	rendering bool

	// Debounced render bookkeeping
	renderSeq     int
	pendingPath   string
	pendingWidth  int
	renderCache   map[string]renderCacheEntry
	renderingPath string
	renderingSeq  int
}

// New prepares the initial UI model and reopens the remembered directory.
func New(opts Options) (*Model, error) {
	if opts.Controller == nil || opts.Bridge == nil {
		return nil, errors.New("app: controller and bridge are required")
	}
	if opts.DateLayout == "" {
		opts.DateLayout = config.DefaultDateLayout
	}

	vp := viewport.New(0, 0)

	input := textinput.New()
	input.CharLimit = InputCharLimit

	filter := textinput.New()
	filter.Placeholder = "filter entries"
	filter.Prompt = "/ "
	filter.CharLimit = InputCharLimit

	editor := textarea.New()
	editor.Placeholder = "Write today's entry..."
	editor.CharLimit = 0
	editor.MaxHeight = 0
	applyEditorTheme(&editor)

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		ctrl:         opts.Controller,
		bridge:       opts.Bridge,
		dateLayout:   opts.DateLayout,
		glamourStyle: opts.GlamourStyle,
		viewport:     vp,
		input:        input,
		filter:       filter,
		editor:       editor,
		mode:         modeBrowse,
		focus:        focusList,
		status:       "Ready",
		spinner:      spin,
		renderCache:  map[string]renderCacheEntry{},
		debugInput:   os.Getenv("CLI_JOURNAL_DEBUG_INPUT") != "",
	}

	opened, err := m.bridge.Startup()
	switch {
	case err != nil:
		m.setStatusError("Could not reopen last directory", err)
	case !opened:
		m.status = "Press Ctrl+O to choose a journal directory"
	}
	m.rebuildRows()
	m.syncFromSession()
	return m, nil
}

// Init starts the spinner so we can show async rendering progress.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.requestRender())
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		return m.handleRenderResult(msg)
	case statusMsg:
		if msg.Err != nil {
			m.setStatusError(msg.Text, msg.Err)
		} else {
			m.status = msg.Text
		}
		return m, nil
	case tea.KeyMsg:
		if m.shouldIgnoreInput(msg) {
			return m, nil
		}
		if !isQuitKey(msg.String()) {
			m.quitArmed = false
		}
		switch m.mode {
		case modeCompose:
			return m.handleComposeKey(msg)
		case modeOpenDir, modeOpenFile:
			return m.handlePathPromptKey(msg)
		case modeFilter:
			return m.handleFilterKey(msg)
		}
		if m.focus == focusEditor {
			return m.handleEditorKey(msg)
		}
		return m.handleBrowseKey(msg.String())
	}
	return m, nil
}

// syncFromSession copies the controller's buffer into the editor and moves the
// list cursor onto the active entry.
func (m *Model) syncFromSession() {
	m.buffer = newEditorBuffer(m.ctrl.Buffer())
	m.editor.SetValue(m.buffer.display())
	if active := m.ctrl.Active(); active == session.NoEntry {
		m.focus = focusList
		m.editor.Blur()
		m.cursor = 0
	} else if row := m.rowForIndex(active); row >= 0 {
		m.cursor = row
	}
	m.adjustListOffset()
}

// activePath returns the path of the active entry, or "".
func (m *Model) activePath() string {
	entry, ok := m.ctrl.ActiveEntry()
	if !ok {
		return ""
	}
	return entry.Path
}
