// Package shell translates events raised by the terminal shell into session
// controller calls and persists the directory choice between runs.
package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/treykane/cli-journal/internal/config"
	"github.com/treykane/cli-journal/internal/logging"
	"github.com/treykane/cli-journal/internal/session"
)

// FileChosenExtensions lists the extensions accepted by FileChosen.
var FileChosenExtensions = []string{".md", ".markdown", ".txt"}

// ErrUnsupportedFile is returned when a chosen file has an extension outside
// FileChosenExtensions.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Event is raised by the shell.
type Event interface {
	event()
}

// DirectoryChosen asks for dir to become the journal directory.
type DirectoryChosen struct {
	Path string
}

// SaveRequested asks for the active entry to be written.
type SaveRequested struct{}

// FileChosen asks for the contents of a single file to replace the buffer.
type FileChosen struct {
	Path string
}

func (DirectoryChosen) event() {}
func (SaveRequested) event()   {}
func (FileChosen) event()      {}

// Controller is the subset of *session.Controller driven by the bridge.
type Controller interface {
	OpenDirectory(dir string) error
	Save() error
	ReplaceBuffer(content string)
	State() session.State
}

// Reader loads a file's contents.
type Reader interface {
	Read(path string) (string, error)
}

// Preferences persists the last opened directory.
type Preferences interface {
	LastDirectory() (string, error)
	SetLastDirectory(dir string) error
}

// Bridge dispatches shell events.
type Bridge struct {
	ctrl       Controller
	files      Reader
	prefs      Preferences
	defaultDir string
	log        *slog.Logger
}

// New builds a Bridge. prefs may be nil, in which case directory choices are
// not remembered. defaultDir is opened by Startup when nothing was remembered.
func New(ctrl Controller, files Reader, prefs Preferences, defaultDir string) *Bridge {
	return &Bridge{
		ctrl:       ctrl,
		files:      files,
		prefs:      prefs,
		defaultDir: defaultDir,
		log:        logging.New("shell"),
	}
}

// Dispatch handles one event.
func (b *Bridge) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case DirectoryChosen:
		return b.openDirectory(ev.Path, true)
	case SaveRequested:
		return b.ctrl.Save()
	case FileChosen:
		return b.loadFile(ev.Path)
	default:
		return fmt.Errorf("unknown shell event %T", ev)
	}
}

// Startup reopens the remembered directory, falling back to the configured
// default. It reports whether a directory was opened.
func (b *Bridge) Startup() (bool, error) {
	dir := ""
	if b.prefs != nil {
		last, err := b.prefs.LastDirectory()
		if err != nil {
			b.log.Warn("read last directory", "error", err)
		}
		dir = last
	}
	remember := false
	if dir == "" {
		dir = b.defaultDir
		remember = true
	}
	if strings.TrimSpace(dir) == "" {
		return false, nil
	}
	if err := b.openDirectory(dir, remember); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Bridge) openDirectory(path string, remember bool) error {
	dir, err := config.NormalizeDir(path)
	if err != nil {
		return fmt.Errorf("directory %q: %w", path, err)
	}
	if err := b.ctrl.OpenDirectory(dir); err != nil {
		return err
	}
	if !remember || b.prefs == nil {
		return nil
	}
	if err := b.prefs.SetLastDirectory(dir); err != nil {
		b.log.Warn("persist last directory", "dir", dir, "error", err)
	}
	return nil
}

func (b *Bridge) loadFile(path string) error {
	if b.ctrl.State() != session.EntrySelected {
		return session.ErrNoEntry
	}
	full, err := config.NormalizeDir(path)
	if err != nil {
		return fmt.Errorf("file %q: %w", path, err)
	}
	if !supportedFile(full) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(full))
	}
	content, err := b.files.Read(full)
	if err != nil {
		return err
	}
	b.ctrl.ReplaceBuffer(content)
	b.log.Info("loaded file into buffer", "path", full)
	return nil
}

func supportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range FileChosenExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
