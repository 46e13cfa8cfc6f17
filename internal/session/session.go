// Package session implements the entry selection controller.
//
// The Controller owns a Session value describing the open directory, its entry
// index, the active entry and the editable buffer. Callers drive it through
// explicit method calls from a single event loop; every method finishes its
// file I/O before returning, so a flush always completes before the load that
// follows it.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/treykane/cli-journal/internal/journal"
	"github.com/treykane/cli-journal/internal/logging"
)

// State is the controller's coarse state.
type State int

const (
	NoDirectory State = iota
	DirectorySelected
	EntrySelected
)

func (s State) String() string {
	switch s {
	case NoDirectory:
		return "no-directory"
	case DirectorySelected:
		return "directory-selected"
	case EntrySelected:
		return "entry-selected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// NoEntry is the Active value when no entry is selected.
const NoEntry = -1

var (
	ErrNoDirectory  = errors.New("no directory selected")
	ErrNoEntry      = errors.New("no entry selected")
	ErrNotComposing = errors.New("not composing a new entry")
)

// Repository is the storage the controller needs. *journal.Repository
// satisfies it.
type Repository interface {
	List(dir string) ([]journal.EntryMetadata, error)
	Read(path string) (string, error)
	Write(path, content string) error
	Create(dir, title string) (journal.EntryMetadata, error)
}

// Session is a snapshot of the controller state.
type Session struct {
	Directory string
	Index     []journal.EntryMetadata
	Active    int
	// Buffer is the editable content of the active entry. It diverges from
	// disk until flushed.
	Buffer string
	Dirty  bool

	Composing    bool
	PendingTitle string
}

// State derives the coarse state from the snapshot.
func (s Session) State() State {
	switch {
	case s.Directory == "":
		return NoDirectory
	case s.Active == NoEntry:
		return DirectorySelected
	default:
		return EntrySelected
	}
}

// ActiveEntry returns the active entry's metadata.
func (s Session) ActiveEntry() (journal.EntryMetadata, bool) {
	if s.Active < 0 || s.Active >= len(s.Index) {
		return journal.EntryMetadata{}, false
	}
	return s.Index[s.Active], true
}

func (s Session) clone() Session {
	if s.Index != nil {
		s.Index = append([]journal.EntryMetadata(nil), s.Index...)
	}
	return s
}

// Controller mediates entry selection, editing, saving and creation.
type Controller struct {
	repo Repository
	s    Session
	log  *slog.Logger
}

// New returns a controller in the NoDirectory state.
func New(repo Repository) *Controller {
	return &Controller{
		repo: repo,
		s:    Session{Active: NoEntry},
		log:  logging.New("session"),
	}
}

// Session returns a copy of the current state.
func (c *Controller) Session() Session {
	return c.s.clone()
}

// State returns the coarse controller state.
func (c *Controller) State() State {
	return c.s.State()
}

// The accessors below read single fields without copying the index.

func (c *Controller) Directory() string { return c.s.Directory }

func (c *Controller) Buffer() string { return c.s.Buffer }

func (c *Controller) Dirty() bool { return c.s.Dirty }

// Active returns the index of the active entry, or NoEntry.
func (c *Controller) Active() int { return c.s.Active }

// ActiveEntry returns the active entry's metadata.
func (c *Controller) ActiveEntry() (journal.EntryMetadata, bool) {
	return c.s.ActiveEntry()
}

// Len returns the number of indexed entries.
func (c *Controller) Len() int { return len(c.s.Index) }

// OpenDirectory flushes the active entry, rescans dir and selects the first
// entry when there is one. On a listing error the previous session is kept.
// A *journal.ReadError for the first entry leaves the directory open with no
// active entry.
func (c *Controller) OpenDirectory(dir string) error {
	if err := c.flush(); err != nil {
		return err
	}

	index, err := c.repo.List(dir)
	if err != nil {
		return err
	}

	c.s = Session{
		Directory: dir,
		Index:     index,
		Active:    NoEntry,
	}
	c.log.Info("opened directory", "dir", dir, "entries", len(index))

	if len(index) == 0 {
		return nil
	}
	return c.load(0)
}

// Rescan rebuilds the index for the current directory, keeping the active
// entry selected when it still exists.
func (c *Controller) Rescan() error {
	if c.s.Directory == "" {
		return ErrNoDirectory
	}
	if err := c.flush(); err != nil {
		return err
	}
	index, err := c.repo.List(c.s.Directory)
	if err != nil {
		return err
	}

	activePath := ""
	if entry, ok := c.s.ActiveEntry(); ok {
		activePath = entry.Path
	}
	c.s.Index = index
	c.s.Active = NoEntry
	for i, entry := range index {
		if entry.Path == activePath {
			c.s.Active = i
			return nil
		}
	}
	c.s.Buffer = ""
	c.s.Dirty = false
	if len(index) > 0 {
		return c.load(0)
	}
	return nil
}

// Select makes entry i active. The current buffer is flushed first; if that
// write fails the switch is abandoned and the error returned with the buffer
// intact.
func (c *Controller) Select(i int) error {
	if c.s.Directory == "" {
		return ErrNoDirectory
	}
	if i < 0 || i >= len(c.s.Index) {
		return fmt.Errorf("select entry %d: index out of range [0,%d)", i, len(c.s.Index))
	}
	if i == c.s.Active {
		return nil
	}
	if err := c.flush(); err != nil {
		return err
	}
	return c.load(i)
}

// Edit replaces the buffer. Nothing is written until a flush.
func (c *Controller) Edit(content string) {
	if content == c.s.Buffer {
		return
	}
	c.s.Buffer = content
	c.s.Dirty = true
}

// ReplaceBuffer swaps in content that did not come from the index, such as a
// file picked outside the directory. It is flushed into the active entry like
// any other edit.
func (c *Controller) ReplaceBuffer(content string) {
	c.s.Buffer = content
	c.s.Dirty = true
}

// Save writes the buffer to the active entry without changing selection.
func (c *Controller) Save() error {
	entry, ok := c.s.ActiveEntry()
	if !ok {
		return ErrNoEntry
	}
	if err := c.repo.Write(entry.Path, c.s.Buffer); err != nil {
		c.log.Error("save entry", "path", entry.Path, "error", err)
		return err
	}
	c.s.Dirty = false
	c.log.Debug("saved entry", "path", entry.Path)
	return nil
}

// Close flushes pending edits before shutdown.
func (c *Controller) Close() error {
	return c.flush()
}

// BeginCompose enters the new-entry sub-state.
func (c *Controller) BeginCompose() error {
	if c.s.Directory == "" {
		return ErrNoDirectory
	}
	c.s.Composing = true
	c.s.PendingTitle = ""
	return nil
}

// SetPendingTitle records the title typed so far.
func (c *Controller) SetPendingTitle(title string) {
	if c.s.Composing {
		c.s.PendingTitle = title
	}
}

// CancelCompose leaves the new-entry sub-state.
func (c *Controller) CancelCompose() {
	c.s.Composing = false
	c.s.PendingTitle = ""
}

// SubmitCompose creates an entry from the pending title, prepends it to the
// index and makes it active with an empty buffer. On failure the composing
// state and title are kept so the user can correct them.
func (c *Controller) SubmitCompose() (journal.EntryMetadata, error) {
	if !c.s.Composing {
		return journal.EntryMetadata{}, ErrNotComposing
	}
	if err := c.flush(); err != nil {
		return journal.EntryMetadata{}, err
	}

	entry, err := c.repo.Create(c.s.Directory, c.s.PendingTitle)
	if err != nil {
		c.log.Error("create entry", "dir", c.s.Directory, "title", c.s.PendingTitle, "error", err)
		return journal.EntryMetadata{}, err
	}

	c.s.Index = append([]journal.EntryMetadata{entry}, c.s.Index...)
	c.s.Active = 0
	c.s.Buffer = ""
	c.s.Dirty = false
	c.s.Composing = false
	c.s.PendingTitle = ""
	return entry, nil
}

// flush writes a dirty buffer to the active entry.
func (c *Controller) flush() error {
	if !c.s.Dirty {
		return nil
	}
	if _, ok := c.s.ActiveEntry(); !ok {
		return nil
	}
	return c.Save()
}

// load reads entry i into the buffer. On error the session is unchanged.
func (c *Controller) load(i int) error {
	entry := c.s.Index[i]
	content, err := c.repo.Read(entry.Path)
	if err != nil {
		c.log.Error("load entry", "path", entry.Path, "error", err)
		return err
	}
	c.s.Active = i
	c.s.Buffer = content
	c.s.Dirty = false
	return nil
}
