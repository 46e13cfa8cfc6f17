package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/treykane/cli-journal/internal/journal"
)

// fakeRepo is an in-memory Repository that records the order of operations.
type fakeRepo struct {
	files    map[string]string
	index    []journal.EntryMetadata
	ops      []string
	writeErr error
	readErr  error
	createFn func(dir, title string) (journal.EntryMetadata, error)
}

func newFakeRepo(names ...string) *fakeRepo {
	r := &fakeRepo{files: map[string]string{}}
	for _, name := range names {
		meta := journal.ParseFilename(name, ".md", "01-02-2006")
		meta.Path = "/j/" + name
		r.index = append(r.index, meta)
		r.files[meta.Path] = "content of " + name
	}
	journal.SortEntries(r.index)
	return r
}

func (r *fakeRepo) List(dir string) ([]journal.EntryMetadata, error) {
	r.ops = append(r.ops, "list "+dir)
	return append([]journal.EntryMetadata(nil), r.index...), nil
}

func (r *fakeRepo) Read(path string) (string, error) {
	r.ops = append(r.ops, "read "+path)
	if r.readErr != nil {
		return "", &journal.ReadError{Path: path, Err: r.readErr}
	}
	return r.files[path], nil
}

func (r *fakeRepo) Write(path, content string) error {
	r.ops = append(r.ops, "write "+path)
	if r.writeErr != nil {
		return &journal.WriteError{Path: path, Err: r.writeErr}
	}
	r.files[path] = content
	return nil
}

func (r *fakeRepo) Create(dir, title string) (journal.EntryMetadata, error) {
	r.ops = append(r.ops, "create "+title)
	if r.createFn != nil {
		return r.createFn(dir, title)
	}
	meta := journal.ParseFilename(title+"_03-05-2024.md", ".md", "01-02-2006")
	meta.Path = dir + "/" + meta.Filename
	r.files[meta.Path] = ""
	return meta, nil
}

func TestNewControllerStartsWithoutDirectory(t *testing.T) {
	c := New(newFakeRepo())
	if got := c.State(); got != NoDirectory {
		t.Fatalf("expected %v, got %v", NoDirectory, got)
	}
	if err := c.Select(0); !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("expected ErrNoDirectory, got %v", err)
	}
	if err := c.Save(); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("expected ErrNoEntry, got %v", err)
	}
	if err := c.BeginCompose(); !errors.Is(err, ErrNoDirectory) {
		t.Fatalf("expected ErrNoDirectory, got %v", err)
	}
}

func TestOpenDirectorySelectsFirstEntry(t *testing.T) {
	repo := newFakeRepo("Work_03-01-2024.md", "Home_03-10-2024.md")
	c := New(repo)

	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	s := c.Session()
	if s.State() != EntrySelected || s.Active != 0 {
		t.Fatalf("expected first entry selected, got state %v active %d", s.State(), s.Active)
	}
	if s.Buffer != "content of Home_03-10-2024.md" {
		t.Fatalf("unexpected buffer %q", s.Buffer)
	}
	if s.Dirty {
		t.Fatal("freshly loaded buffer must not be dirty")
	}
}

func TestOpenEmptyDirectoryHasNoActiveEntry(t *testing.T) {
	c := New(newFakeRepo())
	if err := c.OpenDirectory("/empty"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := c.State(); got != DirectorySelected {
		t.Fatalf("expected %v, got %v", DirectorySelected, got)
	}
	if _, ok := c.Session().ActiveEntry(); ok {
		t.Fatal("expected no active entry")
	}
}

func TestSelectFlushesBeforeLoading(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md", "B_03-01-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	repo.ops = nil

	c.Edit("edited A")
	if err := c.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}

	want := []string{"write /j/A_03-02-2024.md", "read /j/B_03-01-2024.md"}
	if len(repo.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", repo.ops, want)
	}
	for i := range want {
		if repo.ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", repo.ops, want)
		}
	}
}

func TestSelectCleanBufferSkipsWrite(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md", "B_03-01-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	repo.ops = nil

	if err := c.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(repo.ops) != 1 || repo.ops[0] != "read /j/B_03-01-2024.md" {
		t.Fatalf("expected a single read, got %v", repo.ops)
	}
}

func TestSwitchAwayAndBackShowsEditedContent(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"A_03-02-2024.md": "original A",
		"B_03-01-2024.md": "original B",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	c := New(journal.NewRepository(journal.Options{}))
	if err := c.OpenDirectory(dir); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Edit("edited A\nwith two lines")

	if err := c.Select(1); err != nil {
		t.Fatalf("select B: %v", err)
	}
	if got := c.Session().Buffer; got != "original B" {
		t.Fatalf("expected B content, got %q", got)
	}
	if err := c.Select(0); err != nil {
		t.Fatalf("select A: %v", err)
	}
	if got := c.Session().Buffer; got != "edited A\nwith two lines" {
		t.Fatalf("expected edited A content, got %q", got)
	}
}

func TestSelectAbortsWhenFlushFails(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md", "B_03-01-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Edit("unsaved")
	repo.writeErr = errors.New("disk full")

	err := c.Select(1)
	var writeErr *journal.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *journal.WriteError, got %v", err)
	}
	s := c.Session()
	if s.Active != 0 || s.Buffer != "unsaved" || !s.Dirty {
		t.Fatalf("expected session untouched, got active %d buffer %q dirty %v", s.Active, s.Buffer, s.Dirty)
	}
}

func TestSelectKeepsPreviousContentWhenReadFails(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md", "B_03-01-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	repo.readErr = os.ErrPermission

	err := c.Select(1)
	var readErr *journal.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *journal.ReadError, got %v", err)
	}
	s := c.Session()
	if s.Active != 0 || s.Buffer != "content of A_03-02-2024.md" {
		t.Fatalf("expected previous entry to stay loaded, got active %d buffer %q", s.Active, s.Buffer)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c := New(newFakeRepo("A_03-02-2024.md"))
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := c.Select(5); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestSaveKeepsSelectionAndBufferOnFailure(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md", "B_03-01-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Edit("new text")

	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.files["/j/A_03-02-2024.md"] != "new text" {
		t.Fatalf("expected file to be written, got %q", repo.files["/j/A_03-02-2024.md"])
	}
	if s := c.Session(); s.Active != 0 || s.Dirty {
		t.Fatalf("expected clean session on entry 0, got %+v", s)
	}

	c.Edit("newer text")
	repo.writeErr = errors.New("read-only filesystem")
	if err := c.Save(); err == nil {
		t.Fatal("expected save error")
	}
	if s := c.Session(); s.Buffer != "newer text" || !s.Dirty {
		t.Fatalf("buffer must not roll back on failed save, got %q dirty %v", s.Buffer, s.Dirty)
	}
}

func TestComposeCreatesAndPrependsEntry(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md")
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Edit("pending A edit")

	if err := c.BeginCompose(); err != nil {
		t.Fatalf("begin compose: %v", err)
	}
	c.SetPendingTitle("Groceries")
	entry, err := c.SubmitCompose()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	s := c.Session()
	if s.Composing || s.PendingTitle != "" {
		t.Fatalf("expected composing cleared, got %+v", s)
	}
	if s.Active != 0 || s.Index[0].Path != entry.Path || len(s.Index) != 2 {
		t.Fatalf("expected new entry prepended and active, got %+v", s.Index)
	}
	if s.Buffer != "" || s.Dirty {
		t.Fatalf("expected empty clean buffer, got %q dirty %v", s.Buffer, s.Dirty)
	}
	if repo.files["/j/A_03-02-2024.md"] != "pending A edit" {
		t.Fatal("expected previous entry to be flushed before creating")
	}
}

func TestComposeFailureKeepsPendingTitle(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md")
	repo.createFn = func(dir, title string) (journal.EntryMetadata, error) {
		return journal.EntryMetadata{}, &journal.WriteError{Path: dir + "/" + title, Err: os.ErrExist}
	}
	c := New(repo)
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = c.BeginCompose()
	c.SetPendingTitle("Taken")

	if _, err := c.SubmitCompose(); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	s := c.Session()
	if !s.Composing || s.PendingTitle != "Taken" {
		t.Fatalf("expected composing state kept, got composing %v title %q", s.Composing, s.PendingTitle)
	}
	if s.Active != 0 || len(s.Index) != 1 {
		t.Fatalf("index must be untouched, got %+v", s.Index)
	}
}

func TestSubmitWithoutComposeFails(t *testing.T) {
	c := New(newFakeRepo("A_03-02-2024.md"))
	_ = c.OpenDirectory("/j")
	if _, err := c.SubmitCompose(); !errors.Is(err, ErrNotComposing) {
		t.Fatalf("expected ErrNotComposing, got %v", err)
	}
	_ = c.BeginCompose()
	c.CancelCompose()
	if s := c.Session(); s.Composing {
		t.Fatal("expected compose cancelled")
	}
}

func TestCreatedEntryIsFirstOnRescan(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Work_03-01-2024.md"), []byte("w"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	repo := journal.NewRepository(journal.Options{Now: func() time.Time {
		return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	}})
	c := New(repo)
	if err := c.OpenDirectory(dir); err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = c.BeginCompose()
	c.SetPendingTitle("Groceries")
	entry, err := c.SubmitCompose()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	c.Edit("milk")

	if err := c.Rescan(); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	s := c.Session()
	if s.Index[0].Path != entry.Path || s.Active != 0 {
		t.Fatalf("expected created entry first and active, got %+v", s.Index)
	}
	got, err := os.ReadFile(entry.Path)
	if err != nil || string(got) != "milk" {
		t.Fatalf("expected rescan to flush buffer, got %q (%v)", got, err)
	}
}

func TestCloseFlushesDirtyBuffer(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md")
	c := New(repo)
	_ = c.OpenDirectory("/j")
	c.Edit("last words")

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if repo.files["/j/A_03-02-2024.md"] != "last words" {
		t.Fatalf("expected flush on close, got %q", repo.files["/j/A_03-02-2024.md"])
	}
}

func TestReplaceBufferMarksDirty(t *testing.T) {
	repo := newFakeRepo("A_03-02-2024.md")
	c := New(repo)
	_ = c.OpenDirectory("/j")

	c.ReplaceBuffer("content of A_03-02-2024.md")
	if !c.Session().Dirty {
		t.Fatal("replaced buffer must be dirty even when identical")
	}
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	c := New(newFakeRepo("A_03-02-2024.md"))
	_ = c.OpenDirectory("/j")

	s := c.Session()
	s.Index[0].Title = "mutated"
	if c.Session().Index[0].Title == "mutated" {
		t.Fatal("snapshot must not alias controller state")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		NoDirectory:       "no-directory",
		DirectorySelected: "directory-selected",
		EntrySelected:     "entry-selected",
		State(9):          "state(9)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(state), got, want)
		}
	}
}

func TestAccessorsMatchSnapshot(t *testing.T) {
	c := New(newFakeRepo("Work_03-01-2024.md", "Home_03-10-2024.md"))
	if err := c.OpenDirectory("/j"); err != nil {
		t.Fatalf("open: %v", err)
	}
	c.Edit("changed")

	s := c.Session()
	if c.Directory() != s.Directory || c.Buffer() != s.Buffer || c.Dirty() != s.Dirty || c.Active() != s.Active || c.Len() != len(s.Index) {
		t.Fatalf("accessors disagree with snapshot %+v", s)
	}
	entry, ok := c.ActiveEntry()
	if !ok || entry.Title != "Home" {
		t.Fatalf("expected Home active, got %+v (%v)", entry, ok)
	}
}
