package journal

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/treykane/cli-journal/internal/logging"
)

// FilePermission is the mode for newly created entry files.
const FilePermission = 0o644

var (
	errEmptyTitle   = errors.New("title is required")
	errInvalidTitle = errors.New("title cannot contain path separators")
)

// Options configures a Repository. Zero values fall back to ".md",
// MM-DD-YYYY and time.Now.
type Options struct {
	Extension  string
	DateLayout string
	Now        func() time.Time
}

// Repository reads and writes entries inside a directory. It holds no
// per-directory state; every List call rescans from disk.
type Repository struct {
	ext    string
	layout string
	now    func() time.Time
	log    *slog.Logger
}

// NewRepository returns a Repository for opts.
func NewRepository(opts Options) *Repository {
	r := &Repository{
		ext:    strings.ToLower(opts.Extension),
		layout: opts.DateLayout,
		now:    opts.Now,
		log:    logging.New("journal"),
	}
	if r.ext == "" {
		r.ext = ".md"
	}
	if r.layout == "" {
		r.layout = "01-02-2006"
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Extension returns the entry extension, including the leading dot.
func (r *Repository) Extension() string { return r.ext }

// DateLayout returns the layout used for the date part of filenames.
func (r *Repository) DateLayout() string { return r.layout }

// List scans dir and returns the sorted index of entries in it. Files whose
// names do not parse are kept with Unparsed metadata.
func (r *Repository) List(dir string) ([]EntryMetadata, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ReadError{Path: dir, Err: err}
	}

	entries := make([]EntryMetadata, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !hasSuffixFold(de.Name(), r.ext) {
			continue
		}
		meta := ParseFilename(de.Name(), r.ext, r.layout)
		meta.Path = filepath.Join(dir, de.Name())
		if info, err := de.Info(); err == nil {
			if created, ok := fileCreationTime(meta.Path, info); ok {
				meta.Created = created
			}
		}
		if !meta.IsParsed() {
			r.log.Debug("entry filename does not follow convention", "path", meta.Path, "reason", meta.ParseErr.Reason)
		}
		entries = append(entries, meta)
	}

	SortEntries(entries)
	r.log.Debug("listed entries", "dir", dir, "count", len(entries))
	return entries, nil
}

// Read returns the full content of the entry at path.
func (r *Repository) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// Write overwrites the entry at path with content, byte for byte.
func (r *Repository) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), FilePermission); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Create makes an empty entry named <title>_<today><ext> in dir. It never
// overwrites an existing file.
func (r *Repository) Create(dir, title string) (EntryMetadata, error) {
	title = strings.TrimSpace(title)
	name := BuildFilename(title, r.now(), r.ext, r.layout)
	path := filepath.Join(dir, name)

	switch {
	case title == "":
		return EntryMetadata{}, &WriteError{Path: path, Err: errEmptyTitle}
	case strings.ContainsAny(title, `/\`) || strings.ContainsRune(title, os.PathSeparator):
		return EntryMetadata{}, &WriteError{Path: path, Err: errInvalidTitle}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermission)
	if err != nil {
		return EntryMetadata{}, &WriteError{Path: path, Err: err}
	}
	info, statErr := f.Stat()
	if err := f.Close(); err != nil {
		return EntryMetadata{}, &WriteError{Path: path, Err: err}
	}

	meta := ParseFilename(name, r.ext, r.layout)
	meta.Path = path
	if statErr == nil {
		if created, ok := fileCreationTime(path, info); ok {
			meta.Created = created
		}
	}
	r.log.Info("created entry", "path", path)
	return meta, nil
}
