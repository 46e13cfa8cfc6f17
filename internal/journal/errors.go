package journal

import "fmt"

// ReadError reports a missing or unreadable entry file or directory.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write or create. Callers keep their in-memory
// buffer when they see one.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ParseError describes a filename that does not follow <title>_<date><ext>.
// It is attached to the entry's metadata and never returned from List.
type ParseError struct {
	Filename string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Filename, e.Reason)
}
