// Package journal implements the directory-backed entry repository.
//
// An entry is one markdown file named <title>_<date><ext>, for example
// Groceries_03-05-2024.md. The repository lists a directory into an index
// sorted newest first, and reads, writes and creates individual entry bodies.
// Filenames that do not follow the convention still produce an entry; their
// metadata is tagged Unparsed instead of being dropped.
package journal

import (
	"path/filepath"
	"strings"
	"time"
)

// ParseStatus tags how much metadata could be recovered from a filename.
type ParseStatus int

const (
	Parsed ParseStatus = iota
	Unparsed
)

func (s ParseStatus) String() string {
	if s == Parsed {
		return "parsed"
	}
	return "unparsed"
}

// TitleSeparator splits the title from the date in a filename.
const TitleSeparator = "_"

// EntryMetadata describes one entry without its content.
type EntryMetadata struct {
	Path     string
	Filename string
	Title    string
	// Date is the zero time when Status is Unparsed.
	Date   time.Time
	Status ParseStatus
	// ParseErr is set when Status is Unparsed.
	ParseErr *ParseError
	// Created is the file's birth time when the platform exposes it. It is
	// only shown to the user and never affects ordering.
	Created time.Time
}

// IsParsed reports whether title and date came from the filename convention.
func (e EntryMetadata) IsParsed() bool {
	return e.Status == Parsed
}

// DateLabel formats Date with layout, or returns "" for unparsed entries.
func (e EntryMetadata) DateLabel(layout string) string {
	if !e.IsParsed() {
		return ""
	}
	return e.Date.Format(layout)
}

// ParseFilename recovers title and date from name.
//
// The extension is stripped and the remainder split on the last "_": the left
// side is the title, the right side is parsed with layout. A name without the
// separator, with an empty title, or with a date that does not parse yields
// Unparsed metadata whose title is the filename stem.
func ParseFilename(name, ext, layout string) EntryMetadata {
	meta := EntryMetadata{Filename: name}
	stem := trimExtension(name, ext)

	degrade := func(reason string) EntryMetadata {
		meta.Title = stem
		meta.Status = Unparsed
		meta.ParseErr = &ParseError{Filename: name, Reason: reason}
		return meta
	}

	idx := strings.LastIndex(stem, TitleSeparator)
	if idx < 0 {
		return degrade("missing " + TitleSeparator + " separator")
	}
	title, rawDate := stem[:idx], stem[idx+len(TitleSeparator):]
	if title == "" {
		return degrade("empty title")
	}
	date, err := time.Parse(layout, rawDate)
	if err != nil {
		return degrade("invalid date " + rawDate)
	}

	meta.Title = title
	meta.Date = date
	meta.Status = Parsed
	return meta
}

// BuildFilename is the inverse of ParseFilename.
func BuildFilename(title string, date time.Time, ext, layout string) string {
	return title + TitleSeparator + date.Format(layout) + ext
}

func trimExtension(name, ext string) string {
	if ext != "" && hasSuffixFold(name, ext) {
		return name[:len(name)-len(ext)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func hasSuffixFold(value, suffix string) bool {
	return len(value) >= len(suffix) && strings.EqualFold(value[len(value)-len(suffix):], suffix)
}
