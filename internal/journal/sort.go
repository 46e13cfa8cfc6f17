package journal

import (
	"sort"
	"strings"
)

// SortEntries orders an index newest first.
//
// Parsed entries come first, by date descending, with equal dates ordered by
// filename. Unparsed entries follow all parsed ones, ordered by filename.
func SortEntries(entries []EntryMetadata) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
}

func entryLess(a, b EntryMetadata) bool {
	if a.IsParsed() != b.IsParsed() {
		return a.IsParsed()
	}
	if a.IsParsed() && !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	la, lb := strings.ToLower(a.Filename), strings.ToLower(b.Filename)
	if la != lb {
		return la < lb
	}
	return a.Filename < b.Filename
}
