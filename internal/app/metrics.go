package app

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type entryMetrics struct {
	words int
	chars int
	lines int
}

func computeEntryMetrics(content string) entryMetrics {
	if content == "" {
		return entryMetrics{}
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return entryMetrics{
		words: len(strings.Fields(content)),
		chars: utf8.RuneCountInString(content),
		lines: lines,
	}
}

func (m *Model) entryMetricsSummary() string {
	content := m.ctrl.Buffer()
	if strings.TrimSpace(content) == "" {
		return ""
	}
	metrics := computeEntryMetrics(content)
	return fmt.Sprintf("W:%d C:%d L:%d", metrics.words, metrics.chars, metrics.lines)
}
