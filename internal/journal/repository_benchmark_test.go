package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var benchmarkListSink int

const (
	benchExt    = ".md"
	benchLayout = "01-02-2006"
)

type listBenchmarkDataset struct {
	name        string
	entries     int
	unparsed    int
	otherFiles  int
	sharedDates int
}

func BenchmarkListEntries(b *testing.B) {
	datasets := []listBenchmarkDataset{
		{name: "small", entries: 60, unparsed: 6, otherFiles: 10, sharedDates: 3},
		{name: "large", entries: 3000, unparsed: 150, otherFiles: 400, sharedDates: 5},
	}

	for _, dataset := range datasets {
		dataset := dataset
		b.Run(dataset.name, func(b *testing.B) {
			dir := b.TempDir()
			seedListBenchmarkDataset(b, dir, dataset)
			repo := NewRepository(Options{})

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				entries, err := repo.List(dir)
				if err != nil {
					b.Fatalf("list entries: %v", err)
				}
				benchmarkListSink += len(entries)
			}
			b.ReportMetric(float64(dataset.entries+dataset.unparsed), "entries/op")
		})
	}
}

func BenchmarkSortEntries(b *testing.B) {
	b.Run("large", func(b *testing.B) {
		base := make([]EntryMetadata, 0, 5000)
		start := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.Local)
		for i := 0; i < cap(base); i++ {
			date := start.AddDate(0, 0, (i*7919)%3650)
			name := BuildFilename(fmt.Sprintf("entry-%05d", i), date, benchExt, benchLayout)
			if i%25 == 0 {
				name = fmt.Sprintf("scratch-%05d.md", i)
			}
			base = append(base, ParseFilename(name, benchExt, benchLayout))
		}
		work := make([]EntryMetadata, len(base))

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			copy(work, base)
			SortEntries(work)
			benchmarkListSink += len(work)
		}
		b.ReportMetric(float64(len(base)), "entries/op")
	})
}

func seedListBenchmarkDataset(b *testing.B, dir string, dataset listBenchmarkDataset) {
	b.Helper()
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.Local)
	write := func(name string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# "+name+"\n"), 0o644); err != nil {
			b.Fatalf("seed %s: %v", name, err)
		}
	}
	for i := 0; i < dataset.entries; i++ {
		date := start.AddDate(0, 0, i/dataset.sharedDates)
		write(BuildFilename(fmt.Sprintf("Entry %04d", i), date, benchExt, benchLayout))
	}
	for i := 0; i < dataset.unparsed; i++ {
		write(fmt.Sprintf("notes-%04d.md", i))
	}
	for i := 0; i < dataset.otherFiles; i++ {
		write(fmt.Sprintf("attachment-%04d.txt", i))
	}
}
