package journal

import (
	"testing"
	"time"
)

const testLayout = "01-02-2006"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantTitle  string
		wantDate   string
		wantStatus ParseStatus
	}{
		{name: "convention", file: "Work_03-01-2024.md", wantTitle: "Work", wantDate: "03-01-2024", wantStatus: Parsed},
		{name: "underscore in title", file: "Trip_to_Rome_12-24-2023.md", wantTitle: "Trip_to_Rome", wantDate: "12-24-2023", wantStatus: Parsed},
		{name: "spaces in title", file: "Long day_01-15-2024.md", wantTitle: "Long day", wantDate: "01-15-2024", wantStatus: Parsed},
		{name: "upper extension", file: "Home_03-10-2024.MD", wantTitle: "Home", wantDate: "03-10-2024", wantStatus: Parsed},
		{name: "no separator", file: "notes.md", wantTitle: "notes", wantStatus: Unparsed},
		{name: "bad date", file: "Work_notes.md", wantTitle: "Work_notes", wantStatus: Unparsed},
		{name: "impossible date", file: "Work_13-45-2024.md", wantTitle: "Work_13-45-2024", wantStatus: Unparsed},
		{name: "empty title", file: "_03-01-2024.md", wantTitle: "_03-01-2024", wantStatus: Unparsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilename(tt.file, ".md", testLayout)
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Title != tt.wantTitle {
				t.Fatalf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Filename != tt.file {
				t.Fatalf("filename = %q, want %q", got.Filename, tt.file)
			}
			if tt.wantStatus == Parsed {
				if got.ParseErr != nil {
					t.Fatalf("unexpected parse error: %v", got.ParseErr)
				}
				if label := got.DateLabel(testLayout); label != tt.wantDate {
					t.Fatalf("date = %q, want %q", label, tt.wantDate)
				}
				return
			}
			if got.ParseErr == nil || got.ParseErr.Filename != tt.file {
				t.Fatalf("expected parse error naming %q, got %v", tt.file, got.ParseErr)
			}
			if !got.Date.IsZero() {
				t.Fatalf("expected zero date for unparsed entry, got %v", got.Date)
			}
			if got.DateLabel(testLayout) != "" {
				t.Fatalf("expected empty date label for unparsed entry")
			}
		})
	}
}

func TestBuildFilenameRoundTrip(t *testing.T) {
	titles := []string{"Groceries", "A", "two words", "snake_case_title", "Émigré", "x_"}
	dates := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, title := range titles {
		for _, date := range dates {
			name := BuildFilename(title, date, ".md", testLayout)
			got := ParseFilename(name, ".md", testLayout)
			if !got.IsParsed() {
				t.Fatalf("%q did not parse: %v", name, got.ParseErr)
			}
			if got.Title != title {
				t.Fatalf("%q: title = %q, want %q", name, got.Title, title)
			}
			if got.DateLabel(testLayout) != date.Format(testLayout) {
				t.Fatalf("%q: date = %q, want %q", name, got.DateLabel(testLayout), date.Format(testLayout))
			}
		}
	}
}

func TestParseStatusString(t *testing.T) {
	if Parsed.String() != "parsed" || Unparsed.String() != "unparsed" {
		t.Fatalf("unexpected status labels %q %q", Parsed, Unparsed)
	}
}
