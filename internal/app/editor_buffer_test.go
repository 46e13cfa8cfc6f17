package app

import "testing"

func TestEditorBufferDisplay(t *testing.T) {
	b := newEditorBuffer("a\tb\r\nbell\a\n")
	if got, want := b.display(), "a    b\nbell\n"; got != want {
		t.Fatalf("display() = %q, want %q", got, want)
	}
	if got := b.merge(b.display()); got != "a\tb\r\nbell\a\n" {
		t.Fatalf("unchanged value must merge to the loaded text, got %q", got)
	}
}

func TestEditorBufferMerge(t *testing.T) {
	tests := []struct {
		name    string
		content string
		value   string
		want    string
	}{
		{
			name:    "edited line takes widget text",
			content: "\tone\n\ttwo\n\tthree",
			value:   "    one\n    TWO\n    three",
			want:    "\tone\n    TWO\n\tthree",
		},
		{
			name:    "inserted line in crlf text",
			content: "one\r\ntwo\r\n",
			value:   "one\nnew\ntwo\n",
			want:    "one\r\nnew\r\ntwo\r\n",
		},
		{
			name:    "appended after unterminated last line",
			content: "one\r\ntwo",
			value:   "one\ntwo\nthree",
			want:    "one\r\ntwo\r\nthree",
		},
		{
			name:    "deleted line",
			content: "a\tx\nb\tx\nc\tx",
			value:   "a    x\nc    x",
			want:    "a\tx\nc\tx",
		},
		{
			name:    "cleared",
			content: "a\tb",
			value:   "",
			want:    "",
		},
		{
			name:    "plain text round trips",
			content: "# Title\n\nbody\n",
			value:   "# Title\n\nbody\nmore",
			want:    "# Title\n\nbody\nmore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newEditorBuffer(tt.content).merge(tt.value); got != tt.want {
				t.Fatalf("merge() = %q, want %q", got, tt.want)
			}
		})
	}
}
