package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanupEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if got := Cleanup(in, ShortLimit); got != Placeholder {
			t.Errorf("Cleanup(%q) = %q, want placeholder", in, got)
		}
	}
}

func TestCleanupStripsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Read [the announcement](https://example.com/a) now", "Read the announcement now"},
		{"Details at https://example.com/story today", "Details at today"},
		{"Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"# Header\nBody text", "Header Body text"},
		{"This is **bold** and *italic* text", "This is bold and italic text"},
		{"> quoted line\nplain line", "quoted line plain line"},
		{"- first\n- second", "first second"},
		{"1. first\n2. second", "first second"},
		{"before ```code here``` after", "before after"},
		{"use `go test` here", "use go test here"},
		{"too   many \n\n spaces", "too many spaces"},
	}

	for _, tc := range tests {
		if got := Cleanup(tc.in, ShortLimit); got != tc.want {
			t.Errorf("Cleanup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanupIdempotent(t *testing.T) {
	inputs := []string{
		"Read [the announcement](https://example.com/a) now",
		"This is **bold** and *italic* text",
		"plain short text",
		strings.Repeat("a", 300),
		sentenceBody(),
	}

	for _, in := range inputs {
		once := Cleanup(in, ShortLimit)
		twice := Cleanup(once, ShortLimit)
		if once != twice {
			t.Errorf("Cleanup not idempotent:\n once  %q\n twice %q", once, twice)
		}
	}
}

// sentenceBody is 300 chars of plain text with sentence boundaries at
// offsets 110 and 180.
func sentenceBody() string {
	b := []byte(strings.Repeat("a", 300))
	b[110] = '.'
	b[180] = '.'
	return string(b)
}

func TestCleanupTruncatesAtSentenceBoundary(t *testing.T) {
	got := Cleanup(sentenceBody(), ShortLimit)

	// The cut lands on the boundary inside the [100,200] window, not at
	// the hard 150-char limit.
	if len(got) != 181 {
		t.Fatalf("expected cut after the period at offset 180, got length %d", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("truncated text should end at the sentence boundary: %q", got[len(got)-5:])
	}
}

func TestCleanupHardTruncation(t *testing.T) {
	got := Cleanup(strings.Repeat("a", 300), ShortLimit)

	if len(got) != ShortLimit+3 {
		t.Fatalf("expected hard cut at %d plus ellipsis, got length %d", ShortLimit, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("hard truncation must append an ellipsis: %q", got[len(got)-5:])
	}
}

func TestCleanupHardTruncationMultibyte(t *testing.T) {
	// No sentence boundaries anywhere, so the hard cut applies; it must
	// land on a rune boundary, not inside a 3-byte Devanagari character.
	in := "a" + strings.Repeat("अ", 120)

	got := Cleanup(in, ShortLimit)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got[len(got)-10:])
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("hard truncation must append an ellipsis: %q", got[len(got)-5:])
	}
	if twice := Cleanup(got, ShortLimit); twice != got {
		t.Errorf("not idempotent after multibyte cut:\n once  %q\n twice %q", got, twice)
	}
}

func TestCleanupShortTextUntouched(t *testing.T) {
	in := "A short body that fits."
	if got := Cleanup(in, ShortLimit); got != in {
		t.Errorf("short text should pass through unchanged, got %q", got)
	}
}
