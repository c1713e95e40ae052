package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Placeholder is returned for empty input.
const Placeholder = "No summary available."

// Summary length budgets used by callers.
const (
	ShortLimit = 150
	LongLimit  = 250
)

// Sentence-boundary search window for truncation.
const (
	boundaryWindowStart = 100
	boundaryWindowEnd   = 200
)

var (
	markdownLink = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	rawURL       = regexp.MustCompile(`https?://\S+`)
	header       = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	boldStars    = regexp.MustCompile(`\*\*([^*]*)\*\*`)
	italicStar   = regexp.MustCompile(`\*([^*]*)\*`)
	boldUnder    = regexp.MustCompile(`__([^_]*)__`)
	italicUnder  = regexp.MustCompile(`_([^_]*)_`)
	quote        = regexp.MustCompile(`(?m)^>\s?`)
	bulletList   = regexp.MustCompile(`(?m)^[-*+]\s+`)
	numberedList = regexp.MustCompile(`(?m)^\d+\.\s+`)
	codeBlock    = regexp.MustCompile("```[^`]*```")
	inlineCode   = regexp.MustCompile("`([^`]*)`")
	whitespace   = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&nbsp;", " ",
	)
)

// Cleanup strips markdown and markup artifacts from free text, collapses
// whitespace and truncates the result to limit at a sentence-safe
// boundary. Empty input yields a fixed placeholder. Cleanup is
// idempotent: running it over its own output changes nothing.
func Cleanup(text string, limit int) string {
	if strings.TrimSpace(text) == "" {
		return Placeholder
	}

	s := markdownLink.ReplaceAllString(text, "$1")
	s = rawURL.ReplaceAllString(s, "")
	s = entities.Replace(s)
	s = header.ReplaceAllString(s, "")
	s = boldStars.ReplaceAllString(s, "$1")
	s = italicStar.ReplaceAllString(s, "$1")
	s = boldUnder.ReplaceAllString(s, "$1")
	s = italicUnder.ReplaceAllString(s, "$1")
	s = quote.ReplaceAllString(s, "")
	s = bulletList.ReplaceAllString(s, "")
	s = numberedList.ReplaceAllString(s, "")
	s = codeBlock.ReplaceAllString(s, "")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if s == "" {
		return Placeholder
	}

	return truncate(s, limit)
}

// truncate cuts s at the last clause boundary inside the search window
// when s exceeds limit, keeping the boundary character. Without a
// boundary in the window it hard-cuts at limit and appends an ellipsis.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	end := boundaryWindowEnd
	if end > len(s) {
		end = len(s)
	}

	cut := -1
	for i := boundaryWindowStart; i < end; i++ {
		switch s[i] {
		case '.', '!', '?', ';', ':':
			cut = i
		}
	}

	if cut >= 0 {
		return s[:cut+1]
	}

	// Back the hard cut up to a rune boundary so multibyte text is never
	// split mid-rune.
	hard := limit
	for hard > 0 && !utf8.RuneStart(s[hard]) {
		hard--
	}
	return s[:hard] + "..."
}
