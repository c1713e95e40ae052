package relevance

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"memenews/internal/catalogue"
	"memenews/internal/model"

	"github.com/samber/lo"
)

// Cross-category indicators that make any title newsworthy regardless of
// its category keyword set.
var trendingIndicators = []string{
	"breaking", "exclusive", "viral", "trending", "just in",
}

// Words that signal a post is meant to be funny.
var humorIndicators = []string{
	"funny", "meme", "lol", "parody", "humor", "joke", "hilarious",
}

// humorCombo accepts a meme on a hardcoded anchor + term pair even when
// it shares no vocabulary with the news title. Precision heuristic: the
// anchor alone is too broad, the term alone too vague.
type humorCombo struct {
	anchor string
	terms  []string
}

var humorCombos = []humorCombo{
	{anchor: "cricket", terms: []string{"troll", "banter", "roast", "sledging", "shitpost"}},
	{anchor: "election", terms: []string{"troll", "roast", "satire"}},
	{anchor: "bollywood", terms: []string{"troll", "roast", "spoof"}},
}

// IsMajorNews reports whether a title qualifies as major news for a
// category: it must contain a category keyword or a trending indicator.
func IsMajorNews(title string, category model.Category) bool {
	t := strings.ToLower(title)
	return containsAny(t, catalogue.Keywords(category)) || containsAny(t, trendingIndicators)
}

// IsRelevantMeme reports whether an image post title reads as a meme for
// the given news keywords: humor signal plus shared vocabulary, or one of
// the hardcoded humor combinations.
func IsRelevantMeme(title string, keywords []string) bool {
	t := strings.ToLower(title)

	if containsAny(t, humorIndicators) && containsAny(t, keywords) {
		return true
	}

	for _, combo := range humorCombos {
		if strings.Contains(t, combo.anchor) && containsAny(t, combo.terms) {
			return true
		}
	}

	return false
}

// TitleKeywords extracts the up-to-3 longest words (>3 characters) from
// a news title, lowercased, preserving their order of appearance.
func TitleKeywords(title string) []string {
	words := lo.Uniq(lo.Filter(splitWords(strings.ToLower(title)), func(w string, _ int) bool {
		return len([]rune(w)) > 3
	}))
	if len(words) <= 3 {
		return words
	}

	// Pick the 3 longest, then restore title order.
	idx := make([]int, len(words))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return len(words[idx[a]]) > len(words[idx[b]])
	})
	picked := idx[:3]
	sort.Ints(picked)

	return lo.Map(picked, func(i int, _ int) string { return words[i] })
}

// containsAny distinguishes phrases and short words so that a 3-letter
// keyword like "ipl" does not match inside "triple".
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}

		if len(k) <= 3 && !strings.Contains(k, " ") {
			if wordBoundaryPattern(k).MatchString(text) {
				return true
			}
			continue
		}

		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Short-keyword patterns are compiled once and cached; the keyword set
// is small and the check sits on the aggregation hot path.
var (
	boundaryPatternsMu sync.Mutex
	boundaryPatterns   = make(map[string]*regexp.Regexp)
)

func wordBoundaryPattern(keyword string) *regexp.Regexp {
	boundaryPatternsMu.Lock()
	defer boundaryPatternsMu.Unlock()

	re, ok := boundaryPatterns[keyword]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
		boundaryPatterns[keyword] = re
	}
	return re
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
