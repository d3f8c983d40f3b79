package risk

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks so accented and plain spellings
// of the same scam keyword ("transferência" / "transferencia") match the
// same automaton entry.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritics.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// KeywordMatcher wraps an Aho-Corasick automaton over a folded keyword
// list. A single pass through the input reports every distinct keyword
// present, regardless of list size.
type KeywordMatcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// NewKeywordMatcher builds a matcher from the configured keyword list.
// Keywords are folded at build time; empty entries are dropped.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if f := Fold(strings.TrimSpace(kw)); f != "" {
			folded = append(folded, f)
		}
	}

	m := &KeywordMatcher{keywords: folded}
	if len(folded) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(folded)
	}
	return m
}

// Hits returns the number of distinct keywords present in text and the
// keywords themselves in list order. The input is folded before matching.
func (m *KeywordMatcher) Hits(text string) (int, []string) {
	if m.matcher == nil || text == "" {
		return 0, nil
	}

	indexes := m.matcher.Match([]byte(Fold(text)))
	if len(indexes) == 0 {
		return 0, nil
	}

	matched := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		matched = append(matched, m.keywords[idx])
	}
	return len(matched), matched
}

// Contains reports whether any keyword is present in text.
func (m *KeywordMatcher) Contains(text string) bool {
	n, _ := m.Hits(text)
	return n > 0
}
