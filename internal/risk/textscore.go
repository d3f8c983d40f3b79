package risk

import (
	"regexp"
	"strings"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
)

// Tiered text scoring: a first keyword hit is worth less than the jump
// at the third hit, and any embedded link adds a flat bonus on top.
const (
	pointsKeywordTierOne = 20
	pointsKeywordTierTwo = 25
	keywordTierTwoHits   = 3
	pointsHasURL         = 15
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// TextScorer scores free-text messages. Embedded URLs are extracted,
// normalized and scored through the URL rule table; the strongest link
// dominates the merged score.
type TextScorer struct {
	urls     *URLScorer
	keywords *KeywordMatcher
	maxURLs  int
}

// NewTextScorer builds a text scorer sharing the URL rule configuration.
func NewTextScorer(cfg config.ScoringConfig) *TextScorer {
	return &TextScorer{
		urls:     NewURLScorer(cfg),
		keywords: NewKeywordMatcher(cfg.TextKeywords),
		maxURLs:  cfg.MaxURLsPerText,
	}
}

// Analyze scores a raw text message. Empty or whitespace-only input is
// rejected with domain.ErrEmptyInput before any scoring happens.
func (s *TextScorer) Analyze(text string) (domain.TextAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.TextAnalysis{}, domain.ErrEmptyInput
	}

	analysis := domain.TextAnalysis{}

	hits, _ := s.keywords.Hits(text)
	analysis.KeywordHits = hits

	score := 0
	if hits >= 1 {
		score += pointsKeywordTierOne
		analysis.AddReason(domain.ReasonRiskyKeywords)
	}
	if hits >= keywordTierTwoHits {
		score += pointsKeywordTierTwo
	}

	urls := s.extractURLs(text)
	if len(urls) > 0 {
		score += pointsHasURL
		analysis.AddReason(domain.ReasonContainsURL)
	}

	bestURLScore := 0
	for _, raw := range urls {
		normalized, err := Normalize(raw)
		if err != nil {
			continue
		}
		urlResult, err := s.urls.Score(normalized)
		if err != nil {
			continue
		}

		analysis.URLsFound = append(analysis.URLsFound, normalized)
		if analysis.PerURLScores == nil {
			analysis.PerURLScores = make(map[string]domain.ScoreResult, len(urls))
		}
		analysis.PerURLScores[normalized] = urlResult
		analysis.MergeReasons(urlResult)

		if urlResult.Score > bestURLScore {
			bestURLScore = urlResult.Score
		}
	}

	// A single highly suspicious link dominates weak text signals.
	if bestURLScore > score {
		score = bestURLScore
	}

	analysis.Score = domain.ClampScore(score)
	return analysis, nil
}

// extractURLs returns up to maxURLs http(s) substrings in appearance
// order. The cap keeps URL flooding from inflating work per message.
func (s *TextScorer) extractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	if len(matches) > s.maxURLs {
		matches = matches[:s.maxURLs]
	}
	for i, m := range matches {
		matches[i] = strings.TrimRight(m, ".,;:!?)")
	}
	return matches
}
