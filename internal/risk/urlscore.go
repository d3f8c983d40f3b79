package risk

import (
	"net/url"
	"strings"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
)

// Points contributed by each URL rule. Each rule fires at most once and
// the total is clamped to [0,100].
const (
	pointsShortener      = 25
	pointsManySubdomains = 10
	pointsUncommonTLD    = 15
	pointsKeywords       = 20
	pointsNoHTTPS        = 10

	minSubdomainLabels = 3
)

// URLScorer applies the rule table from configuration to a normalized URL.
type URLScorer struct {
	shorteners []string
	tlds       []string
	keywords   *KeywordMatcher
}

// NewURLScorer builds a scorer from the configured rule lists.
func NewURLScorer(cfg config.ScoringConfig) *URLScorer {
	shorteners := make([]string, 0, len(cfg.Shorteners))
	for _, s := range cfg.Shorteners {
		shorteners = append(shorteners, strings.ToLower(strings.TrimSpace(s)))
	}
	tlds := make([]string, 0, len(cfg.SuspiciousTLDs))
	for _, t := range cfg.SuspiciousTLDs {
		tlds = append(tlds, "."+strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), ".")))
	}

	return &URLScorer{
		shorteners: shorteners,
		tlds:       tlds,
		keywords:   NewKeywordMatcher(cfg.URLKeywords),
	}
}

// Score evaluates every rule against a normalized URL. The input must
// already have passed Normalize; anything else is an ErrInvalidURL.
// Sources are left empty here; the aggregator tags the local source.
func (s *URLScorer) Score(normalized string) (domain.ScoreResult, error) {
	u, err := url.Parse(normalized)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return domain.ScoreResult{}, domain.ErrInvalidURL
	}

	var result domain.ScoreResult
	score := 0
	host := strings.ToLower(u.Hostname())

	if s.hostIsShortened(host) {
		score += pointsShortener
		result.AddReason(domain.ReasonShortener)
	}
	if strings.Count(host, ".")+1 >= minSubdomainLabels {
		score += pointsManySubdomains
		result.AddReason(domain.ReasonManySubdomains)
	}
	if s.hostHasSuspiciousTLD(host) {
		score += pointsUncommonTLD
		result.AddReason(domain.ReasonUncommonTLD)
	}
	if s.keywords.Contains(normalized) {
		score += pointsKeywords
		result.AddReason(domain.ReasonSuspiciousKeywords)
	}
	if u.Scheme == "http" {
		score += pointsNoHTTPS
		result.AddReason(domain.ReasonNoHTTPS)
	}

	result.Score = domain.ClampScore(score)
	return result, nil
}

func (s *URLScorer) hostIsShortened(host string) bool {
	for _, shortener := range s.shorteners {
		if host == shortener || strings.HasSuffix(host, "."+shortener) {
			return true
		}
	}
	return false
}

func (s *URLScorer) hostHasSuspiciousTLD(host string) bool {
	for _, tld := range s.tlds {
		if strings.HasSuffix(host, tld) {
			return true
		}
	}
	return false
}
