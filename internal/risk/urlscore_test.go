package risk

import (
	"path/filepath"
	"testing"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testScoringConfig loads the default rule lists (no config file present).
func testScoringConfig(t *testing.T) config.ScoringConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	return cfg.Scoring
}

func TestURLScorer_Rules(t *testing.T) {
	scorer := NewURLScorer(testScoringConfig(t))

	tests := []struct {
		name        string
		url         string
		wantScore   int
		wantReasons []string
	}{
		{
			name:        "clean https url",
			url:         "https://www.gov.br/inss",
			wantScore:   10, // www.gov.br has three labels
			wantReasons: []string{domain.ReasonManySubdomains},
		},
		{
			name:        "shortener without https",
			url:         "http://bit.ly/abc",
			wantScore:   35,
			wantReasons: []string{domain.ReasonShortener, domain.ReasonNoHTTPS},
		},
		{
			name:        "uncommon tld with keyword",
			url:         "https://banco-itau.top/login",
			wantScore:   35,
			wantReasons: []string{domain.ReasonUncommonTLD, domain.ReasonSuspiciousKeywords},
		},
		{
			name:      "everything at once",
			url:       "http://senha.premio.bit.ly/pix",
			wantScore: 65,
			wantReasons: []string{
				domain.ReasonShortener,
				domain.ReasonManySubdomains,
				domain.ReasonSuspiciousKeywords,
				domain.ReasonNoHTTPS,
			},
		},
		{
			name:        "plain two-label https domain",
			url:         "https://example.com/page",
			wantScore:   0,
			wantReasons: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantReasons, result.Reasons)
			assert.Empty(t, result.Sources, "scorer must not tag sources")
		})
	}
}

func TestURLScorer_ScoreBounds(t *testing.T) {
	scorer := NewURLScorer(testScoringConfig(t))

	urls := []string{
		"http://pix.senha.banco.premio.bit.ly.tk/fgts?brinde=1",
		"https://example.com",
		"http://a.b.c.d.e.xyz/ganhou",
	}

	for _, u := range urls {
		result, err := scorer.Score(u)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)

		seen := map[string]bool{}
		for _, code := range result.Reasons {
			assert.False(t, seen[code], "duplicate reason %s", code)
			seen[code] = true
		}
	}
}

func TestURLScorer_InvalidInput(t *testing.T) {
	scorer := NewURLScorer(testScoringConfig(t))

	_, err := scorer.Score("::not-a-url::")
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
}
