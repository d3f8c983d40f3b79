package risk

import (
	"testing"

	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Severity
	}{
		{0, domain.SeverityLow},
		{49, domain.SeverityLow},
		{50, domain.SeverityMedium},
		{79, domain.SeverityMedium},
		{80, domain.SeverityHigh},
		{100, domain.SeverityHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.score, 50, 80), "score %d", tt.score)
	}
}

func TestSeverityFor_CustomThresholds(t *testing.T) {
	assert.Equal(t, domain.SeverityMedium, SeverityFor(30, 30, 90))
	assert.Equal(t, domain.SeverityHigh, SeverityFor(90, 30, 90))
	assert.Equal(t, domain.SeverityLow, SeverityFor(29, 30, 90))
}
