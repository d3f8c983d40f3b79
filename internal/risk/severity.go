package risk

import "github.com/guardiao60/linkguard/internal/domain"

// SeverityFor maps a score onto a tier. Thresholds come from validated
// configuration, so highMin >= mediumMin always holds here.
func SeverityFor(score, mediumMin, highMin int) domain.Severity {
	switch {
	case score >= highMin:
		return domain.SeverityHigh
	case score >= mediumMin:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}
