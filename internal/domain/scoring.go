package domain

// Severity is the coarse risk bucket derived from a numeric score.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Reason codes emitted by the heuristic scorers and the reputation aggregator.
const (
	ReasonShortener          = "url_shortener"
	ReasonManySubdomains     = "many_subdomains"
	ReasonUncommonTLD        = "uncommon_tld"
	ReasonSuspiciousKeywords = "suspicious_keywords"
	ReasonNoHTTPS            = "no_https"
	ReasonRiskyKeywords      = "risky_keywords"
	ReasonContainsURL        = "contains_url"
	ReasonSafeBrowsingMatch  = "safe_browsing_match"
	ReasonOpenPhishMatch     = "openphish_match"
	ReasonManualReport       = "manual_report"
	ReasonManualSafe         = "manual_safe"
)

// ScoreResult is the outcome of scoring a URL or a text message.
// Score is always clamped to [0,100]; Reasons and Sources are ordered sets
// (no duplicates, first-seen order preserved).
type ScoreResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Sources []string `json:"sources"`
}

// AddReason appends a reason code unless it is already present.
func (r *ScoreResult) AddReason(code string) {
	for _, have := range r.Reasons {
		if have == code {
			return
		}
	}
	r.Reasons = append(r.Reasons, code)
}

// AddSource appends a source identifier unless it is already present.
func (r *ScoreResult) AddSource(source string) {
	for _, have := range r.Sources {
		if have == source {
			return
		}
	}
	r.Sources = append(r.Sources, source)
}

// MergeReasons unions another result's reasons in, preserving order.
func (r *ScoreResult) MergeReasons(other ScoreResult) {
	for _, code := range other.Reasons {
		r.AddReason(code)
	}
}

// ClampScore bounds a raw additive score to the [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TextAnalysis is the outcome of scoring free text. URLs embedded in the
// text are normalized and scored individually; the strongest one dominates
// the merged score.
type TextAnalysis struct {
	ScoreResult
	KeywordHits  int                    `json:"keyword_hits"`
	URLsFound    []string               `json:"urls_found"`
	PerURLScores map[string]ScoreResult `json:"per_url_scores,omitempty"`
}
