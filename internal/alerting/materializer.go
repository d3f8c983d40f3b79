package alerting

import (
	"context"
	"fmt"

	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
)

const (
	linkAlertDescription      = "Link com indícios de phishing"
	reportFallbackDescription = "Denúncia recebida"
	manualScamScore           = 90
	manualSafeScore           = 10
)

// Materializer decides whether a scoring event becomes a durable alert.
// It only ever appends; existing alerts are never touched here.
type Materializer struct {
	alerts AlertStore
	// textAlertKeywordMin is the keyword-hit count that materializes a
	// TEXT_ANALYSIS alert regardless of the merged score.
	textAlertKeywordMin int
	log                 logger.Logger
}

// NewMaterializer creates a materializer over the alert store.
func NewMaterializer(alerts AlertStore, textAlertKeywordMin int, log logger.Logger) *Materializer {
	return &Materializer{alerts: alerts, textAlertKeywordMin: textAlertKeywordMin, log: log}
}

// LinkChecked materializes a LINK_SUSPECT alert for any non-low link
// check. Returns nil without error when no alert is warranted.
func (m *Materializer) LinkChecked(ctx context.Context, url string, result domain.ScoreResult, severity domain.Severity) (*domain.Alert, error) {
	if severity == domain.SeverityLow {
		return nil, nil
	}

	score := result.Score
	alert := &domain.Alert{
		Type:        domain.AlertLinkSuspect,
		URL:         &url,
		Description: linkAlertDescription,
		Severity:    severity,
		Score:       &score,
	}
	return m.create(ctx, alert)
}

// ReportFiled materializes a REPORT_SUSPECT alert when the reported URL
// scored medium or high, or when the free text alone looked risky. A
// text-only trigger records the fixed medium tier with no score.
func (m *Materializer) ReportFiled(ctx context.Context, report *domain.Report, urlScore *domain.ScoreResult, urlSeverity domain.Severity, textRisky bool) (*domain.Alert, error) {
	urlSuspect := report.URL != nil && urlSeverity != domain.SeverityLow
	if !urlSuspect && !textRisky {
		return nil, nil
	}

	description := report.Description
	if description == "" {
		description = reportFallbackDescription
	}

	alert := &domain.Alert{
		Type:        domain.AlertReportSuspect,
		URL:         report.URL,
		Description: description,
		Severity:    domain.SeverityMedium,
		ReportID:    &report.ID,
	}
	if report.URL != nil {
		alert.Severity = urlSeverity
		score := urlScore.Score
		alert.Score = &score
	}
	return m.create(ctx, alert)
}

// TextAnalyzed materializes a TEXT_ANALYSIS alert when the merged score
// reached medium, or when keyword density alone cleared the secondary
// threshold even though URL scoring pulled the merged score down.
func (m *Materializer) TextAnalyzed(ctx context.Context, msg *domain.Message, analysis domain.TextAnalysis, severity domain.Severity) (*domain.Alert, error) {
	if severity == domain.SeverityLow && analysis.KeywordHits < m.textAlertKeywordMin {
		return nil, nil
	}

	score := analysis.Score
	alert := &domain.Alert{
		Type:        domain.AlertTextAnalysis,
		Description: fmt.Sprintf("Mensagem com %d termos de risco", analysis.KeywordHits),
		Severity:    severity,
		Score:       &score,
		MessageID:   &msg.ID,
	}
	if len(analysis.URLsFound) > 0 {
		alert.URL = &analysis.URLsFound[0]
	}
	if severity == domain.SeverityLow {
		// Secondary keyword trigger, never below medium.
		alert.Severity = domain.SeverityMedium
	}
	return m.create(ctx, alert)
}

// ManualVerdict always materializes: a human calling a message scam or
// safe overrides anything the heuristics computed.
func (m *Materializer) ManualVerdict(ctx context.Context, msg *domain.Message, scam bool) (*domain.Alert, error) {
	alert := &domain.Alert{
		Type:        domain.AlertManualSafe,
		Description: "Mensagem marcada como segura",
		Severity:    domain.SeverityLow,
		MessageID:   &msg.ID,
	}
	score := manualSafeScore
	if scam {
		alert.Type = domain.AlertManualReport
		alert.Description = "Mensagem marcada como golpe"
		alert.Severity = domain.SeverityHigh
		score = manualScamScore
	}
	alert.Score = &score
	return m.create(ctx, alert)
}

func (m *Materializer) create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	if err := m.alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("materialize %s alert: %w", alert.Type, err)
	}
	m.log.Info("alert materialized",
		logger.Int64("alert_id", alert.ID),
		logger.String("type", string(alert.Type)),
		logger.String("severity", string(alert.Severity)))
	return alert, nil
}
