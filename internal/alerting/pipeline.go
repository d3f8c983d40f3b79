package alerting

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/guardiao60/linkguard/internal/reputation"
	"github.com/guardiao60/linkguard/internal/risk"
	"github.com/guardiao60/linkguard/internal/telemetry"
)

// Pipeline runs the full classification flow for links, reports and
// messages: heuristic scoring, reputation augmentation, severity
// assignment, persistence and alert materialization.
type Pipeline struct {
	urls           *risk.URLScorer
	texts          *risk.TextScorer
	reportKeywords *risk.KeywordMatcher
	reputation     *reputation.Aggregator

	checks   LinkCheckStore
	reports  ReportStore
	messages MessageStore

	materializer *Materializer
	telemetry    *telemetry.Provider

	mediumMin int
	highMin   int

	log logger.Logger
}

// NewPipeline wires the classification flow. The telemetry provider may
// be nil, which disables metrics.
func NewPipeline(
	cfg config.ScoringConfig,
	agg *reputation.Aggregator,
	checks LinkCheckStore,
	reports ReportStore,
	messages MessageStore,
	materializer *Materializer,
	tel *telemetry.Provider,
	log logger.Logger,
) *Pipeline {
	return &Pipeline{
		urls:           risk.NewURLScorer(cfg),
		texts:          risk.NewTextScorer(cfg),
		reportKeywords: risk.NewKeywordMatcher(cfg.ReportKeywords),
		reputation:     agg,
		checks:         checks,
		reports:        reports,
		messages:       messages,
		materializer:   materializer,
		telemetry:      tel,
		mediumMin:      cfg.MediumMin,
		highMin:        cfg.HighMin,
		log:            log,
	}
}

// CheckLink classifies a single URL end to end and persists the audit
// record. Invalid input is domain.ErrInvalidURL.
func (p *Pipeline) CheckLink(ctx context.Context, rawURL string) (*domain.LinkCheck, domain.Severity, error) {
	start := time.Now()
	if p.telemetry != nil {
		var span trace.Span
		ctx, span = p.telemetry.StartSpan(ctx, "pipeline.check_link",
			attribute.String("url", rawURL))
		defer span.End()
	}

	normalized, err := risk.Normalize(rawURL)
	if err != nil {
		return nil, "", err
	}

	local, err := p.urls.Score(normalized)
	if err != nil {
		return nil, "", err
	}

	merged := p.reputation.Augment(ctx, normalized, local)
	severity := risk.SeverityFor(merged.Score, p.mediumMin, p.highMin)

	check := &domain.LinkCheck{
		URL:     normalized,
		IsSafe:  severity == domain.SeverityLow,
		Score:   merged.Score,
		Reasons: merged.Reasons,
		Sources: merged.Sources,
	}
	if check.Reasons == nil {
		check.Reasons = []string{}
	}

	if err := p.checks.Create(ctx, check); err != nil {
		return nil, "", fmt.Errorf("persist link check: %w", err)
	}

	alert, err := p.materializer.LinkChecked(ctx, normalized, merged, severity)
	if err != nil {
		return nil, "", err
	}

	if p.telemetry != nil {
		p.telemetry.RecordLinkCheck(ctx, string(severity), time.Since(start))
		if alert != nil {
			p.telemetry.RecordAlert(ctx, string(alert.Type), string(alert.Severity))
		}
	}

	p.log.Info("link checked",
		logger.String("url", normalized),
		logger.Int("score", check.Score),
		logger.String("severity", string(severity)))
	return check, severity, nil
}

// RecentChecks returns the newest link-check audit records.
func (p *Pipeline) RecentChecks(ctx context.Context, limit int) ([]domain.LinkCheck, error) {
	return p.checks.Recent(ctx, limit)
}

// SubmitReport persists a user report and materializes a REPORT_SUSPECT
// alert when either the reported URL or the description looks risky. A
// supplied URL is normalized in place.
func (p *Pipeline) SubmitReport(ctx context.Context, report *domain.Report) (*domain.Alert, error) {
	var (
		urlScore    *domain.ScoreResult
		urlSeverity = domain.SeverityLow
	)

	if report.URL != nil && *report.URL != "" {
		normalized, err := risk.Normalize(*report.URL)
		if err != nil {
			return nil, err
		}
		report.URL = &normalized

		local, err := p.urls.Score(normalized)
		if err != nil {
			return nil, err
		}
		merged := p.reputation.Augment(ctx, normalized, local)
		urlScore = &merged
		urlSeverity = risk.SeverityFor(merged.Score, p.mediumMin, p.highMin)
	} else {
		report.URL = nil
	}

	if err := p.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	textRisky := p.reportKeywords.Contains(report.Description)
	alert, err := p.materializer.ReportFiled(ctx, report, urlScore, urlSeverity, textRisky)
	if err != nil {
		return nil, err
	}
	if p.telemetry != nil && alert != nil {
		p.telemetry.RecordAlert(ctx, string(alert.Type), string(alert.Severity))
	}
	return alert, nil
}

// IngestMessage stores a message for later analysis.
func (p *Pipeline) IngestMessage(ctx context.Context, msg *domain.Message) error {
	if err := p.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("persist message: %w", err)
	}
	return nil
}

// AnalyzeMessage scores a message body, materializes a TEXT_ANALYSIS
// alert when warranted and marks the message processed.
func (p *Pipeline) AnalyzeMessage(ctx context.Context, msg *domain.Message) (domain.TextAnalysis, domain.Severity, *domain.Alert, error) {
	start := time.Now()
	if p.telemetry != nil {
		var span trace.Span
		ctx, span = p.telemetry.StartSpan(ctx, "pipeline.analyze_message",
			attribute.Int64("message_id", msg.ID))
		defer span.End()
	}

	analysis, err := p.texts.Analyze(msg.Body)
	if err != nil {
		return domain.TextAnalysis{}, "", nil, err
	}
	severity := risk.SeverityFor(analysis.Score, p.mediumMin, p.highMin)

	alert, err := p.materializer.TextAnalyzed(ctx, msg, analysis, severity)
	if err != nil {
		return domain.TextAnalysis{}, "", nil, err
	}

	if err := p.messages.MarkProcessed(ctx, msg.ID); err != nil {
		return domain.TextAnalysis{}, "", nil, err
	}

	if p.telemetry != nil {
		p.telemetry.RecordTextAnalysis(ctx, analysis.KeywordHits, time.Since(start))
		p.telemetry.RecordMessageAnalyzed(ctx, msg.ReceivedAt)
		if alert != nil {
			p.telemetry.RecordAlert(ctx, string(alert.Type), string(alert.Severity))
		}
	}
	return analysis, severity, alert, nil
}

// AnalyzeMessageByID looks up a message and analyzes it.
func (p *Pipeline) AnalyzeMessageByID(ctx context.Context, id int64) (domain.TextAnalysis, domain.Severity, *domain.Alert, error) {
	msg, err := p.messages.GetByID(ctx, id)
	if err != nil {
		return domain.TextAnalysis{}, "", nil, err
	}
	return p.AnalyzeMessage(ctx, msg)
}

// ClassifyMessage records a human verdict for a message. The verdict
// wins over anything the heuristics computed and the message counts as
// processed afterwards.
func (p *Pipeline) ClassifyMessage(ctx context.Context, id int64, scam bool) (*domain.Alert, error) {
	msg, err := p.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	alert, err := p.materializer.ManualVerdict(ctx, msg, scam)
	if err != nil {
		return nil, err
	}

	if err := p.messages.MarkProcessed(ctx, msg.ID); err != nil {
		return nil, err
	}

	if p.telemetry != nil {
		p.telemetry.RecordAlert(ctx, string(alert.Type), string(alert.Severity))
	}
	return alert, nil
}
