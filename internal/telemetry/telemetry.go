// Package telemetry provides OpenTelemetry instrumentation for the
// linkguard service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "linkguard"

// Metrics holds all linkguard Prometheus metrics
type Metrics struct {
	// Classification metrics
	LinkChecks        *prometheus.CounterVec
	TextAnalyses      prometheus.Counter
	ScoringDuration   prometheus.Histogram
	KeywordHits       prometheus.Histogram

	// Reputation provider metrics
	ReputationLookups  *prometheus.CounterVec
	ReputationDuration *prometheus.HistogramVec

	// Alert metrics
	AlertsMaterialized *prometheus.CounterVec
	AlertsAcknowledged prometheus.Counter

	// Analyzer poller metrics
	MessagesAnalyzed prometheus.Counter
	AnalyzerLag      prometheus.Histogram
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initClassificationMetrics(m)
	initReputationMetrics(m)
	initAlertMetrics(m)
	initAnalyzerMetrics(m)
	return m
}

func initClassificationMetrics(m *Metrics) {
	m.LinkChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkguard_link_checks_total",
		Help: "Total link checks by resulting severity",
	}, []string{"severity"})

	m.TextAnalyses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkguard_text_analyses_total",
		Help: "Total free-text analyses",
	})

	m.ScoringDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkguard_scoring_duration_seconds",
		Help:    "Time to score one link or message, external lookups included",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0},
	})

	m.KeywordHits = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkguard_keyword_hits",
		Help:    "Distinct risk keywords found per analyzed text",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})
}

func initReputationMetrics(m *Metrics) {
	m.ReputationLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkguard_reputation_lookups_total",
		Help: "Total reputation provider lookups by provider and outcome (hit, miss, stub, error)",
	}, []string{"provider", "outcome"})

	m.ReputationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "linkguard_reputation_duration_seconds",
		Help:    "Reputation provider lookup latency",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 4.0},
	}, []string{"provider"})
}

func initAlertMetrics(m *Metrics) {
	m.AlertsMaterialized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkguard_alerts_materialized_total",
		Help: "Total alerts created by type and severity",
	}, []string{"type", "severity"})

	m.AlertsAcknowledged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkguard_alerts_acknowledged_total",
		Help: "Total alert acknowledgements",
	})
}

func initAnalyzerMetrics(m *Metrics) {
	m.MessagesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkguard_messages_analyzed_total",
		Help: "Total messages processed by the background analyzer",
	})

	m.AnalyzerLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkguard_analyzer_lag_seconds",
		Help:    "Time between message ingestion and analysis",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
}

// RecordLinkCheck records one link classification by final severity.
func (p *Provider) RecordLinkCheck(ctx context.Context, severity string, duration time.Duration) {
	p.Metrics.LinkChecks.WithLabelValues(severity).Inc()
	p.Metrics.ScoringDuration.Observe(duration.Seconds())
}

// RecordTextAnalysis records one free-text analysis.
func (p *Provider) RecordTextAnalysis(ctx context.Context, keywordHits int, duration time.Duration) {
	p.Metrics.TextAnalyses.Inc()
	p.Metrics.KeywordHits.Observe(float64(keywordHits))
	p.Metrics.ScoringDuration.Observe(duration.Seconds())
}

// RecordReputationLookup records a provider lookup outcome.
func (p *Provider) RecordReputationLookup(ctx context.Context, provider, outcome string, duration time.Duration) {
	p.Metrics.ReputationLookups.WithLabelValues(provider, outcome).Inc()
	p.Metrics.ReputationDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordAlert records a materialized alert.
func (p *Provider) RecordAlert(ctx context.Context, alertType, severity string) {
	p.Metrics.AlertsMaterialized.WithLabelValues(alertType, severity).Inc()
}

// RecordAcknowledgement records an alert acknowledgement.
func (p *Provider) RecordAcknowledgement(ctx context.Context) {
	p.Metrics.AlertsAcknowledged.Inc()
}

// RecordMessageAnalyzed records one background analysis with its
// ingestion-to-analysis lag.
func (p *Provider) RecordMessageAnalyzed(ctx context.Context, receivedAt time.Time) {
	p.Metrics.MessagesAnalyzed.Inc()
	p.Metrics.AnalyzerLag.Observe(time.Since(receivedAt).Seconds())
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
