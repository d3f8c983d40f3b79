package alerting

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/guardiao60/linkguard/internal/config"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/guardiao60/linkguard/internal/reputation"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
	hit  bool
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Check(_ context.Context, _ string) (bool, error) {
	return s.hit, s.err
}

type pipelineFixture struct {
	pipeline *Pipeline
	store    *fakeStore
}

func newPipelineFixture(t *testing.T, providers ...reputation.ProviderSpec) *pipelineFixture {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	store := newFakeStore()
	log := logger.NewNop()
	agg := reputation.NewAggregatorWith(time.Second, nil, log, providers...)
	materializer := NewMaterializer(store, cfg.Scoring.TextAlertKeywordMin, log)

	return &pipelineFixture{
		pipeline: NewPipeline(
			cfg.Scoring,
			agg,
			&fakeCheckStore{store: store},
			&fakeReportStore{store: store},
			&fakeMessageStore{store: store},
			materializer,
			nil,
			log,
		),
		store: store,
	}
}

func TestPipeline_CheckLink_Safe(t *testing.T) {
	fx := newPipelineFixture(t)

	check, severity, err := fx.pipeline.CheckLink(context.Background(), "https://example.com/sobre")
	require.NoError(t, err)

	assert.True(t, check.IsSafe)
	assert.Equal(t, 0, check.Score)
	assert.Equal(t, domain.SeverityLow, severity)
	assert.Equal(t, []string{"local"}, check.Sources)
	assert.Empty(t, check.Reasons)
	assert.NotNil(t, check.Reasons, "reasons must serialize as an array")

	require.Len(t, fx.store.checks, 1, "every check leaves an audit record")
	assert.Empty(t, fx.store.alerts, "safe links never materialize alerts")
}

func TestPipeline_CheckLink_Suspect(t *testing.T) {
	fx := newPipelineFixture(t)

	check, severity, err := fx.pipeline.CheckLink(context.Background(), "http://bit.ly/premio-pix")
	require.NoError(t, err)

	assert.False(t, check.IsSafe)
	assert.Equal(t, domain.SeverityMedium, severity)
	assert.Contains(t, check.Reasons, domain.ReasonShortener)

	require.Len(t, fx.store.alerts, 1)
	alert := fx.store.alerts[0]
	assert.Equal(t, domain.AlertLinkSuspect, alert.Type)
	assert.Equal(t, domain.AlertStatusNew, alert.Status)
	require.NotNil(t, alert.Score)
	assert.Equal(t, check.Score, *alert.Score)
}

func TestPipeline_CheckLink_ReputationHit(t *testing.T) {
	fx := newPipelineFixture(t, reputation.ProviderSpec{
		Provider: &stubProvider{name: "openphish", hit: true},
		Floor:    95,
		Reason:   domain.ReasonOpenPhishMatch,
	})

	check, severity, err := fx.pipeline.CheckLink(context.Background(), "https://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 95, check.Score, "a listed URL is escalated even with zero heuristic score")
	assert.Equal(t, domain.SeverityHigh, severity)
	assert.Equal(t, []string{"local", "openphish"}, check.Sources)
	require.Len(t, fx.store.alerts, 1)
	assert.Equal(t, domain.SeverityHigh, fx.store.alerts[0].Severity)
}

func TestPipeline_CheckLink_Invalid(t *testing.T) {
	fx := newPipelineFixture(t)

	_, _, err := fx.pipeline.CheckLink(context.Background(), "not a url")
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	assert.Empty(t, fx.store.checks, "invalid input leaves no audit record")
}

func TestPipeline_SubmitReport_TextOnly(t *testing.T) {
	fx := newPipelineFixture(t)

	report := &domain.Report{Description: "recebi uma cobrança falsa por pix"}
	alert, err := fx.pipeline.SubmitReport(context.Background(), report)
	require.NoError(t, err)

	assert.NotZero(t, report.ID)
	require.NotNil(t, alert)
	assert.Equal(t, domain.AlertReportSuspect, alert.Type)
	assert.Equal(t, domain.SeverityMedium, alert.Severity, "text-only reports record the fixed medium tier")
	assert.Nil(t, alert.Score, "no score is computed without a URL")
	require.NotNil(t, alert.ReportID)
	assert.Equal(t, report.ID, *alert.ReportID)
}

func TestPipeline_SubmitReport_CleanTextNoURL(t *testing.T) {
	fx := newPipelineFixture(t)

	report := &domain.Report{Description: "achei esse site estranho"}
	alert, err := fx.pipeline.SubmitReport(context.Background(), report)
	require.NoError(t, err)

	assert.NotZero(t, report.ID, "the report is persisted either way")
	assert.Nil(t, alert)
}

func TestPipeline_SubmitReport_SuspiciousURL(t *testing.T) {
	fx := newPipelineFixture(t)

	url := "http://premio.banco-itau.top/liberar?utm_source=zap"
	report := &domain.Report{URL: &url, Description: "parece falso"}
	alert, err := fx.pipeline.SubmitReport(context.Background(), report)
	require.NoError(t, err)

	require.NotNil(t, report.URL)
	assert.Equal(t, "http://premio.banco-itau.top/liberar", *report.URL, "the URL is normalized before persisting")
	require.NotNil(t, alert)
	assert.NotNil(t, alert.Score)
	assert.NotEqual(t, domain.SeverityLow, alert.Severity)
}

func TestPipeline_AnalyzeMessage(t *testing.T) {
	fx := newPipelineFixture(t)

	msg := &domain.Message{Sender: "+5511999990000", Body: "Envie o pix urgente para liberar sua senha http://bit.ly/x"}
	require.NoError(t, fx.pipeline.IngestMessage(context.Background(), msg))

	analysis, severity, alert, err := fx.pipeline.AnalyzeMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, analysis.KeywordHits, 3)
	assert.NotEqual(t, domain.SeverityLow, severity)
	require.NotNil(t, alert)
	assert.Equal(t, domain.AlertTextAnalysis, alert.Type)
	require.NotNil(t, alert.MessageID)
	assert.Equal(t, msg.ID, *alert.MessageID)

	stored, err := (&fakeMessageStore{store: fx.store}).GetByID(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Processed)
}

func TestPipeline_AnalyzeMessage_Harmless(t *testing.T) {
	fx := newPipelineFixture(t)

	msg := &domain.Message{Body: "chego em dez minutos"}
	require.NoError(t, fx.pipeline.IngestMessage(context.Background(), msg))

	_, severity, alert, err := fx.pipeline.AnalyzeMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, domain.SeverityLow, severity)
	assert.Nil(t, alert, "harmless text never materializes an alert")
}

func TestPipeline_ClassifyMessage(t *testing.T) {
	fx := newPipelineFixture(t)

	msg := &domain.Message{Body: "mensagem qualquer"}
	require.NoError(t, fx.pipeline.IngestMessage(context.Background(), msg))

	alert, err := fx.pipeline.ClassifyMessage(context.Background(), msg.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertManualReport, alert.Type)
	assert.Equal(t, domain.SeverityHigh, alert.Severity)
	require.NotNil(t, alert.Score)
	assert.Equal(t, 90, *alert.Score)

	safeAlert, err := fx.pipeline.ClassifyMessage(context.Background(), msg.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertManualSafe, safeAlert.Type)
	assert.Equal(t, domain.SeverityLow, safeAlert.Severity)
	require.NotNil(t, safeAlert.Score)
	assert.Equal(t, 10, *safeAlert.Score)
}

func TestPipeline_ClassifyMessage_NotFound(t *testing.T) {
	fx := newPipelineFixture(t)

	_, err := fx.pipeline.ClassifyMessage(context.Background(), 404, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPipeline_CheckLink_EmitsTelemetry(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)

	store := newFakeStore()
	log := logger.NewNop()
	tel := testTelemetry()
	pipeline := NewPipeline(
		cfg.Scoring,
		reputation.NewAggregatorWith(time.Second, tel, log),
		&fakeCheckStore{store: store},
		&fakeReportStore{store: store},
		&fakeMessageStore{store: store},
		NewMaterializer(store, cfg.Scoring.TextAlertKeywordMin, log),
		tel,
		log,
	)

	checksBefore := testutil.ToFloat64(tel.Metrics.LinkChecks.WithLabelValues("low"))

	_, severity, err := pipeline.CheckLink(context.Background(), "https://example.com/")
	require.NoError(t, err)
	require.Equal(t, domain.SeverityLow, severity)

	assert.Equal(t, checksBefore+1, testutil.ToFloat64(tel.Metrics.LinkChecks.WithLabelValues("low")))
}
