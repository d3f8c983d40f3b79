package alerting

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializer_TextAnalyzed_KeywordFallback(t *testing.T) {
	store := newFakeStore()
	m := NewMaterializer(store, 3, logger.NewNop())

	msg := &domain.Message{ID: 7}

	// Low severity but keyword-dense: the secondary trigger fires and
	// the alert is recorded at medium.
	analysis := domain.TextAnalysis{KeywordHits: 4}
	analysis.Score = 45

	alert, err := m.TextAnalyzed(context.Background(), msg, analysis, domain.SeverityLow)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, domain.AlertTextAnalysis, alert.Type)
	assert.Equal(t, domain.SeverityMedium, alert.Severity)

	// Low severity and sparse keywords: nothing materializes.
	sparse := domain.TextAnalysis{KeywordHits: 1}
	alert, err = m.TextAnalyzed(context.Background(), msg, sparse, domain.SeverityLow)
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestLifecycle_AcknowledgeIdempotent(t *testing.T) {
	store := newFakeStore()
	lifecycle := NewLifecycle(store, nil, logger.NewNop())

	alert := &domain.Alert{Type: domain.AlertLinkSuspect, Description: "x", Severity: domain.SeverityHigh}
	require.NoError(t, store.Create(context.Background(), alert))

	acked, err := lifecycle.Acknowledge(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStatusAck, acked.Status)
	require.NotNil(t, acked.AckAt)
	firstAck := *acked.AckAt

	// Re-acking succeeds without moving the timestamp.
	again, err := lifecycle.Acknowledge(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStatusAck, again.Status)
	assert.Equal(t, firstAck, *again.AckAt)

	_, err = lifecycle.Acknowledge(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLifecycle_ExportCSV(t *testing.T) {
	store := newFakeStore()
	lifecycle := NewLifecycle(store, nil, logger.NewNop())

	url := "http://bit.ly/x"
	score := 55
	require.NoError(t, store.Create(context.Background(), &domain.Alert{
		Type:        domain.AlertLinkSuspect,
		URL:         &url,
		Description: "Link com indícios de phishing",
		Severity:    domain.SeverityMedium,
		Score:       &score,
	}))
	require.NoError(t, store.Create(context.Background(), &domain.Alert{
		Type:        domain.AlertManualSafe,
		Description: "Mensagem marcada como segura",
		Severity:    domain.SeverityLow,
	}))

	var buf bytes.Buffer
	require.NoError(t, lifecycle.ExportCSV(context.Background(), &buf, domain.AlertFilter{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,type,url,description,severity,score,status,created_at,ack_at", lines[0])
	// Newest first: the manual-safe alert has no URL and no score.
	assert.Contains(t, lines[1], "MANUAL_SAFE")
	assert.Contains(t, lines[2], "LINK_SUSPECT")
	assert.Contains(t, lines[2], "http://bit.ly/x")
	assert.Contains(t, lines[2], "55")
}

func TestLifecycle_ListLimits(t *testing.T) {
	store := newFakeStore()
	lifecycle := NewLifecycle(store, nil, logger.NewNop())

	_, err := lifecycle.List(context.Background(), domain.AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, store.lastFilter.Limit, "zero limit gets the default page size")

	_, err = lifecycle.List(context.Background(), domain.AlertFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 200, store.lastFilter.Limit, "oversized limits are clamped")

	_, err = lifecycle.List(context.Background(), domain.AlertFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, store.lastFilter.Limit)
}

func TestLifecycle_ListFilters(t *testing.T) {
	store := newFakeStore()
	lifecycle := NewLifecycle(store, nil, logger.NewNop())

	urlA := "http://bit.ly/premio"
	urlB := "http://golpe.example.top/pix"
	require.NoError(t, store.Create(context.Background(), &domain.Alert{
		Type: domain.AlertLinkSuspect, URL: &urlA,
		Description: "Link com indícios de phishing", Severity: domain.SeverityMedium,
	}))
	require.NoError(t, store.Create(context.Background(), &domain.Alert{
		Type: domain.AlertLinkSuspect, URL: &urlB,
		Description: "Link com indícios de phishing", Severity: domain.SeverityHigh,
	}))
	require.NoError(t, store.Create(context.Background(), &domain.Alert{
		Type: domain.AlertReportSuspect, Description: "Denúncia recebida", Severity: domain.SeverityMedium,
	}))

	// Substring match over description and url, case-insensitive.
	byURL, err := lifecycle.List(context.Background(), domain.AlertFilter{Query: "BIT.LY"})
	require.NoError(t, err)
	require.Len(t, byURL, 1)
	assert.Equal(t, urlA, *byURL[0].URL)

	byDesc, err := lifecycle.List(context.Background(), domain.AlertFilter{Query: "denúncia"})
	require.NoError(t, err)
	require.Len(t, byDesc, 1)
	assert.Equal(t, domain.AlertReportSuspect, byDesc[0].Type)

	// Offset skips newest-first.
	page, err := lifecycle.List(context.Background(), domain.AlertFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, domain.AlertLinkSuspect, page[0].Type)
	assert.Equal(t, urlB, *page[0].URL)
}

func TestLifecycle_AcknowledgeRecordsMetric(t *testing.T) {
	store := newFakeStore()
	tel := testTelemetry()
	lifecycle := NewLifecycle(store, tel, logger.NewNop())

	alert := &domain.Alert{Type: domain.AlertLinkSuspect, Description: "x", Severity: domain.SeverityHigh}
	require.NoError(t, store.Create(context.Background(), alert))

	before := testutil.ToFloat64(tel.Metrics.AlertsAcknowledged)
	_, err := lifecycle.Acknowledge(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(tel.Metrics.AlertsAcknowledged))
}
