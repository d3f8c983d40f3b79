package api

import (
	"github.com/guardiao60/linkguard/internal/domain"
)

// CheckLinkRequest represents a link classification request.
type CheckLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

// CheckLinkResponse mirrors the classification outcome for one URL.
type CheckLinkResponse struct {
	URL      string   `json:"url"`
	IsSafe   bool     `json:"is_safe"`
	Score    int      `json:"score"`
	Severity string   `json:"severity"`
	Reasons  []string `json:"reasons"`
	Sources  []string `json:"sources"`
	SavedID  int64    `json:"saved_id"`
}

// CreateReportRequest represents a user scam report submission.
type CreateReportRequest struct {
	URL          *string  `json:"url"`
	Description  string   `json:"description"`
	ReporterHash string   `json:"reporter_hash"`
	Evidence     []string `json:"evidence"`
}

// CreateMessageRequest represents a message intake request.
type CreateMessageRequest struct {
	Sender string `json:"sender"`
	Body   string `json:"body" binding:"required"`
}

// ClassifyMessageRequest carries a manual verdict for a message.
type ClassifyMessageRequest struct {
	Verdict string `json:"verdict" binding:"required,oneof=scam safe"`
}

// AnalyzeMessageResponse mirrors an on-demand text analysis.
type AnalyzeMessageResponse struct {
	MessageID   int64         `json:"message_id"`
	Score       int           `json:"score"`
	Severity    string        `json:"severity"`
	KeywordHits int           `json:"keyword_hits"`
	Reasons     []string      `json:"reasons"`
	URLsFound   []string      `json:"urls_found"`
	Alert       *domain.Alert `json:"alert,omitempty"`
}

// AlertsListResponse wraps an alert listing with its count.
type AlertsListResponse struct {
	Alerts []domain.Alert `json:"alerts"`
	Total  int            `json:"total"`
}

func toAnalyzeResponse(id int64, analysis domain.TextAnalysis, severity domain.Severity, alert *domain.Alert) AnalyzeMessageResponse {
	resp := AnalyzeMessageResponse{
		MessageID:   id,
		Score:       analysis.Score,
		Severity:    string(severity),
		KeywordHits: analysis.KeywordHits,
		Reasons:     analysis.Reasons,
		URLsFound:   analysis.URLsFound,
		Alert:       alert,
	}
	if resp.Reasons == nil {
		resp.Reasons = []string{}
	}
	if resp.URLsFound == nil {
		resp.URLsFound = []string{}
	}
	return resp
}
