package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guardiao60/linkguard/internal/alerting"
	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/logger"
)

// safetyTips is the static list served to the companion app.
var safetyTips = []string{
	"Desconfie de mensagens pedindo PIX com urgência.",
	"Bancos nunca pedem sua senha por mensagem ou telefone.",
	"Não clique em links encurtados recebidos de desconhecidos.",
	"Prêmios que exigem pagamento antecipado são golpe.",
	"Na dúvida, ligue para o número oficial do banco ou da empresa.",
	"Verifique se o endereço do site começa com https.",
}

// Handler handles HTTP requests for the linkguard API.
type Handler struct {
	pipeline  *alerting.Pipeline
	lifecycle *alerting.Lifecycle
	reports   alerting.ReportStore
	messages  alerting.MessageStore
	log       logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	pipeline *alerting.Pipeline,
	lifecycle *alerting.Lifecycle,
	reports alerting.ReportStore,
	messages alerting.MessageStore,
	log logger.Logger,
) *Handler {
	return &Handler{
		pipeline:  pipeline,
		lifecycle: lifecycle,
		reports:   reports,
		messages:  messages,
		log:       log,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CheckLink handles POST /v1/links/check
func (h *Handler) CheckLink(c *gin.Context) {
	var req CheckLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_url"})
		return
	}

	check, severity, err := h.pipeline.CheckLink(c.Request.Context(), req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckLinkResponse{
		URL:      check.URL,
		IsSafe:   check.IsSafe,
		Score:    check.Score,
		Severity: string(severity),
		Reasons:  check.Reasons,
		Sources:  check.Sources,
		SavedID:  check.ID,
	})
}

// RecentChecks handles GET /v1/links/recent
func (h *Handler) RecentChecks(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	checks, err := h.pipeline.RecentChecks(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if checks == nil {
		checks = []domain.LinkCheck{}
	}

	c.JSON(http.StatusOK, gin.H{"checks": checks, "total": len(checks)})
}

// CreateReport handles POST /v1/reports
func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	report := &domain.Report{
		URL:          req.URL,
		Description:  req.Description,
		ReporterHash: req.ReporterHash,
		Evidence:     req.Evidence,
	}
	if _, err := h.pipeline.SubmitReport(c.Request.Context(), report); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetReport handles GET /v1/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	report, err := h.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListAlerts handles GET /v1/alerts
func (h *Handler) ListAlerts(c *gin.Context) {
	filter, ok := alertFilterFromQuery(c)
	if !ok {
		return
	}

	alerts, err := h.lifecycle.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AlertsListResponse{Alerts: alerts, Total: len(alerts)})
}

// AcknowledgeAlert handles PATCH /v1/alerts/:id/ack
func (h *Handler) AcknowledgeAlert(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	alert, err := h.lifecycle.Acknowledge(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// ExportAlerts handles GET /v1/alerts/export
func (h *Handler) ExportAlerts(c *gin.Context) {
	filter, ok := alertFilterFromQuery(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="alerts.csv"`)
	if err := h.lifecycle.ExportCSV(c.Request.Context(), c.Writer, filter); err != nil {
		h.log.Error("alert export failed", logger.Error(err))
		c.Status(http.StatusInternalServerError)
	}
}

// CreateMessage handles POST /v1/messages
func (h *Handler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	msg := &domain.Message{Sender: req.Sender, Body: req.Body}
	if err := h.pipeline.IngestMessage(c.Request.Context(), msg); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages handles GET /v1/messages
func (h *Handler) ListMessages(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	messages, err := h.messages.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GetMessage handles GET /v1/messages/:id
func (h *Handler) GetMessage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	msg, err := h.messages.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// AnalyzeMessage handles POST /v1/messages/:id/analyze
func (h *Handler) AnalyzeMessage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	analysis, severity, alert, err := h.pipeline.AnalyzeMessageByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAnalyzeResponse(id, analysis, severity, alert))
}

// ClassifyMessage handles POST /v1/messages/:id/classify
func (h *Handler) ClassifyMessage(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ClassifyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_verdict"})
		return
	}

	alert, err := h.pipeline.ClassifyMessage(c.Request.Context(), id, req.Verdict == "scam")
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

// GetTips handles GET /v1/tips
func (h *Handler) GetTips(c *gin.Context) {
	c.JSON(http.StatusOK, safetyTips)
}

// respondError maps pipeline errors onto the HTTP surface.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_url"})
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_input"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		h.log.Error("request failed",
			logger.String("path", c.Request.URL.Path),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return 0, false
	}
	return id, true
}

// alertFilterFromQuery parses listing filters. An absent status and the
// "all" token both mean no status narrowing; unknown status or severity
// tokens are rejected so a typo never reads as an empty result set.
func alertFilterFromQuery(c *gin.Context) (domain.AlertFilter, bool) {
	filter := domain.AlertFilter{
		Query:  c.Query("q"),
		Limit:  intQuery(c, "limit", 0),
		Offset: intQuery(c, "offset", 0),
	}

	switch status := c.Query("status"); status {
	case "", "all":
	case string(domain.AlertStatusNew), string(domain.AlertStatusAck):
		filter.Status = domain.AlertStatus(status)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return domain.AlertFilter{}, false
	}

	switch severity := c.Query("severity"); severity {
	case "", "all":
	case string(domain.SeverityLow), string(domain.SeverityMedium), string(domain.SeverityHigh):
		filter.Severity = domain.Severity(severity)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_severity"})
		return domain.AlertFilter{}, false
	}

	return filter, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
