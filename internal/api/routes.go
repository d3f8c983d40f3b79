package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guardiao60/linkguard/internal/config"
)

// SetupRoutes configures all API routes. The metrics handler is optional.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config, metrics http.Handler) {
	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API v1 routes - rate limited and gated by API key
	v1 := router.Group("/v1",
		RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		APIKeyAuth(cfg.Auth.APIKey),
	)
	{
		links := v1.Group("/links")
		{
			links.POST("/check", handler.CheckLink)    // POST /v1/links/check
			links.GET("/recent", handler.RecentChecks) // GET /v1/links/recent
		}

		reports := v1.Group("/reports")
		{
			reports.POST("", handler.CreateReport) // POST /v1/reports
			reports.GET("/:id", handler.GetReport) // GET /v1/reports/:id
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("", handler.ListAlerts)                 // GET /v1/alerts
			alerts.GET("/export", handler.ExportAlerts)        // GET /v1/alerts/export
			alerts.PATCH("/:id/ack", handler.AcknowledgeAlert) // PATCH /v1/alerts/:id/ack
		}

		messages := v1.Group("/messages")
		{
			messages.POST("", handler.CreateMessage)                // POST /v1/messages
			messages.GET("", handler.ListMessages)                  // GET /v1/messages
			messages.GET("/:id", handler.GetMessage)                // GET /v1/messages/:id
			messages.POST("/:id/analyze", handler.AnalyzeMessage)   // POST /v1/messages/:id/analyze
			messages.POST("/:id/classify", handler.ClassifyMessage) // POST /v1/messages/:id/classify
		}

		v1.GET("/tips", handler.GetTips) // GET /v1/tips
	}
}
