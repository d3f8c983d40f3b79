package domain

import "time"

// AlertType identifies which classification event materialized an alert.
type AlertType string

const (
	AlertLinkSuspect   AlertType = "LINK_SUSPECT"
	AlertReportSuspect AlertType = "REPORT_SUSPECT"
	AlertTextAnalysis  AlertType = "TEXT_ANALYSIS"
	AlertManualReport  AlertType = "MANUAL_REPORT"
	AlertManualSafe    AlertType = "MANUAL_SAFE"
)

// AlertStatus is the lifecycle state of an alert. The only transition is
// new -> ack; nothing reopens or deletes an alert.
type AlertStatus string

const (
	AlertStatusNew AlertStatus = "new"
	AlertStatusAck AlertStatus = "ack"
)

// Alert is the durable output of a classification event. Created only by
// the materializer, mutated only by the lifecycle manager (status/ack_at).
type Alert struct {
	ID          int64       `db:"id"          json:"id"`
	Type        AlertType   `db:"type"        json:"type"`
	URL         *string     `db:"url"         json:"url,omitempty"`
	Description string      `db:"description" json:"description"`
	Severity    Severity    `db:"severity"    json:"severity"`
	Score       *int        `db:"score"       json:"score,omitempty"`
	Status      AlertStatus `db:"status"      json:"status"`
	MessageID   *int64      `db:"message_id"  json:"message_id,omitempty"`
	ReportID    *int64      `db:"report_id"   json:"report_id,omitempty"`
	CreatedAt   time.Time   `db:"created_at"  json:"created_at"`
	AckAt       *time.Time  `db:"ack_at"      json:"ack_at,omitempty"`
}

// AlertFilter narrows alert listings and exports.
type AlertFilter struct {
	// Status filters by lifecycle state; empty means all.
	Status AlertStatus
	// Severity filters by tier; empty means all.
	Severity Severity
	// Query is a case-insensitive substring match over description and URL.
	Query string
	// Limit/Offset paginate the newest-first listing.
	Limit  int
	Offset int
}
