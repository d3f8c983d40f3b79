package domain

import "time"

// LinkCheck is the audit record of a single link classification call.
// Immutable once written.
type LinkCheck struct {
	ID        int64     `db:"id"         json:"id"`
	URL       string    `db:"url"        json:"url"`
	IsSafe    bool      `db:"is_safe"    json:"is_safe"`
	Score     int       `db:"score"      json:"score"`
	Reasons   []string  `db:"-"          json:"reasons"`
	Sources   []string  `db:"-"          json:"sources"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Report is a user-submitted scam report, optionally carrying a URL.
// Immutable once written.
type Report struct {
	ID           int64     `db:"id"            json:"id"`
	URL          *string   `db:"url"           json:"url,omitempty"`
	Description  string    `db:"description"   json:"description"`
	ReporterHash string    `db:"reporter_hash" json:"reporter_hash,omitempty"`
	Evidence     []string  `db:"-"             json:"evidence,omitempty"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// Message is an ingested free-text message awaiting (or done with) analysis.
// The body is immutable; Processed flips to true exactly once.
type Message struct {
	ID         int64     `db:"id"          json:"id"`
	Sender     string    `db:"sender"      json:"sender"`
	Body       string    `db:"body"        json:"body"`
	Processed  bool      `db:"processed"   json:"processed"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
}
