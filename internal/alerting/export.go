package alerting

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guardiao60/linkguard/internal/domain"
)

var exportHeader = []string{"id", "type", "url", "description", "severity", "score", "status", "created_at", "ack_at"}

// ExportCSV writes the filtered alert listing as CSV. Optional fields
// are left empty rather than zero-filled.
func (l *Lifecycle) ExportCSV(ctx context.Context, w io.Writer, filter domain.AlertFilter) error {
	alerts, err := l.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("export alerts: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, a := range alerts {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			string(a.Type),
			stringOrEmpty(a.URL),
			a.Description,
			string(a.Severity),
			scoreOrEmpty(a.Score),
			string(a.Status),
			a.CreatedAt.Format(time.RFC3339),
			timeOrEmpty(a.AckAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func scoreOrEmpty(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
