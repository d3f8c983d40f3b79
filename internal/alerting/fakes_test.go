package alerting

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/guardiao60/linkguard/internal/domain"
	"github.com/guardiao60/linkguard/internal/telemetry"
)

// testTelemetry returns the process-wide telemetry provider. promauto
// registers globally, so tests must share a single instance.
var (
	telemetryOnce     sync.Once
	telemetryProvider *telemetry.Provider
)

func testTelemetry() *telemetry.Provider {
	telemetryOnce.Do(func() {
		telemetryProvider = telemetry.NewProvider()
	})
	return telemetryProvider
}

// fakeStore implements every store interface in memory so pipeline and
// materializer behavior can be tested without a database.
type fakeStore struct {
	alerts   []*domain.Alert
	checks   []*domain.LinkCheck
	reports  []*domain.Report
	messages []*domain.Message

	lastFilter domain.AlertFilter
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Create(ctx context.Context, alert *domain.Alert) error {
	alert.ID = f.id()
	alert.Status = domain.AlertStatusNew
	alert.CreatedAt = time.Now()
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	for _, a := range f.alerts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	f.lastFilter = filter
	var out []domain.Alert
	skipped := 0
	for i := len(f.alerts) - 1; i >= 0; i-- {
		a := f.alerts[i]
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.Query != "" && !alertMatchesQuery(a, filter.Query) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, *a)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) Acknowledge(ctx context.Context, id int64) (*domain.Alert, error) {
	alert, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == domain.AlertStatusNew {
		now := time.Now()
		alert.Status = domain.AlertStatusAck
		alert.AckAt = &now
	}
	return alert, nil
}

// alertMatchesQuery mirrors the repository's ILIKE match over
// description and url.
func alertMatchesQuery(a *domain.Alert, q string) bool {
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(a.Description), q) {
		return true
	}
	return a.URL != nil && strings.Contains(strings.ToLower(*a.URL), q)
}

type fakeCheckStore struct{ store *fakeStore }

func (f *fakeCheckStore) Create(ctx context.Context, check *domain.LinkCheck) error {
	check.ID = f.store.id()
	check.CreatedAt = time.Now()
	f.store.checks = append(f.store.checks, check)
	return nil
}

func (f *fakeCheckStore) Recent(ctx context.Context, limit int) ([]domain.LinkCheck, error) {
	out := make([]domain.LinkCheck, 0, limit)
	for i := len(f.store.checks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.store.checks[i])
	}
	return out, nil
}

type fakeReportStore struct{ store *fakeStore }

func (f *fakeReportStore) Create(ctx context.Context, report *domain.Report) error {
	report.ID = f.store.id()
	report.CreatedAt = time.Now()
	f.store.reports = append(f.store.reports, report)
	return nil
}

func (f *fakeReportStore) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	for _, r := range f.store.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeMessageStore struct{ store *fakeStore }

func (f *fakeMessageStore) Create(ctx context.Context, msg *domain.Message) error {
	msg.ID = f.store.id()
	msg.ReceivedAt = time.Now()
	f.store.messages = append(f.store.messages, msg)
	return nil
}

func (f *fakeMessageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	for _, m := range f.store.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMessageStore) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	var out []domain.Message
	for i := len(f.store.messages) - 1; i >= 0; i-- {
		out = append(out, *f.store.messages[i])
	}
	return out, nil
}

func (f *fakeMessageStore) MarkProcessed(ctx context.Context, id int64) error {
	for _, m := range f.store.messages {
		if m.ID == id {
			m.Processed = true
			return nil
		}
	}
	return domain.ErrNotFound
}
