package client

import (
	"context"
	"sync"
	"time"

	"github.com/Asadel-Surveillance/asadel-console/filter"
	"github.com/Asadel-Surveillance/asadel-console/models"
)

const (
	DefaultLogRefresh = 30 * time.Second
	defaultLogRows    = 500
)

// LogReportView is the detection log screen. Unlike the dashboard it never
// picks options on its own: an empty level means "all".
type LogReportView struct {
	client *Client
	poller *Poller
	limit  int

	mu        sync.RWMutex
	rows      []models.DetectionRow
	sel       filter.Selection
	alertType string
	loadedAt  time.Time
}

// NewLogReportView polls every interval once Start is called. limit caps
// how many of the newest detections are held; zero means the default.
func NewLogReportView(c *Client, interval time.Duration, limit int) *LogReportView {
	if interval <= 0 {
		interval = DefaultLogRefresh
	}
	if limit <= 0 {
		limit = defaultLogRows
	}
	v := &LogReportView{client: c, limit: limit}
	v.poller = NewPoller(interval, v.Refresh)
	return v
}

// Start begins periodic refreshes; Stop must be called when the view closes
func (v *LogReportView) Start(ctx context.Context) { v.poller.Start(ctx) }

func (v *LogReportView) Stop() { v.poller.Stop() }

// Err is the outcome of the last poll
func (v *LogReportView) Err() error { return v.poller.Err() }

// Refresh reloads the newest detections, following further pages when the
// server serves fewer rows per page than the view holds
func (v *LogReportView) Refresh(ctx context.Context) error {
	var rows []models.DetectionRow
	for page := 1; len(rows) < v.limit; page++ {
		batch, meta, err := v.client.Detections(ctx, DetectionQuery{Page: page, Limit: v.limit})
		if err != nil {
			return err
		}
		rows = append(rows, batch...)
		if meta == nil || len(batch) == 0 || page >= meta.TotalPages {
			break
		}
	}
	if len(rows) > v.limit {
		rows = rows[:v.limit]
	}
	v.SetRows(rows)
	return nil
}

func (v *LogReportView) SetRows(rows []models.DetectionRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.sel = models.DetectionCascade.Prune(rows, v.sel)
	v.loadedAt = time.Now()
}

func (v *LogReportView) LoadedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loadedAt
}

func (v *LogReportView) Select(level filter.Level, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sel.Select(level, value)
}

func (v *LogReportView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sel.Reset()
	v.alertType = ""
}

// SetAlertType filters on Fire or Smoke; any other value shows both
func (v *LogReportView) SetAlertType(alertType string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alertType = models.NormalizeAlertType(alertType)
}

func (v *LogReportView) Selection() filter.Selection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sel
}

func (v *LogReportView) Options() filter.Options {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return models.DetectionCascade.Options(v.rows, v.sel)
}

// Rows are the held detections matching the selection and alert type, newest first
func (v *LogReportView) Rows() []models.DetectionRow {
	v.mu.RLock()
	defer v.mu.RUnlock()

	matched := models.DetectionCascade.Apply(v.rows, v.sel)
	if v.alertType == "" {
		return matched
	}
	out := matched[:0]
	for _, row := range matched {
		if row.AlertType == v.alertType {
			out = append(out, row)
		}
	}
	return out
}

// Report downloads the server-side report for the current filters
func (v *LogReportView) Report(ctx context.Context, format string) (*Download, error) {
	v.mu.RLock()
	q := DetectionQuery{Selection: v.sel, AlertType: v.alertType}
	v.mu.RUnlock()
	return v.client.DetectionReport(ctx, format, q)
}
