package sqlite

import (
	"time"

	"github.com/lborak/cleftmeter/internal/history"
)

// HistoryModel represents the database row for the history table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type HistoryModel struct {
	ID          int64
	SessionGUID string
	Action      string
	Path        string
	Points      int
	CreatedAt   int64 // Unix timestamp
}

// toHistoryModel converts a history record to a database model.
func toHistoryModel(r *history.Record) *HistoryModel {
	return &HistoryModel{
		ID:          r.ID,
		SessionGUID: r.SessionGUID,
		Action:      string(r.Action),
		Path:        r.Path,
		Points:      r.Points,
		CreatedAt:   r.CreatedAt.Unix(),
	}
}

// toRecord converts a database model back to a history record.
func (m *HistoryModel) toRecord() history.Record {
	return history.Record{
		ID:          m.ID,
		SessionGUID: m.SessionGUID,
		Action:      history.Action(m.Action),
		Path:        m.Path,
		Points:      m.Points,
		CreatedAt:   time.Unix(m.CreatedAt, 0),
	}
}
