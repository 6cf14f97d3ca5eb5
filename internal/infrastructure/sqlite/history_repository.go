package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lborak/cleftmeter/internal/history"
)

const historyColumns = `id, session_guid, action, path, points, created_at`

// historyRepository implements history.Repository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// NewHistoryRepository opens the database at dbPath and returns the
// repository backed by it.
func NewHistoryRepository(dbPath string) (history.Repository, error) {
	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &historyRepository{db: db}, nil
}

// newHistoryRepository wraps an already open database, used by tests.
func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db}
}

var _ history.Repository = (*historyRepository)(nil)

func scanRecord(scanner interface{ Scan(...any) error }) (*HistoryModel, error) {
	var model HistoryModel
	err := scanner.Scan(
		&model.ID, &model.SessionGUID, &model.Action,
		&model.Path, &model.Points, &model.CreatedAt,
	)
	return &model, err
}

// Append persists a record and sets its ID.
func (r *historyRepository) Append(rec *history.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	model := toHistoryModel(rec)

	result, err := r.db.Exec(
		`INSERT INTO history (session_guid, action, path, points, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		model.SessionGUID, model.Action, model.Path, model.Points, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// List retrieves records matching the filter, newest first.
func (r *historyRepository) List(filter history.ListFilter) ([]history.Record, error) {
	query := `SELECT ` + historyColumns + ` FROM history`
	var args []any
	if filter.Action != "" {
		query += ` WHERE action = ?`
		args = append(args, string(filter.Action))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []history.Record
	for rows.Next() {
		model, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, model.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history records: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection.
func (r *historyRepository) Close() error {
	return r.db.Close()
}
