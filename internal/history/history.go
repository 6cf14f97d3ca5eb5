// Package history defines the audit trail of save and load operations.
// Every successful save or load appends a record, giving clinicians a way to
// trace which points files a session touched and when.
package history

import (
	"fmt"
	"time"
)

// Action identifies what a history record describes.
type Action string

const (
	ActionSave Action = "save"
	ActionLoad Action = "load"
)

// Record is one save or load event.
type Record struct {
	// ID is the database row ID, 0 until persisted.
	ID int64

	// SessionGUID identifies the annotation session that performed the action.
	SessionGUID string

	Action Action

	// Path is the points file that was read or written.
	Path string

	// Points is the number of defined landmarks at the time of the action.
	Points int

	CreatedAt time.Time
}

// Validate checks that the record is complete enough to persist.
func (r Record) Validate() error {
	if r.SessionGUID == "" {
		return fmt.Errorf("history record requires a session guid")
	}
	if r.Action != ActionSave && r.Action != ActionLoad {
		return fmt.Errorf("history record has unknown action %q", r.Action)
	}
	if r.Path == "" {
		return fmt.Errorf("history record requires a path")
	}
	return nil
}

// ListFilter provides filtering options for listing history records.
type ListFilter struct {
	// Action filters records by action. If empty, all actions are included.
	Action Action

	// Limit restricts the number of records returned. If 0, no limit applies.
	Limit int
}

// Repository defines the persistence interface for history records.
type Repository interface {
	// Append persists a record and sets its ID.
	Append(rec *Record) error

	// List retrieves records matching the filter, newest first.
	List(filter ListFilter) ([]Record, error)

	// Close releases any resources held by the repository.
	Close() error
}
