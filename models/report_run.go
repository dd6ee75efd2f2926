package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RunSummary wraps Summary for JSONB storage
type RunSummary Summary

// Value implements driver.Valuer for JSONB
func (s RunSummary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *RunSummary) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// RunOptions wraps CompareOptions for JSONB storage
type RunOptions CompareOptions

// Value implements driver.Valuer for JSONB
func (o RunOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for JSONB
func (o *RunOptions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, o)
}

// ReportRun is one persisted comparison run: the options it ran with, the
// summary it produced, and where the annotated document was archived.
type ReportRun struct {
	ID          uuid.UUID  `json:"id"`
	FileName    string     `json:"file_name"`
	Mode        string     `json:"mode"`
	Options     RunOptions `json:"options"`
	Summary     RunSummary `json:"summary"`
	StoragePath *string    `json:"storage_path,omitempty"`
	Digest      *string    `json:"digest,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
