package domain

import (
	"encoding/json"
	"time"
)

// MonthlyReport holds the aggregates of one month cycle. Values are
// string-encoded decimals with three decimal places so that rebuilding an
// unchanged cycle produces byte-identical JSON.
type MonthlyReport struct {
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// AnalyticReport is the serialized payload of an analytic snapshot.
type AnalyticReport struct {
	Monthly MonthlyReport `json:"monthly"`
	Overall string        `json:"overall"`
}

// Marshal serializes the report to its canonical JSON form.
func (r AnalyticReport) Marshal() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AnalyticSnapshot is the cached aggregate for one (user, month cycle).
// Snapshots are derived from entries and always re-derivable; they are
// deactivated, never deleted, when a cycle no longer has entries.
type AnalyticSnapshot struct {
	AnalyticID string    `json:"analyticID"` // Primary Key (UUID)
	UserID     string    `json:"userID"`
	Cycle      time.Time `json:"cycle"`  // First day of the month
	Report     string    `json:"report"` // Canonical JSON (AnalyticReport)
	IsActive   bool      `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ParseReport decodes the snapshot's JSON payload.
func (s *AnalyticSnapshot) ParseReport() (AnalyticReport, error) {
	var r AnalyticReport
	err := json.Unmarshal([]byte(s.Report), &r)
	return r, err
}
