package models

import "time"

// AnalyticSnapshot is the database representation of a month-cycle aggregate.
type AnalyticSnapshot struct {
	AnalyticID string    `db:"analytic_id"`
	UserID     string    `db:"user_id"`
	Cycle      time.Time `db:"cycle"`
	Report     string    `db:"report"`
	IsActive   bool      `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
