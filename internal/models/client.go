package models

import "time"

// Client is the database representation of a customer label.
type Client struct {
	ClientID    string  `db:"client_id"`
	UserID      string  `db:"user_id"`
	Name        string  `db:"name"`
	City        string  `db:"city"`
	Email       *string `db:"email"`
	Phone       *string `db:"phone"`
	Responsible *string `db:"responsible"`
	IsActive    bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
