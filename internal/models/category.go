package models

import "time"

// Category is the database representation of an entry category.
// Type: 1=income, 2=expense.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Type       int16  `db:"type"`
	IsActive   bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Subcategory is the database representation of a leaf classification.
type Subcategory struct {
	SubcategoryID string `db:"subcategory_id"`
	CategoryID    string `db:"category_id"`
	Name          string `db:"name"`
	IsActive      bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
