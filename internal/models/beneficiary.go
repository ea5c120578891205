package models

import "time"

// BeneficiaryCategory is the database representation of a beneficiary group.
type BeneficiaryCategory struct {
	BeneficiaryCategoryID string `db:"beneficiary_category_id"`
	UserID                string `db:"user_id"`
	Description           string `db:"description"`
	IsActive              bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Beneficiary is the database representation of a payee/payer label.
type Beneficiary struct {
	BeneficiaryID         string `db:"beneficiary_id"`
	UserID                string `db:"user_id"`
	BeneficiaryCategoryID string `db:"beneficiary_category_id"`
	Name                  string `db:"name"`
	IsActive              bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
