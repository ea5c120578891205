package domain

import "time"

// BeneficiaryCategory groups beneficiaries (e.g. suppliers, staff).
type BeneficiaryCategory struct {
	BeneficiaryCategoryID string `json:"beneficiaryCategoryID"` // Primary Key (UUID)
	UserID                string `json:"userID"`
	Description           string `json:"description"`
	IsActive              bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Beneficiary is the payee/payer an entry can be attributed to.
type Beneficiary struct {
	BeneficiaryID         string `json:"beneficiaryID"` // Primary Key (UUID)
	UserID                string `json:"userID"`
	BeneficiaryCategoryID string `json:"beneficiaryCategoryID"` // FK -> BeneficiaryCategory
	Name                  string `json:"name"`
	IsActive              bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
