package models

import "time"

// Financial is the database representation of a cost center or bank account.
// Kind: 1=cost center, 2=bank account.
type Financial struct {
	FinancialID string  `db:"financial_id"`
	UserID      string  `db:"user_id"`
	Kind        int16   `db:"kind"`
	CostCenter  *string `db:"cost_center"`
	Description *string `db:"description"`
	BankName    *string `db:"bank_name"`
	BankBranch  *string `db:"bank_branch"`
	BankAccount *string `db:"bank_account"`
	IsActive    bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
