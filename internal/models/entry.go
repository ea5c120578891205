package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the database representation of a ledger row.
// Amounts and balances are DECIMAL(15,3).
type Entry struct {
	EntryID        string          `db:"entry_id"`
	UserID         string          `db:"user_id"`
	SubcategoryID  string          `db:"subcategory_id"`
	BeneficiaryID  string          `db:"beneficiary_id"`
	ClientID       *string         `db:"client_id"`
	CostCenterID   *string         `db:"cost_center_id"`
	BankAccountID  string          `db:"bank_account_id"`
	EntryDate      time.Time       `db:"entry_date"`
	Amount         decimal.Decimal `db:"amount"`
	MonthlyBalance decimal.Decimal `db:"monthly_balance"`
	OverallBalance decimal.Decimal `db:"overall_balance"`
	SQN            int64           `db:"sqn"`
	Condition      int16           `db:"condition"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
