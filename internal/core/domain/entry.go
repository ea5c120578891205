package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryCondition flags whether an entry has been settled.
type EntryCondition int16

const (
	ConditionSettled EntryCondition = 1
	ConditionPending EntryCondition = 2
)

// Entry is a single ledger row for a user.
//
// Active entries of a user carry a dense SQN total order consistent with
// non-decreasing entry date (ties broken by insertion order). MonthlyBalance
// and OverallBalance are running balances maintained by the recalculation
// cascade; they are derived but persisted on each row.
type Entry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`
	SubcategoryID  string          `json:"subcategoryID"`      // FK -> Subcategory (required)
	BeneficiaryID  string          `json:"beneficiaryID"`      // FK -> Beneficiary (required)
	ClientID       *string         `json:"clientID,omitempty"` // FK -> Client (optional)
	CostCenterID   *string         `json:"costCenterID,omitempty"`
	BankAccountID  string          `json:"bankAccountID"` // FK -> Financial (bank-account kind)
	EntryDate      time.Time       `json:"entryDate"`     // Calendar date, no time component
	Amount         decimal.Decimal `json:"amount"`        // Positive magnitude, 3 decimal places
	MonthlyBalance decimal.Decimal `json:"monthlyBalance"`
	OverallBalance decimal.Decimal `json:"overallBalance"`
	SQN            int64           `json:"sqn"`
	Condition      EntryCondition  `json:"condition"`
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// SameCycle reports whether two dates fall in the same month/year cycle.
func SameCycle(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// CycleStart truncates a date to the first day of its month cycle.
func CycleStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EntryDetail is an entry joined with its classification labels, used by
// listings so the board can show category/subcategory names alongside rows.
type EntryDetail struct {
	Entry
	SubcategoryName string       `json:"subcategoryName"`
	CategoryName    string       `json:"categoryName"`
	CategoryType    CategoryType `json:"categoryType"`
}

// LedgerRow is the projection of an entry the balance recalculation walks:
// its position, date, magnitude and sign source.
type LedgerRow struct {
	EntryID      string
	EntryDate    time.Time
	Amount       decimal.Decimal
	CategoryType CategoryType
	SQN          int64
}

// SignedAmount applies the category sign to the row's amount.
func (r LedgerRow) SignedAmount() decimal.Decimal {
	if r.CategoryType == CategoryTypeIncome {
		return r.Amount
	}
	return r.Amount.Neg()
}

// BalanceUpdate carries the recomputed position and balances to persist on
// one entry touched by a cascade.
type BalanceUpdate struct {
	EntryID        string
	SQN            int64
	MonthlyBalance decimal.Decimal
	OverallBalance decimal.Decimal
}
