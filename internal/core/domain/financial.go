package domain

import "time"

// FinancialKind distinguishes the two mutually exclusive variants of a
// financial reference: a cost center or a bank account.
type FinancialKind int16

const (
	FinancialCostCenter  FinancialKind = 1
	FinancialBankAccount FinancialKind = 2
)

// Financial is either a cost center or a bank account an entry posts against.
// CostCenter is set for the cost-center variant; BankName/BankBranch/
// BankAccount are set for the bank-account variant.
type Financial struct {
	FinancialID string        `json:"financialID"` // Primary Key (UUID)
	UserID      string        `json:"userID"`
	Kind        FinancialKind `json:"kind"`
	CostCenter  *string       `json:"costCenter,omitempty"`
	Description *string       `json:"description,omitempty"`
	BankName    *string       `json:"bankName,omitempty"`
	BankBranch  *string       `json:"bankBranch,omitempty"`
	BankAccount *string       `json:"bankAccount,omitempty"`
	IsActive    bool          `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
