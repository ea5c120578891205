package mapping

import (
	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/models"
)

// ToModelEntry converts a domain entry to its database model.
func ToModelEntry(e domain.Entry) models.Entry {
	return models.Entry{
		EntryID:        e.EntryID,
		UserID:         e.UserID,
		SubcategoryID:  e.SubcategoryID,
		BeneficiaryID:  e.BeneficiaryID,
		ClientID:       e.ClientID,
		CostCenterID:   e.CostCenterID,
		BankAccountID:  e.BankAccountID,
		EntryDate:      e.EntryDate,
		Amount:         e.Amount,
		MonthlyBalance: e.MonthlyBalance,
		OverallBalance: e.OverallBalance,
		SQN:            e.SQN,
		Condition:      int16(e.Condition),
		Description:    e.Description,
		IsActive:       e.IsActive,
		AuditFields:    ToModelAuditFields(e.AuditFields),
		DeletedAt:      e.DeletedAt,
	}
}

// ToDomainEntry converts a database entry model to its domain form.
func ToDomainEntry(e models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:        e.EntryID,
		UserID:         e.UserID,
		SubcategoryID:  e.SubcategoryID,
		BeneficiaryID:  e.BeneficiaryID,
		ClientID:       e.ClientID,
		CostCenterID:   e.CostCenterID,
		BankAccountID:  e.BankAccountID,
		EntryDate:      e.EntryDate,
		Amount:         e.Amount,
		MonthlyBalance: e.MonthlyBalance,
		OverallBalance: e.OverallBalance,
		SQN:            e.SQN,
		Condition:      domain.EntryCondition(e.Condition),
		Description:    e.Description,
		IsActive:       e.IsActive,
		AuditFields:    ToDomainAuditFields(e.AuditFields),
		DeletedAt:      e.DeletedAt,
	}
}
