package mapping

import (
	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/models"
)

func ToModelCategory(c domain.Category) models.Category {
	return models.Category{
		CategoryID:  c.CategoryID,
		UserID:      c.UserID,
		Name:        c.Name,
		Type:        int16(c.Type),
		IsActive:    c.IsActive,
		AuditFields: ToModelAuditFields(c.AuditFields),
		DeletedAt:   c.DeletedAt,
	}
}

func ToDomainCategory(c models.Category) domain.Category {
	return domain.Category{
		CategoryID:  c.CategoryID,
		UserID:      c.UserID,
		Name:        c.Name,
		Type:        domain.CategoryType(c.Type),
		IsActive:    c.IsActive,
		AuditFields: ToDomainAuditFields(c.AuditFields),
		DeletedAt:   c.DeletedAt,
	}
}

func ToModelSubcategory(s domain.Subcategory) models.Subcategory {
	return models.Subcategory{
		SubcategoryID: s.SubcategoryID,
		CategoryID:    s.CategoryID,
		Name:          s.Name,
		IsActive:      s.IsActive,
		AuditFields:   ToModelAuditFields(s.AuditFields),
		DeletedAt:     s.DeletedAt,
	}
}

func ToDomainSubcategory(s models.Subcategory) domain.Subcategory {
	return domain.Subcategory{
		SubcategoryID: s.SubcategoryID,
		CategoryID:    s.CategoryID,
		Name:          s.Name,
		IsActive:      s.IsActive,
		AuditFields:   ToDomainAuditFields(s.AuditFields),
		DeletedAt:     s.DeletedAt,
	}
}

func ToModelBeneficiaryCategory(b domain.BeneficiaryCategory) models.BeneficiaryCategory {
	return models.BeneficiaryCategory{
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		UserID:                b.UserID,
		Description:           b.Description,
		IsActive:              b.IsActive,
		AuditFields:           ToModelAuditFields(b.AuditFields),
		DeletedAt:             b.DeletedAt,
	}
}

func ToDomainBeneficiaryCategory(b models.BeneficiaryCategory) domain.BeneficiaryCategory {
	return domain.BeneficiaryCategory{
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		UserID:                b.UserID,
		Description:           b.Description,
		IsActive:              b.IsActive,
		AuditFields:           ToDomainAuditFields(b.AuditFields),
		DeletedAt:             b.DeletedAt,
	}
}

func ToModelBeneficiary(b domain.Beneficiary) models.Beneficiary {
	return models.Beneficiary{
		BeneficiaryID:         b.BeneficiaryID,
		UserID:                b.UserID,
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		Name:                  b.Name,
		IsActive:              b.IsActive,
		AuditFields:           ToModelAuditFields(b.AuditFields),
		DeletedAt:             b.DeletedAt,
	}
}

func ToDomainBeneficiary(b models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID:         b.BeneficiaryID,
		UserID:                b.UserID,
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		Name:                  b.Name,
		IsActive:              b.IsActive,
		AuditFields:           ToDomainAuditFields(b.AuditFields),
		DeletedAt:             b.DeletedAt,
	}
}

func ToModelClient(c domain.Client) models.Client {
	return models.Client{
		ClientID:    c.ClientID,
		UserID:      c.UserID,
		Name:        c.Name,
		City:        c.City,
		Email:       c.Email,
		Phone:       c.Phone,
		Responsible: c.Responsible,
		IsActive:    c.IsActive,
		AuditFields: ToModelAuditFields(c.AuditFields),
		DeletedAt:   c.DeletedAt,
	}
}

func ToDomainClient(c models.Client) domain.Client {
	return domain.Client{
		ClientID:    c.ClientID,
		UserID:      c.UserID,
		Name:        c.Name,
		City:        c.City,
		Email:       c.Email,
		Phone:       c.Phone,
		Responsible: c.Responsible,
		IsActive:    c.IsActive,
		AuditFields: ToDomainAuditFields(c.AuditFields),
		DeletedAt:   c.DeletedAt,
	}
}

func ToModelFinancial(f domain.Financial) models.Financial {
	return models.Financial{
		FinancialID: f.FinancialID,
		UserID:      f.UserID,
		Kind:        int16(f.Kind),
		CostCenter:  f.CostCenter,
		Description: f.Description,
		BankName:    f.BankName,
		BankBranch:  f.BankBranch,
		BankAccount: f.BankAccount,
		IsActive:    f.IsActive,
		AuditFields: ToModelAuditFields(f.AuditFields),
		DeletedAt:   f.DeletedAt,
	}
}

func ToDomainFinancial(f models.Financial) domain.Financial {
	return domain.Financial{
		FinancialID: f.FinancialID,
		UserID:      f.UserID,
		Kind:        domain.FinancialKind(f.Kind),
		CostCenter:  f.CostCenter,
		Description: f.Description,
		BankName:    f.BankName,
		BankBranch:  f.BankBranch,
		BankAccount: f.BankAccount,
		IsActive:    f.IsActive,
		AuditFields: ToDomainAuditFields(f.AuditFields),
		DeletedAt:   f.DeletedAt,
	}
}
