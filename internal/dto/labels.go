package dto

import (
	"github.com/invofin/board_backend/internal/core/domain"
)

// --- Categories ---

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=250"`
	Type int16  `json:"type" binding:"required,oneof=1 2"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=250"`
	Type *int16  `json:"type" binding:"omitempty,oneof=1 2"`
}

type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       int16  `json:"type"`
}

func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Type: int16(c.Type)}
}

// --- Subcategories ---

type CreateSubcategoryRequest struct {
	CategoryID string `json:"categoryID" binding:"required,uuid"`
	Name       string `json:"name" binding:"required,max=250"`
}

type UpdateSubcategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=250"`
}

type SubcategoryResponse struct {
	SubcategoryID string `json:"subcategoryID"`
	CategoryID    string `json:"categoryID"`
	Name          string `json:"name"`
}

func ToSubcategoryResponse(s *domain.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{SubcategoryID: s.SubcategoryID, CategoryID: s.CategoryID, Name: s.Name}
}

// --- Beneficiary categories ---

type CreateBeneficiaryCategoryRequest struct {
	Description string `json:"description" binding:"required,max=250"`
}

type BeneficiaryCategoryResponse struct {
	BeneficiaryCategoryID string `json:"beneficiaryCategoryID"`
	Description           string `json:"description"`
}

func ToBeneficiaryCategoryResponse(b *domain.BeneficiaryCategory) BeneficiaryCategoryResponse {
	return BeneficiaryCategoryResponse{
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		Description:           b.Description,
	}
}

// --- Beneficiaries ---

type CreateBeneficiaryRequest struct {
	BeneficiaryCategoryID string `json:"beneficiaryCategoryID" binding:"required,uuid"`
	Name                  string `json:"name" binding:"required,max=250"`
}

type UpdateBeneficiaryRequest struct {
	BeneficiaryCategoryID *string `json:"beneficiaryCategoryID" binding:"omitempty,uuid"`
	Name                  *string `json:"name" binding:"omitempty,max=250"`
}

type BeneficiaryResponse struct {
	BeneficiaryID         string `json:"beneficiaryID"`
	BeneficiaryCategoryID string `json:"beneficiaryCategoryID"`
	Name                  string `json:"name"`
}

func ToBeneficiaryResponse(b *domain.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		BeneficiaryID:         b.BeneficiaryID,
		BeneficiaryCategoryID: b.BeneficiaryCategoryID,
		Name:                  b.Name,
	}
}

// --- Clients ---

type CreateClientRequest struct {
	Name        string  `json:"name" binding:"required,max=250"`
	City        string  `json:"city" binding:"required,max=250"`
	Email       *string `json:"email" binding:"omitempty,email,max=250"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Responsible *string `json:"responsible" binding:"omitempty,max=250"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=250"`
	City        *string `json:"city" binding:"omitempty,max=250"`
	Email       *string `json:"email" binding:"omitempty,email,max=250"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Responsible *string `json:"responsible" binding:"omitempty,max=250"`
}

type ClientResponse struct {
	ClientID    string  `json:"clientID"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Responsible *string `json:"responsible,omitempty"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:    c.ClientID,
		Name:        c.Name,
		City:        c.City,
		Email:       c.Email,
		Phone:       c.Phone,
		Responsible: c.Responsible,
	}
}

// --- Financials ---

// CreateFinancialRequest creates either a cost center (kind=1, costCenter
// required) or a bank account (kind=2, bank fields required).
type CreateFinancialRequest struct {
	Kind        int16   `json:"kind" binding:"required,oneof=1 2"`
	CostCenter  *string `json:"costCenter" binding:"omitempty,max=250"`
	Description *string `json:"description" binding:"omitempty,max=250"`
	BankName    *string `json:"bankName" binding:"omitempty,max=250"`
	BankBranch  *string `json:"bankBranch" binding:"omitempty,max=20"`
	BankAccount *string `json:"bankAccount" binding:"omitempty,max=20"`
}

type UpdateFinancialRequest struct {
	CostCenter  *string `json:"costCenter" binding:"omitempty,max=250"`
	Description *string `json:"description" binding:"omitempty,max=250"`
	BankName    *string `json:"bankName" binding:"omitempty,max=250"`
	BankBranch  *string `json:"bankBranch" binding:"omitempty,max=20"`
	BankAccount *string `json:"bankAccount" binding:"omitempty,max=20"`
}

type FinancialResponse struct {
	FinancialID string  `json:"financialID"`
	Kind        int16   `json:"kind"`
	CostCenter  *string `json:"costCenter,omitempty"`
	Description *string `json:"description,omitempty"`
	BankName    *string `json:"bankName,omitempty"`
	BankBranch  *string `json:"bankBranch,omitempty"`
	BankAccount *string `json:"bankAccount,omitempty"`
}

func ToFinancialResponse(f *domain.Financial) FinancialResponse {
	return FinancialResponse{
		FinancialID: f.FinancialID,
		Kind:        int16(f.Kind),
		CostCenter:  f.CostCenter,
		Description: f.Description,
		BankName:    f.BankName,
		BankBranch:  f.BankBranch,
		BankAccount: f.BankAccount,
	}
}
