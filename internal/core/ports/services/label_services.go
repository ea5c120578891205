package services

import (
	"context"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/dto"
)

// CategorySvcFacade manages categories and subcategories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	CreateSubcategory(ctx context.Context, userID string, req dto.CreateSubcategoryRequest) (*domain.Subcategory, error)
	ListSubcategories(ctx context.Context, userID, categoryID string) ([]domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, userID, subcategoryID string, req dto.UpdateSubcategoryRequest) (*domain.Subcategory, error)
	DeleteSubcategory(ctx context.Context, userID, subcategoryID string) error
}

// BeneficiarySvcFacade manages beneficiaries and their grouping categories.
type BeneficiarySvcFacade interface {
	CreateBeneficiaryCategory(ctx context.Context, userID string, req dto.CreateBeneficiaryCategoryRequest) (*domain.BeneficiaryCategory, error)
	ListBeneficiaryCategories(ctx context.Context, userID string) ([]domain.BeneficiaryCategory, error)
	DeleteBeneficiaryCategory(ctx context.Context, userID, categoryID string) error

	CreateBeneficiary(ctx context.Context, userID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, userID, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error)
	DeleteBeneficiary(ctx context.Context, userID, beneficiaryID string) error
}

// ClientSvcFacade manages client labels.
type ClientSvcFacade interface {
	CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error)
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, userID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// FinancialSvcFacade manages cost centers and bank accounts.
type FinancialSvcFacade interface {
	CreateFinancial(ctx context.Context, userID string, req dto.CreateFinancialRequest) (*domain.Financial, error)
	ListFinancials(ctx context.Context, userID string, kind domain.FinancialKind) ([]domain.Financial, error)
	UpdateFinancial(ctx context.Context, userID, financialID string, req dto.UpdateFinancialRequest) (*domain.Financial, error)
	DeleteFinancial(ctx context.Context, userID, financialID string) error
}
