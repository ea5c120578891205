package repositories

import (
	"context"
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
)

// CategoryRepositoryFacade defines persistence for categories and their
// subcategories.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeactivateCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error

	SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error
	FindSubcategoryByID(ctx context.Context, userID, subcategoryID string) (*domain.Subcategory, error)
	// FindSubcategoryDetail resolves an active subcategory (under an active
	// category owned by the user) together with its category type.
	FindSubcategoryDetail(ctx context.Context, userID, subcategoryID string) (*domain.SubcategoryDetail, error)
	ListSubcategories(ctx context.Context, userID, categoryID string) ([]domain.Subcategory, error)
	UpdateSubcategory(ctx context.Context, subcategory domain.Subcategory) error
	DeactivateSubcategory(ctx context.Context, userID, subcategoryID string, deletedBy string, deletedAt time.Time) error
}

// BeneficiaryRepositoryFacade defines persistence for beneficiaries and their
// grouping categories.
type BeneficiaryRepositoryFacade interface {
	SaveBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error
	ListBeneficiaryCategories(ctx context.Context, userID string) ([]domain.BeneficiaryCategory, error)
	UpdateBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error
	DeactivateBeneficiaryCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error

	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	FindBeneficiaryByID(ctx context.Context, userID, beneficiaryID string) (*domain.Beneficiary, error)
	ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error
	DeactivateBeneficiary(ctx context.Context, userID, beneficiaryID string, deletedBy string, deletedAt time.Time) error
}

// ClientRepositoryFacade defines persistence for client labels.
type ClientRepositoryFacade interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	DeactivateClient(ctx context.Context, userID, clientID string, deletedBy string, deletedAt time.Time) error
}

// FinancialRepositoryFacade defines persistence for cost centers and bank
// accounts.
type FinancialRepositoryFacade interface {
	SaveFinancial(ctx context.Context, financial domain.Financial) error
	// FindFinancialByID resolves an active financial of the expected kind.
	FindFinancialByID(ctx context.Context, userID, financialID string, kind domain.FinancialKind) (*domain.Financial, error)
	ListFinancials(ctx context.Context, userID string, kind domain.FinancialKind) ([]domain.Financial, error)
	UpdateFinancial(ctx context.Context, financial domain.Financial) error
	DeactivateFinancial(ctx context.Context, userID, financialID string, deletedBy string, deletedAt time.Time) error
}
