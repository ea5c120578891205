package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// beneficiaryService manages beneficiaries and their grouping categories.
type beneficiaryService struct {
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
}

// NewBeneficiaryService creates a new beneficiary service.
func NewBeneficiaryService(beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade) portssvc.BeneficiarySvcFacade {
	return &beneficiaryService{beneficiaryRepo: beneficiaryRepo}
}

// Ensure beneficiaryService implements the portssvc.BeneficiarySvcFacade interface
var _ portssvc.BeneficiarySvcFacade = (*beneficiaryService)(nil)

func (s *beneficiaryService) CreateBeneficiaryCategory(ctx context.Context, userID string, req dto.CreateBeneficiaryCategoryRequest) (*domain.BeneficiaryCategory, error) {
	now := time.Now().UTC()
	category := domain.BeneficiaryCategory{
		BeneficiaryCategoryID: uuid.NewString(),
		UserID:                userID,
		Description:           req.Description,
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.beneficiaryRepo.SaveBeneficiaryCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *beneficiaryService) ListBeneficiaryCategories(ctx context.Context, userID string) ([]domain.BeneficiaryCategory, error) {
	return s.beneficiaryRepo.ListBeneficiaryCategories(ctx, userID)
}

func (s *beneficiaryService) DeleteBeneficiaryCategory(ctx context.Context, userID, categoryID string) error {
	return s.beneficiaryRepo.DeactivateBeneficiaryCategory(ctx, userID, categoryID, userID, time.Now().UTC())
}

func (s *beneficiaryService) CreateBeneficiary(ctx context.Context, userID string, req dto.CreateBeneficiaryRequest) (*domain.Beneficiary, error) {
	// The grouping category must be an active one owned by the caller.
	if err := s.checkBeneficiaryCategory(ctx, userID, req.BeneficiaryCategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	beneficiary := domain.Beneficiary{
		BeneficiaryID:         uuid.NewString(),
		UserID:                userID,
		BeneficiaryCategoryID: req.BeneficiaryCategoryID,
		Name:                  req.Name,
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (s *beneficiaryService) ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	return s.beneficiaryRepo.ListBeneficiaries(ctx, userID)
}

func (s *beneficiaryService) UpdateBeneficiary(ctx context.Context, userID, beneficiaryID string, req dto.UpdateBeneficiaryRequest) (*domain.Beneficiary, error) {
	beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, userID, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if req.BeneficiaryCategoryID != nil {
		if err := s.checkBeneficiaryCategory(ctx, userID, *req.BeneficiaryCategoryID); err != nil {
			return nil, err
		}
		beneficiary.BeneficiaryCategoryID = *req.BeneficiaryCategoryID
	}
	if req.Name != nil {
		beneficiary.Name = *req.Name
	}
	beneficiary.LastUpdatedAt = time.Now().UTC()
	beneficiary.LastUpdatedBy = userID
	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, *beneficiary); err != nil {
		return nil, err
	}
	return beneficiary, nil
}

func (s *beneficiaryService) DeleteBeneficiary(ctx context.Context, userID, beneficiaryID string) error {
	return s.beneficiaryRepo.DeactivateBeneficiary(ctx, userID, beneficiaryID, userID, time.Now().UTC())
}

func (s *beneficiaryService) checkBeneficiaryCategory(ctx context.Context, userID, categoryID string) error {
	categories, err := s.beneficiaryRepo.ListBeneficiaryCategories(ctx, userID)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.BeneficiaryCategoryID == categoryID {
			return nil
		}
	}
	return fmt.Errorf("%w: beneficiary category %s", apperrors.ErrResolution, categoryID)
}
