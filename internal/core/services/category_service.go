package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// categoryService manages categories and their subcategories.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// Ensure categoryService implements the portssvc.CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Type:       domain.CategoryType(req.Type),
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx, userID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = domain.CategoryType(*req.Type)
	}
	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID
	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return s.categoryRepo.DeactivateCategory(ctx, userID, categoryID, userID, time.Now().UTC())
}

func (s *categoryService) CreateSubcategory(ctx context.Context, userID string, req dto.CreateSubcategoryRequest) (*domain.Subcategory, error) {
	// The parent category must be an active one owned by the caller.
	if _, err := s.categoryRepo.FindCategoryByID(ctx, userID, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrResolution, req.CategoryID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	subcategory := domain.Subcategory{
		SubcategoryID: uuid.NewString(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveSubcategory(ctx, subcategory); err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (s *categoryService) ListSubcategories(ctx context.Context, userID, categoryID string) ([]domain.Subcategory, error) {
	return s.categoryRepo.ListSubcategories(ctx, userID, categoryID)
}

func (s *categoryService) UpdateSubcategory(ctx context.Context, userID, subcategoryID string, req dto.UpdateSubcategoryRequest) (*domain.Subcategory, error) {
	subcategory, err := s.categoryRepo.FindSubcategoryByID(ctx, userID, subcategoryID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		subcategory.Name = *req.Name
	}
	subcategory.LastUpdatedAt = time.Now().UTC()
	subcategory.LastUpdatedBy = userID
	if err := s.categoryRepo.UpdateSubcategory(ctx, *subcategory); err != nil {
		return nil, err
	}
	return subcategory, nil
}

func (s *categoryService) DeleteSubcategory(ctx context.Context, userID, subcategoryID string) error {
	return s.categoryRepo.DeactivateSubcategory(ctx, userID, subcategoryID, userID, time.Now().UTC())
}
