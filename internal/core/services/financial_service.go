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

// financialService manages cost centers and bank accounts.
type financialService struct {
	financialRepo portsrepo.FinancialRepositoryFacade
}

// NewFinancialService creates a new financial service.
func NewFinancialService(financialRepo portsrepo.FinancialRepositoryFacade) portssvc.FinancialSvcFacade {
	return &financialService{financialRepo: financialRepo}
}

// Ensure financialService implements the portssvc.FinancialSvcFacade interface
var _ portssvc.FinancialSvcFacade = (*financialService)(nil)

// CreateFinancial creates a cost center or a bank account. The two variants
// are mutually exclusive: a cost center carries only its name and optional
// description, a bank account carries only the bank fields.
func (s *financialService) CreateFinancial(ctx context.Context, userID string, req dto.CreateFinancialRequest) (*domain.Financial, error) {
	kind := domain.FinancialKind(req.Kind)
	switch kind {
	case domain.FinancialCostCenter:
		if req.CostCenter == nil || *req.CostCenter == "" {
			return nil, fmt.Errorf("%w: cost center name is required", apperrors.ErrValidation)
		}
		if req.BankName != nil || req.BankBranch != nil || req.BankAccount != nil {
			return nil, fmt.Errorf("%w: bank fields are not allowed on a cost center", apperrors.ErrValidation)
		}
	case domain.FinancialBankAccount:
		if req.BankName == nil || req.BankBranch == nil || req.BankAccount == nil {
			return nil, fmt.Errorf("%w: bank name, branch and account are required", apperrors.ErrValidation)
		}
		if req.CostCenter != nil {
			return nil, fmt.Errorf("%w: cost center name is not allowed on a bank account", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	financial := domain.Financial{
		FinancialID: uuid.NewString(),
		UserID:      userID,
		Kind:        kind,
		CostCenter:  req.CostCenter,
		Description: req.Description,
		BankName:    req.BankName,
		BankBranch:  req.BankBranch,
		BankAccount: req.BankAccount,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.financialRepo.SaveFinancial(ctx, financial); err != nil {
		return nil, err
	}
	return &financial, nil
}

func (s *financialService) ListFinancials(ctx context.Context, userID string, kind domain.FinancialKind) ([]domain.Financial, error) {
	return s.financialRepo.ListFinancials(ctx, userID, kind)
}

func (s *financialService) UpdateFinancial(ctx context.Context, userID, financialID string, req dto.UpdateFinancialRequest) (*domain.Financial, error) {
	financial, err := s.findFinancialAnyKind(ctx, userID, financialID)
	if err != nil {
		return nil, err
	}

	switch financial.Kind {
	case domain.FinancialCostCenter:
		if req.BankName != nil || req.BankBranch != nil || req.BankAccount != nil {
			return nil, fmt.Errorf("%w: bank fields are not allowed on a cost center", apperrors.ErrValidation)
		}
		if req.CostCenter != nil {
			financial.CostCenter = req.CostCenter
		}
		if req.Description != nil {
			financial.Description = req.Description
		}
	case domain.FinancialBankAccount:
		if req.CostCenter != nil {
			return nil, fmt.Errorf("%w: cost center name is not allowed on a bank account", apperrors.ErrValidation)
		}
		if req.BankName != nil {
			financial.BankName = req.BankName
		}
		if req.BankBranch != nil {
			financial.BankBranch = req.BankBranch
		}
		if req.BankAccount != nil {
			financial.BankAccount = req.BankAccount
		}
		if req.Description != nil {
			financial.Description = req.Description
		}
	}

	financial.LastUpdatedAt = time.Now().UTC()
	financial.LastUpdatedBy = userID
	if err := s.financialRepo.UpdateFinancial(ctx, *financial); err != nil {
		return nil, err
	}
	return financial, nil
}

func (s *financialService) DeleteFinancial(ctx context.Context, userID, financialID string) error {
	return s.financialRepo.DeactivateFinancial(ctx, userID, financialID, userID, time.Now().UTC())
}

func (s *financialService) findFinancialAnyKind(ctx context.Context, userID, financialID string) (*domain.Financial, error) {
	financial, err := s.financialRepo.FindFinancialByID(ctx, userID, financialID, domain.FinancialCostCenter)
	if err == nil {
		return financial, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return s.financialRepo.FindFinancialByID(ctx, userID, financialID, domain.FinancialBankAccount)
}
