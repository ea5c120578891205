package services

import (
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
)

// NewServiceProvider creates the service container with properly initialized
// dependencies.
func NewServiceProvider(repos *portsrepo.RepositoryProvider, pageSize int) *portssvc.ServiceProvider {
	return &portssvc.ServiceProvider{
		UserSvc:        NewUserService(repos.UserRepo),
		CategorySvc:    NewCategoryService(repos.CategoryRepo),
		BeneficiarySvc: NewBeneficiaryService(repos.BeneficiaryRepo),
		ClientSvc:      NewClientService(repos.ClientRepo),
		FinancialSvc:   NewFinancialService(repos.FinancialRepo),
		LedgerSvc:      NewLedgerService(repos, pageSize),
	}
}
