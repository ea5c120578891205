package pgsql

import (
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	beneficiaryRepo := newPgxBeneficiaryRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	financialRepo := newPgxFinancialRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	analyticRepo := newPgxAnalyticRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		CategoryRepo:    categoryRepo,
		BeneficiaryRepo: beneficiaryRepo,
		ClientRepo:      clientRepo,
		FinancialRepo:   financialRepo,
		EntryRepo:       entryRepo,
		AnalyticRepo:    analyticRepo,
	}
}
