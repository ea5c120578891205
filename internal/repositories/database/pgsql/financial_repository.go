package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	"github.com/invofin/board_backend/internal/models"
	"github.com/invofin/board_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFinancialRepository struct {
	BaseRepository
}

// newPgxFinancialRepository creates a new repository for cost center and bank
// account data.
func newPgxFinancialRepository(pool *pgxpool.Pool) portsrepo.FinancialRepositoryFacade {
	return &PgxFinancialRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFinancialRepository implements portsrepo.FinancialRepositoryFacade
var _ portsrepo.FinancialRepositoryFacade = (*PgxFinancialRepository)(nil)

const financialColumns = `
	financial_id, user_id, kind, cost_center, description, bank_name, bank_branch, bank_account, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanFinancial(row rowScanner) (models.Financial, error) {
	var m models.Financial
	err := row.Scan(
		&m.FinancialID,
		&m.UserID,
		&m.Kind,
		&m.CostCenter,
		&m.Description,
		&m.BankName,
		&m.BankBranch,
		&m.BankAccount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveFinancial persists a new cost center or bank account.
func (r *PgxFinancialRepository) SaveFinancial(ctx context.Context, financial domain.Financial) error {
	m := mapping.ToModelFinancial(financial)
	query := `
		INSERT INTO financials (
			financial_id, user_id, kind, cost_center, description, bank_name, bank_branch, bank_account, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FinancialID, m.UserID, m.Kind, m.CostCenter, m.Description,
		m.BankName, m.BankBranch, m.BankAccount, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert financial "+m.FinancialID, err)
	}
	return nil
}

// FindFinancialByID resolves an active financial of the expected kind.
func (r *PgxFinancialRepository) FindFinancialByID(ctx context.Context, userID, financialID string, kind domain.FinancialKind) (*domain.Financial, error) {
	query := `
		SELECT ` + financialColumns + `
		FROM financials
		WHERE financial_id = $1 AND user_id = $2 AND kind = $3 AND is_active = TRUE;
	`
	m, err := scanFinancial(r.Pool.QueryRow(ctx, query, financialID, userID, int16(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find financial by ID "+financialID, err)
	}
	domainFinancial := mapping.ToDomainFinancial(m)
	return &domainFinancial, nil
}

// ListFinancials retrieves all active financials of a kind owned by the user.
func (r *PgxFinancialRepository) ListFinancials(ctx context.Context, userID string, kind domain.FinancialKind) ([]domain.Financial, error) {
	query := `
		SELECT ` + financialColumns + `
		FROM financials
		WHERE user_id = $1 AND kind = $2 AND is_active = TRUE
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, int16(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query financials for user "+userID, err)
	}
	defer rows.Close()

	financials := []domain.Financial{}
	for rows.Next() {
		m, err := scanFinancial(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan financial row", err)
		}
		financials = append(financials, mapping.ToDomainFinancial(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating financial rows", err)
	}
	return financials, nil
}

// UpdateFinancial persists the mutable fields of a financial.
func (r *PgxFinancialRepository) UpdateFinancial(ctx context.Context, financial domain.Financial) error {
	m := mapping.ToModelFinancial(financial)
	query := `
		UPDATE financials
		SET cost_center = $3, description = $4, bank_name = $5, bank_branch = $6, bank_account = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE financial_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FinancialID, m.UserID, m.CostCenter, m.Description,
		m.BankName, m.BankBranch, m.BankAccount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update financial "+m.FinancialID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateFinancial soft-deletes a financial.
func (r *PgxFinancialRepository) DeactivateFinancial(ctx context.Context, userID, financialID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE financials
		SET is_active = FALSE, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE financial_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, financialID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate financial "+financialID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
