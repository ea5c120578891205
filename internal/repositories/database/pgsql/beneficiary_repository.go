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

type PgxBeneficiaryRepository struct {
	BaseRepository
}

// newPgxBeneficiaryRepository creates a new repository for beneficiary data.
func newPgxBeneficiaryRepository(pool *pgxpool.Pool) portsrepo.BeneficiaryRepositoryFacade {
	return &PgxBeneficiaryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBeneficiaryRepository implements portsrepo.BeneficiaryRepositoryFacade
var _ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)

const beneficiaryCategoryColumns = `
	beneficiary_category_id, user_id, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

const beneficiaryColumns = `
	beneficiary_id, user_id, beneficiary_category_id, name, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanBeneficiaryCategory(row rowScanner) (models.BeneficiaryCategory, error) {
	var m models.BeneficiaryCategory
	err := row.Scan(
		&m.BeneficiaryCategoryID,
		&m.UserID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func scanBeneficiary(row rowScanner) (models.Beneficiary, error) {
	var m models.Beneficiary
	err := row.Scan(
		&m.BeneficiaryID,
		&m.UserID,
		&m.BeneficiaryCategoryID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// SaveBeneficiaryCategory persists a new beneficiary group.
func (r *PgxBeneficiaryRepository) SaveBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error {
	m := mapping.ToModelBeneficiaryCategory(category)
	query := `
		INSERT INTO beneficiary_categories (
			beneficiary_category_id, user_id, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BeneficiaryCategoryID, m.UserID, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert beneficiary category "+m.BeneficiaryCategoryID, err)
	}
	return nil
}

// ListBeneficiaryCategories retrieves all active beneficiary groups for the user.
func (r *PgxBeneficiaryRepository) ListBeneficiaryCategories(ctx context.Context, userID string) ([]domain.BeneficiaryCategory, error) {
	query := `
		SELECT ` + beneficiaryCategoryColumns + `
		FROM beneficiary_categories
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY description;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query beneficiary categories for user "+userID, err)
	}
	defer rows.Close()

	categories := []domain.BeneficiaryCategory{}
	for rows.Next() {
		m, err := scanBeneficiaryCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan beneficiary category row", err)
		}
		categories = append(categories, mapping.ToDomainBeneficiaryCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating beneficiary category rows", err)
	}
	return categories, nil
}

// UpdateBeneficiaryCategory persists the mutable fields of a beneficiary group.
func (r *PgxBeneficiaryRepository) UpdateBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error {
	m := mapping.ToModelBeneficiaryCategory(category)
	query := `
		UPDATE beneficiary_categories
		SET description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE beneficiary_category_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BeneficiaryCategoryID, m.UserID, m.Description, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update beneficiary category "+m.BeneficiaryCategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateBeneficiaryCategory soft-deletes a beneficiary group.
func (r *PgxBeneficiaryRepository) DeactivateBeneficiaryCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE beneficiary_categories
		SET is_active = FALSE, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE beneficiary_category_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, categoryID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate beneficiary category "+categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBeneficiary persists a new beneficiary.
func (r *PgxBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)
	query := `
		INSERT INTO beneficiaries (
			beneficiary_id, user_id, beneficiary_category_id, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BeneficiaryID, m.UserID, m.BeneficiaryCategoryID, m.Name, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert beneficiary "+m.BeneficiaryID, err)
	}
	return nil
}

// FindBeneficiaryByID retrieves an active beneficiary owned by the user.
func (r *PgxBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, userID, beneficiaryID string) (*domain.Beneficiary, error) {
	query := `
		SELECT ` + beneficiaryColumns + `
		FROM beneficiaries
		WHERE beneficiary_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	m, err := scanBeneficiary(r.Pool.QueryRow(ctx, query, beneficiaryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find beneficiary by ID "+beneficiaryID, err)
	}
	domainBeneficiary := mapping.ToDomainBeneficiary(m)
	return &domainBeneficiary, nil
}

// ListBeneficiaries retrieves all active beneficiaries owned by the user.
func (r *PgxBeneficiaryRepository) ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	query := `
		SELECT ` + beneficiaryColumns + `
		FROM beneficiaries
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query beneficiaries for user "+userID, err)
	}
	defer rows.Close()

	beneficiaries := []domain.Beneficiary{}
	for rows.Next() {
		m, err := scanBeneficiary(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan beneficiary row", err)
		}
		beneficiaries = append(beneficiaries, mapping.ToDomainBeneficiary(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating beneficiary rows", err)
	}
	return beneficiaries, nil
}

// UpdateBeneficiary persists the mutable fields of a beneficiary.
func (r *PgxBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	m := mapping.ToModelBeneficiary(beneficiary)
	query := `
		UPDATE beneficiaries
		SET name = $3, beneficiary_category_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE beneficiary_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BeneficiaryID, m.UserID, m.Name, m.BeneficiaryCategoryID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update beneficiary "+m.BeneficiaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateBeneficiary soft-deletes a beneficiary.
func (r *PgxBeneficiaryRepository) DeactivateBeneficiary(ctx context.Context, userID, beneficiaryID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE beneficiaries
		SET is_active = FALSE, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE beneficiary_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, beneficiaryID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate beneficiary "+beneficiaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
