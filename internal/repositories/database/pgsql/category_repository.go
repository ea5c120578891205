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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category and
// subcategory data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `
	category_id, user_id, name, type, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

const subcategoryColumns = `
	subcategory_id, category_id, name, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanCategory(row rowScanner) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Type,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

func scanSubcategory(row rowScanner) (models.Subcategory, error) {
	var m models.Subcategory
	err := row.Scan(
		&m.SubcategoryID,
		&m.CategoryID,
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

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (
			category_id, user_id, name, type, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.UserID, m.Name, m.Type, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert category "+m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves an active category owned by the user.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}
	domainCategory := mapping.ToDomainCategory(m)
	return &domainCategory, nil
}

// ListCategories retrieves all active categories owned by the user.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories for user "+userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return categories, nil
}

// UpdateCategory persists the mutable fields of a category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $3, type = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.UserID, m.Name, m.Type, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+m.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCategory soft-deletes a category.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE category_id = $1 AND user_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, categoryID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate category "+categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveSubcategory persists a new subcategory.
func (r *PgxCategoryRepository) SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	m := mapping.ToModelSubcategory(subcategory)
	query := `
		INSERT INTO subcategories (
			subcategory_id, category_id, name, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SubcategoryID, m.CategoryID, m.Name, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert subcategory "+m.SubcategoryID, err)
	}
	return nil
}

// FindSubcategoryByID retrieves an active subcategory whose category is owned
// by the user.
func (r *PgxCategoryRepository) FindSubcategoryByID(ctx context.Context, userID, subcategoryID string) (*domain.Subcategory, error) {
	query := `
		SELECT s.subcategory_id, s.category_id, s.name, s.is_active,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by, s.deleted_at
		FROM subcategories s
		JOIN categories c ON c.category_id = s.category_id
		WHERE s.subcategory_id = $1 AND c.user_id = $2
		  AND s.is_active = TRUE AND c.is_active = TRUE;
	`
	m, err := scanSubcategory(r.Pool.QueryRow(ctx, query, subcategoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find subcategory by ID "+subcategoryID, err)
	}
	domainSubcategory := mapping.ToDomainSubcategory(m)
	return &domainSubcategory, nil
}

// FindSubcategoryDetail resolves an active subcategory together with its
// category name and type.
func (r *PgxCategoryRepository) FindSubcategoryDetail(ctx context.Context, userID, subcategoryID string) (*domain.SubcategoryDetail, error) {
	query := `
		SELECT s.subcategory_id, s.category_id, s.name, s.is_active,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by, s.deleted_at,
		       c.name, c.type
		FROM subcategories s
		JOIN categories c ON c.category_id = s.category_id
		WHERE s.subcategory_id = $1 AND c.user_id = $2
		  AND s.is_active = TRUE AND c.is_active = TRUE;
	`
	var m models.Subcategory
	var detail domain.SubcategoryDetail
	var categoryType int16
	err := r.Pool.QueryRow(ctx, query, subcategoryID, userID).Scan(
		&m.SubcategoryID,
		&m.CategoryID,
		&m.Name,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&detail.CategoryName,
		&categoryType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find subcategory detail "+subcategoryID, err)
	}
	detail.Subcategory = mapping.ToDomainSubcategory(m)
	detail.CategoryType = domain.CategoryType(categoryType)
	return &detail, nil
}

// ListSubcategories retrieves all active subcategories of a category owned by
// the user.
func (r *PgxCategoryRepository) ListSubcategories(ctx context.Context, userID, categoryID string) ([]domain.Subcategory, error) {
	query := `
		SELECT s.subcategory_id, s.category_id, s.name, s.is_active,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by, s.deleted_at
		FROM subcategories s
		JOIN categories c ON c.category_id = s.category_id
		WHERE s.category_id = $1 AND c.user_id = $2
		  AND s.is_active = TRUE AND c.is_active = TRUE
		ORDER BY s.name;
	`
	rows, err := r.Pool.Query(ctx, query, categoryID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query subcategories for category "+categoryID, err)
	}
	defer rows.Close()

	subcategories := []domain.Subcategory{}
	for rows.Next() {
		m, err := scanSubcategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan subcategory row", err)
		}
		subcategories = append(subcategories, mapping.ToDomainSubcategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating subcategory rows", err)
	}
	return subcategories, nil
}

// UpdateSubcategory persists the mutable fields of a subcategory.
func (r *PgxCategoryRepository) UpdateSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	m := mapping.ToModelSubcategory(subcategory)
	query := `
		UPDATE subcategories
		SET name = $2, category_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE subcategory_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SubcategoryID, m.Name, m.CategoryID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update subcategory "+m.SubcategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateSubcategory soft-deletes a subcategory owned by the user.
func (r *PgxCategoryRepository) DeactivateSubcategory(ctx context.Context, userID, subcategoryID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE subcategories s
		SET is_active = FALSE, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		FROM categories c
		WHERE s.subcategory_id = $1 AND c.category_id = s.category_id
		  AND c.user_id = $2 AND s.is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, subcategoryID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate subcategory "+subcategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
