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
	"github.com/shopspring/decimal"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, user_id, subcategory_id, beneficiary_id, client_id, cost_center_id,
	bank_account_id, entry_date, amount, monthly_balance, overall_balance, sqn,
	condition, description, is_active, created_at, created_by, last_updated_at,
	last_updated_by, deleted_at`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.SubcategoryID,
		&m.BeneficiaryID,
		&m.ClientID,
		&m.CostCenterID,
		&m.BankAccountID,
		&m.EntryDate,
		&m.Amount,
		&m.MonthlyBalance,
		&m.OverallBalance,
		&m.SQN,
		&m.Condition,
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

func scanEntryDetail(row rowScanner) (domain.EntryDetail, error) {
	var m models.Entry
	var detail domain.EntryDetail
	var categoryType int16
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.SubcategoryID,
		&m.BeneficiaryID,
		&m.ClientID,
		&m.CostCenterID,
		&m.BankAccountID,
		&m.EntryDate,
		&m.Amount,
		&m.MonthlyBalance,
		&m.OverallBalance,
		&m.SQN,
		&m.Condition,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&detail.SubcategoryName,
		&detail.CategoryName,
		&categoryType,
	)
	if err != nil {
		return domain.EntryDetail{}, err
	}
	detail.Entry = mapping.ToDomainEntry(m)
	detail.CategoryType = domain.CategoryType(categoryType)
	return detail, nil
}

// FindEntryByID retrieves a single active entry by its identifier.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE entry_id = $1 AND is_active = TRUE;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// FindEntryDetailByID retrieves an active entry joined with its classification labels.
func (r *PgxEntryRepository) FindEntryDetailByID(ctx context.Context, entryID string) (*domain.EntryDetail, error) {
	query := `
		SELECT e.entry_id, e.user_id, e.subcategory_id, e.beneficiary_id, e.client_id, e.cost_center_id,
		       e.bank_account_id, e.entry_date, e.amount, e.monthly_balance, e.overall_balance, e.sqn,
		       e.condition, e.description, e.is_active, e.created_at, e.created_by, e.last_updated_at,
		       e.last_updated_by, e.deleted_at,
		       s.name, c.name, c.type
		FROM entries e
		JOIN subcategories s ON s.subcategory_id = e.subcategory_id
		JOIN categories c ON c.category_id = s.category_id
		WHERE e.entry_id = $1 AND e.is_active = TRUE;
	`
	detail, err := scanEntryDetail(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry detail by ID "+entryID, err)
	}
	return &detail, nil
}

// ListEntriesByCycle retrieves one page of a user's active entries for a month
// cycle ordered by SQN descending, plus the total row count for that cycle.
func (r *PgxEntryRepository) ListEntriesByCycle(ctx context.Context, userID string, cycle time.Time, limit, offset int) ([]domain.EntryDetail, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM entries
		WHERE user_id = $1 AND is_active = TRUE
		  AND entry_date >= $2::date AND entry_date < ($2::date + INTERVAL '1 month');
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, userID, cycle).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count entries for user "+userID, err)
	}

	query := `
		SELECT e.entry_id, e.user_id, e.subcategory_id, e.beneficiary_id, e.client_id, e.cost_center_id,
		       e.bank_account_id, e.entry_date, e.amount, e.monthly_balance, e.overall_balance, e.sqn,
		       e.condition, e.description, e.is_active, e.created_at, e.created_by, e.last_updated_at,
		       e.last_updated_by, e.deleted_at,
		       s.name, c.name, c.type
		FROM entries e
		JOIN subcategories s ON s.subcategory_id = e.subcategory_id
		JOIN categories c ON c.category_id = s.category_id
		WHERE e.user_id = $1 AND e.is_active = TRUE
		  AND e.entry_date >= $2::date AND e.entry_date < ($2::date + INTERVAL '1 month')
		ORDER BY e.sqn DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, cycle, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query entries for user "+userID, err)
	}
	defer rows.Close()

	details := []domain.EntryDetail{}
	for rows.Next() {
		detail, err := scanEntryDetail(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan entry row for user "+userID, err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating entry rows for user "+userID, err)
	}
	return details, total, nil
}

// ListAllEntriesByCycle retrieves all of a user's active entries for a month
// cycle ordered by SQN ascending.
func (r *PgxEntryRepository) ListAllEntriesByCycle(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error) {
	query := `
		SELECT e.entry_id, e.user_id, e.subcategory_id, e.beneficiary_id, e.client_id, e.cost_center_id,
		       e.bank_account_id, e.entry_date, e.amount, e.monthly_balance, e.overall_balance, e.sqn,
		       e.condition, e.description, e.is_active, e.created_at, e.created_by, e.last_updated_at,
		       e.last_updated_by, e.deleted_at,
		       s.name, c.name, c.type
		FROM entries e
		JOIN subcategories s ON s.subcategory_id = e.subcategory_id
		JOIN categories c ON c.category_id = s.category_id
		WHERE e.user_id = $1 AND e.is_active = TRUE
		  AND e.entry_date >= $2::date AND e.entry_date < ($2::date + INTERVAL '1 month')
		ORDER BY e.sqn ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, cycle)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cycle entries for user "+userID, err)
	}
	defer rows.Close()

	details := []domain.EntryDetail{}
	for rows.Next() {
		detail, err := scanEntryDetail(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cycle entry row for user "+userID, err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cycle entry rows for user "+userID, err)
	}
	return details, nil
}

// FindLastEntryOnOrBefore finds the active entry with the greatest SQN whose
// entry date is <= the given date, optionally excluding one entry. The row is
// locked so concurrent mutations for the same user serialize here.
func (r *PgxEntryRepository) FindLastEntryOnOrBefore(ctx context.Context, tx pgx.Tx, userID string, date time.Time, excludeEntryID *string) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1 AND is_active = TRUE AND entry_date <= $2
		  AND ($3::uuid IS NULL OR entry_id <> $3)
		ORDER BY sqn DESC
		LIMIT 1
		FOR UPDATE;
	`
	m, err := scanEntry(tx.QueryRow(ctx, query, userID, date, excludeEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find preceding entry for user "+userID, err)
	}
	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// FindLastEntryBelowSQN finds the active entry with the greatest SQN strictly
// below the given SQN, with the row locked.
func (r *PgxEntryRepository) FindLastEntryBelowSQN(ctx context.Context, tx pgx.Tx, userID string, sqn int64) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1 AND is_active = TRUE AND sqn < $2
		ORDER BY sqn DESC
		LIMIT 1
		FOR UPDATE;
	`
	m, err := scanEntry(tx.QueryRow(ctx, query, userID, sqn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry below sqn for user "+userID, err)
	}
	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}

// InsertEntry persists a new entry row within the given transaction.
func (r *PgxEntryRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (
			entry_id, user_id, subcategory_id, beneficiary_id, client_id, cost_center_id,
			bank_account_id, entry_date, amount, monthly_balance, overall_balance, sqn,
			condition, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.SubcategoryID,
		m.BeneficiaryID,
		m.ClientID,
		m.CostCenterID,
		m.BankAccountID,
		m.EntryDate,
		m.Amount,
		m.MonthlyBalance,
		m.OverallBalance,
		m.SQN,
		m.Condition,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

// UpdateEntry persists all mutable fields of an existing entry row.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries
		SET subcategory_id = $2, beneficiary_id = $3, client_id = $4, cost_center_id = $5,
		    bank_account_id = $6, entry_date = $7, amount = $8, monthly_balance = $9,
		    overall_balance = $10, sqn = $11, condition = $12, description = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE entry_id = $1 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.SubcategoryID,
		m.BeneficiaryID,
		m.ClientID,
		m.CostCenterID,
		m.BankAccountID,
		m.EntryDate,
		m.Amount,
		m.MonthlyBalance,
		m.OverallBalance,
		m.SQN,
		m.Condition,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkEntryDeleted soft-deletes an entry. The row is never removed.
func (r *PgxEntryRepository) MarkEntryDeleted(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE entries
		SET is_active = FALSE, deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, query, entryID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry deleted "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListLedgerRowsFromSQN retrieves the recalculation projection of all active
// entries with SQN >= fromSQN ordered by (sqn, entry_date), optionally
// excluding one entry, with the entry rows locked for update.
func (r *PgxEntryRepository) ListLedgerRowsFromSQN(ctx context.Context, tx pgx.Tx, userID string, fromSQN int64, excludeEntryID *string) ([]domain.LedgerRow, error) {
	query := `
		SELECT e.entry_id, e.entry_date, e.amount, c.type, e.sqn
		FROM entries e
		JOIN subcategories s ON s.subcategory_id = e.subcategory_id
		JOIN categories c ON c.category_id = s.category_id
		WHERE e.user_id = $1 AND e.is_active = TRUE AND e.sqn >= $2
		  AND ($3::uuid IS NULL OR e.entry_id <> $3)
		ORDER BY e.sqn ASC, e.entry_date ASC
		FOR UPDATE OF e;
	`
	rows, err := tx.Query(ctx, query, userID, fromSQN, excludeEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger rows for user "+userID, err)
	}
	defer rows.Close()

	ledgerRows := []domain.LedgerRow{}
	for rows.Next() {
		var lr domain.LedgerRow
		var categoryType int16
		if err := rows.Scan(&lr.EntryID, &lr.EntryDate, &lr.Amount, &categoryType, &lr.SQN); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row for user "+userID, err)
		}
		lr.CategoryType = domain.CategoryType(categoryType)
		ledgerRows = append(ledgerRows, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows for user "+userID, err)
	}
	return ledgerRows, nil
}

// ApplyBalanceUpdates persists recomputed (sqn, monthly, overall) triples on
// the touched entries in one batch.
func (r *PgxEntryRepository) ApplyBalanceUpdates(ctx context.Context, tx pgx.Tx, updates []domain.BalanceUpdate, updatedBy string, updatedAt time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	query := `
		UPDATE entries
		SET sqn = $2, monthly_balance = $3, overall_balance = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.EntryID, u.SQN, u.MonthlyBalance, u.OverallBalance, updatedAt, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute balance update batch", err)
	}
	return nil
}

// SumAmountByCycleAndType sums the amounts of a user's active entries in a
// cycle whose category has the given type.
func (r *PgxEntryRepository) SumAmountByCycleAndType(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time, categoryType domain.CategoryType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM entries e
		JOIN subcategories s ON s.subcategory_id = e.subcategory_id
		JOIN categories c ON c.category_id = s.category_id
		WHERE e.user_id = $1 AND e.is_active = TRUE
		  AND e.entry_date >= $2::date AND e.entry_date < ($2::date + INTERVAL '1 month')
		  AND c.type = $3;
	`
	var sum decimal.Decimal
	if err := tx.QueryRow(ctx, query, userID, cycle, int16(categoryType)).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum cycle amounts for user "+userID, err)
	}
	return sum, nil
}

// FindLastEntryInCycle finds the active entry with the greatest SQN inside a
// cycle, or ErrNotFound when the cycle has no active entries.
func (r *PgxEntryRepository) FindLastEntryInCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1 AND is_active = TRUE
		  AND entry_date >= $2::date AND entry_date < ($2::date + INTERVAL '1 month')
		ORDER BY sqn DESC
		LIMIT 1;
	`
	m, err := scanEntry(tx.QueryRow(ctx, query, userID, cycle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find last entry in cycle for user "+userID, err)
	}
	domainEntry := mapping.ToDomainEntry(m)
	return &domainEntry, nil
}
