package repositories

import (
	"context"
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FindEntryByID retrieves a single active entry by its identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindEntryDetailByID retrieves an active entry joined with its
	// classification labels.
	FindEntryDetailByID(ctx context.Context, entryID string) (*domain.EntryDetail, error)

	// ListEntriesByCycle retrieves one page of a user's active entries for a
	// month cycle ordered by SQN descending, plus the total row count for
	// that cycle.
	ListEntriesByCycle(ctx context.Context, userID string, cycle time.Time, limit, offset int) ([]domain.EntryDetail, int64, error)

	// ListAllEntriesByCycle retrieves all of a user's active entries for a
	// month cycle ordered by SQN ascending (export path, no pagination).
	ListAllEntriesByCycle(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error)
}

// EntrySequencer defines the lookups the SQN assignment relies on. Both run
// inside the mutation's transaction and lock the returned row so concurrent
// mutations for the same user serialize on the cascade point.
type EntrySequencer interface {
	// FindLastEntryOnOrBefore finds the active entry with the greatest SQN
	// whose entry date is <= the given date, optionally excluding one entry
	// (the one being edited).
	FindLastEntryOnOrBefore(ctx context.Context, tx pgx.Tx, userID string, date time.Time, excludeEntryID *string) (*domain.Entry, error)

	// FindLastEntryBelowSQN finds the active entry with the greatest SQN
	// strictly below the given SQN.
	FindLastEntryBelowSQN(ctx context.Context, tx pgx.Tx, userID string, sqn int64) (*domain.Entry, error)
}

// EntryWriter defines write operations for ledger entries. All writes happen
// inside the mutation's transaction.
type EntryWriter interface {
	// InsertEntry persists a new entry row.
	InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error

	// UpdateEntry persists all mutable fields of an existing entry row.
	UpdateEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error

	// MarkEntryDeleted soft-deletes an entry: clears its active flag and
	// stamps deleted_at. The row is never removed.
	MarkEntryDeleted(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, deletedAt time.Time) error

	// ListLedgerRowsFromSQN retrieves the recalculation projection of all
	// active entries with SQN >= fromSQN ordered by (sqn, entry_date),
	// optionally excluding one entry, with the rows locked for update.
	ListLedgerRowsFromSQN(ctx context.Context, tx pgx.Tx, userID string, fromSQN int64, excludeEntryID *string) ([]domain.LedgerRow, error)

	// ApplyBalanceUpdates persists recomputed (sqn, monthly, overall) triples
	// on the touched entries in one batch.
	ApplyBalanceUpdates(ctx context.Context, tx pgx.Tx, updates []domain.BalanceUpdate, updatedBy string, updatedAt time.Time) error
}

// EntryAggregator defines the month-cycle aggregates the analytic builder
// consumes.
type EntryAggregator interface {
	// SumAmountByCycleAndType sums the (unsigned) amounts of a user's active
	// entries in a cycle whose category has the given type.
	SumAmountByCycleAndType(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time, categoryType domain.CategoryType) (decimal.Decimal, error)

	// FindLastEntryInCycle finds the active entry with the greatest SQN
	// inside a cycle, or ErrNotFound when the cycle has no active entries.
	FindLastEntryInCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.Entry, error)
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntrySequencer
	EntryWriter
	EntryAggregator
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction
// capabilities.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
