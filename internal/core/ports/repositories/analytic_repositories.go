package repositories

import (
	"context"
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AnalyticReader defines read operations for analytic snapshots used by the
// board view.
type AnalyticReader interface {
	// FindActiveSnapshot retrieves the active snapshot for a cycle.
	FindActiveSnapshot(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error)

	// FindLatestSnapshotBefore retrieves the most recent active snapshot with
	// a cycle strictly before the given one (the "past" fallback).
	FindLatestSnapshotBefore(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error)
}

// AnalyticWriter defines write operations the cache builder performs inside
// a ledger mutation's transaction.
type AnalyticWriter interface {
	// FindActiveSnapshotInTx retrieves the active snapshot for a cycle within
	// the given transaction.
	FindActiveSnapshotInTx(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error)

	// InsertSnapshot persists a newly created snapshot.
	InsertSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error

	// UpdateSnapshot overwrites a snapshot's report and active flag.
	UpdateSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error

	// ListSnapshotsAfterCycle retrieves every active snapshot with a cycle
	// strictly after the given one, ordered by cycle ascending.
	ListSnapshotsAfterCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) ([]domain.AnalyticSnapshot, error)

	// FindEarliestActiveCycle returns the earliest cycle with an active
	// snapshot for a user, or ErrNotFound when the user has none.
	FindEarliestActiveCycle(ctx context.Context, tx pgx.Tx, userID string) (time.Time, error)
}

// AnalyticRepositoryFacade combines all snapshot repository interfaces.
type AnalyticRepositoryFacade interface {
	AnalyticReader
	AnalyticWriter
}
