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

type PgxAnalyticRepository struct {
	BaseRepository
}

// newPgxAnalyticRepository creates a new repository for analytic snapshot data.
func newPgxAnalyticRepository(pool *pgxpool.Pool) portsrepo.AnalyticRepositoryFacade {
	return &PgxAnalyticRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAnalyticRepository implements portsrepo.AnalyticRepositoryFacade
var _ portsrepo.AnalyticRepositoryFacade = (*PgxAnalyticRepository)(nil)

const snapshotColumns = `
	analytic_id, user_id, cycle, report, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanSnapshot(row rowScanner) (models.AnalyticSnapshot, error) {
	var m models.AnalyticSnapshot
	err := row.Scan(
		&m.AnalyticID,
		&m.UserID,
		&m.Cycle,
		&m.Report,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}

// FindActiveSnapshot retrieves the active snapshot for a cycle.
func (r *PgxAnalyticRepository) FindActiveSnapshot(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM analytic_snapshots
		WHERE user_id = $1 AND cycle = $2 AND is_active = TRUE;
	`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, userID, cycle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot for user "+userID, err)
	}
	snapshot := mapping.ToDomainAnalyticSnapshot(m)
	return &snapshot, nil
}

// FindLatestSnapshotBefore retrieves the most recent active snapshot with a
// cycle strictly before the given one.
func (r *PgxAnalyticRepository) FindLatestSnapshotBefore(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM analytic_snapshots
		WHERE user_id = $1 AND cycle < $2 AND is_active = TRUE
		ORDER BY cycle DESC
		LIMIT 1;
	`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, userID, cycle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find past snapshot for user "+userID, err)
	}
	snapshot := mapping.ToDomainAnalyticSnapshot(m)
	return &snapshot, nil
}

// FindActiveSnapshotInTx retrieves the active snapshot for a cycle within the
// given transaction, with the row locked.
func (r *PgxAnalyticRepository) FindActiveSnapshotInTx(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM analytic_snapshots
		WHERE user_id = $1 AND cycle = $2 AND is_active = TRUE
		FOR UPDATE;
	`
	m, err := scanSnapshot(tx.QueryRow(ctx, query, userID, cycle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot in tx for user "+userID, err)
	}
	snapshot := mapping.ToDomainAnalyticSnapshot(m)
	return &snapshot, nil
}

// InsertSnapshot persists a newly created snapshot.
func (r *PgxAnalyticRepository) InsertSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error {
	m := mapping.ToModelAnalyticSnapshot(snapshot)
	query := `
		INSERT INTO analytic_snapshots (
			analytic_id, user_id, cycle, report, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.AnalyticID,
		m.UserID,
		m.Cycle,
		m.Report,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert snapshot "+m.AnalyticID, err)
	}
	return nil
}

// UpdateSnapshot overwrites a snapshot's report and active flag.
func (r *PgxAnalyticRepository) UpdateSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error {
	m := mapping.ToModelAnalyticSnapshot(snapshot)
	query := `
		UPDATE analytic_snapshots
		SET report = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE analytic_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.AnalyticID,
		m.Report,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update snapshot "+m.AnalyticID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListSnapshotsAfterCycle retrieves every active snapshot with a cycle
// strictly after the given one, ordered by cycle ascending, with the rows
// locked.
func (r *PgxAnalyticRepository) ListSnapshotsAfterCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) ([]domain.AnalyticSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM analytic_snapshots
		WHERE user_id = $1 AND cycle > $2 AND is_active = TRUE
		ORDER BY cycle ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, userID, cycle)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query later snapshots for user "+userID, err)
	}
	defer rows.Close()

	snapshots := []domain.AnalyticSnapshot{}
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row for user "+userID, err)
		}
		snapshots = append(snapshots, mapping.ToDomainAnalyticSnapshot(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating snapshot rows for user "+userID, err)
	}
	return snapshots, nil
}

// FindEarliestActiveCycle returns the earliest cycle with an active snapshot
// for a user.
func (r *PgxAnalyticRepository) FindEarliestActiveCycle(ctx context.Context, tx pgx.Tx, userID string) (time.Time, error) {
	query := `
		SELECT cycle
		FROM analytic_snapshots
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY cycle ASC
		LIMIT 1;
	`
	var cycle time.Time
	if err := tx.QueryRow(ctx, query, userID).Scan(&cycle); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, apperrors.NewAppError(500, "failed to find earliest cycle for user "+userID, err)
	}
	return cycle, nil
}
