package services

import (
	"context"
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over a user's ledger.
type LedgerReaderSvc interface {
	// GetEntry retrieves a single active entry owned by the user.
	GetEntry(ctx context.Context, userID, entryID string) (*domain.EntryDetail, error)

	// ListEntries resolves the board view: one page of the cycle's entries
	// ordered by SQN descending plus the cycle's analytic report.
	ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListCycleEntries retrieves all active entries of a cycle in SQN order
	// (export path).
	ListCycleEntries(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error)
}

// LedgerWriterSvc defines the three ledger mutations. Each runs the
// sequencing, balance recalculation and analytic rebuild inside a single
// database transaction.
type LedgerWriterSvc interface {
	// CreateEntry posts a new entry into the user's ledger.
	CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.Entry, error)

	// UpdateEntry edits an entry, repositioning it and cascading from the
	// lower of its old and new positions.
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error)

	// DeleteEntry soft-deletes an entry and cascades from its predecessor.
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// AnalyticSvc exposes the snapshot cache and its maintenance.
type AnalyticSvc interface {
	// GetReport retrieves a cycle's analytic report, falling back to the
	// most recent earlier cycle when the requested one has no snapshot.
	GetReport(ctx context.Context, userID string, cycle time.Time) (*dto.AnalyticResponse, error)

	// ReconcileUser re-derives every analytic cycle of a user from the
	// ledger, starting at the earliest active cycle.
	ReconcileUser(ctx context.Context, userID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	AnalyticSvc
}
