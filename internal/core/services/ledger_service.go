package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
	"github.com/invofin/board_backend/internal/middleware"
	"github.com/invofin/board_backend/internal/utils/ledger"
	"github.com/invofin/board_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// FilterLayout is how the board displays the resolved month filter.
const FilterLayout = "Jan.2006"

// ledgerService implements entry mutations, the board view and the analytic
// snapshot cache. Every mutation runs sequencing, balance recalculation and
// the analytic rebuild inside one database transaction on the entry
// repository.
type ledgerService struct {
	entryRepo       portsrepo.EntryRepositoryWithTx
	analyticRepo    portsrepo.AnalyticRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
	clientRepo      portsrepo.ClientRepositoryFacade
	financialRepo   portsrepo.FinancialRepositoryFacade
	pageSize        int
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(repos *portsrepo.RepositoryProvider, pageSize int) portssvc.LedgerSvcFacade {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &ledgerService{
		entryRepo:       repos.EntryRepo,
		analyticRepo:    repos.AnalyticRepo,
		categoryRepo:    repos.CategoryRepo,
		beneficiaryRepo: repos.BeneficiaryRepo,
		clientRepo:      repos.ClientRepo,
		financialRepo:   repos.FinancialRepo,
		pageSize:        pageSize,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// entryRefs carries the resolved references of a mutation payload.
type entryRefs struct {
	subcategory *domain.SubcategoryDetail
}

// resolveRefs verifies that every record the payload references is an active
// row owned by the user. Any failure aborts the mutation with ErrResolution
// before a transaction is opened.
func (s *ledgerService) resolveRefs(ctx context.Context, userID, subcategoryID, beneficiaryID string, clientID, costCenterID *string, bankAccountID string) (*entryRefs, error) {
	subcategory, err := s.categoryRepo.FindSubcategoryDetail(ctx, userID, subcategoryID)
	if err != nil {
		return nil, resolutionError("subcategory", subcategoryID, err)
	}
	if _, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, userID, beneficiaryID); err != nil {
		return nil, resolutionError("beneficiary", beneficiaryID, err)
	}
	if clientID != nil {
		if _, err := s.clientRepo.FindClientByID(ctx, userID, *clientID); err != nil {
			return nil, resolutionError("client", *clientID, err)
		}
	}
	if costCenterID != nil {
		if _, err := s.financialRepo.FindFinancialByID(ctx, userID, *costCenterID, domain.FinancialCostCenter); err != nil {
			return nil, resolutionError("cost center", *costCenterID, err)
		}
	}
	if _, err := s.financialRepo.FindFinancialByID(ctx, userID, bankAccountID, domain.FinancialBankAccount); err != nil {
		return nil, resolutionError("bank account", bankAccountID, err)
	}
	return &entryRefs{subcategory: subcategory}, nil
}

func resolutionError(kind, id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", apperrors.ErrResolution, kind, id)
	}
	return err
}

func parseEntryDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(dto.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, value)
	}
	return date, nil
}

// seedFrom builds the recalculation seed sitting on an existing entry.
func seedFrom(e *domain.Entry) ledger.Seed {
	return ledger.Seed{
		SQN:            e.SQN,
		Date:           e.EntryDate,
		MonthlyBalance: e.MonthlyBalance,
		OverallBalance: e.OverallBalance,
		HasPrevious:    true,
	}
}

// CreateEntry posts a new entry into the user's ledger. The entry is slotted
// after the last active entry dated on or before it, later entries shift up
// by one and their balances cascade, and the affected analytic cycles are
// rebuilt, all in one transaction.
func (s *ledgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	refs, err := s.resolveRefs(ctx, userID, req.SubcategoryID, req.BeneficiaryID, req.ClientID, req.CostCenterID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:       uuid.NewString(),
		UserID:        userID,
		SubcategoryID: req.SubcategoryID,
		BeneficiaryID: req.BeneficiaryID,
		ClientID:      req.ClientID,
		CostCenterID:  req.CostCenterID,
		BankAccountID: req.BankAccountID,
		EntryDate:     entryDate,
		Amount:        req.Amount,
		Condition:     domain.EntryCondition(req.Condition),
		Description:   req.Description,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	// Slot the new entry after the last active entry dated on or before it.
	seed := ledger.ZeroSeed(entryDate)
	prev, err := s.entryRepo.FindLastEntryOnOrBefore(ctx, tx, userID, entryDate, nil)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if prev != nil {
		seed = seedFrom(prev)
	}

	own := seed.Advance(domain.LedgerRow{
		EntryID:      entry.EntryID,
		EntryDate:    entry.EntryDate,
		Amount:       entry.Amount,
		CategoryType: refs.subcategory.CategoryType,
	})
	entry.SQN = own.SQN
	entry.MonthlyBalance = own.MonthlyBalance
	entry.OverallBalance = own.OverallBalance

	if err := s.entryRepo.InsertEntry(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := s.recalcFrom(ctx, tx, userID, entry.SQN, &entry.EntryID, seed, now); err != nil {
		return nil, err
	}
	if err := s.rebuildAnalytics(ctx, tx, userID, domain.CycleStart(entryDate), now, false); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("entry created",
		slog.String("entryID", entry.EntryID),
		slog.Int64("sqn", entry.SQN),
		slog.String("entryDate", req.EntryDate),
	)
	return &entry, nil
}

// UpdateEntry edits an entry. The entry is re-slotted for its new date and
// the cascade runs from the lower of its old and new positions; the analytic
// rebuild starts at the earlier of its old and new cycles.
func (s *ledgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	current, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if current.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if _, err := s.resolveRefs(ctx, userID, req.SubcategoryID, req.BeneficiaryID, req.ClientID, req.CostCenterID, req.BankAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	oldSQN := current.SQN
	oldDate := current.EntryDate

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	// Re-slot against the ledger with the edited entry taken out.
	newSQN := int64(1)
	prev, err := s.entryRepo.FindLastEntryOnOrBefore(ctx, tx, userID, entryDate, &entryID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if prev != nil {
		newSQN = prev.SQN + 1
	}

	updated := *current
	updated.SubcategoryID = req.SubcategoryID
	updated.BeneficiaryID = req.BeneficiaryID
	updated.ClientID = req.ClientID
	updated.CostCenterID = req.CostCenterID
	updated.BankAccountID = req.BankAccountID
	updated.EntryDate = entryDate
	updated.Amount = req.Amount
	updated.Condition = domain.EntryCondition(req.Condition)
	updated.Description = req.Description
	updated.SQN = newSQN
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID
	if err := s.entryRepo.UpdateEntry(ctx, tx, updated); err != nil {
		return nil, err
	}

	// Everything at or above the lower of the two positions is recomputed,
	// edited entry included.
	cascadeSQN := newSQN
	if oldSQN < cascadeSQN {
		cascadeSQN = oldSQN
	}
	minDate := entryDate
	if oldDate.Before(minDate) {
		minDate = oldDate
	}

	seed := ledger.ZeroSeed(minDate)
	before, err := s.entryRepo.FindLastEntryBelowSQN(ctx, tx, userID, cascadeSQN)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if before != nil {
		seed = seedFrom(before)
		seed.SQN = cascadeSQN - 1
	}
	updates, err := s.applyRecalc(ctx, tx, userID, cascadeSQN, nil, seed, now)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		if u.EntryID == entryID {
			updated.SQN = u.SQN
			updated.MonthlyBalance = u.MonthlyBalance
			updated.OverallBalance = u.OverallBalance
		}
	}

	if err := s.rebuildAnalytics(ctx, tx, userID, domain.CycleStart(minDate), now, false); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("entry updated",
		slog.String("entryID", entryID),
		slog.Int64("oldSqn", oldSQN),
		slog.Int64("sqn", updated.SQN),
	)
	return &updated, nil
}

// DeleteEntry soft-deletes an entry. The row stays in the table with its
// active flag cleared, later entries renumber down and their balances
// cascade from the deleted entry's predecessor.
func (s *ledgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	current, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if current.UserID != userID {
		return apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	if err := s.entryRepo.MarkEntryDeleted(ctx, tx, entryID, userID, now); err != nil {
		return err
	}

	seed := ledger.ZeroSeed(current.EntryDate)
	fromSQN := int64(1)
	prev, err := s.entryRepo.FindLastEntryBelowSQN(ctx, tx, userID, current.SQN)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if prev != nil {
		seed = seedFrom(prev)
		fromSQN = prev.SQN + 1
	}
	if err := s.recalcFrom(ctx, tx, userID, fromSQN, nil, seed, now); err != nil {
		return err
	}
	if err := s.rebuildAnalytics(ctx, tx, userID, domain.CycleStart(current.EntryDate), now, false); err != nil {
		return err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("entry deleted",
		slog.String("entryID", entryID),
		slog.Int64("sqn", current.SQN),
	)
	return nil
}

// applyRecalc walks all active entries from fromSQN onward in (sqn, date)
// order, advancing the seed over each and persisting the recomputed
// positions and balances. Returns the applied updates.
func (s *ledgerService) applyRecalc(ctx context.Context, tx pgx.Tx, userID string, fromSQN int64, excludeEntryID *string, seed ledger.Seed, now time.Time) ([]domain.BalanceUpdate, error) {
	rows, err := s.entryRepo.ListLedgerRowsFromSQN(ctx, tx, userID, fromSQN, excludeEntryID)
	if err != nil {
		return nil, err
	}
	updates := make([]domain.BalanceUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, seed.Advance(row))
	}
	if err := s.entryRepo.ApplyBalanceUpdates(ctx, tx, updates, userID, now); err != nil {
		return nil, err
	}
	return updates, nil
}

func (s *ledgerService) recalcFrom(ctx context.Context, tx pgx.Tx, userID string, fromSQN int64, excludeEntryID *string, seed ledger.Seed, now time.Time) error {
	_, err := s.applyRecalc(ctx, tx, userID, fromSQN, excludeEntryID, seed, now)
	return err
}

// rebuildAnalytics re-derives the snapshot of the reference cycle and of
// every active cycle after it. Any failure here rolls the owning mutation
// back, surfaced as ErrConsistency.
func (s *ledgerService) rebuildAnalytics(ctx context.Context, tx pgx.Tx, userID string, refCycle time.Time, now time.Time, inactivateEmptyRef bool) error {
	if err := s.rebuildCycle(ctx, tx, userID, refCycle, now, inactivateEmptyRef); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
	}
	laterSnapshots, err := s.analyticRepo.ListSnapshotsAfterCycle(ctx, tx, userID, refCycle)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
	}
	for _, snap := range laterSnapshots {
		if err := s.rebuildCycle(ctx, tx, userID, snap.Cycle, now, true); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
		}
	}
	return nil
}

// rebuildCycle recomputes one cycle's report from the entries table and
// upserts the snapshot. A cycle that no longer has active entries is marked
// inactive when inactivateWhenEmpty is set; the reference cycle of a
// mutation instead keeps an active zero report.
func (s *ledgerService) rebuildCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time, now time.Time, inactivateWhenEmpty bool) error {
	revenue, err := s.entryRepo.SumAmountByCycleAndType(ctx, tx, userID, cycle, domain.CategoryTypeIncome)
	if err != nil {
		return err
	}
	expenses, err := s.entryRepo.SumAmountByCycleAndType(ctx, tx, userID, cycle, domain.CategoryTypeExpense)
	if err != nil {
		return err
	}

	monthly := decimal.Zero
	overall := decimal.Zero
	empty := false
	last, err := s.entryRepo.FindLastEntryInCycle(ctx, tx, userID, cycle)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		empty = true
	} else {
		monthly = last.MonthlyBalance
		overall = last.OverallBalance
	}

	report, err := domain.AnalyticReport{
		Monthly: domain.MonthlyReport{
			Revenue:  revenue.StringFixed(3),
			Expenses: expenses.StringFixed(3),
			Balance:  monthly.StringFixed(3),
		},
		Overall: overall.StringFixed(3),
	}.Marshal()
	if err != nil {
		return err
	}

	existing, err := s.analyticRepo.FindActiveSnapshotInTx(ctx, tx, userID, cycle)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if empty {
			return nil
		}
		snapshot := domain.AnalyticSnapshot{
			AnalyticID: uuid.NewString(),
			UserID:     userID,
			Cycle:      cycle,
			Report:     report,
			IsActive:   true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		return s.analyticRepo.InsertSnapshot(ctx, tx, snapshot)
	}

	existing.Report = report
	existing.IsActive = !(empty && inactivateWhenEmpty)
	existing.LastUpdatedAt = now
	existing.LastUpdatedBy = userID
	return s.analyticRepo.UpdateSnapshot(ctx, tx, *existing)
}

// GetEntry retrieves a single active entry owned by the user.
func (s *ledgerService) GetEntry(ctx context.Context, userID, entryID string) (*domain.EntryDetail, error) {
	detail, err := s.entryRepo.FindEntryDetailByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return detail, nil
}

// ListEntries resolves the board view: one page of the resolved cycle's
// entries newest-first, plus the cycle's analytic report (falling back to
// the most recent earlier cycle when the requested one has none).
func (s *ledgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	now := time.Now().UTC()
	year, month := params.Year, params.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	cycle := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	page := params.Page
	if page < 1 {
		page = 1
	}
	entries, total, err := s.entryRepo.ListEntriesByCycle(ctx, userID, cycle, s.pageSize, pagination.Offset(page, s.pageSize))
	if err != nil {
		return nil, err
	}
	totalPages := pagination.TotalPages(total, s.pageSize)
	if page > totalPages && totalPages > 0 {
		// Out-of-range pages clamp to the last one.
		page = totalPages
		entries, total, err = s.entryRepo.ListEntriesByCycle(ctx, userID, cycle, s.pageSize, pagination.Offset(page, s.pageSize))
		if err != nil {
			return nil, err
		}
	}

	analytic, err := s.GetReport(ctx, userID, cycle)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:  dto.ToEntryResponses(entries),
		Analytic: analytic,
		Filter: dto.CycleFilter{
			Displayed: cycle.Format(FilterLayout),
			Year:      year,
			Month:     month,
		},
		Pages: dto.PageInfo{
			Page:       page,
			TotalPages: totalPages,
			PageRange:  pagination.PageRange(page, totalPages),
			TotalRows:  total,
		},
	}, nil
}

// ListCycleEntries retrieves all active entries of a cycle in SQN order.
func (s *ledgerService) ListCycleEntries(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error) {
	return s.entryRepo.ListAllEntriesByCycle(ctx, userID, domain.CycleStart(cycle))
}

// GetReport retrieves a cycle's analytic report. When the requested cycle
// has no active snapshot the most recent earlier cycle's report is returned
// with its Past flag set.
func (s *ledgerService) GetReport(ctx context.Context, userID string, cycle time.Time) (*dto.AnalyticResponse, error) {
	cycle = domain.CycleStart(cycle)
	snapshot, err := s.analyticRepo.FindActiveSnapshot(ctx, userID, cycle)
	if err == nil {
		return dto.ToAnalyticResponse(snapshot, false)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	snapshot, err = s.analyticRepo.FindLatestSnapshotBefore(ctx, userID, cycle)
	if err != nil {
		return nil, err
	}
	return dto.ToAnalyticResponse(snapshot, true)
}

// ReconcileUser re-derives a user's entire ledger state: every active
// entry's position and balances from a zero seed, then every analytic cycle
// from the earliest one known. Safe to run repeatedly; an untouched ledger
// produces identical rows and reports.
func (s *ledgerService) ReconcileUser(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	rows, err := s.entryRepo.ListLedgerRowsFromSQN(ctx, tx, userID, 0, nil)
	if err != nil {
		return err
	}

	refCycle := time.Time{}
	if len(rows) > 0 {
		seed := ledger.ZeroSeed(rows[0].EntryDate)
		updates := make([]domain.BalanceUpdate, 0, len(rows))
		for _, row := range rows {
			updates = append(updates, seed.Advance(row))
		}
		if err := s.entryRepo.ApplyBalanceUpdates(ctx, tx, updates, userID, now); err != nil {
			return err
		}
		refCycle = domain.CycleStart(rows[0].EntryDate)
	}

	earliest, err := s.analyticRepo.FindEarliestActiveCycle(ctx, tx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if err == nil && (refCycle.IsZero() || earliest.Before(refCycle)) {
		refCycle = earliest
	}
	if refCycle.IsZero() {
		// Nothing to reconcile.
		return s.entryRepo.Commit(ctx, tx)
	}

	if err := s.rebuildAnalytics(ctx, tx, userID, refCycle, now, true); err != nil {
		return err
	}
	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("ledger reconciled",
		slog.String("userID", userID),
		slog.Int("entries", len(rows)),
	)
	return nil
}
