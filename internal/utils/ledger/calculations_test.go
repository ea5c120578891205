package ledger_test

import (
	"testing"
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func row(id string, d time.Time, amount string, ct domain.CategoryType) domain.LedgerRow {
	return domain.LedgerRow{
		EntryID:      id,
		EntryDate:    d,
		Amount:       decimal.RequireFromString(amount),
		CategoryType: ct,
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("12.500")

	assert.True(t, ledger.SignedAmount(amount, domain.CategoryTypeIncome).Equal(amount))
	assert.True(t, ledger.SignedAmount(amount, domain.CategoryTypeExpense).Equal(amount.Neg()))
}

func TestZeroSeed_FirstRowResetsMonthly(t *testing.T) {
	seed := ledger.ZeroSeed(date(2022, time.March, 10))

	upd := seed.Advance(row("e1", date(2022, time.March, 10), "100.000", domain.CategoryTypeExpense))

	assert.Equal(t, int64(1), upd.SQN)
	assert.Equal(t, "-100", upd.MonthlyBalance.String())
	assert.Equal(t, "-100", upd.OverallBalance.String())
}

func TestAdvance_AccumulatesWithinCycle(t *testing.T) {
	seed := ledger.ZeroSeed(date(2022, time.March, 1))

	seed.Advance(row("e1", date(2022, time.March, 5), "200.000", domain.CategoryTypeIncome))
	upd := seed.Advance(row("e2", date(2022, time.March, 20), "50.000", domain.CategoryTypeExpense))

	assert.Equal(t, int64(2), upd.SQN)
	assert.Equal(t, "150", upd.MonthlyBalance.String())
	assert.Equal(t, "150", upd.OverallBalance.String())
}

func TestAdvance_MonthlyResetsAcrossCycleBoundary(t *testing.T) {
	seed := ledger.ZeroSeed(date(2022, time.March, 1))

	seed.Advance(row("e1", date(2022, time.March, 31), "300.000", domain.CategoryTypeIncome))
	upd := seed.Advance(row("e2", date(2022, time.April, 1), "80.000", domain.CategoryTypeExpense))

	// Monthly restarts at the row's own signed amount, overall keeps going.
	assert.Equal(t, "-80", upd.MonthlyBalance.String())
	assert.Equal(t, "220", upd.OverallBalance.String())
}

func TestAdvance_SeedFromExistingEntryContinuesBalances(t *testing.T) {
	seed := ledger.Seed{
		SQN:            7,
		Date:           date(2022, time.June, 12),
		MonthlyBalance: decimal.RequireFromString("40.000"),
		OverallBalance: decimal.RequireFromString("-10.000"),
		HasPrevious:    true,
	}

	upd := seed.Advance(row("e8", date(2022, time.June, 15), "5.000", domain.CategoryTypeIncome))

	assert.Equal(t, int64(8), upd.SQN)
	assert.Equal(t, "45", upd.MonthlyBalance.String())
	assert.Equal(t, "-5", upd.OverallBalance.String())
}

func TestAdvance_DenseRenumbering(t *testing.T) {
	// Rows arrive with gapped SQNs after a deletion; Advance reassigns them
	// densely from the seed position.
	seed := ledger.Seed{
		SQN:         2,
		Date:        date(2022, time.May, 3),
		HasPrevious: true,
	}
	rows := []domain.LedgerRow{
		row("e4", date(2022, time.May, 8), "10.000", domain.CategoryTypeIncome),
		row("e6", date(2022, time.May, 9), "10.000", domain.CategoryTypeIncome),
		row("e7", date(2022, time.May, 9), "10.000", domain.CategoryTypeIncome),
	}

	var got []int64
	for _, r := range rows {
		got = append(got, seed.Advance(r).SQN)
	}

	assert.Equal(t, []int64{3, 4, 5}, got)
}

func TestAdvance_FullLedgerWalk(t *testing.T) {
	// Replay an entire small ledger from scratch, spanning two cycles.
	rows := []domain.LedgerRow{
		row("e1", date(2022, time.January, 2), "1000.000", domain.CategoryTypeIncome),
		row("e2", date(2022, time.January, 15), "250.500", domain.CategoryTypeExpense),
		row("e3", date(2022, time.January, 15), "100.000", domain.CategoryTypeExpense),
		row("e4", date(2022, time.February, 1), "500.000", domain.CategoryTypeIncome),
	}

	seed := ledger.ZeroSeed(rows[0].EntryDate)
	var updates []domain.BalanceUpdate
	for _, r := range rows {
		updates = append(updates, seed.Advance(r))
	}

	require.Len(t, updates, 4)
	assert.Equal(t, "649.5", updates[2].MonthlyBalance.String())
	assert.Equal(t, "649.5", updates[2].OverallBalance.String())
	assert.Equal(t, "500", updates[3].MonthlyBalance.String())
	assert.Equal(t, "1149.5", updates[3].OverallBalance.String())
	for i, upd := range updates {
		assert.Equal(t, int64(i+1), upd.SQN)
	}
}

func TestSameCycleAndCycleStart(t *testing.T) {
	assert.True(t, domain.SameCycle(date(2022, time.March, 1), date(2022, time.March, 31)))
	assert.False(t, domain.SameCycle(date(2022, time.March, 31), date(2022, time.April, 1)))
	assert.False(t, domain.SameCycle(date(2021, time.March, 1), date(2022, time.March, 1)))

	assert.Equal(t, date(2022, time.March, 1), domain.CycleStart(date(2022, time.March, 17)))
}
