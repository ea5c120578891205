package ledger

import (
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the category sign convention to an entry amount:
// income amounts count positive, expense amounts negative.
func SignedAmount(amount decimal.Decimal, categoryType domain.CategoryType) decimal.Decimal {
	if categoryType == domain.CategoryTypeIncome {
		return amount
	}
	return amount.Neg()
}

// Seed is the running state a balance recalculation walks forward from: the
// last-known position, date and balances at the cascade point.
//
// HasPrevious is false when the cascade starts from an empty ledger (or a
// synthetic zero point after deleting the only earlier entry); the first row
// then always resets the monthly balance to its own signed amount.
type Seed struct {
	SQN            int64
	Date           time.Time
	MonthlyBalance decimal.Decimal
	OverallBalance decimal.Decimal
	HasPrevious    bool
}

// ZeroSeed returns a synthetic starting point at the given date.
func ZeroSeed(date time.Time) Seed {
	return Seed{Date: date, MonthlyBalance: decimal.Zero, OverallBalance: decimal.Zero}
}

// Advance applies one ledger row to the seed and returns the position and
// balances to persist on that row. The monthly balance accumulates while the
// row stays in the seed's month cycle and resets to the row's own signed
// amount when the cycle changes; the overall balance is strictly cumulative.
// SQNs are assigned densely, closing any gaps.
func (s *Seed) Advance(row domain.LedgerRow) domain.BalanceUpdate {
	signed := row.SignedAmount()

	if s.HasPrevious && domain.SameCycle(row.EntryDate, s.Date) {
		s.MonthlyBalance = s.MonthlyBalance.Add(signed)
	} else {
		s.MonthlyBalance = signed
	}
	s.OverallBalance = s.OverallBalance.Add(signed)
	s.SQN++
	s.Date = row.EntryDate
	s.HasPrevious = true

	return domain.BalanceUpdate{
		EntryID:        row.EntryID,
		SQN:            s.SQN,
		MonthlyBalance: s.MonthlyBalance,
		OverallBalance: s.OverallBalance,
	}
}
