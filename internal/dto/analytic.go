package dto

import (
	"github.com/invofin/board_backend/internal/core/domain"
)

// CycleLayout is the wire format for analytic cycles.
const CycleLayout = "2006-01"

// AnalyticParams selects the cycle an analytic report is requested for.
type AnalyticParams struct {
	Year  int `form:"year" binding:"omitempty,min=1900,max=2999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

// MonthlyReportResponse mirrors the monthly section of a snapshot report.
type MonthlyReportResponse struct {
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// AnalyticResponse is the snapshot payload shown on the board. Past is true
// when no snapshot exists for the requested cycle and an earlier cycle's
// report is returned instead.
type AnalyticResponse struct {
	Cycle   string                `json:"cycle"`
	Monthly MonthlyReportResponse `json:"monthly"`
	Overall string                `json:"overall"`
	Past    bool                  `json:"past"`
}

// ToAnalyticResponse converts a snapshot to its API shape.
func ToAnalyticResponse(s *domain.AnalyticSnapshot, past bool) (*AnalyticResponse, error) {
	report, err := s.ParseReport()
	if err != nil {
		return nil, err
	}
	return &AnalyticResponse{
		Cycle: s.Cycle.Format(CycleLayout),
		Monthly: MonthlyReportResponse{
			Revenue:  report.Monthly.Revenue,
			Expenses: report.Monthly.Expenses,
			Balance:  report.Monthly.Balance,
		},
		Overall: report.Overall,
		Past:    past,
	}, nil
}
