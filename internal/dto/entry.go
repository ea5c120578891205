package dto

import (
	"time"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for entry dates (calendar date only).
const DateLayout = "2006-01-02"

// CreateEntryRequest is the payload for posting a new ledger entry.
type CreateEntryRequest struct {
	EntryDate     string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	SubcategoryID string          `json:"subcategoryID" binding:"required,uuid"`
	BeneficiaryID string          `json:"beneficiaryID" binding:"required,uuid"`
	ClientID      *string         `json:"clientID" binding:"omitempty,uuid"`
	CostCenterID  *string         `json:"costCenterID" binding:"omitempty,uuid"`
	BankAccountID string          `json:"bankAccountID" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Condition     int16           `json:"condition" binding:"required,oneof=1 2"`
	Description   string          `json:"description" binding:"max=250"`
}

// UpdateEntryRequest is the payload for editing an existing ledger entry.
// All reference and value fields are re-submitted, mirroring the board's
// edit form.
type UpdateEntryRequest struct {
	EntryDate     string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	SubcategoryID string          `json:"subcategoryID" binding:"required,uuid"`
	BeneficiaryID string          `json:"beneficiaryID" binding:"required,uuid"`
	ClientID      *string         `json:"clientID" binding:"omitempty,uuid"`
	CostCenterID  *string         `json:"costCenterID" binding:"omitempty,uuid"`
	BankAccountID string          `json:"bankAccountID" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Condition     int16           `json:"condition" binding:"required,oneof=1 2"`
	Description   string          `json:"description" binding:"max=250"`
}

// ListEntriesParams holds the board view's filter and pagination inputs.
type ListEntriesParams struct {
	Year  int `form:"year" binding:"omitempty,min=1900,max=2999"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Page  int `form:"page" binding:"omitempty,min=1"`
}

// EntryResponse is the listing shape of a ledger entry.
type EntryResponse struct {
	EntryID         string          `json:"entryID"`
	EntryDate       string          `json:"entryDate"`
	CategoryName    string          `json:"categoryName"`
	CategoryType    int16           `json:"categoryType"`
	SubcategoryName string          `json:"subcategoryName"`
	Amount          decimal.Decimal `json:"amount"`
	MonthlyBalance  decimal.Decimal `json:"monthlyBalance"`
	OverallBalance  decimal.Decimal `json:"overallBalance"`
	SQN             int64           `json:"sqn"`
	Condition       int16           `json:"condition"`
	Description     string          `json:"description"`
}

// EntryDetailResponse is the full shape returned by the detail lookup.
type EntryDetailResponse struct {
	EntryResponse
	SubcategoryID string    `json:"subcategoryID"`
	BeneficiaryID string    `json:"beneficiaryID"`
	ClientID      *string   `json:"clientID,omitempty"`
	CostCenterID  *string   `json:"costCenterID,omitempty"`
	BankAccountID string    `json:"bankAccountID"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// CycleFilter echoes the month filter the listing was resolved against.
type CycleFilter struct {
	Displayed string `json:"displayed"` // e.g. "Jan.2022"
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

// PageInfo carries page-number pagination state.
type PageInfo struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	PageRange  []int `json:"pageRange"`
	TotalRows  int64 `json:"totalRows"`
}

// ListEntriesResponse is the board view payload: one page of the cycle's
// entries plus the cycle's analytic report.
type ListEntriesResponse struct {
	Entries  []EntryResponse   `json:"entries"`
	Analytic *AnalyticResponse `json:"analytic,omitempty"`
	Filter   CycleFilter       `json:"filter"`
	Pages    PageInfo          `json:"pages"`
}

// MutationResponse reports a successful ledger mutation.
type MutationResponse struct {
	EntryID string `json:"entryID"`
	Message string `json:"message"`
}

// ToEntryResponse converts an entry detail projection to its listing shape.
func ToEntryResponse(e *domain.EntryDetail) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate.Format(DateLayout),
		CategoryName:    e.CategoryName,
		CategoryType:    int16(e.CategoryType),
		SubcategoryName: e.SubcategoryName,
		Amount:          e.Amount,
		MonthlyBalance:  e.MonthlyBalance,
		OverallBalance:  e.OverallBalance,
		SQN:             e.SQN,
		Condition:       int16(e.Condition),
		Description:     e.Description,
	}
}

// ToEntryResponses converts a slice of entry details to listing shapes.
func ToEntryResponses(entries []domain.EntryDetail) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToEntryDetailResponse converts an entry detail to the full lookup shape.
func ToEntryDetailResponse(e *domain.EntryDetail) EntryDetailResponse {
	return EntryDetailResponse{
		EntryResponse: ToEntryResponse(e),
		SubcategoryID: e.SubcategoryID,
		BeneficiaryID: e.BeneficiaryID,
		ClientID:      e.ClientID,
		CostCenterID:  e.CostCenterID,
		BankAccountID: e.BankAccountID,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}
