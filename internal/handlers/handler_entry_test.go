package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
	"github.com/invofin/board_backend/internal/handlers"
	"github.com/invofin/board_backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) GetEntry(ctx context.Context, userID, entryID string) (*domain.EntryDetail, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryDetail), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) ListCycleEntries(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error) {
	args := m.Called(ctx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryDetail), args.Error(1)
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.Entry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	args := m.Called(ctx, userID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockLedgerService) GetReport(ctx context.Context, userID string, cycle time.Time) (*dto.AnalyticResponse, error) {
	args := m.Called(ctx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnalyticResponse), args.Error(1)
}

func (m *MockLedgerService) ReconcileUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "board-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterEntryRoutes(v1, suite.mockLedgerService)
}

func (suite *EntryHandlerTestSuite) serve(method, url, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestListEntries_Success() {
	userID := uuid.NewString()

	expected := &dto.ListEntriesResponse{
		Entries: []dto.EntryResponse{
			{
				EntryID:         uuid.NewString(),
				EntryDate:       "2022-03-15",
				CategoryName:    "Revenue",
				CategoryType:    int16(domain.CategoryTypeIncome),
				SubcategoryName: "Sales",
				Amount:          decimal.NewFromInt(100),
				MonthlyBalance:  decimal.NewFromInt(100),
				OverallBalance:  decimal.NewFromInt(100),
				SQN:             1,
			},
		},
		Analytic: &dto.AnalyticResponse{
			Cycle:   "2022-03",
			Monthly: dto.MonthlyReportResponse{Revenue: "100.000", Expenses: "0.000", Balance: "100.000"},
			Overall: "100.000",
		},
		Filter: dto.CycleFilter{Displayed: "Mar.2022", Year: 2022, Month: 3},
		Pages:  dto.PageInfo{Page: 1, TotalPages: 1, PageRange: []int{1}, TotalRows: 1},
	}

	suite.mockLedgerService.On("ListEntries",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Year == 2022 && p.Month == 3 && p.Page == 1
		}),
	).Return(expected, nil).Once()

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodGet, "/api/v1/entries?year=2022&month=3&page=1", token, "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Equal(expected.Entries[0].EntryID, resp.Entries[0].EntryID)
	suite.Equal("Mar.2022", resp.Filter.Displayed)
	suite.Require().NotNil(resp.Analytic)
	suite.Equal("100.000", resp.Analytic.Monthly.Revenue)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	userID := uuid.NewString()
	subcategoryID := uuid.NewString()
	beneficiaryID := uuid.NewString()
	bankAccountID := uuid.NewString()
	entryID := uuid.NewString()

	created := &domain.Entry{
		EntryID:   entryID,
		UserID:    userID,
		EntryDate: time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("100.000"),
		SQN:       1,
		IsActive:  true,
	}
	suite.mockLedgerService.On("CreateEntry",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
			return req.EntryDate == "2022-03-15" && req.SubcategoryID == subcategoryID
		}),
	).Return(created, nil).Once()

	body := fmt.Sprintf(`{
		"entryDate": "2022-03-15",
		"subcategoryID": %q,
		"beneficiaryID": %q,
		"bankAccountID": %q,
		"amount": "100.000",
		"condition": 1,
		"description": "invoice 42"
	}`, subcategoryID, beneficiaryID, bankAccountID)

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodPost, "/api/v1/entries", token, body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.MutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_MissingFields() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID)

	w := suite.serve(http.MethodPost, "/api/v1/entries", token, `{"entryDate": "2022-03-15"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_UnresolvedReference() {
	userID := uuid.NewString()
	subcategoryID := uuid.NewString()

	suite.mockLedgerService.On("CreateEntry",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("dto.CreateEntryRequest"),
	).Return(nil, fmt.Errorf("%w: subcategory %s", apperrors.ErrResolution, subcategoryID)).Once()

	body := fmt.Sprintf(`{
		"entryDate": "2022-03-15",
		"subcategoryID": %q,
		"beneficiaryID": %q,
		"bankAccountID": %q,
		"amount": "100.000",
		"condition": 1
	}`, subcategoryID, uuid.NewString(), uuid.NewString())

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodPost, "/api/v1/entries", token, body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("GetEntry",
		mock.AnythingOfType("*context.valueCtx"), userID, entryID,
	).Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodGet, "/api/v1/entries/"+entryID, token, "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_Success() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("DeleteEntry",
		mock.AnythingOfType("*context.valueCtx"), userID, entryID,
	).Return(nil).Once()

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodDelete, "/api/v1/entries/"+entryID, token, "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_ConsistencyFailure() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerService.On("DeleteEntry",
		mock.AnythingOfType("*context.valueCtx"), userID, entryID,
	).Return(apperrors.ErrConsistency).Once()

	token := suite.generateTestToken(userID)
	w := suite.serve(http.MethodDelete, "/api/v1/entries/"+entryID, token, "")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestEntries_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
