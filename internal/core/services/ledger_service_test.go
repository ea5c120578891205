package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invofin/board_backend/internal/apperrors"
	"github.com/invofin/board_backend/internal/core/domain"
	portsrepo "github.com/invofin/board_backend/internal/core/ports/repositories"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/core/services"
	"github.com/invofin/board_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindEntryDetailByID(ctx context.Context, entryID string) (*domain.EntryDetail, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryDetail), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByCycle(ctx context.Context, userID string, cycle time.Time, limit, offset int) ([]domain.EntryDetail, int64, error) {
	args := m.Called(ctx, userID, cycle, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.EntryDetail), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) ListAllEntriesByCycle(ctx context.Context, userID string, cycle time.Time) ([]domain.EntryDetail, error) {
	args := m.Called(ctx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryDetail), args.Error(1)
}

func (m *MockEntryRepository) FindLastEntryOnOrBefore(ctx context.Context, tx pgx.Tx, userID string, date time.Time, excludeEntryID *string) (*domain.Entry, error) {
	args := m.Called(ctx, tx, userID, date, excludeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindLastEntryBelowSQN(ctx context.Context, tx pgx.Tx, userID string, sqn int64) (*domain.Entry, error) {
	args := m.Called(ctx, tx, userID, sqn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkEntryDeleted(ctx context.Context, tx pgx.Tx, entryID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) ListLedgerRowsFromSQN(ctx context.Context, tx pgx.Tx, userID string, fromSQN int64, excludeEntryID *string) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, tx, userID, fromSQN, excludeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}

func (m *MockEntryRepository) ApplyBalanceUpdates(ctx context.Context, tx pgx.Tx, updates []domain.BalanceUpdate, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, updates, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) SumAmountByCycleAndType(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time, categoryType domain.CategoryType) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, userID, cycle, categoryType)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) FindLastEntryInCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.Entry, error) {
	args := m.Called(ctx, tx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

// --- Mock AnalyticRepository ---
type MockAnalyticRepository struct {
	mock.Mock
}

var _ portsrepo.AnalyticRepositoryFacade = (*MockAnalyticRepository)(nil)

func (m *MockAnalyticRepository) FindActiveSnapshot(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	args := m.Called(ctx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticSnapshot), args.Error(1)
}

func (m *MockAnalyticRepository) FindLatestSnapshotBefore(ctx context.Context, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	args := m.Called(ctx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticSnapshot), args.Error(1)
}

func (m *MockAnalyticRepository) FindActiveSnapshotInTx(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) (*domain.AnalyticSnapshot, error) {
	args := m.Called(ctx, tx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticSnapshot), args.Error(1)
}

func (m *MockAnalyticRepository) InsertSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error {
	args := m.Called(ctx, tx, snapshot)
	return args.Error(0)
}

func (m *MockAnalyticRepository) UpdateSnapshot(ctx context.Context, tx pgx.Tx, snapshot domain.AnalyticSnapshot) error {
	args := m.Called(ctx, tx, snapshot)
	return args.Error(0)
}

func (m *MockAnalyticRepository) ListSnapshotsAfterCycle(ctx context.Context, tx pgx.Tx, userID string, cycle time.Time) ([]domain.AnalyticSnapshot, error) {
	args := m.Called(ctx, tx, userID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnalyticSnapshot), args.Error(1)
}

func (m *MockAnalyticRepository) FindEarliestActiveCycle(ctx context.Context, tx pgx.Tx, userID string) (time.Time, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return time.Time{}, args.Error(1)
	}
	return args.Get(0).(time.Time), args.Error(1)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, categoryID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindSubcategoryByID(ctx context.Context, userID, subcategoryID string) (*domain.Subcategory, error) {
	args := m.Called(ctx, userID, subcategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subcategory), args.Error(1)
}

func (m *MockCategoryRepository) FindSubcategoryDetail(ctx context.Context, userID, subcategoryID string) (*domain.SubcategoryDetail, error) {
	args := m.Called(ctx, userID, subcategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubcategoryDetail), args.Error(1)
}

func (m *MockCategoryRepository) ListSubcategories(ctx context.Context, userID, categoryID string) ([]domain.Subcategory, error) {
	args := m.Called(ctx, userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subcategory), args.Error(1)
}

func (m *MockCategoryRepository) UpdateSubcategory(ctx context.Context, subcategory domain.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateSubcategory(ctx context.Context, userID, subcategoryID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, subcategoryID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock BeneficiaryRepository ---
type MockBeneficiaryRepository struct {
	mock.Mock
}

var _ portsrepo.BeneficiaryRepositoryFacade = (*MockBeneficiaryRepository)(nil)

func (m *MockBeneficiaryRepository) SaveBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) ListBeneficiaryCategories(ctx context.Context, userID string) ([]domain.BeneficiaryCategory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BeneficiaryCategory), args.Error(1)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiaryCategory(ctx context.Context, category domain.BeneficiaryCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) DeactivateBeneficiaryCategory(ctx context.Context, userID, categoryID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, categoryID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	args := m.Called(ctx, beneficiary)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) FindBeneficiaryByID(ctx context.Context, userID, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, userID, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListBeneficiaries(ctx context.Context, userID string) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error {
	args := m.Called(ctx, beneficiary)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) DeactivateBeneficiary(ctx context.Context, userID, beneficiaryID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, beneficiaryID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, userID, clientID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, clientID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Mock FinancialRepository ---
type MockFinancialRepository struct {
	mock.Mock
}

var _ portsrepo.FinancialRepositoryFacade = (*MockFinancialRepository)(nil)

func (m *MockFinancialRepository) SaveFinancial(ctx context.Context, financial domain.Financial) error {
	args := m.Called(ctx, financial)
	return args.Error(0)
}

func (m *MockFinancialRepository) FindFinancialByID(ctx context.Context, userID, financialID string, kind domain.FinancialKind) (*domain.Financial, error) {
	args := m.Called(ctx, userID, financialID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Financial), args.Error(1)
}

func (m *MockFinancialRepository) ListFinancials(ctx context.Context, userID string, kind domain.FinancialKind) ([]domain.Financial, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Financial), args.Error(1)
}

func (m *MockFinancialRepository) UpdateFinancial(ctx context.Context, financial domain.Financial) error {
	args := m.Called(ctx, financial)
	return args.Error(0)
}

func (m *MockFinancialRepository) DeactivateFinancial(ctx context.Context, userID, financialID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, userID, financialID, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo       *MockEntryRepository
	mockAnalyticRepo    *MockAnalyticRepository
	mockCategoryRepo    *MockCategoryRepository
	mockBeneficiaryRepo *MockBeneficiaryRepository
	mockClientRepo      *MockClientRepository
	mockFinancialRepo   *MockFinancialRepository
	service             portssvc.LedgerSvcFacade
	userID              string
	incomeSubcategory   domain.SubcategoryDetail
	expenseSubcategory  domain.SubcategoryDetail
	beneficiary         domain.Beneficiary
	bankAccount         domain.Financial
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAnalyticRepo = new(MockAnalyticRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockBeneficiaryRepo = new(MockBeneficiaryRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockFinancialRepo = new(MockFinancialRepository)
	suite.service = services.NewLedgerService(&portsrepo.RepositoryProvider{
		CategoryRepo:    suite.mockCategoryRepo,
		BeneficiaryRepo: suite.mockBeneficiaryRepo,
		ClientRepo:      suite.mockClientRepo,
		FinancialRepo:   suite.mockFinancialRepo,
		EntryRepo:       suite.mockEntryRepo,
		AnalyticRepo:    suite.mockAnalyticRepo,
	}, 25)

	suite.userID = uuid.NewString()
	suite.incomeSubcategory = domain.SubcategoryDetail{
		Subcategory: domain.Subcategory{
			SubcategoryID: uuid.NewString(),
			CategoryID:    uuid.NewString(),
			Name:          "Sales",
			IsActive:      true,
		},
		CategoryName: "Revenue",
		CategoryType: domain.CategoryTypeIncome,
	}
	suite.expenseSubcategory = domain.SubcategoryDetail{
		Subcategory: domain.Subcategory{
			SubcategoryID: uuid.NewString(),
			CategoryID:    uuid.NewString(),
			Name:          "Rent",
			IsActive:      true,
		},
		CategoryName: "Overheads",
		CategoryType: domain.CategoryTypeExpense,
	}
	suite.beneficiary = domain.Beneficiary{
		BeneficiaryID: uuid.NewString(),
		UserID:        suite.userID,
		Name:          "Acme Supplies",
		IsActive:      true,
	}
	suite.bankAccount = domain.Financial{
		FinancialID: uuid.NewString(),
		UserID:      suite.userID,
		Kind:        domain.FinancialBankAccount,
		IsActive:    true,
	}
}

func cycleDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// expectResolveRefs wires the happy-path reference lookups for a payload
// carrying the given subcategory, the suite beneficiary and bank account.
func (suite *LedgerServiceTestSuite) expectResolveRefs(subcategory *domain.SubcategoryDetail) {
	suite.mockCategoryRepo.On("FindSubcategoryDetail", mock.Anything, suite.userID, subcategory.SubcategoryID).Return(subcategory, nil).Once()
	suite.mockBeneficiaryRepo.On("FindBeneficiaryByID", mock.Anything, suite.userID, suite.beneficiary.BeneficiaryID).Return(&suite.beneficiary, nil).Once()
	suite.mockFinancialRepo.On("FindFinancialByID", mock.Anything, suite.userID, suite.bankAccount.FinancialID, domain.FinancialBankAccount).Return(&suite.bankAccount, nil).Once()
}

// expectTx wires Begin/Commit plus the deferred Rollback.
func (suite *LedgerServiceTestSuite) expectTx() {
	suite.mockEntryRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// expectCycleRebuild wires one cycle's rebuild: category sums, the cycle's
// closing entry (nil means empty cycle) and the existing snapshot lookup.
func (suite *LedgerServiceTestSuite) expectCycleRebuild(cycle time.Time, revenue, expenses string, last *domain.Entry, existing *domain.AnalyticSnapshot) {
	suite.mockEntryRepo.On("SumAmountByCycleAndType", mock.Anything, mock.Anything, suite.userID, cycle, domain.CategoryTypeIncome).Return(dec(revenue), nil).Once()
	suite.mockEntryRepo.On("SumAmountByCycleAndType", mock.Anything, mock.Anything, suite.userID, cycle, domain.CategoryTypeExpense).Return(dec(expenses), nil).Once()
	if last != nil {
		suite.mockEntryRepo.On("FindLastEntryInCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return(last, nil).Once()
	} else {
		suite.mockEntryRepo.On("FindLastEntryInCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return(nil, apperrors.ErrNotFound).Once()
	}
	if existing != nil {
		suite.mockAnalyticRepo.On("FindActiveSnapshotInTx", mock.Anything, mock.Anything, suite.userID, cycle).Return(existing, nil).Once()
	} else {
		suite.mockAnalyticRepo.On("FindActiveSnapshotInTx", mock.Anything, mock.Anything, suite.userID, cycle).Return(nil, apperrors.ErrNotFound).Once()
	}
}

func (suite *LedgerServiceTestSuite) createRequest(subcategoryID, date, amount string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:     date,
		SubcategoryID: subcategoryID,
		BeneficiaryID: suite.beneficiary.BeneficiaryID,
		BankAccountID: suite.bankAccount.FinancialID,
		Amount:        dec(amount),
		Condition:     int16(domain.ConditionSettled),
		Description:   "test entry",
	}
}

// --- CreateEntry ---

func (suite *LedgerServiceTestSuite) TestCreateEntry_FirstEntry() {
	ctx := context.Background()
	req := suite.createRequest(suite.incomeSubcategory.SubcategoryID, "2022-03-10", "100.000")
	cycle := cycleDate(2022, time.March, 1)

	suite.expectResolveRefs(&suite.incomeSubcategory)
	suite.expectTx()

	suite.mockEntryRepo.On("FindLastEntryOnOrBefore", mock.Anything, mock.Anything, suite.userID, cycleDate(2022, time.March, 10), (*string)(nil)).Return(nil, apperrors.ErrNotFound).Once()

	var inserted domain.Entry
	suite.mockEntryRepo.On("InsertEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Entry")).Run(func(args mock.Arguments) {
		inserted = args.Get(2).(domain.Entry)
	}).Return(nil).Once()

	// Nothing after the new entry, the cascade is a no-op.
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(1), mock.AnythingOfType("*string")).Return([]domain.LedgerRow{}, nil).Once()
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, []domain.BalanceUpdate{}, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.expectCycleRebuild(cycle, "100.000", "0.000", &domain.Entry{MonthlyBalance: dec("100.000"), OverallBalance: dec("100.000")}, nil)
	var snapshot domain.AnalyticSnapshot
	suite.mockAnalyticRepo.On("InsertSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Run(func(args mock.Arguments) {
		snapshot = args.Get(2).(domain.AnalyticSnapshot)
	}).Return(nil).Once()
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return([]domain.AnalyticSnapshot{}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(int64(1), entry.SQN)
	suite.Equal("100", entry.MonthlyBalance.String())
	suite.Equal("100", entry.OverallBalance.String())
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(entry.IsActive)
	suite.Equal(entry.EntryID, inserted.EntryID)
	suite.Equal(int64(1), inserted.SQN)

	suite.True(snapshot.IsActive)
	suite.Equal(cycle, snapshot.Cycle)
	suite.JSONEq(`{"monthly":{"revenue":"100.000","expenses":"0.000","balance":"100.000"},"overall":"100.000"}`, snapshot.Report)

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_MiddleInsertShiftsLaterEntries() {
	ctx := context.Background()
	req := suite.createRequest(suite.expenseSubcategory.SubcategoryID, "2022-03-15", "30.000")
	cycle := cycleDate(2022, time.March, 1)

	suite.expectResolveRefs(&suite.expenseSubcategory)
	suite.expectTx()

	// Ledger before: sqn 1 (Mar 5), sqn 2 (Mar 10), sqn 3 (Mar 20).
	prev := &domain.Entry{
		EntryID:        uuid.NewString(),
		UserID:         suite.userID,
		EntryDate:      cycleDate(2022, time.March, 10),
		SQN:            2,
		MonthlyBalance: dec("50.000"),
		OverallBalance: dec("50.000"),
	}
	suite.mockEntryRepo.On("FindLastEntryOnOrBefore", mock.Anything, mock.Anything, suite.userID, cycleDate(2022, time.March, 15), (*string)(nil)).Return(prev, nil).Once()

	var inserted domain.Entry
	suite.mockEntryRepo.On("InsertEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Entry")).Run(func(args mock.Arguments) {
		inserted = args.Get(2).(domain.Entry)
	}).Return(nil).Once()

	laterID := uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(3), mock.AnythingOfType("*string")).Return([]domain.LedgerRow{
		{EntryID: laterID, EntryDate: cycleDate(2022, time.March, 20), Amount: dec("10.000"), CategoryType: domain.CategoryTypeIncome, SQN: 3},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	existing := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: cycle, IsActive: true}
	suite.expectCycleRebuild(cycle, "60.000", "30.000", &domain.Entry{MonthlyBalance: dec("30.000"), OverallBalance: dec("30.000")}, existing)
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Return(nil).Once()
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return([]domain.AnalyticSnapshot{}, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().NoError(err)
	// The new entry slots after sqn 2, the later entry shifts to sqn 4.
	suite.Equal(int64(3), entry.SQN)
	suite.Equal("20", entry.MonthlyBalance.String())
	suite.Equal("20", entry.OverallBalance.String())
	suite.Equal(int64(3), inserted.SQN)

	suite.Require().Len(cascade, 1)
	suite.Equal(laterID, cascade[0].EntryID)
	suite.Equal(int64(4), cascade[0].SQN)
	suite.Equal("30", cascade[0].MonthlyBalance.String())
	suite.Equal("30", cascade[0].OverallBalance.String())

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_ResolutionFailureAbortsBeforeTx() {
	ctx := context.Background()
	req := suite.createRequest(suite.incomeSubcategory.SubcategoryID, "2022-03-10", "100.000")

	suite.mockCategoryRepo.On("FindSubcategoryDetail", mock.Anything, suite.userID, suite.incomeSubcategory.SubcategoryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrResolution))
	suite.Nil(entry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.createRequest(suite.incomeSubcategory.SubcategoryID, "2022-03-10", "0.000")

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.Nil(entry)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindSubcategoryDetail", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_InvalidDate() {
	ctx := context.Background()
	req := suite.createRequest(suite.incomeSubcategory.SubcategoryID, "15/03/2022", "10.000")

	_, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_AnalyticFailureSurfacesConsistency() {
	ctx := context.Background()
	req := suite.createRequest(suite.incomeSubcategory.SubcategoryID, "2022-03-10", "100.000")
	cycle := cycleDate(2022, time.March, 1)

	suite.expectResolveRefs(&suite.incomeSubcategory)
	suite.mockEntryRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockEntryRepo.On("FindLastEntryOnOrBefore", mock.Anything, mock.Anything, suite.userID, mock.AnythingOfType("time.Time"), (*string)(nil)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntryRepo.On("InsertEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Entry")).Return(nil).Once()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(1), mock.AnythingOfType("*string")).Return([]domain.LedgerRow{}, nil).Once()
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, []domain.BalanceUpdate{}, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.mockEntryRepo.On("SumAmountByCycleAndType", mock.Anything, mock.Anything, suite.userID, cycle, domain.CategoryTypeIncome).Return(nil, errors.New("connection reset")).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConsistency))
	suite.Nil(entry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
}

// --- UpdateEntry ---

func (suite *LedgerServiceTestSuite) TestUpdateEntry_MoveEarlierCascadesFromNewPosition() {
	ctx := context.Background()
	entryID := uuid.NewString()
	req := dto.UpdateEntryRequest{
		EntryDate:     "2022-03-05",
		SubcategoryID: suite.incomeSubcategory.SubcategoryID,
		BeneficiaryID: suite.beneficiary.BeneficiaryID,
		BankAccountID: suite.bankAccount.FinancialID,
		Amount:        dec("20.000"),
		Condition:     int16(domain.ConditionSettled),
	}
	cycle := cycleDate(2022, time.March, 1)

	// Entry currently sits at sqn 5 on Mar 20; it moves back to Mar 5.
	current := &domain.Entry{
		EntryID:   entryID,
		UserID:    suite.userID,
		EntryDate: cycleDate(2022, time.March, 20),
		Amount:    dec("20.000"),
		SQN:       5,
		IsActive:  true,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()
	suite.expectResolveRefs(&suite.incomeSubcategory)
	suite.expectTx()

	// With the edited entry excluded, the last entry on or before Mar 5 is
	// sqn 2, so the entry re-slots at sqn 3.
	slotPrev := &domain.Entry{EntryID: uuid.NewString(), UserID: suite.userID, EntryDate: cycleDate(2022, time.March, 4), SQN: 2, MonthlyBalance: dec("70.000"), OverallBalance: dec("70.000")}
	suite.mockEntryRepo.On("FindLastEntryOnOrBefore", mock.Anything, mock.Anything, suite.userID, cycleDate(2022, time.March, 5), &entryID).Return(slotPrev, nil).Once()

	var written domain.Entry
	suite.mockEntryRepo.On("UpdateEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Entry")).Run(func(args mock.Arguments) {
		written = args.Get(2).(domain.Entry)
	}).Return(nil).Once()

	suite.mockEntryRepo.On("FindLastEntryBelowSQN", mock.Anything, mock.Anything, suite.userID, int64(3)).Return(slotPrev, nil).Once()

	// The cascade walks the edited entry at its new slot plus the two rows
	// it displaced.
	otherA, otherB := uuid.NewString(), uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(3), (*string)(nil)).Return([]domain.LedgerRow{
		{EntryID: entryID, EntryDate: cycleDate(2022, time.March, 5), Amount: dec("20.000"), CategoryType: domain.CategoryTypeIncome, SQN: 3},
		{EntryID: otherA, EntryDate: cycleDate(2022, time.March, 8), Amount: dec("10.000"), CategoryType: domain.CategoryTypeExpense, SQN: 3},
		{EntryID: otherB, EntryDate: cycleDate(2022, time.March, 12), Amount: dec("5.000"), CategoryType: domain.CategoryTypeIncome, SQN: 4},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	existing := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: cycle, IsActive: true}
	suite.expectCycleRebuild(cycle, "95.000", "10.000", &domain.Entry{MonthlyBalance: dec("85.000"), OverallBalance: dec("85.000")}, existing)
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Return(nil).Once()
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return([]domain.AnalyticSnapshot{}, nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, suite.userID, entryID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(3), written.SQN)
	suite.Equal(cycleDate(2022, time.March, 5), written.EntryDate)

	suite.Require().Len(cascade, 3)
	suite.Equal([]int64{3, 4, 5}, []int64{cascade[0].SQN, cascade[1].SQN, cascade[2].SQN})
	suite.Equal("90", cascade[0].MonthlyBalance.String())
	suite.Equal("80", cascade[1].MonthlyBalance.String())
	suite.Equal("85", cascade[2].MonthlyBalance.String())

	// The returned entry picks up its recomputed balances.
	suite.Equal(int64(3), entry.SQN)
	suite.Equal("90", entry.MonthlyBalance.String())
	suite.Equal("90", entry.OverallBalance.String())

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_MoveToEarlierMonthRebuildsBothCycles() {
	ctx := context.Background()
	entryID := uuid.NewString()
	req := dto.UpdateEntryRequest{
		EntryDate:     "2022-03-05",
		SubcategoryID: suite.expenseSubcategory.SubcategoryID,
		BeneficiaryID: suite.beneficiary.BeneficiaryID,
		BankAccountID: suite.bankAccount.FinancialID,
		Amount:        dec("30.000"),
		Condition:     int16(domain.ConditionSettled),
	}
	marchCycle := cycleDate(2022, time.March, 1)
	aprilCycle := cycleDate(2022, time.April, 1)

	// Entry currently closes April at sqn 3; it moves back into March.
	current := &domain.Entry{
		EntryID:   entryID,
		UserID:    suite.userID,
		EntryDate: cycleDate(2022, time.April, 25),
		Amount:    dec("30.000"),
		SQN:       3,
		IsActive:  true,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()
	suite.expectResolveRefs(&suite.expenseSubcategory)
	suite.expectTx()

	// With the edited entry excluded, the last entry on or before Mar 5 is
	// March's opening income at sqn 1, so the entry re-slots at sqn 2.
	marPrev := &domain.Entry{EntryID: uuid.NewString(), UserID: suite.userID, EntryDate: cycleDate(2022, time.March, 2), SQN: 1, MonthlyBalance: dec("100.000"), OverallBalance: dec("100.000")}
	suite.mockEntryRepo.On("FindLastEntryOnOrBefore", mock.Anything, mock.Anything, suite.userID, cycleDate(2022, time.March, 5), &entryID).Return(marPrev, nil).Once()

	var writtenEntry domain.Entry
	suite.mockEntryRepo.On("UpdateEntry", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Entry")).Run(func(args mock.Arguments) {
		writtenEntry = args.Get(2).(domain.Entry)
	}).Return(nil).Once()

	suite.mockEntryRepo.On("FindLastEntryBelowSQN", mock.Anything, mock.Anything, suite.userID, int64(2)).Return(marPrev, nil).Once()

	// The cascade crosses the month boundary: the edited entry lands in
	// March, the displaced April row renumbers and its monthly balance
	// restarts while the overall balance keeps accumulating.
	aprRow := uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(2), (*string)(nil)).Return([]domain.LedgerRow{
		{EntryID: entryID, EntryDate: cycleDate(2022, time.March, 5), Amount: dec("30.000"), CategoryType: domain.CategoryTypeExpense, SQN: 2},
		{EntryID: aprRow, EntryDate: cycleDate(2022, time.April, 20), Amount: dec("50.000"), CategoryType: domain.CategoryTypeIncome, SQN: 2},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	// Both months' snapshots are re-derived: March as the reference cycle,
	// April as a later active cycle.
	marchSnapshot := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: marchCycle, IsActive: true}
	aprilSnapshot := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: aprilCycle, IsActive: true}
	suite.expectCycleRebuild(marchCycle, "100.000", "30.000", &domain.Entry{MonthlyBalance: dec("70.000"), OverallBalance: dec("70.000")}, marchSnapshot)
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, marchCycle).Return([]domain.AnalyticSnapshot{*aprilSnapshot}, nil).Once()
	suite.expectCycleRebuild(aprilCycle, "50.000", "0.000", &domain.Entry{MonthlyBalance: dec("50.000"), OverallBalance: dec("120.000")}, aprilSnapshot)

	var writtenSnapshots []domain.AnalyticSnapshot
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Run(func(args mock.Arguments) {
		writtenSnapshots = append(writtenSnapshots, args.Get(2).(domain.AnalyticSnapshot))
	}).Return(nil).Twice()

	entry, err := suite.service.UpdateEntry(ctx, suite.userID, entryID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(2), writtenEntry.SQN)
	suite.Equal(cycleDate(2022, time.March, 5), writtenEntry.EntryDate)

	suite.Require().Len(cascade, 2)
	suite.Equal([]int64{2, 3}, []int64{cascade[0].SQN, cascade[1].SQN})
	suite.Equal("70", cascade[0].MonthlyBalance.String())
	suite.Equal("70", cascade[0].OverallBalance.String())
	suite.Equal("50", cascade[1].MonthlyBalance.String())
	suite.Equal("120", cascade[1].OverallBalance.String())

	suite.Require().Len(writtenSnapshots, 2)
	suite.Equal(marchCycle, writtenSnapshots[0].Cycle)
	suite.JSONEq(`{"monthly":{"revenue":"100.000","expenses":"30.000","balance":"70.000"},"overall":"70.000"}`, writtenSnapshots[0].Report)
	suite.True(writtenSnapshots[0].IsActive)
	suite.Equal(aprilCycle, writtenSnapshots[1].Cycle)
	suite.JSONEq(`{"monthly":{"revenue":"50.000","expenses":"0.000","balance":"50.000"},"overall":"120.000"}`, writtenSnapshots[1].Report)
	suite.True(writtenSnapshots[1].IsActive)

	suite.Equal(int64(2), entry.SQN)
	suite.Equal("70", entry.MonthlyBalance.String())
	suite.Equal("70", entry.OverallBalance.String())

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_NotOwned() {
	ctx := context.Background()
	entryID := uuid.NewString()
	current := &domain.Entry{EntryID: entryID, UserID: uuid.NewString(), IsActive: true}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()

	req := dto.UpdateEntryRequest{
		EntryDate:     "2022-03-05",
		SubcategoryID: suite.incomeSubcategory.SubcategoryID,
		BeneficiaryID: suite.beneficiary.BeneficiaryID,
		BankAccountID: suite.bankAccount.FinancialID,
		Amount:        dec("20.000"),
		Condition:     int16(domain.ConditionSettled),
	}
	entry, err := suite.service.UpdateEntry(ctx, suite.userID, entryID, req)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Nil(entry)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- DeleteEntry ---

func (suite *LedgerServiceTestSuite) TestDeleteEntry_CascadesFromPredecessor() {
	ctx := context.Background()
	entryID := uuid.NewString()
	cycle := cycleDate(2022, time.March, 1)

	current := &domain.Entry{
		EntryID:   entryID,
		UserID:    suite.userID,
		EntryDate: cycleDate(2022, time.March, 10),
		SQN:       3,
		IsActive:  true,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()
	suite.expectTx()

	suite.mockEntryRepo.On("MarkEntryDeleted", mock.Anything, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	prev := &domain.Entry{EntryID: uuid.NewString(), UserID: suite.userID, EntryDate: cycleDate(2022, time.March, 8), SQN: 2, MonthlyBalance: dec("40.000"), OverallBalance: dec("40.000")}
	suite.mockEntryRepo.On("FindLastEntryBelowSQN", mock.Anything, mock.Anything, suite.userID, int64(3)).Return(prev, nil).Once()

	// Rows after the deleted entry renumber down from its predecessor.
	laterID := uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(3), (*string)(nil)).Return([]domain.LedgerRow{
		{EntryID: laterID, EntryDate: cycleDate(2022, time.March, 15), Amount: dec("25.000"), CategoryType: domain.CategoryTypeExpense, SQN: 4},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	existing := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: cycle, IsActive: true}
	suite.expectCycleRebuild(cycle, "40.000", "25.000", &domain.Entry{MonthlyBalance: dec("15.000"), OverallBalance: dec("15.000")}, existing)
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Return(nil).Once()
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return([]domain.AnalyticSnapshot{}, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, entryID)

	suite.Require().NoError(err)
	suite.Require().Len(cascade, 1)
	suite.Equal(laterID, cascade[0].EntryID)
	suite.Equal(int64(3), cascade[0].SQN)
	suite.Equal("15", cascade[0].MonthlyBalance.String())
	suite.Equal("15", cascade[0].OverallBalance.String())

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_FirstEntryResetsFromZero() {
	ctx := context.Background()
	entryID := uuid.NewString()
	cycle := cycleDate(2022, time.March, 1)

	current := &domain.Entry{
		EntryID:   entryID,
		UserID:    suite.userID,
		EntryDate: cycleDate(2022, time.March, 2),
		SQN:       1,
		IsActive:  true,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()
	suite.expectTx()

	suite.mockEntryRepo.On("MarkEntryDeleted", mock.Anything, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEntryRepo.On("FindLastEntryBelowSQN", mock.Anything, mock.Anything, suite.userID, int64(1)).Return(nil, apperrors.ErrNotFound).Once()

	// The remaining entry becomes the first row: its monthly balance resets
	// to its own signed amount.
	remainingID := uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(1), (*string)(nil)).Return([]domain.LedgerRow{
		{EntryID: remainingID, EntryDate: cycleDate(2022, time.March, 9), Amount: dec("60.000"), CategoryType: domain.CategoryTypeExpense, SQN: 2},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	existing := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: cycle, IsActive: true}
	suite.expectCycleRebuild(cycle, "0.000", "60.000", &domain.Entry{MonthlyBalance: dec("-60.000"), OverallBalance: dec("-60.000")}, existing)
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Return(nil).Once()
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, cycle).Return([]domain.AnalyticSnapshot{}, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.userID, entryID)

	suite.Require().NoError(err)
	suite.Require().Len(cascade, 1)
	suite.Equal(int64(1), cascade[0].SQN)
	suite.Equal("-60", cascade[0].MonthlyBalance.String())
	suite.Equal("-60", cascade[0].OverallBalance.String())

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_EmptiedCyclesKeepRefActivateLaterInactive() {
	ctx := context.Background()
	entryID := uuid.NewString()
	marCycle := cycleDate(2022, time.March, 1)
	aprCycle := cycleDate(2022, time.April, 1)

	// Deleting the only March entry; April also holds no entries anymore.
	current := &domain.Entry{
		EntryID:   entryID,
		UserID:    suite.userID,
		EntryDate: cycleDate(2022, time.March, 10),
		SQN:       1,
		IsActive:  true,
	}
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, entryID).Return(current, nil).Once()
	suite.expectTx()

	suite.mockEntryRepo.On("MarkEntryDeleted", mock.Anything, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockEntryRepo.On("FindLastEntryBelowSQN", mock.Anything, mock.Anything, suite.userID, int64(1)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(1), (*string)(nil)).Return([]domain.LedgerRow{}, nil).Once()
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, []domain.BalanceUpdate{}, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	marSnapshot := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: marCycle, IsActive: true}
	aprSnapshot := domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: aprCycle, IsActive: true}

	suite.expectCycleRebuild(marCycle, "0.000", "0.000", nil, marSnapshot)
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, marCycle).Return([]domain.AnalyticSnapshot{aprSnapshot}, nil).Once()
	suite.expectCycleRebuild(aprCycle, "0.000", "0.000", nil, &aprSnapshot)

	var written []domain.AnalyticSnapshot
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Run(func(args mock.Arguments) {
		written = append(written, args.Get(2).(domain.AnalyticSnapshot))
	}).Return(nil).Twice()

	err := suite.service.DeleteEntry(ctx, suite.userID, entryID)

	suite.Require().NoError(err)
	suite.Require().Len(written, 2)

	// The mutated cycle keeps an active zero report; the later emptied cycle
	// is deactivated.
	suite.Equal(marCycle, written[0].Cycle)
	suite.True(written[0].IsActive)
	suite.JSONEq(`{"monthly":{"revenue":"0.000","expenses":"0.000","balance":"0.000"},"overall":"0.000"}`, written[0].Report)

	suite.Equal(aprCycle, written[1].Cycle)
	suite.False(written[1].IsActive)

	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetEntry_NotOwned() {
	ctx := context.Background()
	entryID := uuid.NewString()
	detail := &domain.EntryDetail{Entry: domain.Entry{EntryID: entryID, UserID: uuid.NewString()}}
	suite.mockEntryRepo.On("FindEntryDetailByID", mock.Anything, entryID).Return(detail, nil).Once()

	got, err := suite.service.GetEntry(ctx, suite.userID, entryID)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Nil(got)
}

func (suite *LedgerServiceTestSuite) TestGetReport_Active() {
	ctx := context.Background()
	cycle := cycleDate(2022, time.March, 1)
	snapshot := &domain.AnalyticSnapshot{
		UserID:   suite.userID,
		Cycle:    cycle,
		Report:   `{"monthly":{"revenue":"100.000","expenses":"40.000","balance":"60.000"},"overall":"160.000"}`,
		IsActive: true,
	}
	suite.mockAnalyticRepo.On("FindActiveSnapshot", mock.Anything, suite.userID, cycle).Return(snapshot, nil).Once()

	report, err := suite.service.GetReport(ctx, suite.userID, cycleDate(2022, time.March, 17))

	suite.Require().NoError(err)
	suite.False(report.Past)
	suite.Equal("2022-03", report.Cycle)
	suite.Equal("100.000", report.Monthly.Revenue)
	suite.Equal("40.000", report.Monthly.Expenses)
	suite.Equal("60.000", report.Monthly.Balance)
	suite.Equal("160.000", report.Overall)
}

func (suite *LedgerServiceTestSuite) TestGetReport_FallsBackToPastCycle() {
	ctx := context.Background()
	cycle := cycleDate(2022, time.May, 1)
	past := &domain.AnalyticSnapshot{
		UserID:   suite.userID,
		Cycle:    cycleDate(2022, time.February, 1),
		Report:   `{"monthly":{"revenue":"10.000","expenses":"0.000","balance":"10.000"},"overall":"10.000"}`,
		IsActive: true,
	}
	suite.mockAnalyticRepo.On("FindActiveSnapshot", mock.Anything, suite.userID, cycle).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAnalyticRepo.On("FindLatestSnapshotBefore", mock.Anything, suite.userID, cycle).Return(past, nil).Once()

	report, err := suite.service.GetReport(ctx, suite.userID, cycle)

	suite.Require().NoError(err)
	suite.True(report.Past)
	suite.Equal("2022-02", report.Cycle)
}

func (suite *LedgerServiceTestSuite) TestListEntries_ClampsOutOfRangePage() {
	ctx := context.Background()
	cycle := cycleDate(2022, time.March, 1)

	// Page 5 of a 30-row cycle is out of range; the view clamps to page 2.
	suite.mockEntryRepo.On("ListEntriesByCycle", mock.Anything, suite.userID, cycle, 25, 100).Return([]domain.EntryDetail{}, int64(30), nil).Once()
	rows := []domain.EntryDetail{
		{Entry: domain.Entry{EntryID: uuid.NewString(), UserID: suite.userID, EntryDate: cycleDate(2022, time.March, 3), SQN: 1, Amount: dec("10.000")}},
	}
	suite.mockEntryRepo.On("ListEntriesByCycle", mock.Anything, suite.userID, cycle, 25, 25).Return(rows, int64(30), nil).Once()

	suite.mockAnalyticRepo.On("FindActiveSnapshot", mock.Anything, suite.userID, cycle).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAnalyticRepo.On("FindLatestSnapshotBefore", mock.Anything, suite.userID, cycle).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListEntries(ctx, suite.userID, dto.ListEntriesParams{Year: 2022, Month: 3, Page: 5})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.Analytic)
	suite.Equal("Mar.2022", resp.Filter.Displayed)
	suite.Equal(2, resp.Pages.Page)
	suite.Equal(2, resp.Pages.TotalPages)
	suite.Equal([]int{1, 2}, resp.Pages.PageRange)
	suite.Equal(int64(30), resp.Pages.TotalRows)

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

// --- ReconcileUser ---

func (suite *LedgerServiceTestSuite) TestReconcileUser_RenumbersAndRebuildsFromEarliestCycle() {
	ctx := context.Background()
	febCycle := cycleDate(2022, time.February, 1)
	marCycle := cycleDate(2022, time.March, 1)

	suite.expectTx()

	// Ledger holds gapped March rows; an orphaned February snapshot is still
	// active from entries since deleted.
	rowA, rowB := uuid.NewString(), uuid.NewString()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(0), (*string)(nil)).Return([]domain.LedgerRow{
		{EntryID: rowA, EntryDate: cycleDate(2022, time.March, 3), Amount: dec("100.000"), CategoryType: domain.CategoryTypeIncome, SQN: 2},
		{EntryID: rowB, EntryDate: cycleDate(2022, time.March, 9), Amount: dec("40.000"), CategoryType: domain.CategoryTypeExpense, SQN: 5},
	}, nil).Once()

	var cascade []domain.BalanceUpdate
	suite.mockEntryRepo.On("ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.AnythingOfType("[]domain.BalanceUpdate"), suite.userID, mock.AnythingOfType("time.Time")).Run(func(args mock.Arguments) {
		cascade = args.Get(2).([]domain.BalanceUpdate)
	}).Return(nil).Once()

	suite.mockAnalyticRepo.On("FindEarliestActiveCycle", mock.Anything, mock.Anything, suite.userID).Return(febCycle, nil).Once()

	febSnapshot := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: febCycle, IsActive: true}
	suite.expectCycleRebuild(febCycle, "0.000", "0.000", nil, febSnapshot)
	suite.mockAnalyticRepo.On("ListSnapshotsAfterCycle", mock.Anything, mock.Anything, suite.userID, febCycle).Return([]domain.AnalyticSnapshot{
		{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: marCycle, IsActive: true},
	}, nil).Once()
	marSnapshot := &domain.AnalyticSnapshot{AnalyticID: uuid.NewString(), UserID: suite.userID, Cycle: marCycle, IsActive: true}
	suite.expectCycleRebuild(marCycle, "100.000", "40.000", &domain.Entry{MonthlyBalance: dec("60.000"), OverallBalance: dec("60.000")}, marSnapshot)

	var written []domain.AnalyticSnapshot
	suite.mockAnalyticRepo.On("UpdateSnapshot", mock.Anything, mock.Anything, mock.AnythingOfType("domain.AnalyticSnapshot")).Run(func(args mock.Arguments) {
		written = append(written, args.Get(2).(domain.AnalyticSnapshot))
	}).Return(nil).Twice()

	err := suite.service.ReconcileUser(ctx, suite.userID)

	suite.Require().NoError(err)

	// Positions compact back to 1..n.
	suite.Require().Len(cascade, 2)
	suite.Equal(int64(1), cascade[0].SQN)
	suite.Equal(int64(2), cascade[1].SQN)
	suite.Equal("60", cascade[1].OverallBalance.String())

	// The stale February snapshot is deactivated, March is refreshed.
	suite.Require().Len(written, 2)
	suite.Equal(febCycle, written[0].Cycle)
	suite.False(written[0].IsActive)
	suite.Equal(marCycle, written[1].Cycle)
	suite.True(written[1].IsActive)
	suite.JSONEq(`{"monthly":{"revenue":"100.000","expenses":"40.000","balance":"60.000"},"overall":"60.000"}`, written[1].Report)

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockAnalyticRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReconcileUser_EmptyLedgerIsNoOp() {
	ctx := context.Background()

	suite.expectTx()
	suite.mockEntryRepo.On("ListLedgerRowsFromSQN", mock.Anything, mock.Anything, suite.userID, int64(0), (*string)(nil)).Return([]domain.LedgerRow{}, nil).Once()
	suite.mockAnalyticRepo.On("FindEarliestActiveCycle", mock.Anything, mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReconcileUser(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ApplyBalanceUpdates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAnalyticRepo.AssertNotCalled(suite.T(), "ListSnapshotsAfterCycle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
