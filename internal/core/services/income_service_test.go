package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/core/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// --- Mock UserReader (shared by the service suites) ---
type MockUserReader struct {
	mock.Mock
	FindUserByIDFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserReader) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

// userReaderWithRole returns a reader that resolves every ID to an active
// user with the given role.
func userReaderWithRole(role domain.UserRole) *MockUserReader {
	return &MockUserReader{
		FindUserByIDFn: func(_ context.Context, userID string) (*domain.User, error) {
			return &domain.User{UserID: userID, Role: role, IsActive: true}, nil
		},
	}
}

// --- Mock ClientReader ---
type MockClientReader struct {
	mock.Mock
}

func (m *MockClientReader) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientReader) FindClients(ctx context.Context, filter portsrepo.ClientFilter) ([]domain.Client, error) {
	args := m.Called(ctx, filter)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

// --- Mock IncomeRepository ---
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	var income *domain.Income
	if args.Get(0) != nil {
		income = args.Get(0).(*domain.Income)
	}
	return income, args.Error(1)
}

func (m *MockIncomeRepository) FindIncomes(ctx context.Context, filter portsrepo.IncomeFilter) ([]domain.Income, error) {
	args := m.Called(ctx, filter)
	var incomes []domain.Income
	if args.Get(0) != nil {
		incomes = args.Get(0).([]domain.Income)
	}
	return incomes, args.Error(1)
}

func (m *MockIncomeRepository) FindIncomesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Income, error) {
	args := m.Called(ctx, from, to)
	var incomes []domain.Income
	if args.Get(0) != nil {
		incomes = args.Get(0).([]domain.Income)
	}
	return incomes, args.Error(1)
}

func (m *MockIncomeRepository) FindOutstandingIncomes(ctx context.Context) ([]domain.Income, error) {
	args := m.Called(ctx)
	var incomes []domain.Income
	if args.Get(0) != nil {
		incomes = args.Get(0).([]domain.Income)
	}
	return incomes, args.Error(1)
}

func (m *MockIncomeRepository) FindRecentIncomes(ctx context.Context, limit int) ([]domain.Income, error) {
	args := m.Called(ctx, limit)
	var incomes []domain.Income
	if args.Get(0) != nil {
		incomes = args.Get(0).([]domain.Income)
	}
	return incomes, args.Error(1)
}

func (m *MockIncomeRepository) SaveIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) UpdateIncome(ctx context.Context, income domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) AllocateInvoiceNumber(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockIncomeRepository) PeekInvoiceNumber(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type IncomeServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockIncomeRepository
	mockClient *MockClientReader
	service    portssvc.IncomeSvcFacade
}

func (suite *IncomeServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockIncomeRepository)
	suite.mockClient = new(MockClientReader)
	suite.service = services.NewIncomeService(suite.mockRepo, suite.mockClient, userReaderWithRole(domain.RoleAccountant))
}

func (suite *IncomeServiceTestSuite) TestCreateIncome_AllocatesNumber() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		IssuedDate: domain.NewDate(2024, time.March, 10),
		ClientName: "Acme d.o.o.",
		AmountRSD:  decimal.NewFromInt(120000),
	}

	suite.mockRepo.On("AllocateInvoiceNumber", ctx, 2024).Return(7, nil).Once()
	suite.mockRepo.On("SaveIncome", ctx, mock.MatchedBy(func(inc domain.Income) bool {
		return inc.InvoiceNumber == "2024-0007" &&
			inc.InvoiceYear == 2024 &&
			inc.Status == domain.IncomeIssued &&
			inc.Currency == "RSD" &&
			inc.PaidDate == nil
	})).Return(nil).Once()

	income, err := suite.service.CreateIncome(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(income)
	suite.Equal("2024-0007", income.InvoiceNumber)
	suite.Equal("Acme d.o.o.", income.ClientName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestCreateIncome_ExplicitNumberYearMismatch() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		IssuedDate:    domain.NewDate(2024, time.March, 10),
		InvoiceNumber: "2023-0001",
		ClientName:    "Acme d.o.o.",
		AmountRSD:     decimal.NewFromInt(1000),
	}

	income, err := suite.service.CreateIncome(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveIncome", mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestCreateIncome_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateIncomeRequest{
		IssuedDate:    domain.NewDate(2024, time.March, 10),
		InvoiceNumber: "2024-0003",
		ClientName:    "Acme d.o.o.",
		AmountRSD:     decimal.NewFromInt(1000),
	}

	suite.mockRepo.On("SaveIncome", ctx, mock.AnythingOfType("domain.Income")).Return(apperrors.ErrDuplicate).Once()

	income, err := suite.service.CreateIncome(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestCreateIncome_ObserverForbidden() {
	ctx := context.Background()
	svc := services.NewIncomeService(suite.mockRepo, suite.mockClient, userReaderWithRole(domain.RoleObserver))
	req := dto.CreateIncomeRequest{
		IssuedDate: domain.NewDate(2024, time.March, 10),
		ClientName: "Acme d.o.o.",
		AmountRSD:  decimal.NewFromInt(1000),
	}

	income, err := svc.CreateIncome(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveIncome", mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestCreateIncome_ClientSnapshotFromRegister() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateIncomeRequest{
		IssuedDate: domain.NewDate(2024, time.May, 2),
		ClientID:   &clientID,
		AmountRSD:  decimal.NewFromInt(45000),
	}

	suite.mockClient.On("FindClientByID", ctx, clientID).Return(&domain.Client{ClientID: clientID, Name: "Registered Client"}, nil).Once()
	suite.mockRepo.On("AllocateInvoiceNumber", ctx, 2024).Return(1, nil).Once()
	suite.mockRepo.On("SaveIncome", ctx, mock.MatchedBy(func(inc domain.Income) bool {
		return inc.ClientName == "Registered Client"
	})).Return(nil).Once()

	income, err := suite.service.CreateIncome(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("Registered Client", income.ClientName)
	suite.mockClient.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestMarkIncomePaid_CashierAllowed() {
	ctx := context.Background()
	svc := services.NewIncomeService(suite.mockRepo, suite.mockClient, userReaderWithRole(domain.RoleCashier))
	incomeID := uuid.NewString()
	existing := &domain.Income{
		IncomeID:   incomeID,
		IssuedDate: domain.NewDate(2024, time.March, 10),
		Status:     domain.IncomeIssued,
	}
	req := dto.MarkIncomePaidRequest{
		PaidDate:      domain.NewDate(2024, time.April, 1),
		BankReference: "izvod 44",
	}

	suite.mockRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateIncome", ctx, mock.MatchedBy(func(inc domain.Income) bool {
		return inc.Status == domain.IncomePaid &&
			inc.PaidDate != nil && inc.PaidDate.Equal(req.PaidDate) &&
			inc.BankReference == "izvod 44"
	})).Return(nil).Once()

	income, err := svc.MarkIncomePaid(ctx, incomeID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.IncomePaid, income.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestMarkIncomePaid_AlreadyPaid() {
	ctx := context.Background()
	incomeID := uuid.NewString()
	paid := domain.NewDate(2024, time.March, 20)
	existing := &domain.Income{
		IncomeID:   incomeID,
		IssuedDate: domain.NewDate(2024, time.March, 10),
		Status:     domain.IncomePaid,
		PaidDate:   &paid,
	}

	suite.mockRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()

	income, err := suite.service.MarkIncomePaid(ctx, incomeID, dto.MarkIncomePaidRequest{PaidDate: domain.NewDate(2024, time.April, 1)}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateIncome", mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestMarkIncomePaid_BeforeIssueDate() {
	ctx := context.Background()
	incomeID := uuid.NewString()
	existing := &domain.Income{
		IncomeID:   incomeID,
		IssuedDate: domain.NewDate(2024, time.March, 10),
		Status:     domain.IncomeIssued,
	}

	suite.mockRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()

	_, err := suite.service.MarkIncomePaid(ctx, incomeID, dto.MarkIncomePaidRequest{PaidDate: domain.NewDate(2024, time.March, 9)}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *IncomeServiceTestSuite) TestCancelIncome_PaidRejected() {
	ctx := context.Background()
	incomeID := uuid.NewString()
	paid := domain.NewDate(2024, time.March, 20)
	existing := &domain.Income{
		IncomeID: incomeID,
		Status:   domain.IncomePaid,
		PaidDate: &paid,
	}

	suite.mockRepo.On("FindIncomeByID", ctx, incomeID).Return(existing, nil).Once()

	income, err := suite.service.CancelIncome(ctx, incomeID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *IncomeServiceTestSuite) TestNextInvoiceNumber_Formats() {
	ctx := context.Background()

	suite.mockRepo.On("PeekInvoiceNumber", ctx, 2025).Return(12, nil).Once()

	number, err := suite.service.NextInvoiceNumber(ctx, 2025)

	suite.Require().NoError(err)
	suite.Equal("2025-0012", number)
}

func (suite *IncomeServiceTestSuite) TestListIncomes_BadDate() {
	ctx := context.Background()

	_, err := suite.service.ListIncomes(ctx, dto.ListIncomesParams{From: "10.03.2024"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	assert.NotNil(suite.T(), err)
}

func TestIncomeService(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}
