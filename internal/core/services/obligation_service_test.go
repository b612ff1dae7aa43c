package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/core/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// --- Mock ObligationRepository ---
type MockObligationRepository struct {
	mock.Mock
}

func (m *MockObligationRepository) FindPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	args := m.Called(ctx)
	var types []domain.PaymentType
	if args.Get(0) != nil {
		types = args.Get(0).([]domain.PaymentType)
	}
	return types, args.Error(1)
}

func (m *MockObligationRepository) FindYearDecisions(ctx context.Context, year int) ([]domain.YearDecision, error) {
	args := m.Called(ctx, year)
	var decisions []domain.YearDecision
	if args.Get(0) != nil {
		decisions = args.Get(0).([]domain.YearDecision)
	}
	return decisions, args.Error(1)
}

func (m *MockObligationRepository) FindDecisionByID(ctx context.Context, decisionID string) (*domain.YearDecision, error) {
	args := m.Called(ctx, decisionID)
	var decision *domain.YearDecision
	if args.Get(0) != nil {
		decision = args.Get(0).(*domain.YearDecision)
	}
	return decision, args.Error(1)
}

func (m *MockObligationRepository) UpsertYearDecision(ctx context.Context, decision domain.YearDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *MockObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.MonthlyObligation, error) {
	args := m.Called(ctx, obligationID)
	var obligation *domain.MonthlyObligation
	if args.Get(0) != nil {
		obligation = args.Get(0).(*domain.MonthlyObligation)
	}
	return obligation, args.Error(1)
}

func (m *MockObligationRepository) FindMonthlyObligations(ctx context.Context, year int) ([]domain.MonthlyObligation, error) {
	args := m.Called(ctx, year)
	var obligations []domain.MonthlyObligation
	if args.Get(0) != nil {
		obligations = args.Get(0).([]domain.MonthlyObligation)
	}
	return obligations, args.Error(1)
}

func (m *MockObligationRepository) FindUnpaidObligations(ctx context.Context, until domain.Date) ([]domain.MonthlyObligation, error) {
	args := m.Called(ctx, until)
	var obligations []domain.MonthlyObligation
	if args.Get(0) != nil {
		obligations = args.Get(0).([]domain.MonthlyObligation)
	}
	return obligations, args.Error(1)
}

func (m *MockObligationRepository) SaveMonthlyObligations(ctx context.Context, obligations []domain.MonthlyObligation) error {
	args := m.Called(ctx, obligations)
	return args.Error(0)
}

func (m *MockObligationRepository) UpdateObligation(ctx context.Context, obligation domain.MonthlyObligation) error {
	args := m.Called(ctx, obligation)
	return args.Error(0)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	return expense, args.Error(1)
}

func (m *MockExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Expense, error) {
	args := m.Called(ctx, from, to)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) CreateReversal(ctx context.Context, reversal domain.Expense, originalID string) error {
	args := m.Called(ctx, reversal, originalID)
	return args.Error(0)
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

// --- Test Suite ---
type ObligationServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockObligationRepository
	mockExpense *MockExpenseRepository
	service     portssvc.ObligationSvcFacade
}

func (suite *ObligationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockObligationRepository)
	suite.mockExpense = new(MockExpenseRepository)
	suite.service = services.NewObligationService(suite.mockRepo, suite.mockExpense, userReaderWithRole(domain.RoleAccountant))
}

func (suite *ObligationServiceTestSuite) paymentTypes() []domain.PaymentType {
	return []domain.PaymentType{
		{PaymentTypeID: "pt-tax", Code: domain.PaymentTypeTax, SortOrder: 1},
		{PaymentTypeID: "pt-pio", Code: domain.PaymentTypePIO, SortOrder: 2},
	}
}

func (suite *ObligationServiceTestSuite) TestGetSchedule_GeneratesFullYearFromDecision() {
	ctx := context.Background()
	decision := domain.YearDecision{
		DecisionID:    uuid.NewString(),
		Year:          2024,
		PaymentTypeID: "pt-tax",
		PeriodStart:   domain.NewDate(2024, time.January, 1),
		PeriodEnd:     domain.NewDate(2024, time.December, 31),
		MonthlyAmount: decimal.NewFromInt(14500),
		PozivNaBroj:   "972411111111111",
		IsActive:      true,
	}

	suite.mockRepo.On("FindMonthlyObligations", ctx, 2024).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2024).Return([]domain.YearDecision{decision}, nil).Once()

	var saved []domain.MonthlyObligation
	suite.mockRepo.On("SaveMonthlyObligations", ctx, mock.MatchedBy(func(rows []domain.MonthlyObligation) bool {
		saved = rows
		return len(rows) == 12
	})).Return(nil).Once()
	suite.mockRepo.On("FindMonthlyObligations", ctx, 2024).Return(nil, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()

	res, err := suite.service.GetSchedule(ctx, 2024, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(res)
	suite.Equal(2024, res.Year)
	suite.Require().Len(saved, 12)
	jan := saved[0]
	suite.Equal(time.January, jan.Month)
	suite.Equal(domain.NewDate(2024, time.February, 15), jan.Deadline)
	suite.Equal("972411111111111", jan.PaymentReference)
	suite.Require().NotNil(jan.DecisionID)
	suite.Equal(decision.DecisionID, *jan.DecisionID)
	dec := saved[11]
	suite.Equal(time.December, dec.Month)
	suite.Equal(domain.NewDate(2025, time.January, 15), dec.Deadline)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestGetSchedule_CarriesPriorYearReference() {
	ctx := context.Background()
	prior := domain.YearDecision{
		DecisionID:      uuid.NewString(),
		Year:            2024,
		PaymentTypeID:   "pt-tax",
		PeriodStart:     domain.NewDate(2024, time.January, 1),
		PeriodEnd:       domain.NewDate(2024, time.December, 31),
		MonthlyAmount:   decimal.NewFromInt(14500),
		PozivNaBroj:     "972411111111111",
		PozivNaBrojNext: "972522222222222",
		IsActive:        true,
	}

	suite.mockRepo.On("FindMonthlyObligations", ctx, 2025).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2025).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2024).Return([]domain.YearDecision{prior}, nil).Once()

	var saved []domain.MonthlyObligation
	suite.mockRepo.On("SaveMonthlyObligations", ctx, mock.MatchedBy(func(rows []domain.MonthlyObligation) bool {
		saved = rows
		return len(rows) == 12
	})).Return(nil).Once()
	suite.mockRepo.On("FindMonthlyObligations", ctx, 2025).Return(nil, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()

	_, err := suite.service.GetSchedule(ctx, 2025, "")

	suite.Require().NoError(err)
	suite.Require().Len(saved, 12)
	for _, o := range saved {
		suite.Equal("972522222222222", o.PaymentReference)
		suite.Nil(o.DecisionID)
		suite.Equal(2025, o.Year)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestGetSchedule_NoDecisionNoGeneration() {
	ctx := context.Background()

	suite.mockRepo.On("FindMonthlyObligations", ctx, 2026).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2026).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2025).Return(nil, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()

	res, err := suite.service.GetSchedule(ctx, 2026, "")

	suite.Require().NoError(err)
	suite.Empty(res.Obligations)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMonthlyObligations", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestUpsertYearDecision_RepricesUnpaid() {
	ctx := context.Background()
	req := dto.UpsertYearDecisionRequest{
		Year:             2024,
		PaymentTypeID:    "pt-tax",
		PeriodStart:      domain.NewDate(2024, time.January, 1),
		PeriodEnd:        domain.NewDate(2024, time.December, 31),
		MonthlyAmount:    decimal.NewFromInt(16000),
		RecipientAccount: "840-711122843-32",
		PozivNaBroj:      "972433333333333",
	}
	paidDate := domain.NewDate(2024, time.February, 10)
	existing := []domain.MonthlyObligation{
		{ObligationID: "ob-1", Year: 2024, Month: time.January, PaymentTypeID: "pt-tax", Amount: decimal.NewFromInt(14500), PaidDate: &paidDate},
		{ObligationID: "ob-2", Year: 2024, Month: time.February, PaymentTypeID: "pt-tax", Amount: decimal.NewFromInt(14500)},
		{ObligationID: "ob-3", Year: 2024, Month: time.February, PaymentTypeID: "pt-pio", Amount: decimal.NewFromInt(9000)},
	}

	suite.mockRepo.On("UpsertYearDecision", ctx, mock.MatchedBy(func(d domain.YearDecision) bool {
		return d.Year == 2024 && d.Currency == "RSD" && d.IsActive
	})).Return(nil).Once()
	suite.mockRepo.On("FindMonthlyObligations", ctx, 2024).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.MonthlyObligation) bool {
		return o.ObligationID == "ob-2" &&
			o.Amount.Equal(decimal.NewFromInt(16000)) &&
			o.PaymentReference == "972433333333333"
	})).Return(nil).Once()

	decision, err := suite.service.UpsertYearDecision(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(decision)
	suite.Equal(decimal.NewFromInt(16000), decision.MonthlyAmount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestUpsertYearDecision_InvertedPeriod() {
	ctx := context.Background()
	req := dto.UpsertYearDecisionRequest{
		Year:          2024,
		PaymentTypeID: "pt-tax",
		PeriodStart:   domain.NewDate(2024, time.June, 1),
		PeriodEnd:     domain.NewDate(2024, time.January, 31),
		MonthlyAmount: decimal.NewFromInt(16000),
	}

	decision, err := suite.service.UpsertYearDecision(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(decision)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertYearDecision", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestMarkObligationPaid_BooksTaxExpense() {
	ctx := context.Background()
	obligation := &domain.MonthlyObligation{
		ObligationID:     "ob-7",
		Year:             2024,
		Month:            time.March,
		PaymentTypeID:    "pt-pio",
		Amount:           decimal.NewFromInt(9000),
		Deadline:         domain.NewDate(2024, time.April, 15),
		PaymentReference: "972444444444444",
	}
	req := dto.MarkObligationPaidRequest{PaidDate: domain.NewDate(2024, time.April, 10), Note: "izvod 71"}

	suite.mockRepo.On("FindObligationByID", ctx, "ob-7").Return(obligation, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()
	suite.mockExpense.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Source == domain.SourceObligation &&
			e.IsTaxRelated &&
			e.Category == "taxes" &&
			e.Amount.Equal(decimal.NewFromInt(9000)) &&
			e.BankReference == "972444444444444" &&
			e.Description == "Tax installment pio 2024-03"
	})).Return(nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.MonthlyObligation) bool {
		return o.ObligationID == "ob-7" && o.PaidDate != nil && o.ExpenseID != nil && o.Note == "izvod 71"
	})).Return(nil).Once()

	updated, err := suite.service.MarkObligationPaid(ctx, "ob-7", req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.PaidDate)
	suite.True(updated.PaidDate.Equal(req.PaidDate))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockExpense.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestMarkObligationPaid_AlreadyPaid() {
	ctx := context.Background()
	paid := domain.NewDate(2024, time.April, 1)
	obligation := &domain.MonthlyObligation{ObligationID: "ob-8", PaidDate: &paid}

	suite.mockRepo.On("FindObligationByID", ctx, "ob-8").Return(obligation, nil).Once()

	updated, err := suite.service.MarkObligationPaid(ctx, "ob-8", dto.MarkObligationPaidRequest{PaidDate: domain.NewDate(2024, time.April, 10)}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockExpense.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestMarkObligationPaid_ObserverForbidden() {
	ctx := context.Background()
	svc := services.NewObligationService(suite.mockRepo, suite.mockExpense, userReaderWithRole(domain.RoleObserver))

	updated, err := svc.MarkObligationPaid(ctx, "ob-9", dto.MarkObligationPaidRequest{PaidDate: domain.NewDate(2024, time.April, 10)}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindObligationByID", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestGetSchedule_FiltersByPaymentType() {
	ctx := context.Background()
	existing := []domain.MonthlyObligation{
		{ObligationID: "ob-1", Year: 2024, Month: time.January, PaymentTypeID: "pt-tax", Amount: decimal.NewFromInt(14500), Deadline: domain.NewDate(2024, time.February, 15)},
		{ObligationID: "ob-2", Year: 2024, Month: time.January, PaymentTypeID: "pt-pio", Amount: decimal.NewFromInt(9000), Deadline: domain.NewDate(2024, time.February, 15)},
	}

	suite.mockRepo.On("FindMonthlyObligations", ctx, 2024).Return(existing, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2024).Return(nil, nil).Once()
	suite.mockRepo.On("FindYearDecisions", ctx, 2023).Return(nil, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()

	res, err := suite.service.GetSchedule(ctx, 2024, "pio")

	suite.Require().NoError(err)
	suite.Require().Len(res.Obligations, 1)
	suite.Equal("ob-2", res.Obligations[0].ObligationID)
	suite.Equal("pio", res.Obligations[0].PaymentTypeCode)
	suite.True(res.TotalDue.Equal(decimal.NewFromInt(9000)))
}

func (suite *ObligationServiceTestSuite) TestMarkObligationUnpaid_ReversesBookedExpense() {
	ctx := context.Background()
	paidDate := domain.NewDate(2024, time.April, 10)
	expenseID := "exp-20"
	obligation := &domain.MonthlyObligation{
		ObligationID:  "ob-20",
		Year:          2024,
		Month:         time.March,
		PaymentTypeID: "pt-tax",
		Amount:        decimal.NewFromInt(14500),
		PaidDate:      &paidDate,
		ExpenseID:     &expenseID,
	}
	booked := &domain.Expense{
		ExpenseID:    expenseID,
		Date:         paidDate,
		Description:  "Tax installment tax 2024-03",
		Amount:       decimal.NewFromInt(14500),
		Currency:     "RSD",
		Category:     "taxes",
		Status:       domain.ExpensePaid,
		IsTaxRelated: true,
		Source:       domain.SourceObligation,
		PaidDate:     &paidDate,
	}

	suite.mockRepo.On("FindObligationByID", ctx, "ob-20").Return(obligation, nil).Once()
	suite.mockExpense.On("FindExpenseByID", ctx, expenseID).Return(booked, nil).Once()
	suite.mockExpense.On("CreateReversal", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Amount.Equal(decimal.NewFromInt(-14500)) &&
			e.Date.Equal(paidDate) &&
			e.Status == domain.ExpenseReversed &&
			e.ReversalOfID != nil && *e.ReversalOfID == expenseID
	}), expenseID).Return(nil).Once()
	suite.mockRepo.On("UpdateObligation", ctx, mock.MatchedBy(func(o domain.MonthlyObligation) bool {
		return o.ObligationID == "ob-20" && o.PaidDate == nil && o.ExpenseID == nil
	})).Return(nil).Once()

	updated, err := suite.service.MarkObligationUnpaid(ctx, "ob-20", uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(updated.PaidDate)
	suite.Nil(updated.ExpenseID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockExpense.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestMarkObligationUnpaid_NotPaid() {
	ctx := context.Background()
	obligation := &domain.MonthlyObligation{ObligationID: "ob-21"}

	suite.mockRepo.On("FindObligationByID", ctx, "ob-21").Return(obligation, nil).Once()

	updated, err := suite.service.MarkObligationUnpaid(ctx, "ob-21", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockExpense.AssertNotCalled(suite.T(), "CreateReversal", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateObligation", mock.Anything, mock.Anything)
}

func (suite *ObligationServiceTestSuite) TestMarkObligationUnpaid_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindObligationByID", ctx, "missing").Return(nil, nil).Once()

	updated, err := suite.service.MarkObligationUnpaid(ctx, "missing", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ObligationServiceTestSuite) TestPaymentInstructions_FromDecision() {
	ctx := context.Background()
	decisionID := uuid.NewString()
	obligation := &domain.MonthlyObligation{
		ObligationID:     "ob-10",
		Year:             2024,
		Month:            time.May,
		PaymentTypeID:    "pt-tax",
		DecisionID:       &decisionID,
		Amount:           decimal.NewFromInt(14500),
		Deadline:         domain.NewDate(2024, time.June, 15),
		PaymentReference: "972455555555555",
	}
	decision := &domain.YearDecision{
		DecisionID:       decisionID,
		RecipientName:    "Republika Srbija",
		RecipientAccount: "840-711122843-32",
		SifraPlacanja:    "253",
		PaymentPurpose:   "Porez na prihode za YYYY",
	}

	suite.mockRepo.On("FindObligationByID", ctx, "ob-10").Return(obligation, nil).Once()
	suite.mockRepo.On("FindPaymentTypes", ctx).Return(suite.paymentTypes(), nil).Once()
	suite.mockRepo.On("FindDecisionByID", ctx, decisionID).Return(decision, nil).Once()

	res, err := suite.service.PaymentInstructions(ctx, "ob-10")

	suite.Require().NoError(err)
	suite.Equal("tax", res.PaymentTypeCode)
	suite.Equal("Republika Srbija", res.RecipientName)
	suite.Equal("840-711122843-32", res.RecipientAccount)
	suite.Equal("97", res.Model)
	suite.Equal("972455555555555", res.PozivNaBroj)
	suite.Equal("Porez na prihode za 2024", res.PaymentPurpose)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ObligationServiceTestSuite) TestPaymentInstructions_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindObligationByID", ctx, "missing").Return(nil, nil).Once()

	res, err := suite.service.PaymentInstructions(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(res)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestObligationService(t *testing.T) {
	suite.Run(t, new(ObligationServiceTestSuite))
}
