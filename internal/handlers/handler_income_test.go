package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
	"github.com/prospel/prospel_backend/internal/middleware"
	"github.com/prospel/prospel_backend/internal/utils"
)

// --- Mock IncomeService ---
type MockIncomeService struct {
	mock.Mock
}

func (m *MockIncomeService) GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.Income, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

func (m *MockIncomeService) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	args := m.Called(ctx, year)
	return args.String(0), args.Error(1)
}

func (m *MockIncomeService) CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, requestingUserID string) (*domain.Income, error) {
	args := m.Called(ctx, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, requestingUserID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) MarkIncomePaid(ctx context.Context, incomeID string, req dto.MarkIncomePaidRequest, requestingUserID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeService) CancelIncome(ctx context.Context, incomeID string, requestingUserID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

var _ portssvc.IncomeSvcFacade = (*MockIncomeService)(nil)

// --- Test Suite ---
type IncomeHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockIncomeService
	jwtSecret   string
	userID      string
}

func (suite *IncomeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	suite.mockService = new(MockIncomeService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerIncomeRoutes(v1, suite.mockService)
}

func (suite *IncomeHandlerTestSuite) authHeader() string {
	token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, time.Hour, "prospel-test")
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *IncomeHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeader())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IncomeHandlerTestSuite) TestCreateIncome_Success() {
	issued := domain.NewDate(2024, time.March, 5)
	income := &domain.Income{
		IncomeID:      uuid.NewString(),
		IssuedDate:    issued,
		InvoiceNumber: "2024-0007",
		InvoiceYear:   2024,
		ClientName:    "Acme d.o.o.",
		AmountRSD:     decimal.NewFromInt(120000),
		Currency:      "RSD",
		Status:        domain.IncomeIssued,
	}

	suite.mockService.On("CreateIncome",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateIncomeRequest) bool {
			return req.ClientName == "Acme d.o.o." && req.AmountRSD.Equal(decimal.NewFromInt(120000))
		}),
		suite.userID,
	).Return(income, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/incomes", gin.H{
		"issuedDate": "2024-03-05",
		"clientName": "Acme d.o.o.",
		"amountRSD":  "120000",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.IncomeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("2024-0007", res.InvoiceNumber)
	suite.Equal(domain.IncomeIssued, res.Status)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *IncomeHandlerTestSuite) TestCreateIncome_DuplicateNumber() {
	suite.mockService.On("CreateIncome", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.ErrDuplicate).Once()
	suite.mockService.On("NextInvoiceNumber", mock.Anything, 2024).
		Return("2024-0008", nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/incomes", gin.H{
		"issuedDate":    "2024-03-05",
		"invoiceNumber": "2024-0007",
		"amountRSD":     "1000",
	})

	suite.Equal(http.StatusConflict, w.Code)
	var res map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("2024-0008", res["suggestedInvoiceNumber"])
}

func (suite *IncomeHandlerTestSuite) TestCreateIncome_NoToken() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/incomes", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateIncome")
}

func (suite *IncomeHandlerTestSuite) TestGetIncome_NotFound() {
	suite.mockService.On("GetIncomeByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/incomes/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IncomeHandlerTestSuite) TestNextInvoiceNumber() {
	suite.mockService.On("NextInvoiceNumber", mock.Anything, 2025).
		Return("2025-0012", nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/incomes/next-number?year=2025", nil)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.NextInvoiceNumberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(2025, res.Year)
	suite.Equal("2025-0012", res.InvoiceNumber)
}

func (suite *IncomeHandlerTestSuite) TestMarkIncomePaid_AlreadyPaid() {
	suite.mockService.On("MarkIncomePaid", mock.Anything, "inc-1", mock.Anything, suite.userID).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/incomes/inc-1/mark-paid", gin.H{
		"paidDate": "2024-04-01",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *IncomeHandlerTestSuite) TestListIncomes_BadStatus() {
	w := suite.doRequest(http.MethodGet, "/api/v1/incomes?status=bogus", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListIncomes")
}

func TestIncomeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(IncomeHandlerTestSuite))
}
