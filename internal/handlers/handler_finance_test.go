package handlers

import (
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

	"github.com/prospel/prospel_backend/internal/core/domain"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/prospel/prospel_backend/internal/dto"
	"github.com/prospel/prospel_backend/internal/middleware"
	"github.com/prospel/prospel_backend/internal/utils"
)

// --- Mock FinanceService ---
type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) Summary(ctx context.Context, params dto.FinanceQueryParams) (*reporting.Summary, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.Summary), args.Error(1)
}

func (m *MockFinanceService) AR(ctx context.Context) (*reporting.ARReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ARReport), args.Error(1)
}

func (m *MockFinanceService) Cashflow(ctx context.Context, params dto.CashflowQueryParams) (*reporting.CashflowReport, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.CashflowReport), args.Error(1)
}

func (m *MockFinanceService) ByProject(ctx context.Context, params dto.ByProjectQueryParams) (*reporting.ProjectAllocation, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ProjectAllocation), args.Error(1)
}

var _ portssvc.FinanceSvcFacade = (*MockFinanceService)(nil)

// --- Test Suite ---
type FinanceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockFinanceService
	jwtSecret   string
	userID      string
}

func (suite *FinanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router = gin.New()
	suite.mockService = new(MockFinanceService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerFinanceRoutes(v1, suite.mockService)
}

func (suite *FinanceHandlerTestSuite) doGet(path string) *httptest.ResponseRecorder {
	token, err := utils.GenerateJWT(suite.userID, suite.jwtSecret, time.Hour, "prospel-test")
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *FinanceHandlerTestSuite) TestGetCashflow_Success() {
	report := &reporting.CashflowReport{
		Period: reporting.Period{
			From: domain.NewDate(2024, time.January, 1),
			To:   domain.NewDate(2024, time.March, 31),
		},
		GroupBy:            reporting.GroupByMonth,
		OpeningCashBalance: decimal.NewFromInt(50000),
		Series: []reporting.CashflowPoint{
			{Period: "2024-01", Opening: decimal.NewFromInt(50000), Inflow: decimal.NewFromInt(120000), Closing: decimal.NewFromInt(170000)},
		},
	}

	suite.mockService.On("Cashflow", mock.Anything, dto.CashflowQueryParams{
		From:    "2024-01-01",
		To:      "2024-03-31",
		GroupBy: "month",
	}).Return(report, nil).Once()

	w := suite.doGet("/api/v1/finance/cashflow?from=2024-01-01&to=2024-03-31")

	suite.Equal(http.StatusOK, w.Code)
	var res map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("50000", res["opening_cash_balance"])
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestGetCashflow_MissingBounds() {
	w := suite.doGet("/api/v1/finance/cashflow?from=2024-01-01")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Cashflow")
}

func (suite *FinanceHandlerTestSuite) TestGetSummary_Route() {
	summary := &reporting.Summary{GroupBy: reporting.GroupByMonth, Mode: reporting.ModeBoth}
	suite.mockService.On("Summary", mock.Anything, mock.Anything).Return(summary, nil).Once()

	w := suite.doGet("/api/v1/finance/summary")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestFinanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceHandlerTestSuite))
}
