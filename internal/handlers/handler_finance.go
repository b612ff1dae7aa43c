package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// financeHandler handles HTTP requests for the financial report views.
type financeHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{financeService: fs}
}

// registerFinanceRoutes registers all finance report routes.
func registerFinanceRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(financeService)

	finance := rg.Group("/finance")
	{
		finance.GET("/summary", h.getSummary)
		finance.GET("/ar", h.getAR)
		finance.GET("/cashflow", h.getCashflow)
		finance.GET("/by-project", h.getByProject)
	}
}

// getSummary godoc
// @Summary Financial summary over a period
// @Description Buckets income and expense rows over the period in cash, accrual or both recognition modes.
// @Tags finance
// @Produce json
// @Param quickRange query string false "Period quick-select" Enums(month, quarter, year, custom) default(month)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Param groupBy query string false "Bucket granularity" Enums(day, month, year) default(month)
// @Param mode query string false "Recognition mode" Enums(cash, accrual, both) default(both)
// @Success 200 {object} reporting.Summary
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *financeHandler) getSummary(c *gin.Context) {
	var params dto.FinanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.financeService.Summary(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to build finance summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getAR godoc
// @Summary Accounts-receivable aging
// @Description Buckets outstanding invoices by days overdue per client.
// @Tags finance
// @Produce json
// @Success 200 {object} reporting.ARReport
// @Security BearerAuth
// @Router /finance/ar [get]
func (h *financeHandler) getAR(c *gin.Context) {
	report, err := h.financeService.AR(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build AR report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashflow godoc
// @Summary Cash-flow chain over a period
// @Description Chains opening + inflow - outflow = closing per bucket, starting from the enterprise opening cash balance.
// @Tags finance
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param groupBy query string false "Bucket granularity" Enums(day, month, year) default(month)
// @Success 200 {object} reporting.CashflowReport
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/cashflow [get]
func (h *financeHandler) getCashflow(c *gin.Context) {
	var params dto.CashflowQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.financeService.Cashflow(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to build cash-flow report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getByProject godoc
// @Summary Per-project profitability
// @Description Attributes the period's income and expense rows to projects.
// @Tags finance
// @Produce json
// @Param quickRange query string false "Period quick-select" Enums(month, quarter, year, custom) default(month)
// @Param from query string false "Custom period start (YYYY-MM-DD)"
// @Param to query string false "Custom period end (YYYY-MM-DD)"
// @Param mode query string false "Recognition mode" Enums(cash, accrual) default(accrual)
// @Success 200 {object} reporting.ProjectAllocation
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/by-project [get]
func (h *financeHandler) getByProject(c *gin.Context) {
	var params dto.ByProjectQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.financeService.ByProject(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to build per-project report")
		return
	}
	c.JSON(http.StatusOK, report)
}
