package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers all expense-related routes.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.POST("/:id/mark-paid", h.markExpensePaid)
		expenses.POST("/:id/reverse", h.reverseExpense)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to record expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param status query string false "Filter by status" Enums(planned, paid, reversed)
// @Param category query string false "Filter by category"
// @Param projectID query string false "Filter by project"
// @Param includeReversals query bool false "Include storno rows and reversed rows" default(true)
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Updates an expense that is neither a reversal nor reversed.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// markExpensePaid godoc
// @Summary Record the settlement of an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param payment body dto.MarkExpensePaidRequest true "Payment details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/mark-paid [post]
func (h *expenseHandler) markExpensePaid(c *gin.Context) {
	var req dto.MarkExpensePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.MarkExpensePaid(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to mark expense paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// reverseExpense godoc
// @Summary Reverse an expense
// @Description Creates the storno row with the negated amount and links both rows. An expense can be reversed once.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param reversal body dto.ReverseExpenseRequest true "Reversal details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{id}/reverse [post]
func (h *expenseHandler) reverseExpense(c *gin.Context) {
	var req dto.ReverseExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	reversal, err := h.expenseService.ReverseExpense(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to reverse expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(reversal))
}
