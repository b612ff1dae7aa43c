package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prospel/prospel_backend/internal/core/domain"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// plannedExpenseHandler handles HTTP requests for recurring costs.
type plannedExpenseHandler struct {
	plannedExpenseService portssvc.PlannedExpenseSvcFacade
}

func newPlannedExpenseHandler(ps portssvc.PlannedExpenseSvcFacade) *plannedExpenseHandler {
	return &plannedExpenseHandler{plannedExpenseService: ps}
}

// registerPlannedExpenseRoutes registers all recurring-cost routes.
func registerPlannedExpenseRoutes(rg *gin.RouterGroup, plannedExpenseService portssvc.PlannedExpenseSvcFacade) {
	h := newPlannedExpenseHandler(plannedExpenseService)

	planned := rg.Group("/planned-expenses")
	{
		planned.POST("", h.createPlannedExpense)
		planned.GET("", h.listPlannedExpenses)
		planned.GET("/occurrences", h.listOccurrences)
		planned.GET("/upcoming", h.listUpcoming)
		planned.GET("/:id", h.getPlannedExpense)
		planned.PUT("/:id", h.updatePlannedExpense)
		planned.DELETE("/:id", h.deletePlannedExpense)
		planned.POST("/:id/mark-paid", h.markOccurrencePaid)
		planned.POST("/:id/mark-unpaid", h.markOccurrenceUnpaid)
	}
}

// createPlannedExpense godoc
// @Summary Register a recurring cost schedule
// @Tags planned-expenses
// @Accept json
// @Produce json
// @Param plannedExpense body dto.CreatePlannedExpenseRequest true "Schedule details"
// @Success 201 {object} dto.PlannedExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses [post]
func (h *plannedExpenseHandler) createPlannedExpense(c *gin.Context) {
	var req dto.CreatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	plannedExpense, err := h.plannedExpenseService.CreatePlannedExpense(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to create planned expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlannedExpenseResponse(plannedExpense))
}

// listPlannedExpenses godoc
// @Summary List recurring cost schedules
// @Tags planned-expenses
// @Produce json
// @Param activeOnly query bool false "Only active schedules" default(false)
// @Success 200 {array} dto.PlannedExpenseResponse
// @Security BearerAuth
// @Router /planned-expenses [get]
func (h *plannedExpenseHandler) listPlannedExpenses(c *gin.Context) {
	activeOnly := c.Query("activeOnly") == "true"

	items, err := h.plannedExpenseService.ListPlannedExpenses(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "Failed to list planned expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPlannedExpensesResponse(items))
}

// listOccurrences godoc
// @Summary List generated due dates
// @Description Expands active schedules into concrete due dates inside the window. Defaults to the current month.
// @Tags planned-expenses
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.ListOccurrencesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/occurrences [get]
func (h *plannedExpenseHandler) listOccurrences(c *gin.Context) {
	var params dto.ListOccurrencesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	today := domain.Today()
	from := domain.FirstDayOfMonth(today.Year(), today.Month())
	to := domain.LastDayOfMonth(today.Year(), today.Month())
	if params.From != "" {
		parsed, err := domain.ParseDate(params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date"})
			return
		}
		from = parsed
	}
	if params.To != "" {
		parsed, err := domain.ParseDate(params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date"})
			return
		}
		to = parsed
	}

	occurrences, err := h.plannedExpenseService.ListOccurrences(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to list occurrences")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOccurrencesResponse(occurrences, today))
}

// listUpcoming godoc
// @Summary List due dates coming up
// @Description Occurrences due within the next N days, unpaid ones summed.
// @Tags planned-expenses
// @Produce json
// @Param days query int false "Lookahead window in days" default(7)
// @Success 200 {object} dto.ListOccurrencesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/upcoming [get]
func (h *plannedExpenseHandler) listUpcoming(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid days"})
			return
		}
		days = parsed
	}

	today := domain.Today()
	occurrences, err := h.plannedExpenseService.ListOccurrences(c.Request.Context(), today, today.AddDays(days))
	if err != nil {
		respondError(c, err, "Failed to list upcoming occurrences")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOccurrencesResponse(occurrences, today))
}

// getPlannedExpense godoc
// @Summary Get a recurring cost schedule by ID
// @Tags planned-expenses
// @Produce json
// @Param id path string true "Planned expense ID"
// @Success 200 {object} dto.PlannedExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/{id} [get]
func (h *plannedExpenseHandler) getPlannedExpense(c *gin.Context) {
	plannedExpense, err := h.plannedExpenseService.GetPlannedExpenseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve planned expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannedExpenseResponse(plannedExpense))
}

// updatePlannedExpense godoc
// @Summary Update a recurring cost schedule
// @Tags planned-expenses
// @Accept json
// @Produce json
// @Param id path string true "Planned expense ID"
// @Param plannedExpense body dto.UpdatePlannedExpenseRequest true "Fields to update"
// @Success 200 {object} dto.PlannedExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/{id} [put]
func (h *plannedExpenseHandler) updatePlannedExpense(c *gin.Context) {
	var req dto.UpdatePlannedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	plannedExpense, err := h.plannedExpenseService.UpdatePlannedExpense(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update planned expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlannedExpenseResponse(plannedExpense))
}

// markOccurrencePaid godoc
// @Summary Record the payment of one due date
// @Description Settles one generated occurrence and books the matching expense row. Paying the same due date twice is rejected.
// @Tags planned-expenses
// @Accept json
// @Produce json
// @Param id path string true "Planned expense ID"
// @Param payment body dto.MarkOccurrencePaidRequest true "Payment details"
// @Success 201 {object} domain.OccurrencePayment
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/{id}/mark-paid [post]
func (h *plannedExpenseHandler) markOccurrencePaid(c *gin.Context) {
	var req dto.MarkOccurrencePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	payment, err := h.plannedExpenseService.MarkOccurrencePaid(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to mark occurrence paid")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// markOccurrenceUnpaid godoc
// @Summary Withdraw the payment of one due date
// @Description Reverses the booked expense with a storno row and removes the settlement record.
// @Tags planned-expenses
// @Accept json
// @Produce json
// @Param id path string true "Planned expense ID"
// @Param payment body dto.MarkOccurrenceUnpaidRequest true "Due date to unmark"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/{id}/mark-unpaid [post]
func (h *plannedExpenseHandler) markOccurrenceUnpaid(c *gin.Context) {
	var req dto.MarkOccurrenceUnpaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.plannedExpenseService.MarkOccurrenceUnpaid(c.Request.Context(), c.Param("id"), req, requestingUserID); err != nil {
		respondError(c, err, "Failed to mark occurrence unpaid")
		return
	}
	c.Status(http.StatusNoContent)
}

// deletePlannedExpense godoc
// @Summary Delete a recurring cost schedule
// @Description Removes the schedule and its settlement records. Booked expense rows stay in the ledger.
// @Tags planned-expenses
// @Produce json
// @Param id path string true "Planned expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /planned-expenses/{id} [delete]
func (h *plannedExpenseHandler) deletePlannedExpense(c *gin.Context) {
	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.plannedExpenseService.DeletePlannedExpense(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete planned expense")
		return
	}
	c.Status(http.StatusNoContent)
}
