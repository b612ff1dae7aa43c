package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prospel/prospel_backend/internal/apperrors"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// incomeHandler handles HTTP requests related to the income book.
type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(is portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{incomeService: is}
}

// registerIncomeRoutes registers all income-book routes.
func registerIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade) {
	h := newIncomeHandler(incomeService)

	incomes := rg.Group("/incomes")
	{
		incomes.POST("", h.createIncome)
		incomes.GET("", h.listIncomes)
		incomes.GET("/next-number", h.nextInvoiceNumber)
		incomes.GET("/:id", h.getIncome)
		incomes.PUT("/:id", h.updateIncome)
		incomes.POST("/:id/mark-paid", h.markIncomePaid)
		incomes.POST("/:id/cancel", h.cancelIncome)
	}
}

// createIncome godoc
// @Summary Record an issued invoice
// @Description Records an invoice in the income book. When invoiceNumber is omitted the next YYYY-NNNN number is allocated.
// @Tags incomes
// @Accept json
// @Produce json
// @Param income body dto.CreateIncomeRequest true "Invoice details"
// @Success 201 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [post]
func (h *incomeHandler) createIncome(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	income, err := h.incomeService.CreateIncome(c.Request.Context(), req, requestingUserID)
	if err != nil {
		// A taken invoice number gets a recovery hint: the next free one.
		if errors.Is(err, apperrors.ErrDuplicate) {
			res := gin.H{"error": err.Error()}
			if next, nerr := h.incomeService.NextInvoiceNumber(c.Request.Context(), req.IssuedDate.Year()); nerr == nil {
				res["suggestedInvoiceNumber"] = next
			}
			c.JSON(http.StatusConflict, res)
			return
		}
		respondError(c, err, "Failed to record income")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomeResponse(income))
}

// listIncomes godoc
// @Summary List invoices
// @Tags incomes
// @Produce json
// @Param from query string false "Issued from (YYYY-MM-DD)"
// @Param to query string false "Issued to (YYYY-MM-DD)"
// @Param status query string false "Filter by status" Enums(issued, paid, cancelled)
// @Param clientID query string false "Filter by client"
// @Param projectID query string false "Filter by project"
// @Param year query int false "Filter by invoice year"
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListIncomesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes [get]
func (h *incomeHandler) listIncomes(c *gin.Context) {
	var params dto.ListIncomesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	incomes, err := h.incomeService.ListIncomes(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list incomes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListIncomesResponse(incomes))
}

// nextInvoiceNumber godoc
// @Summary Preview the next invoice number
// @Description Returns the next YYYY-NNNN number for the year without consuming it.
// @Tags incomes
// @Produce json
// @Param year query int false "Invoice year, defaults to the current year"
// @Success 200 {object} dto.NextInvoiceNumberResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/next-number [get]
func (h *incomeHandler) nextInvoiceNumber(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
			return
		}
		year = parsed
	}

	number, err := h.incomeService.NextInvoiceNumber(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to determine next invoice number")
		return
	}
	c.JSON(http.StatusOK, dto.NextInvoiceNumberResponse{Year: year, InvoiceNumber: number})
}

// getIncome godoc
// @Summary Get an invoice by ID
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [get]
func (h *incomeHandler) getIncome(c *gin.Context) {
	income, err := h.incomeService.GetIncomeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// updateIncome godoc
// @Summary Update an invoice
// @Description Updates an invoice that has not been paid or cancelled.
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param income body dto.UpdateIncomeRequest true "Fields to update"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id} [put]
func (h *incomeHandler) updateIncome(c *gin.Context) {
	var req dto.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	income, err := h.incomeService.UpdateIncome(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// markIncomePaid godoc
// @Summary Record the collection of an invoice
// @Tags incomes
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param payment body dto.MarkIncomePaidRequest true "Payment details"
// @Success 200 {object} dto.IncomeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id}/mark-paid [post]
func (h *incomeHandler) markIncomePaid(c *gin.Context) {
	var req dto.MarkIncomePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	income, err := h.incomeService.MarkIncomePaid(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to mark income paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}

// cancelIncome godoc
// @Summary Cancel an invoice
// @Description Voids an unpaid invoice. The number stays in the book for continuity.
// @Tags incomes
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} dto.IncomeResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /incomes/{id}/cancel [post]
func (h *incomeHandler) cancelIncome(c *gin.Context) {
	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	income, err := h.incomeService.CancelIncome(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to cancel income")
		return
	}
	c.JSON(http.StatusOK, dto.ToIncomeResponse(income))
}
