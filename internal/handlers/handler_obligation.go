package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prospel/prospel_backend/internal/core/domain"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// obligationHandler handles HTTP requests related to tax obligations.
type obligationHandler struct {
	obligationService portssvc.ObligationSvcFacade
}

func newObligationHandler(os portssvc.ObligationSvcFacade) *obligationHandler {
	return &obligationHandler{obligationService: os}
}

// registerObligationRoutes registers all tax-obligation routes.
func registerObligationRoutes(rg *gin.RouterGroup, obligationService portssvc.ObligationSvcFacade) {
	h := newObligationHandler(obligationService)

	rg.GET("/payment-types", h.listPaymentTypes)

	obligations := rg.Group("/obligations")
	{
		obligations.GET("/decisions/:year", h.listYearDecisions)
		obligations.PUT("/decisions", h.upsertYearDecision)
		obligations.GET("/calendar", h.getCalendar)
		obligations.POST("/:id/mark-paid", h.markObligationPaid)
		obligations.POST("/:id/mark-unpaid", h.markObligationUnpaid)
		obligations.GET("/:id/payment-instructions", h.paymentInstructions)
	}
}

// listPaymentTypes godoc
// @Summary List mandatory payment types
// @Tags obligations
// @Produce json
// @Success 200 {array} dto.PaymentTypeResponse
// @Security BearerAuth
// @Router /payment-types [get]
func (h *obligationHandler) listPaymentTypes(c *gin.Context) {
	types, err := h.obligationService.ListPaymentTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list payment types")
		return
	}

	res := make([]dto.PaymentTypeResponse, len(types))
	for i, pt := range types {
		res[i] = dto.ToPaymentTypeResponse(&pt)
	}
	c.JSON(http.StatusOK, res)
}

// listYearDecisions godoc
// @Summary List active tax assessments for a year
// @Tags obligations
// @Produce json
// @Param year path int true "Year"
// @Success 200 {array} dto.YearDecisionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/decisions/{year} [get]
func (h *obligationHandler) listYearDecisions(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return
	}

	decisions, err := h.obligationService.ListYearDecisions(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to list year decisions")
		return
	}

	res := make([]dto.YearDecisionResponse, len(decisions))
	for i, d := range decisions {
		res[i] = dto.ToYearDecisionResponse(&d)
	}
	c.JSON(http.StatusOK, res)
}

// upsertYearDecision godoc
// @Summary Record a yearly tax assessment
// @Description Records the tax administration's decision for one payment type and year, repricing unpaid installments.
// @Tags obligations
// @Accept json
// @Produce json
// @Param decision body dto.UpsertYearDecisionRequest true "Assessment details"
// @Success 200 {object} dto.YearDecisionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/decisions [put]
func (h *obligationHandler) upsertYearDecision(c *gin.Context) {
	var req dto.UpsertYearDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	decision, err := h.obligationService.UpsertYearDecision(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to record year decision")
		return
	}
	c.JSON(http.StatusOK, dto.ToYearDecisionResponse(decision))
}

// getCalendar godoc
// @Summary Get the installment calendar for a year
// @Description Returns the year's installments, generating missing months from the active decisions on first access.
// @Tags obligations
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Param paymentType query string false "Filter by payment type code" Enums(tax, pio, health, unemployment)
// @Success 200 {object} dto.ObligationScheduleResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/calendar [get]
func (h *obligationHandler) getCalendar(c *gin.Context) {
	year := domain.Today().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
			return
		}
		year = parsed
	}

	schedule, err := h.obligationService.GetSchedule(c.Request.Context(), year, c.Query("paymentType"))
	if err != nil {
		respondError(c, err, "Failed to build obligation calendar")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// markObligationPaid godoc
// @Summary Record the payment of an installment
// @Description Marks one installment paid and books the matching tax expense row.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param payment body dto.MarkObligationPaidRequest true "Payment details"
// @Success 200 {object} dto.MonthlyObligationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/mark-paid [post]
func (h *obligationHandler) markObligationPaid(c *gin.Context) {
	var req dto.MarkObligationPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	obligation, err := h.obligationService.MarkObligationPaid(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to mark obligation paid")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyObligationResponse(obligation, "", domain.Today()))
}

// markObligationUnpaid godoc
// @Summary Withdraw the payment of an installment
// @Description Clears the paid state and reverses the booked tax expense with a storno row.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.MonthlyObligationResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/mark-unpaid [post]
func (h *obligationHandler) markObligationUnpaid(c *gin.Context) {
	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	obligation, err := h.obligationService.MarkObligationUnpaid(c.Request.Context(), c.Param("id"), requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to mark obligation unpaid")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyObligationResponse(obligation, "", domain.Today()))
}

// paymentInstructions godoc
// @Summary Get payment slip fields for an installment
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.PaymentInstructionsResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /obligations/{id}/payment-instructions [get]
func (h *obligationHandler) paymentInstructions(c *gin.Context) {
	instructions, err := h.obligationService.PaymentInstructions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build payment instructions")
		return
	}
	c.JSON(http.StatusOK, instructions)
}
