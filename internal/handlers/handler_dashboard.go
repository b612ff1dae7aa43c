package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
)

// dashboardHandler handles HTTP requests for the landing-page snapshot.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the dashboard route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)

	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Dashboard snapshot
// @Description Current month figures, year-to-date turnover against the annual limits, receivables and upcoming payments.
// @Tags dashboard
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
			return
		}
		year = parsed
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), year)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
