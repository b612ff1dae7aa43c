package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// enterpriseHandler handles HTTP requests for the business profile.
type enterpriseHandler struct {
	enterpriseService portssvc.EnterpriseSvcFacade
}

func newEnterpriseHandler(es portssvc.EnterpriseSvcFacade) *enterpriseHandler {
	return &enterpriseHandler{enterpriseService: es}
}

// registerEnterpriseRoutes registers the business profile routes.
func registerEnterpriseRoutes(rg *gin.RouterGroup, enterpriseService portssvc.EnterpriseSvcFacade) {
	h := newEnterpriseHandler(enterpriseService)

	enterprise := rg.Group("/enterprise")
	{
		enterprise.GET("", h.getEnterprise)
		enterprise.PUT("", h.updateEnterprise)
	}
}

// getEnterprise godoc
// @Summary Get the business profile
// @Tags enterprise
// @Produce json
// @Success 200 {object} dto.EnterpriseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise [get]
func (h *enterpriseHandler) getEnterprise(c *gin.Context) {
	enterprise, err := h.enterpriseService.GetEnterprise(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve business profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnterpriseResponse(enterprise))
}

// updateEnterprise godoc
// @Summary Update the business profile
// @Tags enterprise
// @Accept json
// @Produce json
// @Param enterprise body dto.UpdateEnterpriseRequest true "Fields to update"
// @Success 200 {object} dto.EnterpriseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise [put]
func (h *enterpriseHandler) updateEnterprise(c *gin.Context) {
	var req dto.UpdateEnterpriseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	enterprise, err := h.enterpriseService.UpdateEnterprise(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update business profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToEnterpriseResponse(enterprise))
}
