package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// contractHandler handles HTTP requests related to contracts.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
}

func newContractHandler(cs portssvc.ContractSvcFacade) *contractHandler {
	return &contractHandler{contractService: cs}
}

// registerContractRoutes registers all contract-related routes.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade) {
	h := newContractHandler(contractService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:id", h.getContract)
		contracts.PUT("/:id", h.updateContract)
	}
}

// createContract godoc
// @Summary Register a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to create contract")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

// listContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param clientID query string false "Filter by client"
// @Param status query string false "Filter by status" Enums(active, completed, cancelled)
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	var params dto.ListContractsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	contracts, err := h.contractService.ListContracts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list contracts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListContractsResponse(contracts))
}

// getContract godoc
// @Summary Get a contract by ID
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	contract, err := h.contractService.GetContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// updateContract godoc
// @Summary Update a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body dto.UpdateContractRequest true "Fields to update"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *contractHandler) updateContract(c *gin.Context) {
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.UpdateContract(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}
