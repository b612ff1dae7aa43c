package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// clientHandler handles HTTP requests related to the client register.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers all client-related routes.
func registerClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade) {
	h := newClientHandler(clientService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listClients)
		clients.GET("/:id", h.getClient)
		clients.PUT("/:id", h.updateClient)
	}
}

// createClient godoc
// @Summary Create a new client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listClients godoc
// @Summary List clients
// @Description Retrieves clients, optionally filtered by name or PIB search.
// @Tags clients
// @Produce json
// @Param search query string false "Match against name or PIB"
// @Param includeArchived query bool false "Include archived clients" default(false)
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// getClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	client, err := h.clientService.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to update"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}
