package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name       string            `json:"name" binding:"required"`
	ClientType domain.ClientType `json:"clientType" binding:"required,oneof=legal individual"`
	PIB        string            `json:"pib" binding:"omitempty,pib"`
	Address    string            `json:"address"`
	Contact    string            `json:"contact"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateClientRequest struct {
	Name       *string            `json:"name"`
	ClientType *domain.ClientType `json:"clientType" binding:"omitempty,oneof=legal individual"`
	PIB        *string            `json:"pib" binding:"omitempty,pib"`
	Address    *string            `json:"address"`
	Contact    *string            `json:"contact"`
	IsArchived *bool              `json:"isArchived"`
}

// ListClientsParams defines query parameters for listing clients.
type ListClientsParams struct {
	Search          string `form:"search"`
	IncludeArchived bool   `form:"includeArchived,default=false"`
	Limit           int    `form:"limit,default=50"`
	Offset          int    `form:"offset,default=0"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID   string            `json:"clientID"`
	Name       string            `json:"name"`
	ClientType domain.ClientType `json:"clientType"`
	PIB        string            `json:"pib"`
	Address    string            `json:"address"`
	Contact    string            `json:"contact"`
	IsArchived bool              `json:"isArchived"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:   c.ClientID,
		Name:       c.Name,
		ClientType: c.ClientType,
		PIB:        c.PIB,
		Address:    c.Address,
		Contact:    c.Contact,
		IsArchived: c.IsArchived,
	}
}

// ToListClientsResponse converts a slice of domain.Client to response DTOs.
func ToListClientsResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i, c := range clients {
		res[i] = ToClientResponse(&c)
	}
	return res
}
