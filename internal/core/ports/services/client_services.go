package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a client by ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients matching the query.
	ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient creates a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, requestingUserID string) (*domain.Client, error)

	// UpdateClient updates an existing client.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
