package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// ClientFilter narrows client listing.
type ClientFilter struct {
	Search          string
	IncludeArchived bool
	Limit           int
	Offset          int
}

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClients retrieves clients matching the filter.
	FindClients(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
