package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// ContractFilter narrows contract listing.
type ContractFilter struct {
	ClientID string
	Status   string
	Limit    int
	Offset   int
}

// ContractReader defines read operations for contract data
type ContractReader interface {
	// FindContractByID retrieves a specific contract by its ID.
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// FindContracts retrieves contracts matching the filter.
	FindContracts(ctx context.Context, filter ContractFilter) ([]domain.Contract, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	// SaveContract persists a new contract.
	SaveContract(ctx context.Context, contract domain.Contract) error

	// UpdateContract updates an existing contract's details.
	UpdateContract(ctx context.Context, contract domain.Contract) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
