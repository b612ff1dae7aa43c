package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// ContractReaderSvc defines read operations for contract data
type ContractReaderSvc interface {
	// GetContractByID retrieves a contract by ID.
	GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// ListContracts retrieves contracts matching the query.
	ListContracts(ctx context.Context, params dto.ListContractsParams) ([]domain.Contract, error)
}

// ContractWriterSvc defines write operations for contract data
type ContractWriterSvc interface {
	// CreateContract registers a new contract.
	CreateContract(ctx context.Context, req dto.CreateContractRequest, requestingUserID string) (*domain.Contract, error)

	// UpdateContract updates an existing contract.
	UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, requestingUserID string) (*domain.Contract, error)
}

// ContractSvcFacade combines all contract-related service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
