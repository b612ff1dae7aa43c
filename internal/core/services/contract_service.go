package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// contractService manages the contract register.
type contractService struct {
	BaseService
	repo       portsrepo.ContractRepositoryFacade
	clientRepo portsrepo.ClientReader
}

// NewContractService creates a new contract service.
func NewContractService(repo portsrepo.ContractRepositoryFacade, clientRepo portsrepo.ClientReader, userRepo portsrepo.UserReader) portssvc.ContractSvcFacade {
	return &contractService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, requestingUserID string) (*domain.Contract, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, apperrors.ErrValidation)
	}

	currency := req.Currency
	if currency == "" {
		currency = "RSD"
	}

	now := time.Now()
	contract := domain.Contract{
		ContractID:    uuid.NewString(),
		Number:        req.Number,
		Date:          req.Date,
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		ContractType:  req.ContractType,
		Subject:       req.Subject,
		Amount:        req.Amount,
		Currency:      currency,
		ValidityStart: req.ValidityStart,
		ValidityEnd:   req.ValidityEnd,
		Status:        domain.ContractActive,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SaveContract(ctx, contract); err != nil {
		s.LogError(ctx, err, "failed to save contract")
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}
	return &contract, nil
}

func (s *contractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, requestingUserID string) (*domain.Contract, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	if contract == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Number != nil {
		contract.Number = *req.Number
	}
	if req.Date != nil {
		contract.Date = *req.Date
	}
	if req.ProjectID != nil {
		contract.ProjectID = req.ProjectID
	}
	if req.ContractType != nil {
		contract.ContractType = *req.ContractType
	}
	if req.Subject != nil {
		contract.Subject = *req.Subject
	}
	if req.Amount != nil {
		contract.Amount = *req.Amount
	}
	if req.Currency != nil {
		contract.Currency = *req.Currency
	}
	if req.ValidityStart != nil {
		contract.ValidityStart = req.ValidityStart
	}
	if req.ValidityEnd != nil {
		contract.ValidityEnd = req.ValidityEnd
	}
	if req.Status != nil {
		contract.Status = *req.Status
	}
	if req.Note != nil {
		contract.Note = *req.Note
	}
	contract.LastUpdatedAt = time.Now()
	contract.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateContract(ctx, *contract); err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}
	return contract, nil
}

func (s *contractService) GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	if contract == nil {
		return nil, apperrors.ErrNotFound
	}
	return contract, nil
}

func (s *contractService) ListContracts(ctx context.Context, params dto.ListContractsParams) ([]domain.Contract, error) {
	filter := portsrepo.ContractFilter{
		ClientID: params.ClientID,
		Status:   params.Status,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	contracts, err := s.repo.FindContracts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}
