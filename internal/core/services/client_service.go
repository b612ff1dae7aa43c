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

// clientService manages the client register.
type clientService struct {
	BaseService
	repo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service.
func NewClientService(repo portsrepo.ClientRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ClientSvcFacade {
	return &clientService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, requestingUserID string) (*domain.Client, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID:   uuid.NewString(),
		Name:       req.Name,
		Address:    req.Address,
		PIB:        req.PIB,
		Contact:    req.Contact,
		ClientType: req.ClientType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "failed to save client")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, requestingUserID string) (*domain.Client, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ClientType != nil {
		client.ClientType = *req.ClientType
	}
	if req.PIB != nil {
		client.PIB = *req.PIB
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Contact != nil {
		client.Contact = *req.Contact
	}
	if req.IsArchived != nil {
		client.IsArchived = *req.IsArchived
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if client == nil {
		return nil, apperrors.ErrNotFound
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, params dto.ListClientsParams) ([]domain.Client, error) {
	filter := portsrepo.ClientFilter{
		Search:          params.Search,
		IncludeArchived: params.IncludeArchived,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	clients, err := s.repo.FindClients(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
