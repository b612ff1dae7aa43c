package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// enterpriseService manages the single business profile.
type enterpriseService struct {
	BaseService
	repo portsrepo.EnterpriseRepositoryFacade
}

// NewEnterpriseService creates a new enterprise service.
func NewEnterpriseService(repo portsrepo.EnterpriseRepositoryFacade, userRepo portsrepo.UserReader) portssvc.EnterpriseSvcFacade {
	return &enterpriseService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
	}
}

var _ portssvc.EnterpriseSvcFacade = (*enterpriseService)(nil)

func (s *enterpriseService) GetEnterprise(ctx context.Context) (*domain.Enterprise, error) {
	ent, err := s.repo.GetEnterprise(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}
	if ent == nil {
		return nil, apperrors.ErrNotFound
	}
	return ent, nil
}

func (s *enterpriseService) UpdateEnterprise(ctx context.Context, req dto.UpdateEnterpriseRequest, requestingUserID string) (*domain.Enterprise, error) {
	if _, err := s.requireAdmin(ctx, requestingUserID); err != nil {
		return nil, err
	}

	ent, err := s.repo.GetEnterprise(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}
	if ent == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		ent.Name = *req.Name
	}
	if req.Address != nil {
		ent.Address = *req.Address
	}
	if req.PIB != nil {
		ent.PIB = *req.PIB
	}
	if req.MaticniBroj != nil {
		ent.MaticniBroj = *req.MaticniBroj
	}
	if req.BankName != nil {
		ent.BankName = *req.BankName
	}
	if req.BankAccount != nil {
		ent.BankAccount = *req.BankAccount
	}
	if req.BankSwift != nil {
		ent.BankSwift = *req.BankSwift
	}
	if req.MainActivityCode != nil {
		ent.MainActivityCode = *req.MainActivityCode
	}
	if req.OpeningCashBalance != nil {
		ent.OpeningCashBalance = *req.OpeningCashBalance
	}
	if req.OpeningCashDate != nil {
		ent.OpeningCashDate = *req.OpeningCashDate
	}
	ent.LastUpdatedAt = time.Now()
	ent.LastUpdatedBy = requestingUserID

	if err := s.repo.SaveEnterprise(ctx, *ent); err != nil {
		return nil, fmt.Errorf("failed to save enterprise: %w", err)
	}
	return ent, nil
}
