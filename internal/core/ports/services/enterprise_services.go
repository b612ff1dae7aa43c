package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// EnterpriseSvcFacade manages the single business profile.
type EnterpriseSvcFacade interface {
	// GetEnterprise retrieves the business profile.
	GetEnterprise(ctx context.Context) (*domain.Enterprise, error)

	// UpdateEnterprise applies changes to the business profile.
	UpdateEnterprise(ctx context.Context, req dto.UpdateEnterpriseRequest, requestingUserID string) (*domain.Enterprise, error)
}
