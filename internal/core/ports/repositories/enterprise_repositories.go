package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// EnterpriseRepositoryFacade manages the single business profile row.
type EnterpriseRepositoryFacade interface {
	// GetEnterprise retrieves the business profile.
	GetEnterprise(ctx context.Context) (*domain.Enterprise, error)

	// SaveEnterprise inserts or replaces the business profile.
	SaveEnterprise(ctx context.Context, enterprise domain.Enterprise) error
}
