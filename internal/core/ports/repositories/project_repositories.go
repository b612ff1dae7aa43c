package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// ProjectFilter narrows project listing.
type ProjectFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjects retrieves projects matching the filter.
	FindProjects(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, project domain.Project) error
}

// ProjectSequencer allocates yearly project numbers.
type ProjectSequencer interface {
	// AllocateProjectNumber increments and returns the yearly counter.
	AllocateProjectNumber(ctx context.Context, year int) (int, error)
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectSequencer
}
