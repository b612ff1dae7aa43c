package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// GetProjectByID retrieves a project by ID.
	GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves projects matching the query.
	ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject creates a new project, allocating its code from the
	// yearly sequence.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, requestingUserID string) (*domain.Project, error)

	// UpdateProject updates an existing project.
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
