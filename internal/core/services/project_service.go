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

// projectService manages projects and their yearly code sequence.
type projectService struct {
	BaseService
	repo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a new project service.
func NewProjectService(repo portsrepo.ProjectRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, requestingUserID string) (*domain.Project, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	year := domain.Today().Year()
	if req.StartDate != nil && !req.StartDate.IsZero() {
		year = req.StartDate.Year()
	}
	seq, err := s.repo.AllocateProjectNumber(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate project number: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectLead
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:      uuid.NewString(),
		Code:           fmt.Sprintf("PR-%d-%04d", year, seq),
		Name:           req.Name,
		ClientID:       req.ClientID,
		ContractID:     req.ContractID,
		Status:         status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		PlannedIncome:  req.PlannedIncome,
		PlannedExpense: req.PlannedExpense,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "failed to save project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.LogInfo(ctx, "project created", "project_id", project.ProjectID, "code", project.Code)
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	project, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientID != nil {
		project.ClientID = req.ClientID
	}
	if req.ContractID != nil {
		project.ContractID = req.ContractID
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.PlannedIncome != nil {
		project.PlannedIncome = req.PlannedIncome
	}
	if req.PlannedExpense != nil {
		project.PlannedExpense = req.PlannedExpense
	}
	if req.Notes != nil {
		project.Notes = *req.Notes
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.repo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, apperrors.ErrNotFound
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context, params dto.ListProjectsParams) ([]domain.Project, error) {
	filter := portsrepo.ProjectFilter{
		Status:   params.Status,
		ClientID: params.ClientID,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	projects, err := s.repo.FindProjects(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}
