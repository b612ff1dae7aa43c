package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
// The project code is allocated server-side from the yearly sequence.
type CreateProjectRequest struct {
	Name           string               `json:"name" binding:"required"`
	ClientID       *string              `json:"clientID"`
	ContractID     *string              `json:"contractID"`
	Status         domain.ProjectStatus `json:"status" binding:"omitempty,oneof=lead active completed archived"`
	StartDate      *domain.Date         `json:"startDate"`
	EndDate        *domain.Date         `json:"endDate"`
	PlannedIncome  *decimal.Decimal     `json:"plannedIncome"`
	PlannedExpense *decimal.Decimal     `json:"plannedExpense"`
	Notes          string               `json:"notes"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name           *string               `json:"name"`
	ClientID       *string               `json:"clientID"`
	ContractID     *string               `json:"contractID"`
	Status         *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=lead active completed archived"`
	StartDate      *domain.Date          `json:"startDate"`
	EndDate        *domain.Date          `json:"endDate"`
	PlannedIncome  *decimal.Decimal      `json:"plannedIncome"`
	PlannedExpense *decimal.Decimal      `json:"plannedExpense"`
	Notes          *string               `json:"notes"`
}

// ListProjectsParams defines query parameters for listing projects.
type ListProjectsParams struct {
	Status   string `form:"status" binding:"omitempty,oneof=lead active completed archived"`
	ClientID string `form:"clientID"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID      string               `json:"projectID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	ClientID       *string              `json:"clientID,omitempty"`
	ContractID     *string              `json:"contractID,omitempty"`
	Status         domain.ProjectStatus `json:"status"`
	StartDate      *domain.Date         `json:"startDate,omitempty"`
	EndDate        *domain.Date         `json:"endDate,omitempty"`
	PlannedIncome  *decimal.Decimal     `json:"plannedIncome,omitempty"`
	PlannedExpense *decimal.Decimal     `json:"plannedExpense,omitempty"`
	Notes          string               `json:"notes"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:      p.ProjectID,
		Code:           p.Code,
		Name:           p.Name,
		ClientID:       p.ClientID,
		ContractID:     p.ContractID,
		Status:         p.Status,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		PlannedIncome:  p.PlannedIncome,
		PlannedExpense: p.PlannedExpense,
		Notes:          p.Notes,
	}
}

// ToListProjectsResponse converts a slice of domain.Project to response DTOs.
func ToListProjectsResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = ToProjectResponse(&p)
	}
	return res
}
