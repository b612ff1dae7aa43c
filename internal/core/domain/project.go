package domain

import "github.com/shopspring/decimal"

// ProjectStatus tracks the project lifecycle.
type ProjectStatus string

const (
	ProjectLead      ProjectStatus = "lead"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is the unit income and expense rows are attributed to for
// profitability reporting. Codes follow PR-YYYY-NNNN, allocated from a
// per-year sequence.
type Project struct {
	ProjectID      string           `json:"projectID"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	ClientID       *string          `json:"clientID,omitempty"`
	ContractID     *string          `json:"contractID,omitempty"`
	Status         ProjectStatus    `json:"status"`
	StartDate      *Date            `json:"startDate,omitempty"`
	EndDate        *Date            `json:"endDate,omitempty"`
	PlannedIncome  *decimal.Decimal `json:"plannedIncome,omitempty"`
	PlannedExpense *decimal.Decimal `json:"plannedExpense,omitempty"`
	Notes          string           `json:"notes"`
	AuditFields
}
