package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlannedExpenseRequest defines a recurring cost schedule.
type CreatePlannedExpenseRequest struct {
	Name             string                  `json:"name" binding:"required"`
	Description      string                  `json:"description"`
	Amount           decimal.Decimal         `json:"amount" binding:"required"`
	Category         string                  `json:"category"`
	Period           domain.RecurrencePeriod `json:"period" binding:"required,oneof=weekly monthly quarterly yearly"`
	PaymentDay       *int                    `json:"paymentDay" binding:"omitempty,min=1,max=31"`
	PaymentDayOfWeek *int                    `json:"paymentDayOfWeek" binding:"omitempty,min=0,max=6"`
	StartDate        domain.Date             `json:"startDate" binding:"required"`
	EndDate          *domain.Date            `json:"endDate"`
	ReminderDays     int                     `json:"reminderDays" binding:"omitempty,min=0,max=60"`
	Note             string                  `json:"note"`
}

// UpdatePlannedExpenseRequest defines the data allowed for updating a
// recurring cost schedule.
type UpdatePlannedExpenseRequest struct {
	Name             *string                  `json:"name"`
	Description      *string                  `json:"description"`
	Amount           *decimal.Decimal         `json:"amount"`
	Category         *string                  `json:"category"`
	Period           *domain.RecurrencePeriod `json:"period" binding:"omitempty,oneof=weekly monthly quarterly yearly"`
	PaymentDay       *int                     `json:"paymentDay" binding:"omitempty,min=1,max=31"`
	PaymentDayOfWeek *int                     `json:"paymentDayOfWeek" binding:"omitempty,min=0,max=6"`
	StartDate        *domain.Date             `json:"startDate"`
	EndDate          *domain.Date             `json:"endDate"`
	ReminderDays     *int                     `json:"reminderDays" binding:"omitempty,min=0,max=60"`
	IsActive         *bool                    `json:"isActive"`
	Note             *string                  `json:"note"`
}

// ListOccurrencesParams bounds occurrence generation.
type ListOccurrencesParams struct {
	From string `form:"from" binding:"omitempty,dateonly"`
	To   string `form:"to" binding:"omitempty,dateonly"`
}

// MarkOccurrencePaidRequest records the payment of one generated due date.
type MarkOccurrencePaidRequest struct {
	DueDate  domain.Date `json:"dueDate" binding:"required"`
	PaidDate domain.Date `json:"paidDate" binding:"required"`
	Note     string      `json:"note"`
}

// MarkOccurrenceUnpaidRequest withdraws the payment of one due date.
type MarkOccurrenceUnpaidRequest struct {
	DueDate domain.Date `json:"dueDate" binding:"required"`
}

// PlannedExpenseResponse defines the data returned for a recurring cost.
type PlannedExpenseResponse struct {
	PlannedExpenseID string                  `json:"plannedExpenseID"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description"`
	Amount           decimal.Decimal         `json:"amount"`
	Currency         string                  `json:"currency"`
	Category         string                  `json:"category"`
	Period           domain.RecurrencePeriod `json:"period"`
	PaymentDay       *int                    `json:"paymentDay,omitempty"`
	PaymentDayOfWeek *int                    `json:"paymentDayOfWeek,omitempty"`
	StartDate        domain.Date             `json:"startDate"`
	EndDate          *domain.Date            `json:"endDate,omitempty"`
	ReminderDays     int                     `json:"reminderDays"`
	IsActive         bool                    `json:"isActive"`
	Note             string                  `json:"note"`
}

// OccurrenceResponse is one concrete due date with its derived state.
type OccurrenceResponse struct {
	PlannedExpenseID string               `json:"plannedExpenseID"`
	Name             string               `json:"name"`
	DueDate          domain.Date          `json:"dueDate"`
	Amount           decimal.Decimal      `json:"amount"`
	Currency         string               `json:"currency"`
	Status           domain.PaymentStatus `json:"status"`
}

// ListOccurrencesResponse wraps generated occurrences with the unpaid total.
type ListOccurrencesResponse struct {
	Occurrences []OccurrenceResponse `json:"occurrences"`
	TotalUnpaid decimal.Decimal      `json:"totalUnpaid"`
}

// ToPlannedExpenseResponse converts a domain.PlannedExpense to its DTO.
func ToPlannedExpenseResponse(p *domain.PlannedExpense) PlannedExpenseResponse {
	return PlannedExpenseResponse{
		PlannedExpenseID: p.PlannedExpenseID,
		Name:             p.Name,
		Description:      p.Description,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Category:         p.Category,
		Period:           p.Period,
		PaymentDay:       p.PaymentDay,
		PaymentDayOfWeek: p.PaymentDayOfWeek,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		ReminderDays:     p.ReminderDays,
		IsActive:         p.IsActive,
		Note:             p.Note,
	}
}

// ToListPlannedExpensesResponse converts a slice of planned expenses.
func ToListPlannedExpensesResponse(items []domain.PlannedExpense) []PlannedExpenseResponse {
	res := make([]PlannedExpenseResponse, len(items))
	for i, p := range items {
		res[i] = ToPlannedExpenseResponse(&p)
	}
	return res
}

// ToOccurrenceResponse converts one generated occurrence, deriving its status
// relative to today.
func ToOccurrenceResponse(o *domain.Occurrence, today domain.Date) OccurrenceResponse {
	return OccurrenceResponse{
		PlannedExpenseID: o.PlannedExpenseID,
		Name:             o.Name,
		DueDate:          o.DueDate,
		Amount:           o.Amount,
		Currency:         o.Currency,
		Status:           o.Status(today),
	}
}

// ToListOccurrencesResponse converts occurrences, summing the unpaid ones.
func ToListOccurrencesResponse(occurrences []domain.Occurrence, today domain.Date) ListOccurrencesResponse {
	res := ListOccurrencesResponse{Occurrences: make([]OccurrenceResponse, len(occurrences))}
	for i, o := range occurrences {
		res.Occurrences[i] = ToOccurrenceResponse(&o, today)
		if !o.IsPaid {
			res.TotalUnpaid = res.TotalUnpaid.Add(o.Amount)
		}
	}
	return res
}
