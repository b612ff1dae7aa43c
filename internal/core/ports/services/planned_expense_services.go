package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// PlannedExpenseReaderSvc defines read operations for recurring costs
type PlannedExpenseReaderSvc interface {
	// GetPlannedExpenseByID retrieves a schedule by ID.
	GetPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error)

	// ListPlannedExpenses retrieves schedules, optionally active only.
	ListPlannedExpenses(ctx context.Context, activeOnly bool) ([]domain.PlannedExpense, error)

	// ListOccurrences expands active schedules into concrete due dates
	// inside [from, to] with their payment state.
	ListOccurrences(ctx context.Context, from, to domain.Date) ([]domain.Occurrence, error)
}

// PlannedExpenseWriterSvc defines write operations for recurring costs
type PlannedExpenseWriterSvc interface {
	// CreatePlannedExpense registers a recurring cost schedule.
	CreatePlannedExpense(ctx context.Context, req dto.CreatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error)

	// UpdatePlannedExpense updates an existing schedule.
	UpdatePlannedExpense(ctx context.Context, plannedExpenseID string, req dto.UpdatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error)

	// MarkOccurrencePaid settles one generated due date and creates the
	// matching expense row.
	MarkOccurrencePaid(ctx context.Context, plannedExpenseID string, req dto.MarkOccurrencePaidRequest, requestingUserID string) (*domain.OccurrencePayment, error)

	// MarkOccurrenceUnpaid withdraws the settlement of one due date. The
	// booked expense is reversed with a storno row and the settlement record
	// removed.
	MarkOccurrenceUnpaid(ctx context.Context, plannedExpenseID string, req dto.MarkOccurrenceUnpaidRequest, requestingUserID string) error

	// DeletePlannedExpense removes a schedule and its settlement records.
	DeletePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) error
}

// PlannedExpenseSvcFacade combines all recurring-cost service interfaces
type PlannedExpenseSvcFacade interface {
	PlannedExpenseReaderSvc
	PlannedExpenseWriterSvc
}
