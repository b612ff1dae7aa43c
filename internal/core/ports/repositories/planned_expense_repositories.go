package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// PlannedExpenseReader defines read operations for recurring cost schedules
type PlannedExpenseReader interface {
	// FindPlannedExpenseByID retrieves a specific schedule by its ID.
	FindPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error)

	// FindPlannedExpenses retrieves schedules, optionally active ones only.
	FindPlannedExpenses(ctx context.Context, activeOnly bool) ([]domain.PlannedExpense, error)
}

// PlannedExpenseWriter defines write operations for recurring cost schedules
type PlannedExpenseWriter interface {
	// SavePlannedExpense persists a new schedule.
	SavePlannedExpense(ctx context.Context, plannedExpense domain.PlannedExpense) error

	// UpdatePlannedExpense updates an existing schedule.
	UpdatePlannedExpense(ctx context.Context, plannedExpense domain.PlannedExpense) error

	// DeletePlannedExpense removes a schedule and its recorded settlements.
	DeletePlannedExpense(ctx context.Context, plannedExpenseID string) error
}

// OccurrencePaymentManager records settlements of generated due dates.
type OccurrencePaymentManager interface {
	// SaveOccurrencePayment persists one settlement. Paying the same due
	// date twice yields apperrors.ErrDuplicate.
	SaveOccurrencePayment(ctx context.Context, payment domain.OccurrencePayment) error

	// FindOccurrencePayments retrieves settlements with a due date inside
	// [from, to].
	FindOccurrencePayments(ctx context.Context, from, to domain.Date) ([]domain.OccurrencePayment, error)

	// FindOccurrencePayment retrieves the settlement of one due date.
	FindOccurrencePayment(ctx context.Context, plannedExpenseID string, dueDate domain.Date) (*domain.OccurrencePayment, error)

	// DeleteOccurrencePayment removes one settlement.
	DeleteOccurrencePayment(ctx context.Context, paymentID string) error
}

// PlannedExpenseRepositoryFacade combines all recurring-cost repository interfaces
type PlannedExpenseRepositoryFacade interface {
	PlannedExpenseReader
	PlannedExpenseWriter
	OccurrencePaymentManager
}
