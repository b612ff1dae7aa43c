package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// ExpenseFilter narrows expense listing.
type ExpenseFilter struct {
	From             *domain.Date
	To               *domain.Date
	Status           string
	Category         string
	ProjectID        string
	IncludeReversals bool
	Limit            int
	Offset           int
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// FindExpenses retrieves expenses matching the filter, ordered by date.
	FindExpenses(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error)

	// FindExpensesForReporting retrieves every expense whose date or paid
	// date falls inside [from, to].
	FindExpensesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense updates an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// CreateReversal inserts the storno row and links it to the original in
	// a single transaction.
	CreateReversal(ctx context.Context, reversal domain.Expense, originalID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
