package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense by ID.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the query.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense records a cost row.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// UpdateExpense updates an expense that is neither a reversal nor
	// reversed.
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// MarkExpensePaid records the settlement of an expense.
	MarkExpensePaid(ctx context.Context, expenseID string, req dto.MarkExpensePaidRequest, requestingUserID string) (*domain.Expense, error)

	// ReverseExpense creates the storno row that cancels an expense and
	// returns it.
	ReverseExpense(ctx context.Context, expenseID string, req dto.ReverseExpenseRequest, requestingUserID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
