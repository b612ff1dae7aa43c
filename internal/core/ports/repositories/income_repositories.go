package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// IncomeFilter narrows invoice listing.
type IncomeFilter struct {
	From      *domain.Date
	To        *domain.Date
	Status    string
	ClientID  string
	ProjectID string
	Year      int
	Limit     int
	Offset    int
}

// IncomeReader defines read operations for the income book
type IncomeReader interface {
	// FindIncomeByID retrieves a specific invoice by its ID.
	FindIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)

	// FindIncomes retrieves invoices matching the filter, ordered by issue
	// date then invoice number.
	FindIncomes(ctx context.Context, filter IncomeFilter) ([]domain.Income, error)

	// FindIncomesForReporting retrieves every invoice whose issued or paid
	// date falls inside [from, to].
	FindIncomesForReporting(ctx context.Context, from, to domain.Date) ([]domain.Income, error)

	// FindOutstandingIncomes retrieves every non-cancelled invoice without a
	// paid date.
	FindOutstandingIncomes(ctx context.Context) ([]domain.Income, error)

	// FindRecentIncomes retrieves the latest invoices by issue date.
	FindRecentIncomes(ctx context.Context, limit int) ([]domain.Income, error)
}

// IncomeWriter defines write operations for the income book
type IncomeWriter interface {
	// SaveIncome persists a new invoice. A duplicate invoice number within
	// the same year yields apperrors.ErrDuplicate.
	SaveIncome(ctx context.Context, income domain.Income) error

	// UpdateIncome updates an existing invoice.
	UpdateIncome(ctx context.Context, income domain.Income) error
}

// InvoiceSequencer manages the per-year invoice counter.
type InvoiceSequencer interface {
	// AllocateInvoiceNumber increments and returns the yearly counter.
	AllocateInvoiceNumber(ctx context.Context, year int) (int, error)

	// PeekInvoiceNumber returns the next counter value without consuming it.
	PeekInvoiceNumber(ctx context.Context, year int) (int, error)
}

// IncomeRepositoryFacade combines all income-related repository interfaces
type IncomeRepositoryFacade interface {
	IncomeReader
	IncomeWriter
	InvoiceSequencer
}
