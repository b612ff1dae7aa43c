package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// IncomeReaderSvc defines read operations for the income book
type IncomeReaderSvc interface {
	// GetIncomeByID retrieves an invoice by ID.
	GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)

	// ListIncomes retrieves invoices matching the query.
	ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.Income, error)

	// NextInvoiceNumber suggests the next YYYY-NNNN number for a year
	// without consuming it.
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}

// IncomeWriterSvc defines write operations for the income book
type IncomeWriterSvc interface {
	// CreateIncome records an issued invoice. When the request carries no
	// invoice number the next one in the yearly sequence is allocated; an
	// explicit number that already exists yields apperrors.ErrDuplicate.
	CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, requestingUserID string) (*domain.Income, error)

	// UpdateIncome updates an invoice that has not been paid or cancelled.
	UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, requestingUserID string) (*domain.Income, error)

	// MarkIncomePaid records the collection of an invoice.
	MarkIncomePaid(ctx context.Context, incomeID string, req dto.MarkIncomePaidRequest, requestingUserID string) (*domain.Income, error)

	// CancelIncome voids an invoice while keeping it for numbering
	// continuity.
	CancelIncome(ctx context.Context, incomeID string, requestingUserID string) (*domain.Income, error)
}

// IncomeSvcFacade combines all income-related service interfaces
type IncomeSvcFacade interface {
	IncomeReaderSvc
	IncomeWriterSvc
}
