package repositories

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// PaymentTypeReader lists the mandatory payment kinds.
type PaymentTypeReader interface {
	// FindPaymentTypes retrieves all payment types ordered by sort order.
	FindPaymentTypes(ctx context.Context) ([]domain.PaymentType, error)
}

// YearDecisionReader defines read operations for yearly tax assessments
type YearDecisionReader interface {
	// FindYearDecisions retrieves the active decisions for a year.
	FindYearDecisions(ctx context.Context, year int) ([]domain.YearDecision, error)

	// FindDecisionByID retrieves a specific decision by its ID.
	FindDecisionByID(ctx context.Context, decisionID string) (*domain.YearDecision, error)
}

// YearDecisionWriter defines write operations for yearly tax assessments
type YearDecisionWriter interface {
	// UpsertYearDecision inserts the decision or replaces the active one for
	// the same year and payment type.
	UpsertYearDecision(ctx context.Context, decision domain.YearDecision) error
}

// MonthlyObligationReader defines read operations for monthly installments
type MonthlyObligationReader interface {
	// FindObligationByID retrieves a specific installment by its ID.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.MonthlyObligation, error)

	// FindMonthlyObligations retrieves a year's installments ordered by
	// month then payment type.
	FindMonthlyObligations(ctx context.Context, year int) ([]domain.MonthlyObligation, error)

	// FindUnpaidObligations retrieves unpaid installments with a deadline on
	// or before the given date.
	FindUnpaidObligations(ctx context.Context, until domain.Date) ([]domain.MonthlyObligation, error)
}

// MonthlyObligationWriter defines write operations for monthly installments
type MonthlyObligationWriter interface {
	// SaveMonthlyObligations batch-inserts generated installments.
	SaveMonthlyObligations(ctx context.Context, obligations []domain.MonthlyObligation) error

	// UpdateObligation updates an existing installment.
	UpdateObligation(ctx context.Context, obligation domain.MonthlyObligation) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces
type ObligationRepositoryFacade interface {
	PaymentTypeReader
	YearDecisionReader
	YearDecisionWriter
	MonthlyObligationReader
	MonthlyObligationWriter
}
