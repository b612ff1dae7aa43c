package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/dto"
)

// ObligationReaderSvc defines read operations for tax obligations
type ObligationReaderSvc interface {
	// ListPaymentTypes retrieves the mandatory payment kinds.
	ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error)

	// ListYearDecisions retrieves the active assessments for a year.
	ListYearDecisions(ctx context.Context, year int) ([]domain.YearDecision, error)

	// GetSchedule returns the year's installment schedule, generating the
	// missing months from the active decisions on first access. A non-empty
	// paymentType narrows the schedule to that payment type code.
	GetSchedule(ctx context.Context, year int, paymentType string) (*dto.ObligationScheduleResponse, error)

	// PaymentInstructions assembles the payment slip fields for one
	// installment.
	PaymentInstructions(ctx context.Context, obligationID string) (*dto.PaymentInstructionsResponse, error)

	// ListUnpaid retrieves unpaid installments due on or before the date.
	ListUnpaid(ctx context.Context, until domain.Date) ([]domain.MonthlyObligation, error)
}

// ObligationWriterSvc defines write operations for tax obligations
type ObligationWriterSvc interface {
	// UpsertYearDecision records the tax administration's assessment for one
	// payment type and year.
	UpsertYearDecision(ctx context.Context, req dto.UpsertYearDecisionRequest, requestingUserID string) (*domain.YearDecision, error)

	// MarkObligationPaid records the payment of an installment and creates
	// the matching tax expense row.
	MarkObligationPaid(ctx context.Context, obligationID string, req dto.MarkObligationPaidRequest, requestingUserID string) (*domain.MonthlyObligation, error)

	// MarkObligationUnpaid withdraws a recorded payment. The booked tax
	// expense is reversed with a storno row, never deleted.
	MarkObligationUnpaid(ctx context.Context, obligationID string, requestingUserID string) (*domain.MonthlyObligation, error)
}

// ObligationSvcFacade combines all obligation-related service interfaces
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
}
