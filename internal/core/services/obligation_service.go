package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// obligationService manages yearly tax assessments and the monthly
// installment schedule they generate.
type obligationService struct {
	BaseService
	repo        portsrepo.ObligationRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewObligationService creates a new obligation service.
func NewObligationService(repo portsrepo.ObligationRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ObligationSvcFacade {
	return &obligationService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

func (s *obligationService) ListPaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	types, err := s.repo.FindPaymentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment types: %w", err)
	}
	return types, nil
}

func (s *obligationService) ListYearDecisions(ctx context.Context, year int) ([]domain.YearDecision, error) {
	decisions, err := s.repo.FindYearDecisions(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list year decisions: %w", err)
	}
	return decisions, nil
}

func (s *obligationService) UpsertYearDecision(ctx context.Context, req dto.UpsertYearDecisionRequest, requestingUserID string) (*domain.YearDecision, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("assessment period is inverted: %w", apperrors.ErrValidation)
	}
	if !req.MonthlyAmount.IsPositive() {
		return nil, fmt.Errorf("monthly amount must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	decision := domain.YearDecision{
		DecisionID:       uuid.NewString(),
		Year:             req.Year,
		PaymentTypeID:    req.PaymentTypeID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		MonthlyAmount:    req.MonthlyAmount,
		RecipientName:    req.RecipientName,
		RecipientAccount: req.RecipientAccount,
		SifraPlacanja:    req.SifraPlacanja,
		Model:            req.Model,
		PozivNaBroj:      req.PozivNaBroj,
		PozivNaBrojNext:  req.PozivNaBrojNext,
		PaymentPurpose:   req.PaymentPurpose,
		Currency:         "RSD",
		IsProvisional:    req.IsProvisional,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.UpsertYearDecision(ctx, decision); err != nil {
		s.LogError(ctx, err, "failed to upsert year decision")
		return nil, fmt.Errorf("failed to save year decision: %w", err)
	}

	// A new assessment re-prices the installments that are still open.
	if err := s.repriceUnpaid(ctx, decision, requestingUserID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "year decision saved", "year", req.Year, "payment_type_id", req.PaymentTypeID)
	return &decision, nil
}

// repriceUnpaid updates amount and reference of the year's unpaid
// installments for the decision's payment type.
func (s *obligationService) repriceUnpaid(ctx context.Context, decision domain.YearDecision, requestingUserID string) error {
	obligations, err := s.repo.FindMonthlyObligations(ctx, decision.Year)
	if err != nil {
		return fmt.Errorf("failed to load installments for repricing: %w", err)
	}
	for _, o := range obligations {
		if o.PaymentTypeID != decision.PaymentTypeID || o.PaidDate != nil {
			continue
		}
		o.Amount = decision.MonthlyAmount
		o.PaymentReference = decision.PozivNaBroj
		o.DecisionID = &decision.DecisionID
		o.LastUpdatedAt = time.Now()
		o.LastUpdatedBy = requestingUserID
		if err := s.repo.UpdateObligation(ctx, o); err != nil {
			return fmt.Errorf("failed to reprice installment %s: %w", o.ObligationID, err)
		}
	}
	return nil
}

// GetSchedule returns the year's installments, generating missing months on
// first access. Months come from the active decisions of the year; when a
// year has no decision yet, the previous year's decision fills in
// provisional installments using its next-year payment reference. A
// non-empty paymentType narrows the result to that payment type code after
// generation, so the full year is materialized either way.
func (s *obligationService) GetSchedule(ctx context.Context, year int, paymentType string) (*dto.ObligationScheduleResponse, error) {
	existing, err := s.repo.FindMonthlyObligations(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load installments: %w", err)
	}

	have := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		have[fmt.Sprintf("%s|%d", o.PaymentTypeID, o.Month)] = struct{}{}
	}

	generated, err := s.generateMissing(ctx, year, have)
	if err != nil {
		return nil, err
	}
	if len(generated) > 0 {
		if err := s.repo.SaveMonthlyObligations(ctx, generated); err != nil {
			return nil, fmt.Errorf("failed to save generated installments: %w", err)
		}
		existing, err = s.repo.FindMonthlyObligations(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("failed to reload installments: %w", err)
		}
	}

	typeCodes, err := s.paymentTypeCodes(ctx)
	if err != nil {
		return nil, err
	}

	if paymentType != "" {
		filtered := make([]domain.MonthlyObligation, 0, len(existing))
		for _, o := range existing {
			if typeCodes[o.PaymentTypeID] == paymentType {
				filtered = append(filtered, o)
			}
		}
		existing = filtered
	}

	res := dto.ToObligationScheduleResponse(year, existing, typeCodes, domain.Today())
	return &res, nil
}

// generateMissing builds installment rows for decision-covered months that
// have no row yet.
func (s *obligationService) generateMissing(ctx context.Context, year int, have map[string]struct{}) ([]domain.MonthlyObligation, error) {
	decisions, err := s.repo.FindYearDecisions(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load year decisions: %w", err)
	}

	carried := make(map[string]bool)
	if len(decisions) == 0 {
		prior, err := s.repo.FindYearDecisions(ctx, year-1)
		if err != nil {
			return nil, fmt.Errorf("failed to load prior year decisions: %w", err)
		}
		for _, d := range prior {
			if d.PozivNaBrojNext == "" {
				continue
			}
			d.PozivNaBroj = d.PozivNaBrojNext
			d.PeriodStart = domain.NewDate(year, time.January, 1)
			d.PeriodEnd = domain.NewDate(year, time.December, 31)
			decisions = append(decisions, d)
			carried[d.DecisionID] = true
		}
	}

	var generated []domain.MonthlyObligation
	now := time.Now()
	for _, d := range decisions {
		for month := time.January; month <= time.December; month++ {
			monthStart := domain.FirstDayOfMonth(year, month)
			if monthStart.Before(domain.FirstDayOfMonth(d.PeriodStart.Year(), d.PeriodStart.Month())) || monthStart.After(d.PeriodEnd) {
				continue
			}
			if _, ok := have[fmt.Sprintf("%s|%d", d.PaymentTypeID, month)]; ok {
				continue
			}
			decisionID := d.DecisionID
			o := domain.MonthlyObligation{
				ObligationID:     uuid.NewString(),
				Year:             year,
				Month:            month,
				PaymentTypeID:    d.PaymentTypeID,
				Amount:           d.MonthlyAmount,
				Deadline:         domain.ObligationDeadline(year, month),
				PaymentReference: d.PozivNaBroj,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if !carried[d.DecisionID] {
				o.DecisionID = &decisionID
			}
			generated = append(generated, o)
			have[fmt.Sprintf("%s|%d", d.PaymentTypeID, month)] = struct{}{}
		}
	}
	return generated, nil
}

func (s *obligationService) paymentTypeCodes(ctx context.Context) (map[string]string, error) {
	types, err := s.repo.FindPaymentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment types: %w", err)
	}
	codes := make(map[string]string, len(types))
	for _, t := range types {
		codes[t.PaymentTypeID] = t.Code
	}
	return codes, nil
}

// MarkObligationPaid records the payment and books the matching tax expense.
func (s *obligationService) MarkObligationPaid(ctx context.Context, obligationID string, req dto.MarkObligationPaidRequest, requestingUserID string) (*domain.MonthlyObligation, error) {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return nil, err
	}

	obligation, err := s.repo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	if obligation == nil {
		return nil, apperrors.ErrNotFound
	}
	if obligation.PaidDate != nil {
		return nil, fmt.Errorf("installment already paid: %w", apperrors.ErrConflict)
	}

	typeCodes, err := s.paymentTypeCodes(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paidDate := req.PaidDate
	expense := domain.Expense{
		ExpenseID:     uuid.NewString(),
		Date:          paidDate,
		Description:   fmt.Sprintf("Tax installment %s %d-%02d", typeCodes[obligation.PaymentTypeID], obligation.Year, int(obligation.Month)),
		Amount:        obligation.Amount,
		Currency:      "RSD",
		Category:      "taxes",
		BankReference: obligation.PaymentReference,
		PaidDate:      &paidDate,
		Status:        domain.ExpensePaid,
		IsTaxRelated:  true,
		Source:        domain.SourceObligation,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to book tax expense", "obligation_id", obligationID)
		return nil, fmt.Errorf("failed to book tax expense: %w", err)
	}

	obligation.PaidDate = &paidDate
	obligation.ExpenseID = &expense.ExpenseID
	if req.Note != "" {
		obligation.Note = req.Note
	}
	obligation.LastUpdatedAt = now
	obligation.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateObligation(ctx, *obligation); err != nil {
		return nil, fmt.Errorf("failed to mark installment paid: %w", err)
	}

	s.LogInfo(ctx, "installment paid", "obligation_id", obligationID, "expense_id", expense.ExpenseID)
	return obligation, nil
}

// MarkObligationUnpaid withdraws a recorded payment. The tax expense booked
// at payment time is reversed with a storno row so the ledger keeps both
// movements.
func (s *obligationService) MarkObligationUnpaid(ctx context.Context, obligationID string, requestingUserID string) (*domain.MonthlyObligation, error) {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return nil, err
	}

	obligation, err := s.repo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	if obligation == nil {
		return nil, apperrors.ErrNotFound
	}
	if obligation.PaidDate == nil {
		return nil, fmt.Errorf("installment is not paid: %w", apperrors.ErrConflict)
	}

	if obligation.ExpenseID != nil {
		expense, err := s.expenseRepo.FindExpenseByID(ctx, *obligation.ExpenseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load booked expense: %w", err)
		}
		if expense != nil && !expense.IsReversal() && expense.ReversedExpenseID == nil {
			reversal := stornoExpense(*expense, *obligation.PaidDate, "", requestingUserID)
			if err := s.expenseRepo.CreateReversal(ctx, reversal, expense.ExpenseID); err != nil {
				s.LogError(ctx, err, "failed to reverse booked tax expense", "obligation_id", obligationID)
				return nil, fmt.Errorf("failed to reverse booked tax expense: %w", err)
			}
		}
		obligation.ExpenseID = nil
	}

	obligation.PaidDate = nil
	obligation.LastUpdatedAt = time.Now()
	obligation.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateObligation(ctx, *obligation); err != nil {
		return nil, fmt.Errorf("failed to mark installment unpaid: %w", err)
	}

	s.LogInfo(ctx, "installment payment withdrawn", "obligation_id", obligationID)
	return obligation, nil
}

// PaymentInstructions assembles the payment slip for one installment from
// its decision.
func (s *obligationService) PaymentInstructions(ctx context.Context, obligationID string) (*dto.PaymentInstructionsResponse, error) {
	obligation, err := s.repo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}
	if obligation == nil {
		return nil, apperrors.ErrNotFound
	}

	typeCodes, err := s.paymentTypeCodes(ctx)
	if err != nil {
		return nil, err
	}

	res := &dto.PaymentInstructionsResponse{
		PaymentTypeCode: typeCodes[obligation.PaymentTypeID],
		Amount:          obligation.Amount,
		Model:           "97",
		PozivNaBroj:     obligation.PaymentReference,
		Deadline:        obligation.Deadline,
	}

	if obligation.DecisionID != nil {
		decision, err := s.repo.FindDecisionByID(ctx, *obligation.DecisionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load decision: %w", err)
		}
		if decision != nil {
			res.RecipientName = decision.RecipientName
			res.RecipientAccount = decision.RecipientAccount
			res.SifraPlacanja = decision.SifraPlacanja
			if decision.Model != "" {
				res.Model = decision.Model
			}
			res.PaymentPurpose = decision.PurposeForYear(obligation.Year)
		}
	}
	return res, nil
}

func (s *obligationService) ListUnpaid(ctx context.Context, until domain.Date) ([]domain.MonthlyObligation, error) {
	obligations, err := s.repo.FindUnpaidObligations(ctx, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid installments: %w", err)
	}
	return obligations, nil
}
