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
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/prospel/prospel_backend/internal/dto"
)

// plannedExpenseService manages recurring cost schedules and their generated
// occurrences.
type plannedExpenseService struct {
	BaseService
	repo        portsrepo.PlannedExpenseRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// NewPlannedExpenseService creates a new planned expense service.
func NewPlannedExpenseService(repo portsrepo.PlannedExpenseRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, userRepo portsrepo.UserReader) portssvc.PlannedExpenseSvcFacade {
	return &plannedExpenseService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.PlannedExpenseSvcFacade = (*plannedExpenseService)(nil)

// validateSchedule checks the recurrence parameters fit the period kind.
func validateSchedule(period domain.RecurrencePeriod, paymentDay, paymentDayOfWeek *int) error {
	switch period {
	case domain.RecurWeekly:
		if paymentDayOfWeek == nil {
			return fmt.Errorf("weekly schedules need paymentDayOfWeek: %w", apperrors.ErrValidation)
		}
	case domain.RecurMonthly, domain.RecurQuarterly, domain.RecurYearly:
		if paymentDay == nil {
			return fmt.Errorf("%s schedules need paymentDay: %w", period, apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("unknown recurrence period %q: %w", period, apperrors.ErrValidation)
	}
	return nil
}

func (s *plannedExpenseService) CreatePlannedExpense(ctx context.Context, req dto.CreatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if err := validateSchedule(req.Period, req.PaymentDay, req.PaymentDayOfWeek); err != nil {
		return nil, err
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	pe := domain.PlannedExpense{
		PlannedExpenseID: uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		Amount:           req.Amount,
		Currency:         "RSD",
		Category:         req.Category,
		Period:           req.Period,
		PaymentDay:       req.PaymentDay,
		PaymentDayOfWeek: req.PaymentDayOfWeek,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ReminderDays:     req.ReminderDays,
		IsActive:         true,
		Note:             req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SavePlannedExpense(ctx, pe); err != nil {
		s.LogError(ctx, err, "failed to save planned expense")
		return nil, fmt.Errorf("failed to create planned expense: %w", err)
	}
	return &pe, nil
}

func (s *plannedExpenseService) UpdatePlannedExpense(ctx context.Context, plannedExpenseID string, req dto.UpdatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	pe, err := s.repo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find planned expense: %w", err)
	}
	if pe == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		pe.Name = *req.Name
	}
	if req.Description != nil {
		pe.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		pe.Amount = *req.Amount
	}
	if req.Category != nil {
		pe.Category = *req.Category
	}
	if req.Period != nil {
		pe.Period = *req.Period
	}
	if req.PaymentDay != nil {
		pe.PaymentDay = req.PaymentDay
	}
	if req.PaymentDayOfWeek != nil {
		pe.PaymentDayOfWeek = req.PaymentDayOfWeek
	}
	if req.StartDate != nil {
		pe.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		pe.EndDate = req.EndDate
	}
	if req.ReminderDays != nil {
		pe.ReminderDays = *req.ReminderDays
	}
	if req.IsActive != nil {
		pe.IsActive = *req.IsActive
	}
	if req.Note != nil {
		pe.Note = *req.Note
	}
	if err := validateSchedule(pe.Period, pe.PaymentDay, pe.PaymentDayOfWeek); err != nil {
		return nil, err
	}
	pe.LastUpdatedAt = time.Now()
	pe.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdatePlannedExpense(ctx, *pe); err != nil {
		return nil, fmt.Errorf("failed to update planned expense: %w", err)
	}
	return pe, nil
}

func (s *plannedExpenseService) GetPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error) {
	pe, err := s.repo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get planned expense: %w", err)
	}
	if pe == nil {
		return nil, apperrors.ErrNotFound
	}
	return pe, nil
}

func (s *plannedExpenseService) ListPlannedExpenses(ctx context.Context, activeOnly bool) ([]domain.PlannedExpense, error) {
	items, err := s.repo.FindPlannedExpenses(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned expenses: %w", err)
	}
	return items, nil
}

// ListOccurrences expands the active schedules over [from, to] and joins the
// recorded payments.
func (s *plannedExpenseService) ListOccurrences(ctx context.Context, from, to domain.Date) ([]domain.Occurrence, error) {
	items, err := s.repo.FindPlannedExpenses(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load planned expenses: %w", err)
	}
	payments, err := s.repo.FindOccurrencePayments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrence payments: %w", err)
	}

	paid := make(reporting.PaidSet, len(payments))
	for _, p := range payments {
		paid.MarkPaid(p.PlannedExpenseID, p.DueDate)
	}
	return reporting.ExpandOccurrences(items, from, to, paid), nil
}

// MarkOccurrencePaid settles one generated due date and books the matching
// expense row.
func (s *plannedExpenseService) MarkOccurrencePaid(ctx context.Context, plannedExpenseID string, req dto.MarkOccurrencePaidRequest, requestingUserID string) (*domain.OccurrencePayment, error) {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return nil, err
	}

	pe, err := s.repo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find planned expense: %w", err)
	}
	if pe == nil {
		return nil, apperrors.ErrNotFound
	}

	// The due date must be one the schedule actually generates.
	dates := reporting.OccurrenceDates(*pe, req.DueDate, req.DueDate, 0)
	if len(dates) == 0 {
		return nil, fmt.Errorf("due date %s is not on the schedule: %w", req.DueDate, apperrors.ErrValidation)
	}

	now := time.Now()
	paidDate := req.PaidDate
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		Date:         req.DueDate,
		Description:  pe.Name,
		Amount:       pe.Amount,
		Currency:     pe.Currency,
		Category:     pe.Category,
		PaidDate:     &paidDate,
		Status:       domain.ExpensePaid,
		Source:       domain.SourcePlanned,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to book planned expense", "planned_expense_id", plannedExpenseID)
		return nil, fmt.Errorf("failed to book planned expense: %w", err)
	}

	payment := domain.OccurrencePayment{
		PaymentID:        uuid.NewString(),
		PlannedExpenseID: plannedExpenseID,
		DueDate:          req.DueDate,
		PaidDate:         paidDate,
		ExpenseID:        &expense.ExpenseID,
		Note:             req.Note,
	}
	if err := s.repo.SaveOccurrencePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record occurrence payment: %w", err)
	}

	s.LogInfo(ctx, "occurrence paid", "planned_expense_id", plannedExpenseID, "due_date", req.DueDate.String())
	return &payment, nil
}

// MarkOccurrenceUnpaid withdraws the settlement of one due date. The booked
// expense row is reversed with a storno and the settlement record removed,
// so the due date shows up as unpaid again.
func (s *plannedExpenseService) MarkOccurrenceUnpaid(ctx context.Context, plannedExpenseID string, req dto.MarkOccurrenceUnpaidRequest, requestingUserID string) error {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return err
	}

	payment, err := s.repo.FindOccurrencePayment(ctx, plannedExpenseID, req.DueDate)
	if err != nil {
		return fmt.Errorf("failed to find occurrence payment: %w", err)
	}
	if payment == nil {
		return apperrors.ErrNotFound
	}

	if payment.ExpenseID != nil {
		expense, err := s.expenseRepo.FindExpenseByID(ctx, *payment.ExpenseID)
		if err != nil {
			return fmt.Errorf("failed to load booked expense: %w", err)
		}
		if expense != nil && !expense.IsReversal() && expense.ReversedExpenseID == nil {
			reverseDate := expense.Date
			if expense.PaidDate != nil {
				reverseDate = *expense.PaidDate
			}
			reversal := stornoExpense(*expense, reverseDate, "", requestingUserID)
			if err := s.expenseRepo.CreateReversal(ctx, reversal, expense.ExpenseID); err != nil {
				s.LogError(ctx, err, "failed to reverse booked expense", "planned_expense_id", plannedExpenseID)
				return fmt.Errorf("failed to reverse booked expense: %w", err)
			}
		}
	}

	if err := s.repo.DeleteOccurrencePayment(ctx, payment.PaymentID); err != nil {
		return fmt.Errorf("failed to delete occurrence payment: %w", err)
	}

	s.LogInfo(ctx, "occurrence payment withdrawn", "planned_expense_id", plannedExpenseID, "due_date", req.DueDate.String())
	return nil
}

// DeletePlannedExpense removes a schedule. Settlement records go with it;
// booked expense rows stay in the ledger.
func (s *plannedExpenseService) DeletePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) error {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return err
	}

	pe, err := s.repo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return fmt.Errorf("failed to find planned expense: %w", err)
	}
	if pe == nil {
		return apperrors.ErrNotFound
	}

	if err := s.repo.DeletePlannedExpense(ctx, plannedExpenseID); err != nil {
		return fmt.Errorf("failed to delete planned expense: %w", err)
	}

	s.LogInfo(ctx, "planned expense deleted", "planned_expense_id", plannedExpenseID, "name", pe.Name)
	return nil
}
