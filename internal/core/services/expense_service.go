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

// expenseService manages cost rows and storno reversals.
type expenseService struct {
	BaseService
	repo portsrepo.ExpenseRepositoryFacade
}

// NewExpenseService creates a new expense service.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	status := domain.ExpensePlanned
	if req.PaidDate != nil {
		status = domain.ExpensePaid
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		Date:         req.Date,
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     "RSD",
		Category:     req.Category,
		PaidDate:     req.PaidDate,
		Status:       status,
		IsTaxRelated: req.IsTaxRelated,
		Source:       domain.SourceManual,
		ProjectID:    req.ProjectID,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save expense")
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if expense == nil {
		return nil, apperrors.ErrNotFound
	}
	if expense.IsReversal() || expense.ReversedExpenseID != nil {
		return nil, fmt.Errorf("reversed rows are immutable, create a new expense instead: %w", apperrors.ErrConflict)
	}
	if expense.Source == domain.SourceObligation || expense.Source == domain.SourceBankImport {
		return nil, fmt.Errorf("%s rows are immutable, use a reversal: %w", expense.Source, apperrors.ErrConflict)
	}

	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.IsTaxRelated != nil {
		expense.IsTaxRelated = *req.IsTaxRelated
	}
	if req.ProjectID != nil {
		expense.ProjectID = req.ProjectID
	}
	if req.Note != nil {
		expense.Note = *req.Note
	}
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (s *expenseService) MarkExpensePaid(ctx context.Context, expenseID string, req dto.MarkExpensePaidRequest, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return nil, err
	}

	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if expense == nil {
		return nil, apperrors.ErrNotFound
	}
	if expense.IsReversal() || expense.ReversedExpenseID != nil {
		return nil, fmt.Errorf("reversed rows cannot be paid: %w", apperrors.ErrConflict)
	}
	if expense.PaidDate != nil {
		return nil, fmt.Errorf("expense already paid: %w", apperrors.ErrConflict)
	}

	paidDate := req.PaidDate
	expense.PaidDate = &paidDate
	expense.Status = domain.ExpensePaid
	expense.BankReference = req.BankReference
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to mark expense paid: %w", err)
	}
	return expense, nil
}

// ReverseExpense creates the storno row: same figures with a negated amount,
// dated by the request so a correction in a later month reduces that month.
func (s *expenseService) ReverseExpense(ctx context.Context, expenseID string, req dto.ReverseExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	original, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if original == nil {
		return nil, apperrors.ErrNotFound
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("a reversal cannot be reversed: %w", apperrors.ErrConflict)
	}
	if original.ReversedExpenseID != nil {
		return nil, fmt.Errorf("expense already reversed: %w", apperrors.ErrConflict)
	}
	if req.Date.Before(original.Date) {
		return nil, fmt.Errorf("reversal date precedes the original: %w", apperrors.ErrValidation)
	}

	reversal := stornoExpense(*original, req.Date, req.Note, requestingUserID)

	if err := s.repo.CreateReversal(ctx, reversal, original.ExpenseID); err != nil {
		s.LogError(ctx, err, "failed to create reversal", "expense_id", original.ExpenseID)
		return nil, fmt.Errorf("failed to reverse expense: %w", err)
	}

	s.LogInfo(ctx, "expense reversed", "expense_id", original.ExpenseID, "reversal_id", reversal.ExpenseID)
	return &reversal, nil
}

// stornoExpense builds the negative-amount counterpart of an expense, dated
// by reverseDate. The paid date follows only when the original was paid.
func stornoExpense(original domain.Expense, reverseDate domain.Date, note, requestingUserID string) domain.Expense {
	now := time.Now()
	originalID := original.ExpenseID
	reversal := domain.Expense{
		ExpenseID:    uuid.NewString(),
		Date:         reverseDate,
		Description:  "STORNO: " + original.Description,
		Amount:       original.Amount.Neg(),
		Currency:     original.Currency,
		Category:     original.Category,
		Status:       domain.ExpenseReversed,
		IsTaxRelated: original.IsTaxRelated,
		Source:       original.Source,
		ReversalOfID: &originalID,
		ProjectID:    original.ProjectID,
		Note:         note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if original.PaidDate != nil {
		reversalPaid := reverseDate
		reversal.PaidDate = &reversalPaid
	}
	return reversal
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.repo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense == nil {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseFilter{
		Status:           params.Status,
		Category:         params.Category,
		ProjectID:        params.ProjectID,
		IncludeReversals: params.IncludeReversals,
		Limit:            params.Limit,
		Offset:           params.Offset,
	}
	if params.From != "" {
		d, err := domain.ParseDate(params.From)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
		}
		filter.From = &d
	}
	if params.To != "" {
		d, err := domain.ParseDate(params.To)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
		}
		filter.To = &d
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	expenses, err := s.repo.FindExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}
