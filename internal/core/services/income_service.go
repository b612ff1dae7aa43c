package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/dto"
)

// invoiceNumberPattern is the YYYY-NNNN invoice book format.
var invoiceNumberPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// incomeService manages the income book and its yearly invoice sequence.
type incomeService struct {
	BaseService
	repo       portsrepo.IncomeRepositoryFacade
	clientRepo portsrepo.ClientReader
}

// NewIncomeService creates a new income service.
func NewIncomeService(repo portsrepo.IncomeRepositoryFacade, clientRepo portsrepo.ClientReader, userRepo portsrepo.UserReader) portssvc.IncomeSvcFacade {
	return &incomeService{
		BaseService: BaseService{userRepo: userRepo},
		repo:        repo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

// FormatInvoiceNumber renders a yearly counter value as YYYY-NNNN.
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}

func (s *incomeService) CreateIncome(ctx context.Context, req dto.CreateIncomeRequest, requestingUserID string) (*domain.Income, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	if !req.AmountRSD.IsPositive() {
		return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}

	year := req.IssuedDate.Year()
	clientName := req.ClientName
	if req.ClientID != nil {
		client, err := s.clientRepo.FindClientByID(ctx, *req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to check client: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("client %s: %w", *req.ClientID, apperrors.ErrValidation)
		}
		if clientName == "" {
			clientName = client.Name
		}
	}
	if clientName == "" {
		return nil, fmt.Errorf("client name is required: %w", apperrors.ErrValidation)
	}

	number := req.InvoiceNumber
	if number == "" {
		seq, err := s.repo.AllocateInvoiceNumber(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
		}
		number = FormatInvoiceNumber(year, seq)
	} else {
		m := invoiceNumberPattern.FindStringSubmatch(number)
		if m == nil {
			return nil, fmt.Errorf("invoice number must be YYYY-NNNN: %w", apperrors.ErrValidation)
		}
		if numberYear, _ := strconv.Atoi(m[1]); numberYear != year {
			return nil, fmt.Errorf("invoice number year does not match issue date: %w", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	income := domain.Income{
		IncomeID:      uuid.NewString(),
		IssuedDate:    req.IssuedDate,
		InvoiceNumber: number,
		InvoiceYear:   year,
		ClientID:      req.ClientID,
		ClientName:    clientName,
		Description:   req.Description,
		AmountRSD:     req.AmountRSD,
		Currency:      "RSD",
		Status:        domain.IncomeIssued,
		ProjectID:     req.ProjectID,
		ContractID:    req.ContractID,
		Note:          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.repo.SaveIncome(ctx, income); err != nil {
		s.LogError(ctx, err, "failed to save income", "invoice_number", number)
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	s.LogInfo(ctx, "invoice recorded", "income_id", income.IncomeID, "invoice_number", number)
	return &income, nil
}

func (s *incomeService) UpdateIncome(ctx context.Context, incomeID string, req dto.UpdateIncomeRequest, requestingUserID string) (*domain.Income, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find income: %w", err)
	}
	if income == nil {
		return nil, apperrors.ErrNotFound
	}
	if income.Status != domain.IncomeIssued {
		return nil, fmt.Errorf("only issued invoices can be edited: %w", apperrors.ErrConflict)
	}

	if req.IssuedDate != nil {
		if req.IssuedDate.Year() != income.InvoiceYear {
			return nil, fmt.Errorf("issue date cannot leave the invoice year: %w", apperrors.ErrValidation)
		}
		income.IssuedDate = *req.IssuedDate
	}
	if req.ClientID != nil {
		income.ClientID = req.ClientID
	}
	if req.ClientName != nil {
		income.ClientName = *req.ClientName
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.AmountRSD != nil {
		if !req.AmountRSD.IsPositive() {
			return nil, fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
		}
		income.AmountRSD = *req.AmountRSD
	}
	if req.ProjectID != nil {
		income.ProjectID = req.ProjectID
	}
	if req.ContractID != nil {
		income.ContractID = req.ContractID
	}
	if req.Note != nil {
		income.Note = *req.Note
	}
	income.LastUpdatedAt = time.Now()
	income.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateIncome(ctx, *income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}

func (s *incomeService) MarkIncomePaid(ctx context.Context, incomeID string, req dto.MarkIncomePaidRequest, requestingUserID string) (*domain.Income, error) {
	if _, err := s.requirePaymentRecorder(ctx, requestingUserID); err != nil {
		return nil, err
	}

	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find income: %w", err)
	}
	if income == nil {
		return nil, apperrors.ErrNotFound
	}
	if income.Status == domain.IncomeCancelled {
		return nil, fmt.Errorf("cancelled invoice cannot be paid: %w", apperrors.ErrConflict)
	}
	if income.PaidDate != nil {
		return nil, fmt.Errorf("invoice already paid: %w", apperrors.ErrConflict)
	}
	if req.PaidDate.Before(income.IssuedDate) {
		return nil, fmt.Errorf("paid date precedes issue date: %w", apperrors.ErrValidation)
	}

	paidDate := req.PaidDate
	income.PaidDate = &paidDate
	income.Status = domain.IncomePaid
	income.BankReference = req.BankReference
	income.LastUpdatedAt = time.Now()
	income.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateIncome(ctx, *income); err != nil {
		return nil, fmt.Errorf("failed to mark income paid: %w", err)
	}

	s.LogInfo(ctx, "invoice collected", "income_id", income.IncomeID, "paid_date", paidDate.String())
	return income, nil
}

func (s *incomeService) CancelIncome(ctx context.Context, incomeID string, requestingUserID string) (*domain.Income, error) {
	if _, err := s.requireWriter(ctx, requestingUserID); err != nil {
		return nil, err
	}

	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find income: %w", err)
	}
	if income == nil {
		return nil, apperrors.ErrNotFound
	}
	if income.Status == domain.IncomeCancelled {
		return income, nil
	}
	if income.PaidDate != nil {
		return nil, fmt.Errorf("paid invoice cannot be cancelled: %w", apperrors.ErrConflict)
	}

	income.Status = domain.IncomeCancelled
	income.LastUpdatedAt = time.Now()
	income.LastUpdatedBy = requestingUserID

	if err := s.repo.UpdateIncome(ctx, *income); err != nil {
		return nil, fmt.Errorf("failed to cancel income: %w", err)
	}
	return income, nil
}

func (s *incomeService) GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	income, err := s.repo.FindIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	if income == nil {
		return nil, apperrors.ErrNotFound
	}
	return income, nil
}

func (s *incomeService) ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.Income, error) {
	filter := portsrepo.IncomeFilter{
		Status:    params.Status,
		ClientID:  params.ClientID,
		ProjectID: params.ProjectID,
		Year:      params.Year,
		Limit:     params.Limit,
		Offset:    params.Offset,
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
	incomes, err := s.repo.FindIncomes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

func (s *incomeService) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	if year == 0 {
		year = domain.Today().Year()
	}
	seq, err := s.repo.PeekInvoiceNumber(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to peek invoice number: %w", err)
	}
	return FormatInvoiceNumber(year, seq), nil
}
