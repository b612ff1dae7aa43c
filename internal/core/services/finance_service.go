package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/prospel/prospel_backend/internal/dto"
)

// financeService feeds the pure reporting core from storage.
type financeService struct {
	BaseService
	incomeRepo     portsrepo.IncomeReader
	expenseRepo    portsrepo.ExpenseReader
	projectRepo    portsrepo.ProjectReader
	enterpriseRepo portsrepo.EnterpriseRepositoryFacade
}

// NewFinanceService creates a new finance service.
func NewFinanceService(
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	projectRepo portsrepo.ProjectReader,
	enterpriseRepo portsrepo.EnterpriseRepositoryFacade,
	userRepo portsrepo.UserReader,
) portssvc.FinanceSvcFacade {
	return &financeService{
		BaseService:    BaseService{userRepo: userRepo},
		incomeRepo:     incomeRepo,
		expenseRepo:    expenseRepo,
		projectRepo:    projectRepo,
		enterpriseRepo: enterpriseRepo,
	}
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

// resolvePeriod parses the query bounds and applies the quick-range token.
func resolvePeriod(quick, from, to string, today domain.Date) (reporting.Period, error) {
	var customFrom, customTo *domain.Date
	if from != "" {
		d, err := domain.ParseDate(from)
		if err != nil {
			return reporting.Period{}, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
		}
		customFrom = &d
	}
	if to != "" {
		d, err := domain.ParseDate(to)
		if err != nil {
			return reporting.Period{}, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
		}
		customTo = &d
	}
	return reporting.ResolvePeriod(reporting.QuickRange(quick), customFrom, customTo, today), nil
}

func (s *financeService) Summary(ctx context.Context, params dto.FinanceQueryParams) (*reporting.Summary, error) {
	today := domain.Today()
	period, err := resolvePeriod(params.QuickRange, params.From, params.To, today)
	if err != nil {
		return nil, err
	}

	opening, fetchFrom, err := s.openingBalance(ctx, period.From)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.FindIncomesForReporting(ctx, fetchFrom, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseRepo.FindExpensesForReporting(ctx, fetchFrom, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	opening = opening.Add(cashNetBefore(incomes, expenses, period.From))

	groupBy := reporting.GroupBy(params.GroupBy)
	if groupBy == "" {
		groupBy = reporting.GroupByMonth
	}
	mode := reporting.Mode(params.Mode)
	if mode == "" {
		mode = reporting.ModeBoth
	}

	summary := reporting.Aggregate(incomes, expenses, period, groupBy, mode, opening)
	return &summary, nil
}

func (s *financeService) AR(ctx context.Context) (*reporting.ARReport, error) {
	incomes, err := s.incomeRepo.FindOutstandingIncomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding incomes: %w", err)
	}
	report := reporting.ComputeAR(incomes, domain.Today())
	return &report, nil
}

// Cashflow runs the ledger in cash mode over an explicit [from, to] window
// and chains opening/closing balances from the enterprise opening figure.
func (s *financeService) Cashflow(ctx context.Context, params dto.CashflowQueryParams) (*reporting.CashflowReport, error) {
	from, err := domain.ParseDate(params.From)
	if err != nil {
		return nil, fmt.Errorf("invalid from date: %w", apperrors.ErrValidation)
	}
	to, err := domain.ParseDate(params.To)
	if err != nil {
		return nil, fmt.Errorf("invalid to date: %w", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("period is inverted: %w", apperrors.ErrValidation)
	}
	period := reporting.Period{From: from, To: to}

	opening, fetchFrom, err := s.openingBalance(ctx, period.From)
	if err != nil {
		return nil, err
	}

	incomes, err := s.incomeRepo.FindIncomesForReporting(ctx, fetchFrom, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseRepo.FindExpensesForReporting(ctx, fetchFrom, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	opening = opening.Add(cashNetBefore(incomes, expenses, period.From))

	groupBy := reporting.GroupBy(params.GroupBy)
	if groupBy == "" {
		groupBy = reporting.GroupByMonth
	}

	report := reporting.ComputeCashflow(incomes, expenses, period, groupBy, opening)
	return &report, nil
}

func (s *financeService) ByProject(ctx context.Context, params dto.ByProjectQueryParams) (*reporting.ProjectAllocation, error) {
	today := domain.Today()
	period, err := resolvePeriod(params.QuickRange, params.From, params.To, today)
	if err != nil {
		return nil, err
	}
	mode := reporting.Mode(params.Mode)
	if mode == "" {
		mode = reporting.ModeAccrual
	}
	if mode == reporting.ModeBoth {
		return nil, fmt.Errorf("mode=both is not supported for the project view: %w", apperrors.ErrValidation)
	}

	incomes, err := s.incomeRepo.FindIncomesForReporting(ctx, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseRepo.FindExpensesForReporting(ctx, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	projects, err := s.projectRepo.FindProjects(ctx, portsrepo.ProjectFilter{Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	allocation := reporting.AllocateByProject(incomes, expenses, projects, period, mode)
	return &allocation, nil
}

// openingBalance returns the enterprise's opening cash figure and the date
// rows have to be fetched from so pre-period movement can be replayed. A
// missing profile starts the chain at zero from the period itself.
func (s *financeService) openingBalance(ctx context.Context, periodFrom domain.Date) (decimal.Decimal, domain.Date, error) {
	ent, err := s.enterpriseRepo.GetEnterprise(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, periodFrom, fmt.Errorf("failed to load enterprise: %w", err)
	}
	if ent == nil || ent.OpeningCashDate.IsZero() || ent.OpeningCashDate.After(periodFrom) {
		return decimal.Zero, periodFrom, nil
	}
	return ent.OpeningCashBalance, ent.OpeningCashDate, nil
}

// cashNetBefore replays cash movement strictly before the period start.
func cashNetBefore(incomes []domain.Income, expenses []domain.Expense, periodFrom domain.Date) decimal.Decimal {
	net := decimal.Zero
	for _, inc := range incomes {
		if inc.Status == domain.IncomeCancelled || inc.PaidDate == nil {
			continue
		}
		if inc.PaidDate.Before(periodFrom) {
			net = net.Add(inc.AmountRSD)
		}
	}
	for _, e := range expenses {
		if e.Status == domain.ExpensePlanned || e.PaidDate == nil {
			continue
		}
		if e.PaidDate.Before(periodFrom) {
			net = net.Sub(e.Amount)
		}
	}
	return net
}
