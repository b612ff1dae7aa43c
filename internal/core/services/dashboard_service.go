package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prospel/prospel_backend/internal/core/domain"
	portsrepo "github.com/prospel/prospel_backend/internal/core/ports/repositories"
	portssvc "github.com/prospel/prospel_backend/internal/core/ports/services"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/prospel/prospel_backend/internal/dto"
	"github.com/prospel/prospel_backend/internal/platform/config"
)

// upcomingWindowDays is how far ahead the dashboard looks for due payments.
const upcomingWindowDays = 14

// recentIncomesLimit caps the latest-invoices list on the dashboard.
const recentIncomesLimit = 5

// dashboardService assembles the landing-page snapshot.
type dashboardService struct {
	BaseService
	cfg           *config.Config
	incomeRepo    portsrepo.IncomeReader
	expenseRepo   portsrepo.ExpenseReader
	obligationSvc portssvc.ObligationReaderSvc
	plannedSvc    portssvc.PlannedExpenseReaderSvc
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	cfg *config.Config,
	incomeRepo portsrepo.IncomeReader,
	expenseRepo portsrepo.ExpenseReader,
	obligationSvc portssvc.ObligationReaderSvc,
	plannedSvc portssvc.PlannedExpenseReaderSvc,
	userRepo portsrepo.UserReader,
) portssvc.DashboardSvcFacade {
	return &dashboardService{
		BaseService:   BaseService{userRepo: userRepo},
		cfg:           cfg,
		incomeRepo:    incomeRepo,
		expenseRepo:   expenseRepo,
		obligationSvc: obligationSvc,
		plannedSvc:    plannedSvc,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetDashboard builds the snapshot. A zero year means the current one; the
// month figures always use today's calendar month within the chosen year.
func (s *dashboardService) GetDashboard(ctx context.Context, year int) (*dto.DashboardResponse, error) {
	today := domain.Today()
	if year == 0 {
		year = today.Year()
	}
	yearPeriod := reporting.Period{
		From: domain.NewDate(year, time.January, 1),
		To:   domain.NewDate(year, time.December, 31),
	}
	monthPeriod := reporting.Period{
		From: domain.FirstDayOfMonth(year, today.Month()),
		To:   domain.LastDayOfMonth(year, today.Month()),
	}

	incomes, err := s.incomeRepo.FindIncomesForReporting(ctx, yearPeriod.From, yearPeriod.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseRepo.FindExpensesForReporting(ctx, yearPeriod.From, yearPeriod.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	monthSummary := reporting.Aggregate(incomes, expenses, monthPeriod, reporting.GroupByMonth, reporting.ModeBoth, decimal.Zero)
	yearSummary := reporting.Aggregate(incomes, expenses, yearPeriod, reporting.GroupByYear, reporting.ModeBoth, decimal.Zero)

	outstanding, err := s.incomeRepo.FindOutstandingIncomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding incomes: %w", err)
	}
	ar := reporting.ComputeAR(outstanding, today)

	until := today.AddDays(upcomingWindowDays)

	obligations, err := s.obligationSvc.ListUnpaid(ctx, until)
	if err != nil {
		return nil, err
	}
	types, err := s.obligationSvc.ListPaymentTypes(ctx)
	if err != nil {
		return nil, err
	}
	typeCodes := make(map[string]string, len(types))
	for _, t := range types {
		typeCodes[t.PaymentTypeID] = t.Code
	}
	upcomingObligations := make([]dto.MonthlyObligationResponse, len(obligations))
	for i, o := range obligations {
		upcomingObligations[i] = dto.ToMonthlyObligationResponse(&o, typeCodes[o.PaymentTypeID], today)
	}

	occurrences, err := s.plannedSvc.ListOccurrences(ctx, today, until)
	if err != nil {
		return nil, err
	}
	upcomingPlanned := make([]dto.OccurrenceResponse, 0, len(occurrences))
	for _, o := range occurrences {
		if o.IsPaid {
			continue
		}
		upcomingPlanned = append(upcomingPlanned, dto.ToOccurrenceResponse(&o, today))
	}

	recent, err := s.incomeRepo.FindRecentIncomes(ctx, recentIncomesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent incomes: %w", err)
	}
	recentIncomes := make([]dto.IncomeResponse, len(recent))
	for i, inc := range recent {
		recentIncomes[i] = dto.ToIncomeResponse(&inc)
	}

	ytd := yearSummary.Totals.RevenueAccrual
	res := &dto.DashboardResponse{
		Today:         today,
		Year:          year,
		MonthRevenue:  monthSummary.Totals.RevenueAccrual,
		MonthExpenses: monthSummary.Totals.ExpenseAccrual,
		MonthNet:      monthSummary.Totals.NetProfitAccrual,
		YTDRevenue:    ytd,
		LimitVAT:      dto.NewLimitUsage(decimal.NewFromInt(s.cfg.IncomeLimitVAT), ytd),
		LimitTotal:    dto.NewLimitUsage(decimal.NewFromInt(s.cfg.IncomeLimitTotal), ytd),
		ARTotal:       ar.Totals.ARTotal,
		AROverdue:     ar.Totals.AROverdue,
		TopDebtors:    reporting.TopOverdue(ar, 5),

		UpcomingObligations: upcomingObligations,
		UpcomingPlanned:     upcomingPlanned,
		RecentIncomes:       recentIncomes,
	}
	return res, nil
}
