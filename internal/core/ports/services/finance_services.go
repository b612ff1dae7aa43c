package services

import (
	"context"

	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/prospel/prospel_backend/internal/dto"
)

// FinanceSvcFacade builds the financial report views.
type FinanceSvcFacade interface {
	// Summary buckets the ledger over the requested period.
	Summary(ctx context.Context, params dto.FinanceQueryParams) (*reporting.Summary, error)

	// AR builds the accounts-receivable aging report.
	AR(ctx context.Context) (*reporting.ARReport, error)

	// Cashflow chains cash movement over [from, to] starting from the
	// enterprise opening balance.
	Cashflow(ctx context.Context, params dto.CashflowQueryParams) (*reporting.CashflowReport, error)

	// ByProject attributes the period's rows to projects.
	ByProject(ctx context.Context, params dto.ByProjectQueryParams) (*reporting.ProjectAllocation, error)
}

// DashboardSvcFacade assembles the landing-page snapshot.
type DashboardSvcFacade interface {
	// GetDashboard builds the snapshot for today. A zero year means the
	// current one.
	GetDashboard(ctx context.Context, year int) (*dto.DashboardResponse, error)
}
