package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/shopspring/decimal"
)

// LimitUsage tracks year-to-date invoiced turnover against a flat-tax regime
// annual limit.
type LimitUsage struct {
	Limit        decimal.Decimal `json:"limit"`
	Used         decimal.Decimal `json:"used"`
	Remaining    decimal.Decimal `json:"remaining"`
	UsagePercent decimal.Decimal `json:"usagePercent"`
}

// DashboardResponse is the landing-page snapshot: current month figures,
// year-to-date turnover against the regime limits, receivables and the
// nearest upcoming payments.
type DashboardResponse struct {
	Today domain.Date `json:"today"`
	Year  int         `json:"year"`

	MonthRevenue  decimal.Decimal `json:"monthRevenue"`
	MonthExpenses decimal.Decimal `json:"monthExpenses"`
	MonthNet      decimal.Decimal `json:"monthNet"`

	YTDRevenue decimal.Decimal `json:"ytdRevenue"`
	LimitVAT   LimitUsage      `json:"limitVAT"`
	LimitTotal LimitUsage      `json:"limitTotal"`

	ARTotal    decimal.Decimal    `json:"arTotal"`
	AROverdue  decimal.Decimal    `json:"arOverdue"`
	TopDebtors []reporting.ARItem `json:"topDebtors"`

	UpcomingObligations []MonthlyObligationResponse `json:"upcomingObligations"`
	UpcomingPlanned     []OccurrenceResponse        `json:"upcomingPlanned"`

	RecentIncomes []IncomeResponse `json:"recentIncomes"`
}

// NewLimitUsage computes usage of one annual turnover limit.
func NewLimitUsage(limit, used decimal.Decimal) LimitUsage {
	u := LimitUsage{Limit: limit, Used: used, Remaining: limit.Sub(used)}
	if limit.IsPositive() {
		u.UsagePercent = used.Div(limit).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return u
}
