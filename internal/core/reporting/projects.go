package reporting

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectFigures is one project's profitability bucket.
type ProjectFigures struct {
	ProjectID     string          `json:"project_id"`
	ProjectName   string          `json:"project_name"`
	Revenue       decimal.Decimal `json:"revenue"`
	Expenses      decimal.Decimal `json:"expenses"`
	Profit        decimal.Decimal `json:"profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// UnassignedFigures collects rows with no (or an unknown) project.
type UnassignedFigures struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// ProjectAllocation is the per-project profitability report.
type ProjectAllocation struct {
	Period     Period             `json:"range"`
	Mode       Mode               `json:"mode"`
	ByProject  []ProjectFigures   `json:"by_project"`
	Unassigned *UnassignedFigures `json:"unassigned,omitempty"`
}

// AllocateByProject attributes every in-period income and expense row to its
// project, or to the unassigned bucket when the project reference is null or
// unknown. Projects with no activity still appear with zero figures;
// Unassigned is nil when it saw neither revenue nor expenses. Recognition
// dates follow mode exactly as in Aggregate, so project sums plus unassigned
// always reconcile with the grand totals for the same period and mode.
func AllocateByProject(incomes []domain.Income, expenses []domain.Expense, projects []domain.Project, period Period, mode Mode) ProjectAllocation {
	byID := make(map[string]*ProjectFigures, len(projects))
	ordered := make([]ProjectFigures, len(projects))
	for i, p := range projects {
		ordered[i] = ProjectFigures{ProjectID: p.ProjectID, ProjectName: p.Name}
		byID[p.ProjectID] = &ordered[i]
	}
	var unassigned UnassignedFigures

	for _, inc := range incomes {
		if inc.Status == domain.IncomeCancelled || !recognized(inc.IssuedDate, inc.PaidDate, period, mode) {
			continue
		}
		if fig := lookup(byID, inc.ProjectID); fig != nil {
			fig.Revenue = fig.Revenue.Add(inc.AmountRSD)
		} else {
			unassigned.Revenue = unassigned.Revenue.Add(inc.AmountRSD)
		}
	}
	for _, exp := range expenses {
		if exp.Status == domain.ExpensePlanned || !recognized(exp.Date, exp.PaidDate, period, mode) {
			continue
		}
		if fig := lookup(byID, exp.ProjectID); fig != nil {
			fig.Expenses = fig.Expenses.Add(exp.Amount)
		} else {
			unassigned.Expenses = unassigned.Expenses.Add(exp.Amount)
		}
	}

	hundred := decimal.NewFromInt(100)
	for i := range ordered {
		fig := &ordered[i]
		fig.Revenue = fig.Revenue.Round(2)
		fig.Expenses = fig.Expenses.Round(2)
		fig.Profit = fig.Revenue.Sub(fig.Expenses)
		if fig.Revenue.IsPositive() {
			fig.MarginPercent = fig.Profit.Div(fig.Revenue).Mul(hundred).Round(1)
		}
	}

	allocation := ProjectAllocation{Period: period, Mode: mode, ByProject: ordered}
	if !unassigned.Revenue.IsZero() || !unassigned.Expenses.IsZero() {
		unassigned.Revenue = unassigned.Revenue.Round(2)
		unassigned.Expenses = unassigned.Expenses.Round(2)
		unassigned.Profit = unassigned.Revenue.Sub(unassigned.Expenses)
		allocation.Unassigned = &unassigned
	}
	return allocation
}

// recognized reports whether a row falls in-period under the given mode.
func recognized(txnDate domain.Date, paidDate *domain.Date, period Period, mode Mode) bool {
	if mode == ModeCash {
		return paidDate != nil && period.Contains(*paidDate)
	}
	return period.Contains(txnDate)
}

func lookup(byID map[string]*ProjectFigures, projectID *string) *ProjectFigures {
	if projectID == nil {
		return nil
	}
	return byID[*projectID]
}
