package reporting_test

import (
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAllocateByProject_Reconciliation(t *testing.T) {
	period := q1_2024()
	jan := domain.NewDate(2024, time.January, 15)
	feb := domain.NewDate(2024, time.February, 10)

	projects := []domain.Project{
		{ProjectID: "p1", Name: "Website"},
		{ProjectID: "p2", Name: "Warehouse"},
		{ProjectID: "p3", Name: "Idle"},
	}
	incomes := []domain.Income{
		{IncomeID: "i1", IssuedDate: jan, AmountRSD: money("1000"), ProjectID: strPtr("p1"), Status: domain.IncomeIssued},
		{IncomeID: "i2", IssuedDate: feb, AmountRSD: money("2000"), ProjectID: strPtr("p2"), Status: domain.IncomeIssued},
		{IncomeID: "i3", IssuedDate: feb, AmountRSD: money("500"), Status: domain.IncomeIssued},                            // no project
		{IncomeID: "i4", IssuedDate: feb, AmountRSD: money("50"), ProjectID: strPtr("ghost"), Status: domain.IncomeIssued}, // unknown project
	}
	expenses := []domain.Expense{
		{ExpenseID: "e1", Date: jan, Amount: money("400"), ProjectID: strPtr("p1"), Status: domain.ExpensePaid},
		{ExpenseID: "e2", Date: feb, Amount: money("100"), Status: domain.ExpensePaid},
	}

	alloc := reporting.AllocateByProject(incomes, expenses, projects, period, reporting.ModeAccrual)

	require.Len(t, alloc.ByProject, 3, "zero-activity projects still appear")

	// Sum of project buckets plus unassigned equals the grand totals.
	revenueSum, expenseSum := decimal.Zero, decimal.Zero
	for _, fig := range alloc.ByProject {
		revenueSum = revenueSum.Add(fig.Revenue)
		expenseSum = expenseSum.Add(fig.Expenses)
	}
	require.NotNil(t, alloc.Unassigned)
	revenueSum = revenueSum.Add(alloc.Unassigned.Revenue)
	expenseSum = expenseSum.Add(alloc.Unassigned.Expenses)

	totals := reporting.Aggregate(incomes, expenses, period, reporting.GroupByMonth, reporting.ModeAccrual, decimal.Zero).Totals
	assert.True(t, revenueSum.Equal(totals.RevenueAccrual), "revenue must reconcile: %s vs %s", revenueSum, totals.RevenueAccrual)
	assert.True(t, expenseSum.Equal(totals.ExpenseAccrual), "expenses must reconcile: %s vs %s", expenseSum, totals.ExpenseAccrual)

	// Unknown project refs land in unassigned, not dropped.
	assert.True(t, alloc.Unassigned.Revenue.Equal(money("550")))
}

func TestAllocateByProject_ProfitAndMargin(t *testing.T) {
	period := q1_2024()
	jan := domain.NewDate(2024, time.January, 15)
	projects := []domain.Project{{ProjectID: "p1", Name: "Website"}}
	incomes := []domain.Income{{IncomeID: "i1", IssuedDate: jan, AmountRSD: money("1000"), ProjectID: strPtr("p1"), Status: domain.IncomeIssued}}
	expenses := []domain.Expense{{ExpenseID: "e1", Date: jan, Amount: money("400"), ProjectID: strPtr("p1"), Status: domain.ExpensePaid}}

	alloc := reporting.AllocateByProject(incomes, expenses, projects, period, reporting.ModeAccrual)

	fig := alloc.ByProject[0]
	assert.True(t, fig.Profit.Equal(money("600")))
	assert.True(t, fig.MarginPercent.Equal(money("60")))
}

func TestAllocateByProject_NegativeProfit(t *testing.T) {
	period := q1_2024()
	jan := domain.NewDate(2024, time.January, 15)
	projects := []domain.Project{{ProjectID: "p1", Name: "Loss maker"}}
	expenses := []domain.Expense{{ExpenseID: "e1", Date: jan, Amount: money("400"), ProjectID: strPtr("p1"), Status: domain.ExpensePaid}}

	alloc := reporting.AllocateByProject(nil, expenses, projects, period, reporting.ModeAccrual)

	fig := alloc.ByProject[0]
	assert.True(t, fig.Profit.Equal(money("-400")), "profit is signed")
	assert.True(t, fig.MarginPercent.IsZero(), "no margin without revenue")
}

func TestAllocateByProject_UnassignedOmittedWhenZero(t *testing.T) {
	period := q1_2024()
	jan := domain.NewDate(2024, time.January, 15)
	projects := []domain.Project{{ProjectID: "p1", Name: "Website"}}
	incomes := []domain.Income{{IncomeID: "i1", IssuedDate: jan, AmountRSD: money("1000"), ProjectID: strPtr("p1"), Status: domain.IncomeIssued}}

	alloc := reporting.AllocateByProject(incomes, nil, projects, period, reporting.ModeAccrual)

	assert.Nil(t, alloc.Unassigned)
}

func TestAllocateByProject_CashMode(t *testing.T) {
	period := q1_2024()
	dec := domain.NewDate(2023, time.December, 20)
	feb := domain.NewDate(2024, time.February, 1)
	projects := []domain.Project{{ProjectID: "p1", Name: "Website"}}

	// Issued before the period, paid inside it.
	incomes := []domain.Income{
		{IncomeID: "i1", IssuedDate: dec, AmountRSD: money("1000"), PaidDate: &feb, ProjectID: strPtr("p1"), Status: domain.IncomePaid},
		{IncomeID: "i2", IssuedDate: feb, AmountRSD: money("2000"), ProjectID: strPtr("p1"), Status: domain.IncomeIssued}, // unpaid
	}

	alloc := reporting.AllocateByProject(incomes, nil, projects, period, reporting.ModeCash)

	assert.True(t, alloc.ByProject[0].Revenue.Equal(money("1000")), "cash mode keys on paid date and skips unpaid rows")
}
