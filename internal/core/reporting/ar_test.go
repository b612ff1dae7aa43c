package reporting_test

import (
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAR_AgingScenario(t *testing.T) {
	// Invoice of 100,000 RSD issued 2024-01-01, unpaid, today 2024-02-15:
	// 45 days outstanding, overdue.
	today := domain.NewDate(2024, time.February, 15)
	incomes := []domain.Income{
		{
			IncomeID:      "inc-1",
			InvoiceNumber: "2024-0001",
			ClientName:    "Acme d.o.o.",
			IssuedDate:    domain.NewDate(2024, time.January, 1),
			AmountRSD:     money("100000"),
			Status:        domain.IncomeIssued,
		},
	}

	report := reporting.ComputeAR(incomes, today)

	require.Len(t, report.Items, 1)
	item := report.Items[0]
	assert.Equal(t, 45, item.DaysOutstanding)
	assert.Greater(t, item.DaysOutstanding, reporting.OverdueThresholdDays)
	assert.True(t, report.Totals.ARTotal.Equal(money("100000")))
	assert.True(t, report.Totals.AROverdue.Equal(money("100000")))
}

func TestComputeAR_PaidAndCancelledExcluded(t *testing.T) {
	today := domain.NewDate(2024, time.February, 15)
	paidDate := domain.NewDate(2024, time.January, 20)
	incomes := []domain.Income{
		{IncomeID: "paid", IssuedDate: domain.NewDate(2024, time.January, 5), AmountRSD: money("500"), PaidDate: &paidDate, Status: domain.IncomePaid},
		{IncomeID: "cancelled", IssuedDate: domain.NewDate(2024, time.January, 6), AmountRSD: money("700"), Status: domain.IncomeCancelled},
		{IncomeID: "open", IssuedDate: domain.NewDate(2024, time.February, 1), AmountRSD: money("300"), Status: domain.IncomeIssued},
	}

	report := reporting.ComputeAR(incomes, today)

	require.Len(t, report.Items, 1)
	assert.Equal(t, "open", report.Items[0].IncomeID)
	assert.True(t, report.Totals.ARTotal.Equal(money("300")))
	assert.True(t, report.Totals.AROverdue.IsZero(), "14 days out is not overdue")
}

func TestComputeAR_FutureIssueDateClampsToZero(t *testing.T) {
	today := domain.NewDate(2024, time.February, 15)
	incomes := []domain.Income{
		{IncomeID: "future", IssuedDate: domain.NewDate(2024, time.March, 1), AmountRSD: money("100"), Status: domain.IncomeIssued},
	}

	report := reporting.ComputeAR(incomes, today)

	require.Len(t, report.Items, 1)
	assert.Equal(t, 0, report.Items[0].DaysOutstanding)
}

func TestComputeAR_ThresholdBoundary(t *testing.T) {
	today := domain.NewDate(2024, time.March, 1)
	exactly30 := domain.Income{IncomeID: "d30", IssuedDate: today.AddDays(-30), AmountRSD: money("100"), Status: domain.IncomeIssued}
	exactly31 := domain.Income{IncomeID: "d31", IssuedDate: today.AddDays(-31), AmountRSD: money("200"), Status: domain.IncomeIssued}

	report := reporting.ComputeAR([]domain.Income{exactly30, exactly31}, today)

	assert.True(t, report.Totals.ARTotal.Equal(money("300")))
	// Strictly greater than 30 days counts as overdue.
	assert.True(t, report.Totals.AROverdue.Equal(money("200")))
}

func TestTopOverdue(t *testing.T) {
	today := domain.NewDate(2024, time.June, 1)
	var incomes []domain.Income
	for i, age := range []int{10, 35, 90, 45, 60, 31, 120} {
		incomes = append(incomes, domain.Income{
			IncomeID:   string(rune('a' + i)),
			IssuedDate: today.AddDays(-age),
			AmountRSD:  money("100"),
			Status:     domain.IncomeIssued,
		})
	}

	top := reporting.TopOverdue(reporting.ComputeAR(incomes, today), 5)

	require.Len(t, top, 5)
	days := make([]int, len(top))
	for i, item := range top {
		days[i] = item.DaysOutstanding
	}
	assert.Equal(t, []int{120, 90, 60, 45, 35}, days)
}
