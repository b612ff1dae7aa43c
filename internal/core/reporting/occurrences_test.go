package reporting_test

import (
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func monthlyRent() domain.PlannedExpense {
	return domain.PlannedExpense{
		PlannedExpenseID: "pe-rent",
		Name:             "Rent",
		Amount:           money("35000"),
		Currency:         "RSD",
		Period:           domain.RecurMonthly,
		PaymentDay:       intPtr(5),
		StartDate:        domain.NewDate(2023, time.June, 1),
		IsActive:         true,
	}
}

func TestOccurrenceDates_Monthly(t *testing.T) {
	dates := reporting.OccurrenceDates(monthlyRent(),
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.March, 31), 0)

	require.Len(t, dates, 3)
	assert.Equal(t, "2024-01-05", dates[0].String())
	assert.Equal(t, "2024-02-05", dates[1].String())
	assert.Equal(t, "2024-03-05", dates[2].String())
}

func TestOccurrenceDates_MonthlyDayClampedTo28(t *testing.T) {
	pe := monthlyRent()
	pe.PaymentDay = intPtr(31)

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.February, 1),
		domain.NewDate(2024, time.February, 29), 0)

	require.Len(t, dates, 1)
	assert.Equal(t, "2024-02-28", dates[0].String())
}

func TestOccurrenceDates_RespectsScheduleBounds(t *testing.T) {
	pe := monthlyRent()
	end := domain.NewDate(2024, time.February, 10)
	pe.EndDate = &end

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.June, 30), 0)

	require.Len(t, dates, 2, "no occurrences after the schedule end date")

	pe.StartDate = domain.NewDate(2024, time.February, 1)
	pe.EndDate = nil
	dates = reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.March, 31), 0)
	require.Len(t, dates, 2, "no occurrences before the schedule start date")
	assert.Equal(t, "2024-02-05", dates[0].String())
}

func TestOccurrenceDates_InactiveSchedule(t *testing.T) {
	pe := monthlyRent()
	pe.IsActive = false

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.December, 31), 0)

	assert.Empty(t, dates)
}

func TestOccurrenceDates_Weekly(t *testing.T) {
	pe := monthlyRent()
	pe.Period = domain.RecurWeekly
	pe.StartDate = domain.NewDate(2024, time.January, 1) // a Monday

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 10),
		domain.NewDate(2024, time.January, 31), 0)

	require.Len(t, dates, 3)
	assert.Equal(t, "2024-01-15", dates[0].String())
	assert.Equal(t, "2024-01-22", dates[1].String())
	assert.Equal(t, "2024-01-29", dates[2].String())
}

func TestOccurrenceDates_Quarterly(t *testing.T) {
	pe := monthlyRent()
	pe.Period = domain.RecurQuarterly
	pe.StartDate = domain.NewDate(2024, time.January, 1)
	pe.PaymentDay = intPtr(10)

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.December, 31), 0)

	require.Len(t, dates, 4)
	assert.Equal(t, "2024-01-10", dates[0].String())
	assert.Equal(t, "2024-04-10", dates[1].String())
	assert.Equal(t, "2024-07-10", dates[2].String())
	assert.Equal(t, "2024-10-10", dates[3].String())
}

func TestOccurrenceDates_Yearly(t *testing.T) {
	pe := monthlyRent()
	pe.Period = domain.RecurYearly
	pe.StartDate = domain.NewDate(2023, time.February, 20)
	pe.PaymentDay = nil

	dates := reporting.OccurrenceDates(pe,
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2025, time.December, 31), 0)

	require.Len(t, dates, 2)
	assert.Equal(t, "2024-02-20", dates[0].String())
	assert.Equal(t, "2025-02-20", dates[1].String())
}

func TestExpandOccurrences_PaidAndSums(t *testing.T) {
	pe := monthlyRent()
	paid := reporting.PaidSet{}
	paid.MarkPaid(pe.PlannedExpenseID, domain.NewDate(2024, time.January, 5))

	occurrences := reporting.ExpandOccurrences([]domain.PlannedExpense{pe},
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.March, 31), paid)

	require.Len(t, occurrences, 3)
	assert.True(t, occurrences[0].IsPaid)
	assert.False(t, occurrences[1].IsPaid)

	// Only the two open occurrences count.
	assert.True(t, reporting.SumUnpaid(occurrences).Equal(money("70000")))

	today := domain.NewDate(2024, time.February, 10)
	assert.Equal(t, domain.StatusPaid, occurrences[0].Status(today))
	assert.Equal(t, domain.StatusOverdue, occurrences[1].Status(today), "feb 5 is past")
	assert.Equal(t, domain.StatusUnpaid, occurrences[2].Status(today))
}
