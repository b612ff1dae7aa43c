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

func money(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func income(issued domain.Date, amount string, paid *domain.Date) domain.Income {
	status := domain.IncomeIssued
	if paid != nil {
		status = domain.IncomePaid
	}
	return domain.Income{
		IncomeID:   "inc-" + issued.String(),
		IssuedDate: issued,
		AmountRSD:  money(amount),
		PaidDate:   paid,
		Status:     status,
	}
}

func expense(date domain.Date, amount string, paid *domain.Date) domain.Expense {
	return domain.Expense{
		ExpenseID: "exp-" + date.String(),
		Date:      date,
		Amount:    money(amount),
		PaidDate:  paid,
		Status:    domain.ExpensePaid,
	}
}

func q1_2024() reporting.Period {
	return reporting.Period{
		From: domain.NewDate(2024, time.January, 1),
		To:   domain.NewDate(2024, time.March, 31),
	}
}

func TestAggregate_OpeningClosingChain(t *testing.T) {
	jan10 := domain.NewDate(2024, time.January, 10)
	feb5 := domain.NewDate(2024, time.February, 5)
	jan20 := domain.NewDate(2024, time.January, 20)

	incomes := []domain.Income{income(jan10, "500", &jan10)}
	expenses := []domain.Expense{
		expense(jan20, "200", &jan20),
		expense(feb5, "100", &feb5),
	}

	s := reporting.Aggregate(incomes, expenses, reporting.Period{
		From: domain.NewDate(2024, time.January, 1),
		To:   domain.NewDate(2024, time.February, 29),
	}, reporting.GroupByMonth, reporting.ModeCash, money("1000"))

	require.Len(t, s.Series, 2)
	jan, feb := s.Series[0], s.Series[1]

	assert.Equal(t, "2024-01", jan.Period)
	assert.True(t, jan.Opening.Equal(money("1000")))
	assert.True(t, jan.Inflow.Equal(money("500")))
	assert.True(t, jan.Outflow.Equal(money("200")))
	assert.True(t, jan.Closing.Equal(money("1300")))

	assert.Equal(t, "2024-02", feb.Period)
	assert.True(t, feb.Opening.Equal(jan.Closing), "opening must carry the previous closing")
	assert.True(t, feb.Inflow.IsZero())
	assert.True(t, feb.Outflow.Equal(money("100")))
	assert.True(t, feb.Closing.Equal(money("1200")))

	// closing = opening + inflow - outflow for every bucket
	for _, b := range s.Series {
		assert.True(t, b.Closing.Equal(b.Opening.Add(b.Inflow).Sub(b.Outflow)), "bucket %s", b.Period)
	}
}

func TestAggregate_CashExcludesUnpaid(t *testing.T) {
	jan10 := domain.NewDate(2024, time.January, 10)
	incomes := []domain.Income{
		income(jan10, "100000", nil), // issued, never paid
	}

	s := reporting.Aggregate(incomes, nil, q1_2024(), reporting.GroupByMonth, reporting.ModeBoth, decimal.Zero)

	assert.True(t, s.Totals.RevenueAccrual.Equal(money("100000")))
	assert.True(t, s.Totals.RevenueCash.IsZero(), "unpaid income must not appear in cash revenue")
}

func TestAggregate_CashKeysOnPaidDate(t *testing.T) {
	// Issued in December, paid in January: cash recognizes it in January.
	dec20 := domain.NewDate(2023, time.December, 20)
	jan8 := domain.NewDate(2024, time.January, 8)
	incomes := []domain.Income{income(dec20, "750.50", &jan8)}

	s := reporting.Aggregate(incomes, nil, q1_2024(), reporting.GroupByMonth, reporting.ModeBoth, decimal.Zero)

	assert.True(t, s.Totals.RevenueAccrual.IsZero(), "december issue date is outside the period")
	assert.True(t, s.Totals.RevenueCash.Equal(money("750.50")))
	assert.True(t, s.Series[0].RevenueCash.Equal(money("750.50")))
}

func TestAggregate_CancelledIncomesIgnored(t *testing.T) {
	jan10 := domain.NewDate(2024, time.January, 10)
	inc := income(jan10, "300", &jan10)
	inc.Status = domain.IncomeCancelled

	s := reporting.Aggregate([]domain.Income{inc}, nil, q1_2024(), reporting.GroupByMonth, reporting.ModeBoth, decimal.Zero)

	assert.True(t, s.Totals.RevenueAccrual.IsZero())
	assert.True(t, s.Totals.RevenueCash.IsZero())
}

func TestAggregate_ReversalNetsToZeroInPeriod(t *testing.T) {
	jan15 := domain.NewDate(2024, time.January, 15)
	feb1 := domain.NewDate(2024, time.February, 1)

	originalID := "exp-original"
	original := expense(jan15, "400", &jan15)
	original.ExpenseID = originalID

	storno := expense(feb1, "-400", &feb1)
	storno.Status = domain.ExpenseReversed
	storno.ReversalOfID = &originalID

	s := reporting.Aggregate(nil, []domain.Expense{original, storno}, q1_2024(), reporting.GroupByMonth, reporting.ModeAccrual, decimal.Zero)

	assert.True(t, s.Totals.ExpenseAccrual.IsZero(), "original and storno in-period must net to zero")
	// The storno lands in its own bucket rather than rewriting January.
	assert.True(t, s.Series[0].ExpenseAccrual.Equal(money("400")))
	assert.True(t, s.Series[1].ExpenseAccrual.Equal(money("-400")))
}

func TestAggregate_ReversalOutsidePeriodCarries(t *testing.T) {
	mar20 := domain.NewDate(2024, time.March, 20)
	apr2 := domain.NewDate(2024, time.April, 2)

	originalID := "exp-original"
	original := expense(mar20, "400", &mar20)
	original.ExpenseID = originalID
	storno := expense(apr2, "-400", &apr2)
	storno.Status = domain.ExpenseReversed
	storno.ReversalOfID = &originalID

	q1 := reporting.Aggregate(nil, []domain.Expense{original, storno}, q1_2024(), reporting.GroupByMonth, reporting.ModeAccrual, decimal.Zero)
	assert.True(t, q1.Totals.ExpenseAccrual.Equal(money("400")), "Q1 keeps the original charge")

	q2 := reporting.Aggregate(nil, []domain.Expense{original, storno}, reporting.Period{
		From: domain.NewDate(2024, time.April, 1),
		To:   domain.NewDate(2024, time.June, 30),
	}, reporting.GroupByMonth, reporting.ModeAccrual, decimal.Zero)
	assert.True(t, q2.Totals.ExpenseAccrual.Equal(money("-400")), "the storno reduces the period it lands in")
}

func TestAggregate_DenseSortedSeries(t *testing.T) {
	s := reporting.Aggregate(nil, nil, reporting.Period{
		From: domain.NewDate(2023, time.November, 1),
		To:   domain.NewDate(2024, time.February, 29),
	}, reporting.GroupByMonth, reporting.ModeBoth, decimal.Zero)

	require.Len(t, s.Series, 4)
	labels := []string{s.Series[0].Period, s.Series[1].Period, s.Series[2].Period, s.Series[3].Period}
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, labels)
}

func TestAggregate_GroupByDayAndYear(t *testing.T) {
	jan1 := domain.NewDate(2024, time.January, 1)
	jan2 := domain.NewDate(2024, time.January, 2)
	incomes := []domain.Income{income(jan1, "10", &jan1), income(jan2, "20", &jan2)}

	day := reporting.Aggregate(incomes, nil, reporting.Period{From: jan1, To: jan2}, reporting.GroupByDay, reporting.ModeCash, decimal.Zero)
	require.Len(t, day.Series, 2)
	assert.Equal(t, "2024-01-01", day.Series[0].Period)
	assert.True(t, day.Series[1].RevenueCash.Equal(money("20")))

	year := reporting.Aggregate(incomes, nil, reporting.Period{
		From: domain.NewDate(2023, time.June, 1),
		To:   domain.NewDate(2024, time.June, 1),
	}, reporting.GroupByYear, reporting.ModeCash, decimal.Zero)
	require.Len(t, year.Series, 2)
	assert.Equal(t, "2023", year.Series[0].Period)
	assert.True(t, year.Series[1].RevenueCash.Equal(money("30")))
}

func TestAggregate_TaxesCash(t *testing.T) {
	jan10 := domain.NewDate(2024, time.January, 10)
	tax := expense(jan10, "5122.16", &jan10)
	tax.IsTaxRelated = true
	other := expense(jan10, "1000", &jan10)

	s := reporting.Aggregate(nil, []domain.Expense{tax, other}, q1_2024(), reporting.GroupByMonth, reporting.ModeCash, decimal.Zero)

	assert.True(t, s.Totals.ExpenseCash.Equal(money("6122.16")))
	assert.True(t, s.Totals.TaxesCash.Equal(money("5122.16")))
}

func TestAggregate_DecimalPrecision(t *testing.T) {
	// Many small additions must not drift the way float accumulation would.
	jan := domain.NewDate(2024, time.January, 2)
	var incomes []domain.Income
	for i := 0; i < 1000; i++ {
		incomes = append(incomes, income(jan, "0.10", &jan))
	}

	s := reporting.Aggregate(incomes, nil, q1_2024(), reporting.GroupByMonth, reporting.ModeCash, decimal.Zero)
	assert.True(t, s.Totals.RevenueCash.Equal(money("100.00")))
}
