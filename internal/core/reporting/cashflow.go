package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// CashflowPoint is one bucket of the cash movement chain.
type CashflowPoint struct {
	Period  string          `json:"period"`
	Opening decimal.Decimal `json:"opening"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Closing decimal.Decimal `json:"closing"`
}

// CashflowReport chains cash movement over the period:
// closing = opening + inflow - outflow, carried bucket to bucket starting
// from the opening cash balance.
type CashflowReport struct {
	Period             Period          `json:"range"`
	GroupBy            GroupBy         `json:"group_by"`
	OpeningCashBalance decimal.Decimal `json:"opening_cash_balance"`
	Series             []CashflowPoint `json:"series"`
}

// ComputeCashflow buckets paid rows over the period in cash mode and chains
// the opening/closing balances. Inflow is collected revenue, outflow paid
// expenses; rows without a paid date never appear.
func ComputeCashflow(incomes []domain.Income, expenses []domain.Expense, period Period, groupBy GroupBy, openingBalance decimal.Decimal) CashflowReport {
	summary := Aggregate(incomes, expenses, period, groupBy, ModeCash, openingBalance)

	series := make([]CashflowPoint, len(summary.Series))
	for i, b := range summary.Series {
		series[i] = CashflowPoint{
			Period:  b.Period,
			Opening: b.Opening,
			Inflow:  b.Inflow,
			Outflow: b.Outflow,
			Closing: b.Closing,
		}
	}
	return CashflowReport{
		Period:             period,
		GroupBy:            groupBy,
		OpeningCashBalance: openingBalance.Round(2),
		Series:             series,
	}
}
