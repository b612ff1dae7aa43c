package reporting

import (
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GroupBy selects the bucket granularity of a summary series.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"
)

// Mode selects the accounting recognition basis. Cash recognizes rows on the
// date money moved (paid date); accrual on the transaction date regardless of
// payment.
type Mode string

const (
	ModeCash    Mode = "cash"
	ModeAccrual Mode = "accrual"
	ModeBoth    Mode = "both"
)

// Bucket holds one period's figures. Accrual and cash figures are kept
// side by side so mode=both reports over a single bucket set; Opening and
// Closing chain cash movement across buckets.
type Bucket struct {
	Period string `json:"period"` // YYYY-MM-DD | YYYY-MM | YYYY

	RevenueAccrual   decimal.Decimal `json:"revenue_accrual"`
	ExpenseAccrual   decimal.Decimal `json:"expense_accrual"`
	NetProfitAccrual decimal.Decimal `json:"net_profit_accrual"`

	RevenueCash   decimal.Decimal `json:"revenue_cash"`
	ExpenseCash   decimal.Decimal `json:"expense_cash"`
	TaxesCash     decimal.Decimal `json:"taxes_cash"`
	NetProfitCash decimal.Decimal `json:"net_profit_cash"`

	Opening decimal.Decimal `json:"opening"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Closing decimal.Decimal `json:"closing"`
}

// Totals aggregates all buckets of a summary.
type Totals struct {
	RevenueAccrual   decimal.Decimal `json:"revenue_accrual"`
	ExpenseAccrual   decimal.Decimal `json:"expense_accrual"`
	NetProfitAccrual decimal.Decimal `json:"net_profit_accrual"`
	RevenueCash      decimal.Decimal `json:"revenue_cash"`
	ExpenseCash      decimal.Decimal `json:"expense_cash"`
	TaxesCash        decimal.Decimal `json:"taxes_cash"`
	NetProfitCash    decimal.Decimal `json:"net_profit_cash"`
}

// Summary is the period-bucketed ledger aggregate.
type Summary struct {
	Period  Period   `json:"range"`
	GroupBy GroupBy  `json:"group_by"`
	Mode    Mode     `json:"mode"`
	Series  []Bucket `json:"series"`
	Totals  Totals   `json:"totals"`
}

// Aggregate buckets incomes and expenses over the period.
//
// Filtering rules:
//   - cancelled incomes never count;
//   - accrual figures key on the issued/transaction date;
//   - cash figures key on the paid date and skip rows without one;
//   - planned expenses (not yet actual) are excluded;
//   - reversal rows participate with their negative amount, so an original
//     and its storno net to zero when both land in the period, and a storno
//     in a later period reduces that period instead.
//
// The series is dense: every bucket in the period appears, zero or not,
// sorted ascending. Opening/closing chain cash movement starting from
// openingBalance; for a pure accrual request the chain runs on the accrual
// figures instead. All figures are rounded to 2 decimal places.
func Aggregate(incomes []domain.Income, expenses []domain.Expense, period Period, groupBy GroupBy, mode Mode, openingBalance decimal.Decimal) Summary {
	keys := bucketKeys(period, groupBy)
	index := make(map[string]*Bucket, len(keys))
	series := make([]Bucket, len(keys))
	for i, k := range keys {
		series[i] = Bucket{Period: k}
		index[k] = &series[i]
	}

	needAccrual := mode == ModeAccrual || mode == ModeBoth
	needCash := mode == ModeCash || mode == ModeBoth

	for _, inc := range incomes {
		if inc.Status == domain.IncomeCancelled {
			continue
		}
		if needAccrual && period.Contains(inc.IssuedDate) {
			if b := index[bucketKey(inc.IssuedDate, groupBy)]; b != nil {
				b.RevenueAccrual = b.RevenueAccrual.Add(inc.AmountRSD)
			}
		}
		if needCash && inc.PaidDate != nil && period.Contains(*inc.PaidDate) {
			if b := index[bucketKey(*inc.PaidDate, groupBy)]; b != nil {
				b.RevenueCash = b.RevenueCash.Add(inc.AmountRSD)
			}
		}
	}

	for _, exp := range expenses {
		if exp.Status == domain.ExpensePlanned {
			continue
		}
		if needAccrual && period.Contains(exp.Date) {
			if b := index[bucketKey(exp.Date, groupBy)]; b != nil {
				b.ExpenseAccrual = b.ExpenseAccrual.Add(exp.Amount)
			}
		}
		if needCash && exp.PaidDate != nil && period.Contains(*exp.PaidDate) {
			if b := index[bucketKey(*exp.PaidDate, groupBy)]; b != nil {
				b.ExpenseCash = b.ExpenseCash.Add(exp.Amount)
				if exp.IsTaxRelated {
					b.TaxesCash = b.TaxesCash.Add(exp.Amount)
				}
			}
		}
	}

	var totals Totals
	prevClosing := openingBalance
	for i := range series {
		b := &series[i]
		b.NetProfitAccrual = b.RevenueAccrual.Sub(b.ExpenseAccrual)
		b.NetProfitCash = b.RevenueCash.Sub(b.ExpenseCash)

		b.Inflow, b.Outflow = b.RevenueCash, b.ExpenseCash
		if mode == ModeAccrual {
			b.Inflow, b.Outflow = b.RevenueAccrual, b.ExpenseAccrual
		}
		b.Opening = prevClosing
		b.Closing = b.Opening.Add(b.Inflow).Sub(b.Outflow)
		prevClosing = b.Closing

		totals.RevenueAccrual = totals.RevenueAccrual.Add(b.RevenueAccrual)
		totals.ExpenseAccrual = totals.ExpenseAccrual.Add(b.ExpenseAccrual)
		totals.RevenueCash = totals.RevenueCash.Add(b.RevenueCash)
		totals.ExpenseCash = totals.ExpenseCash.Add(b.ExpenseCash)
		totals.TaxesCash = totals.TaxesCash.Add(b.TaxesCash)

		roundBucket(b)
	}
	totals.NetProfitAccrual = totals.RevenueAccrual.Sub(totals.ExpenseAccrual)
	totals.NetProfitCash = totals.RevenueCash.Sub(totals.ExpenseCash)
	roundTotals(&totals)

	return Summary{
		Period:  period,
		GroupBy: groupBy,
		Mode:    mode,
		Series:  series,
		Totals:  totals,
	}
}

func roundBucket(b *Bucket) {
	b.RevenueAccrual = b.RevenueAccrual.Round(2)
	b.ExpenseAccrual = b.ExpenseAccrual.Round(2)
	b.NetProfitAccrual = b.NetProfitAccrual.Round(2)
	b.RevenueCash = b.RevenueCash.Round(2)
	b.ExpenseCash = b.ExpenseCash.Round(2)
	b.TaxesCash = b.TaxesCash.Round(2)
	b.NetProfitCash = b.NetProfitCash.Round(2)
	b.Opening = b.Opening.Round(2)
	b.Inflow = b.Inflow.Round(2)
	b.Outflow = b.Outflow.Round(2)
	b.Closing = b.Closing.Round(2)
}

func roundTotals(t *Totals) {
	t.RevenueAccrual = t.RevenueAccrual.Round(2)
	t.ExpenseAccrual = t.ExpenseAccrual.Round(2)
	t.NetProfitAccrual = t.NetProfitAccrual.Round(2)
	t.RevenueCash = t.RevenueCash.Round(2)
	t.ExpenseCash = t.ExpenseCash.Round(2)
	t.TaxesCash = t.TaxesCash.Round(2)
	t.NetProfitCash = t.NetProfitCash.Round(2)
}

// bucketKey renders the bucket label for a date.
func bucketKey(d domain.Date, groupBy GroupBy) string {
	switch groupBy {
	case GroupByDay:
		return d.Format("2006-01-02")
	case GroupByYear:
		return d.Format("2006")
	default:
		return d.Format("2006-01")
	}
}

// bucketKeys enumerates every bucket label in the period, ascending.
func bucketKeys(period Period, groupBy GroupBy) []string {
	var keys []string
	switch groupBy {
	case GroupByDay:
		for d := period.From; !d.After(period.To); d = d.AddDays(1) {
			keys = append(keys, bucketKey(d, groupBy))
		}
	case GroupByYear:
		for y := period.From.Year(); y <= period.To.Year(); y++ {
			keys = append(keys, bucketKey(domain.NewDate(y, time.January, 1), groupBy))
		}
	default:
		d := domain.FirstDayOfMonth(period.From.Year(), period.From.Month())
		for !d.After(period.To) {
			keys = append(keys, bucketKey(d, groupBy))
			d = d.AddMonths(1)
		}
	}
	return keys
}
