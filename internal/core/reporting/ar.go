package reporting

import (
	"sort"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OverdueThresholdDays is the aging cutoff: an open invoice older than this
// counts toward ar_overdue.
const OverdueThresholdDays = 30

// ARItem is one open invoice with its aging.
type ARItem struct {
	IncomeID        string          `json:"income_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	ClientName      string          `json:"client_name"`
	IssuedDate      domain.Date     `json:"issued_date"`
	Amount          decimal.Decimal `json:"amount"`
	DaysOutstanding int             `json:"days_outstanding"`
}

// ARTotals sums the receivables.
type ARTotals struct {
	ARTotal   decimal.Decimal `json:"ar_total"`
	AROverdue decimal.Decimal `json:"ar_overdue"`
}

// ARReport is the accounts-receivable aging view.
type ARReport struct {
	Items  []ARItem `json:"items"`
	Totals ARTotals `json:"totals"`
}

// ComputeAR builds the aging report over every outstanding invoice: no paid
// date, not cancelled. Days outstanding never go below zero (invoices dated
// in the future age from today). Items come back ordered by issue date
// ascending, matching the ledger view.
func ComputeAR(incomes []domain.Income, today domain.Date) ARReport {
	report := ARReport{Items: []ARItem{}}
	for _, inc := range incomes {
		if !inc.IsOutstanding() {
			continue
		}
		days := today.DaysSince(inc.IssuedDate)
		if days < 0 {
			days = 0
		}
		report.Items = append(report.Items, ARItem{
			IncomeID:        inc.IncomeID,
			InvoiceNumber:   inc.InvoiceNumber,
			ClientName:      inc.ClientName,
			IssuedDate:      inc.IssuedDate,
			Amount:          inc.AmountRSD.Round(2),
			DaysOutstanding: days,
		})
		report.Totals.ARTotal = report.Totals.ARTotal.Add(inc.AmountRSD)
		if days > OverdueThresholdDays {
			report.Totals.AROverdue = report.Totals.AROverdue.Add(inc.AmountRSD)
		}
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].IssuedDate.Before(report.Items[j].IssuedDate)
	})
	report.Totals.ARTotal = report.Totals.ARTotal.Round(2)
	report.Totals.AROverdue = report.Totals.AROverdue.Round(2)
	return report
}

// TopOverdue returns the n most-aged overdue items, days outstanding
// descending.
func TopOverdue(report ARReport, n int) []ARItem {
	overdue := make([]ARItem, 0, len(report.Items))
	for _, item := range report.Items {
		if item.DaysOutstanding > OverdueThresholdDays {
			overdue = append(overdue, item)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysOutstanding > overdue[j].DaysOutstanding
	})
	if len(overdue) > n {
		overdue = overdue[:n]
	}
	return overdue
}
