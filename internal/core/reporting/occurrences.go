package reporting

import (
	"sort"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// defaultOccurrenceLimit bounds how many due dates a single planned expense
// contributes to one expansion.
const defaultOccurrenceLimit = 48

// PaidSet records which (planned expense, due date) occurrences are settled.
type PaidSet map[string]struct{}

// OccurrenceKey identifies one occurrence inside a PaidSet.
func OccurrenceKey(plannedExpenseID string, dueDate domain.Date) string {
	return plannedExpenseID + "@" + dueDate.String()
}

// MarkPaid adds an occurrence to the set.
func (s PaidSet) MarkPaid(plannedExpenseID string, dueDate domain.Date) {
	s[OccurrenceKey(plannedExpenseID, dueDate)] = struct{}{}
}

func (s PaidSet) contains(plannedExpenseID string, dueDate domain.Date) bool {
	_, ok := s[OccurrenceKey(plannedExpenseID, dueDate)]
	return ok
}

// OccurrenceDates generates the due dates of a planned expense inside
// [rangeStart, rangeEnd], overdue ones included. Dates never precede the
// schedule's start date and never exceed its end date. Monthly and quarterly
// payment days are clamped to 28 so every month has the occurrence; yearly
// falls back to the calendar-correct last day of the month.
func OccurrenceDates(pe domain.PlannedExpense, rangeStart, rangeEnd domain.Date, limit int) []domain.Date {
	if limit <= 0 {
		limit = defaultOccurrenceLimit
	}
	if !pe.IsActive || pe.StartDate.After(rangeEnd) {
		return nil
	}
	end := rangeEnd
	if pe.EndDate != nil && pe.EndDate.Before(end) {
		end = *pe.EndDate
	}
	if end.Before(rangeStart) {
		return nil
	}
	lower := rangeStart
	if pe.StartDate.After(lower) {
		lower = pe.StartDate
	}

	var dates []domain.Date
	collect := func(d domain.Date) bool {
		if !d.Before(lower) && !d.After(end) {
			dates = append(dates, d)
		}
		return len(dates) < limit
	}

	switch pe.Period {
	case domain.RecurWeekly:
		d := pe.StartDate
		if behind := lower.DaysSince(d); behind > 0 {
			d = d.AddDays((behind + 6) / 7 * 7)
		}
		for !d.After(end) {
			if !collect(d) {
				break
			}
			d = d.AddDays(7)
		}
	case domain.RecurMonthly:
		day := clampPaymentDay(pe.PaymentDay, 1)
		cursor := domain.FirstDayOfMonth(lower.Year(), lower.Month())
		for !cursor.After(end) {
			if !collect(monthOccurrence(cursor.Year(), cursor.Month(), day)) {
				break
			}
			cursor = cursor.AddMonths(1)
		}
	case domain.RecurQuarterly:
		day := clampPaymentDay(pe.PaymentDay, 1)
		// Quarters anchor on the schedule's start month.
		cursor := domain.FirstDayOfMonth(pe.StartDate.Year(), pe.StartDate.Month())
		for !cursor.After(end) {
			if !cursor.Before(domain.FirstDayOfMonth(lower.Year(), lower.Month())) {
				if !collect(monthOccurrence(cursor.Year(), cursor.Month(), day)) {
					break
				}
			}
			cursor = cursor.AddMonths(3)
		}
	case domain.RecurYearly:
		day := pe.StartDate.Day()
		if pe.PaymentDay != nil && *pe.PaymentDay >= 1 {
			day = *pe.PaymentDay
		}
		for y := lower.Year(); y <= end.Year(); y++ {
			if !collect(monthOccurrence(y, pe.StartDate.Month(), day)) {
				break
			}
		}
	}
	return dates
}

// ExpandOccurrences generates every occurrence of the given schedules in the
// range, marking settled ones from paid, ordered by due date ascending.
func ExpandOccurrences(items []domain.PlannedExpense, rangeStart, rangeEnd domain.Date, paid PaidSet) []domain.Occurrence {
	occurrences := []domain.Occurrence{}
	for _, pe := range items {
		for _, due := range OccurrenceDates(pe, rangeStart, rangeEnd, defaultOccurrenceLimit) {
			occurrences = append(occurrences, domain.Occurrence{
				PlannedExpenseID: pe.PlannedExpenseID,
				Name:             pe.Name,
				DueDate:          due,
				Amount:           pe.Amount,
				Currency:         pe.Currency,
				IsPaid:           paid.contains(pe.PlannedExpenseID, due),
			})
		}
	}
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].DueDate.Before(occurrences[j].DueDate)
	})
	return occurrences
}

// SumUnpaid totals the occurrences still open, overdue included.
func SumUnpaid(occurrences []domain.Occurrence) decimal.Decimal {
	total := decimal.Zero
	for _, o := range occurrences {
		if !o.IsPaid {
			total = total.Add(o.Amount)
		}
	}
	return total.Round(2)
}

func clampPaymentDay(day *int, fallback int) int {
	d := fallback
	if day != nil {
		d = *day
	}
	if d < 1 {
		d = 1
	}
	if d > 28 {
		d = 28
	}
	return d
}

func monthOccurrence(year int, month time.Month, day int) domain.Date {
	if last := domain.LastDayOfMonth(year, month); day > last.Day() {
		return last
	}
	return domain.NewDate(year, month, day)
}
