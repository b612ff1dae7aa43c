// Package reporting contains the pure financial aggregation core: period
// resolution, ledger bucketing, accounts-receivable aging, per-project
// profitability and planned-expense occurrence expansion. Nothing in this
// package performs I/O; every function is safe for concurrent use.
package reporting

import (
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
)

// QuickRange is a quick-select period token.
type QuickRange string

const (
	QuickMonth   QuickRange = "month"
	QuickQuarter QuickRange = "quarter"
	QuickYear    QuickRange = "year"
	QuickCustom  QuickRange = "custom"
)

// Period is an inclusive [From, To] date range, From <= To.
type Period struct {
	From domain.Date `json:"from"`
	To   domain.Date `json:"to"`
}

// Contains reports whether d falls inside the period, bounds included.
func (p Period) Contains(d domain.Date) bool {
	return !d.Before(p.From) && !d.After(p.To)
}

// ResolvePeriod turns a quick-select token plus optional explicit bounds into
// a concrete period. Non-custom tokens always produce a calendar-aligned
// range around today; custom uses the given bounds, defaulting each missing
// side to today. It never fails.
func ResolvePeriod(quick QuickRange, customFrom, customTo *domain.Date, today domain.Date) Period {
	switch quick {
	case QuickMonth:
		return Period{
			From: domain.FirstDayOfMonth(today.Year(), today.Month()),
			To:   domain.LastDayOfMonth(today.Year(), today.Month()),
		}
	case QuickQuarter:
		q := (int(today.Month()) + 2) / 3
		startMonth := time.Month((q-1)*3 + 1)
		endMonth := time.Month(q * 3)
		return Period{
			From: domain.FirstDayOfMonth(today.Year(), startMonth),
			To:   domain.LastDayOfMonth(today.Year(), endMonth),
		}
	case QuickYear:
		return Period{
			From: domain.NewDate(today.Year(), time.January, 1),
			To:   domain.NewDate(today.Year(), time.December, 31),
		}
	default: // custom or unrecognized token
		p := Period{From: today, To: today}
		if customFrom != nil && !customFrom.IsZero() {
			p.From = *customFrom
		}
		if customTo != nil && !customTo.IsZero() {
			p.To = *customTo
		}
		if p.To.Before(p.From) {
			p.From, p.To = p.To, p.From
		}
		return p
	}
}
