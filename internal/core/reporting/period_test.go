package reporting_test

import (
	"testing"
	"time"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/reporting"
	"github.com/stretchr/testify/assert"
)

func datePtr(d domain.Date) *domain.Date { return &d }

func TestResolvePeriod_QuickTokens(t *testing.T) {
	tests := []struct {
		name     string
		quick    reporting.QuickRange
		today    domain.Date
		wantFrom string
		wantTo   string
	}{
		{
			name:     "month mid-year",
			quick:    reporting.QuickMonth,
			today:    domain.NewDate(2024, time.May, 15),
			wantFrom: "2024-05-01",
			wantTo:   "2024-05-31",
		},
		{
			name:     "month february leap year",
			quick:    reporting.QuickMonth,
			today:    domain.NewDate(2024, time.February, 10),
			wantFrom: "2024-02-01",
			wantTo:   "2024-02-29",
		},
		{
			name:     "month february non-leap",
			quick:    reporting.QuickMonth,
			today:    domain.NewDate(2023, time.February, 28),
			wantFrom: "2023-02-01",
			wantTo:   "2023-02-28",
		},
		{
			name:     "quarter of may is Q2",
			quick:    reporting.QuickQuarter,
			today:    domain.NewDate(2024, time.May, 15),
			wantFrom: "2024-04-01",
			wantTo:   "2024-06-30",
		},
		{
			name:     "quarter boundary december is Q4",
			quick:    reporting.QuickQuarter,
			today:    domain.NewDate(2024, time.December, 31),
			wantFrom: "2024-10-01",
			wantTo:   "2024-12-31",
		},
		{
			name:     "quarter boundary january is Q1",
			quick:    reporting.QuickQuarter,
			today:    domain.NewDate(2024, time.January, 1),
			wantFrom: "2024-01-01",
			wantTo:   "2024-03-31",
		},
		{
			name:     "year",
			quick:    reporting.QuickYear,
			today:    domain.NewDate(2024, time.July, 4),
			wantFrom: "2024-01-01",
			wantTo:   "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := reporting.ResolvePeriod(tt.quick, nil, nil, tt.today)
			assert.Equal(t, tt.wantFrom, p.From.String())
			assert.Equal(t, tt.wantTo, p.To.String())
			assert.False(t, p.To.Before(p.From))
		})
	}
}

func TestResolvePeriod_Custom(t *testing.T) {
	today := domain.NewDate(2024, time.May, 15)
	from := domain.NewDate(2024, time.January, 10)
	to := domain.NewDate(2024, time.March, 20)

	t.Run("both bounds provided", func(t *testing.T) {
		p := reporting.ResolvePeriod(reporting.QuickCustom, datePtr(from), datePtr(to), today)
		assert.Equal(t, from, p.From)
		assert.Equal(t, to, p.To)
	})

	t.Run("missing bounds default to today", func(t *testing.T) {
		p := reporting.ResolvePeriod(reporting.QuickCustom, nil, nil, today)
		assert.Equal(t, today, p.From)
		assert.Equal(t, today, p.To)
	})

	t.Run("only from provided", func(t *testing.T) {
		p := reporting.ResolvePeriod(reporting.QuickCustom, datePtr(from), nil, today)
		assert.Equal(t, from, p.From)
		assert.Equal(t, today, p.To)
	})

	t.Run("inverted bounds are swapped", func(t *testing.T) {
		p := reporting.ResolvePeriod(reporting.QuickCustom, datePtr(to), datePtr(from), today)
		assert.Equal(t, from, p.From)
		assert.Equal(t, to, p.To)
	})
}

func TestResolvePeriod_AlwaysContainsToday(t *testing.T) {
	days := []domain.Date{
		domain.NewDate(2024, time.January, 1),
		domain.NewDate(2024, time.February, 29),
		domain.NewDate(2024, time.June, 30),
		domain.NewDate(2025, time.December, 31),
	}
	for _, quick := range []reporting.QuickRange{reporting.QuickMonth, reporting.QuickQuarter, reporting.QuickYear} {
		for _, today := range days {
			p := reporting.ResolvePeriod(quick, nil, nil, today)
			assert.True(t, p.Contains(today), "%s period %v should contain %s", quick, p, today)
		}
	}
}
