package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with day precision. All bookkeeping dates
// (invoice dates, deadlines, paid dates) are time-zone-naive local
// calendar days; anchoring them at UTC midnight keeps YYYY-MM-DD values
// stable through JSON and Postgres round trips.
type Date struct {
	t time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.t.AddDate(0, 0, n))
}

// AddMonths returns the date n months later, normalized by the calendar
// (Jan 31 + 1 month = Mar 2/3 per time.AddDate; callers that need
// end-of-month clamping should use LastDayOfMonth).
func (d Date) AddMonths(n int) Date {
	return DateOf(d.t.AddDate(0, n, 0))
}

// DaysSince returns the number of whole days from other to d, signed.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// Time exposes the underlying UTC-midnight instant for storage.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Format renders the date with an arbitrary time layout.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner so pgx can read DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into domain.Date", src)
	}
}

// Value implements driver.Valuer for DATE columns.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}

// LastDayOfMonth returns the calendar-correct last day of the given month,
// leap years included.
func LastDayOfMonth(year int, month time.Month) Date {
	firstOfNext := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return DateOf(firstOfNext.AddDate(0, 0, -1))
}

// FirstDayOfMonth returns the first day of the given month.
func FirstDayOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}
