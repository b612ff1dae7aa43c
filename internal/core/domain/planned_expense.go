package domain

import "github.com/shopspring/decimal"

// RecurrencePeriod is how often a planned expense falls due.
type RecurrencePeriod string

const (
	RecurWeekly    RecurrencePeriod = "weekly"
	RecurMonthly   RecurrencePeriod = "monthly"
	RecurQuarterly RecurrencePeriod = "quarterly"
	RecurYearly    RecurrencePeriod = "yearly"
)

// PlannedExpense is a recurring cost (rent, internet, insurance). Concrete
// due dates are generated, not stored; payments are recorded per occurrence.
type PlannedExpense struct {
	PlannedExpenseID string           `json:"plannedExpenseID"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	Category         string           `json:"category"`
	Period           RecurrencePeriod `json:"period"`
	PaymentDay       *int             `json:"paymentDay,omitempty"`       // day of month for monthly/quarterly/yearly
	PaymentDayOfWeek *int             `json:"paymentDayOfWeek,omitempty"` // 0=Monday for weekly
	StartDate        Date             `json:"startDate"`
	EndDate          *Date            `json:"endDate,omitempty"`
	ReminderDays     int              `json:"reminderDays"`
	IsActive         bool             `json:"isActive"`
	Note             string           `json:"note"`
	AuditFields
}

// OccurrencePayment records that one generated due date was settled.
type OccurrencePayment struct {
	PaymentID        string  `json:"paymentID"`
	PlannedExpenseID string  `json:"plannedExpenseID"`
	DueDate          Date    `json:"dueDate"`
	PaidDate         Date    `json:"paidDate"`
	ExpenseID        *string `json:"expenseID,omitempty"` // expense row created on mark-paid
	Note             string  `json:"note"`
}

// Occurrence is one concrete due date of a planned expense with its derived
// payment state.
type Occurrence struct {
	PlannedExpenseID string          `json:"plannedExpenseID"`
	Name             string          `json:"name"`
	DueDate          Date            `json:"dueDate"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	IsPaid           bool            `json:"isPaid"`
}

// Status derives the paid/unpaid/overdue state of the occurrence.
func (o Occurrence) Status(today Date) PaymentStatus {
	if o.IsPaid {
		return StatusPaid
	}
	return ClassifyPayment(o.DueDate, nil, today)
}
