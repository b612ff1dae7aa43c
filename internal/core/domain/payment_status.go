package domain

// PaymentStatus is the derived paid/unpaid/overdue state of anything with a
// due date and an optional paid date: open invoices, monthly obligations and
// planned expense occurrences all share this rule.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusOverdue PaymentStatus = "overdue"
)

// ClassifyPayment derives the payment status from two optional dates and
// "today". Status is never stored; callers must reevaluate per request since
// today moves.
//
//   - paid if paidDate is set, regardless of how dueDate relates to today;
//   - overdue if dueDate is strictly before today (date-only comparison);
//   - unpaid otherwise.
func ClassifyPayment(dueDate Date, paidDate *Date, today Date) PaymentStatus {
	if paidDate != nil && !paidDate.IsZero() {
		return StatusPaid
	}
	if dueDate.Before(today) {
		return StatusOverdue
	}
	return StatusUnpaid
}

// DaysUntil returns the signed number of whole days from today to due;
// negative values count overdue days.
func DaysUntil(dueDate Date, today Date) int {
	return dueDate.DaysSince(today)
}
