package domain

import "github.com/shopspring/decimal"

// ExpenseStatus marks how a row participates in sums. Reversal rows carry
// status reversed and a negative amount; the original row keeps its status so
// the pair nets to zero in aggregate.
type ExpenseStatus string

const (
	ExpensePlanned  ExpenseStatus = "planned"
	ExpensePaid     ExpenseStatus = "paid"
	ExpenseReversed ExpenseStatus = "reversed"
)

// ExpenseSource records what created the row.
type ExpenseSource string

const (
	SourceManual     ExpenseSource = "manual"
	SourcePlanned    ExpenseSource = "planned"
	SourceObligation ExpenseSource = "obligation"
	SourceBankImport ExpenseSource = "bank_import"
)

// Expense is a cost row. Rows created by obligations or bank imports are
// never deleted; corrections go through a storno reversal instead.
type Expense struct {
	ExpenseID         string          `json:"expenseID"`
	Date              Date            `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"` // negative on reversal rows
	Currency          string          `json:"currency"`
	Category          string          `json:"category"`
	BankReference     string          `json:"bankReference"`
	PaidDate          *Date           `json:"paidDate,omitempty"`
	Status            ExpenseStatus   `json:"status"`
	IsTaxRelated      bool            `json:"isTaxRelated"`
	Source            ExpenseSource   `json:"source"`
	ReversedExpenseID *string         `json:"reversedExpenseID,omitempty"` // reversal row created for this one
	ReversalOfID      *string         `json:"reversalOfID,omitempty"`      // row this one reverses
	ProjectID         *string         `json:"projectID,omitempty"`
	Note              string          `json:"note"`
	AuditFields
}

// IsReversal reports whether the row is a storno entry.
func (e Expense) IsReversal() bool {
	return e.ReversalOfID != nil
}
