package domain

import "github.com/shopspring/decimal"

// IncomeStatus follows the invoice lifecycle. Cancelled invoices are kept for
// numbering continuity but excluded from every aggregate.
type IncomeStatus string

const (
	IncomeIssued    IncomeStatus = "issued"
	IncomePaid      IncomeStatus = "paid"
	IncomeCancelled IncomeStatus = "cancelled"
)

// Income is one row of the income book (KPO): an issued invoice.
// InvoiceNumber is YYYY-NNNN, unique per invoice year; the counter resets
// each year.
type Income struct {
	IncomeID      string          `json:"incomeID"`
	IssuedDate    Date            `json:"issuedDate"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceYear   int             `json:"invoiceYear"`
	ClientID      *string         `json:"clientID,omitempty"`
	ClientName    string          `json:"clientName"` // snapshot for clients not in the register
	Description   string          `json:"description"`
	AmountRSD     decimal.Decimal `json:"amountRSD"`
	Currency      string          `json:"currency"`
	PaidDate      *Date           `json:"paidDate,omitempty"`
	Status        IncomeStatus    `json:"status"`
	ProjectID     *string         `json:"projectID,omitempty"`
	ContractID    *string         `json:"contractID,omitempty"`
	BankReference string          `json:"bankReference"`
	Note          string          `json:"note"`
	AuditFields
}

// IsOutstanding reports whether the invoice still counts toward accounts
// receivable.
func (i Income) IsOutstanding() bool {
	return i.Status != IncomeCancelled && i.PaidDate == nil
}
