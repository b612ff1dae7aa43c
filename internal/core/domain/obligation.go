package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Obligation payment type codes issued by the tax administration.
const (
	PaymentTypeTax          = "tax"
	PaymentTypePIO          = "pio"
	PaymentTypeHealth       = "health"
	PaymentTypeUnemployment = "unemployment"
)

// PaymentType is a kind of mandatory payment (tax, pension, health,
// unemployment contributions).
type PaymentType struct {
	PaymentTypeID string `json:"paymentTypeID"`
	Code          string `json:"code"`
	NameSr        string `json:"nameSr"`
	NameRu        string `json:"nameRu"`
	SortOrder     int    `json:"sortOrder"`
}

// YearDecision is the tax administration's yearly assessment for one payment
// type: the monthly installment, the recipient account and the structured
// payment reference (poziv na broj, model 97).
type YearDecision struct {
	DecisionID       string          `json:"decisionID"`
	Year             int             `json:"year"`
	PaymentTypeID    string          `json:"paymentTypeID"`
	PeriodStart      Date            `json:"periodStart"`
	PeriodEnd        Date            `json:"periodEnd"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	RecipientName    string          `json:"recipientName"`
	RecipientAccount string          `json:"recipientAccount"`
	SifraPlacanja    string          `json:"sifraPlacanja"`
	Model            string          `json:"model"`
	PozivNaBroj      string          `json:"pozivNaBroj"`
	PozivNaBrojNext  string          `json:"pozivNaBrojNext"` // provisional installments of the next year
	PaymentPurpose   string          `json:"paymentPurpose"`  // template, YYYY substituted per year
	Currency         string          `json:"currency"`
	IsProvisional    bool            `json:"isProvisional"`
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// PurposeForYear substitutes the year into the payment purpose template.
func (d YearDecision) PurposeForYear(year int) string {
	return strings.ReplaceAll(d.PaymentPurpose, "YYYY", strconv.Itoa(year))
}

// MonthlyObligation is one month's installment of a year decision.
// Status is derived from Deadline and PaidDate via ClassifyPayment,
// never trusted from storage.
type MonthlyObligation struct {
	ObligationID     string          `json:"obligationID"`
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	PaymentTypeID    string          `json:"paymentTypeID"`
	DecisionID       *string         `json:"decisionID,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Deadline         Date            `json:"deadline"`
	PaidDate         *Date           `json:"paidDate,omitempty"`
	PaymentReference string          `json:"paymentReference"`
	ExpenseID        *string         `json:"expenseID,omitempty"` // expense created on mark-paid
	Note             string          `json:"note"`
	AuditFields
}

// Status derives the paid/unpaid/overdue state relative to today.
func (o MonthlyObligation) Status(today Date) PaymentStatus {
	return ClassifyPayment(o.Deadline, o.PaidDate, today)
}

// ObligationDeadline is the 15th of the month following the reporting month.
func ObligationDeadline(year int, month time.Month) Date {
	next := FirstDayOfMonth(year, month).AddMonths(1)
	return NewDate(next.Year(), next.Month(), 15)
}
