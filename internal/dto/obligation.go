package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentTypeResponse defines the data returned for a payment type.
type PaymentTypeResponse struct {
	PaymentTypeID string `json:"paymentTypeID"`
	Code          string `json:"code"`
	NameSr        string `json:"nameSr"`
	NameRu        string `json:"nameRu"`
	SortOrder     int    `json:"sortOrder"`
}

// UpsertYearDecisionRequest defines the yearly tax assessment data for one
// payment type.
type UpsertYearDecisionRequest struct {
	Year             int             `json:"year" binding:"required,min=2000,max=2100"`
	PaymentTypeID    string          `json:"paymentTypeID" binding:"required"`
	PeriodStart      domain.Date     `json:"periodStart" binding:"required"`
	PeriodEnd        domain.Date     `json:"periodEnd" binding:"required"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount" binding:"required"`
	RecipientName    string          `json:"recipientName"`
	RecipientAccount string          `json:"recipientAccount" binding:"required"`
	SifraPlacanja    string          `json:"sifraPlacanja"`
	Model            string          `json:"model"`
	PozivNaBroj      string          `json:"pozivNaBroj" binding:"required,refnumber"`
	PozivNaBrojNext  string          `json:"pozivNaBrojNext" binding:"omitempty,refnumber"`
	PaymentPurpose   string          `json:"paymentPurpose"`
	IsProvisional    bool            `json:"isProvisional"`
}

// YearDecisionResponse defines the data returned for a year decision.
type YearDecisionResponse struct {
	DecisionID       string          `json:"decisionID"`
	Year             int             `json:"year"`
	PaymentTypeID    string          `json:"paymentTypeID"`
	PeriodStart      domain.Date     `json:"periodStart"`
	PeriodEnd        domain.Date     `json:"periodEnd"`
	MonthlyAmount    decimal.Decimal `json:"monthlyAmount"`
	RecipientName    string          `json:"recipientName"`
	RecipientAccount string          `json:"recipientAccount"`
	SifraPlacanja    string          `json:"sifraPlacanja"`
	Model            string          `json:"model"`
	PozivNaBroj      string          `json:"pozivNaBroj"`
	PozivNaBrojNext  string          `json:"pozivNaBrojNext"`
	PaymentPurpose   string          `json:"paymentPurpose"`
	Currency         string          `json:"currency"`
	IsProvisional    bool            `json:"isProvisional"`
	IsActive         bool            `json:"isActive"`
}

// MonthlyObligationResponse defines one month's installment with its derived
// payment state.
type MonthlyObligationResponse struct {
	ObligationID     string               `json:"obligationID"`
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	PaymentTypeID    string               `json:"paymentTypeID"`
	PaymentTypeCode  string               `json:"paymentTypeCode"`
	Amount           decimal.Decimal      `json:"amount"`
	Deadline         domain.Date          `json:"deadline"`
	PaidDate         *domain.Date         `json:"paidDate,omitempty"`
	Status           domain.PaymentStatus `json:"status"`
	PaymentReference string               `json:"paymentReference"`
	ExpenseID        *string              `json:"expenseID,omitempty"`
	Note             string               `json:"note"`
}

// ObligationScheduleResponse is the 12-month schedule for one year.
type ObligationScheduleResponse struct {
	Year        int                         `json:"year"`
	Obligations []MonthlyObligationResponse `json:"obligations"`
	TotalDue    decimal.Decimal             `json:"totalDue"`
	TotalPaid   decimal.Decimal             `json:"totalPaid"`
}

// MarkObligationPaidRequest records the payment of one installment.
type MarkObligationPaidRequest struct {
	PaidDate domain.Date `json:"paidDate" binding:"required"`
	Note     string      `json:"note"`
}

// PaymentInstructionsResponse carries the fields to copy onto a payment slip.
type PaymentInstructionsResponse struct {
	PaymentTypeCode  string          `json:"paymentTypeCode"`
	RecipientName    string          `json:"recipientName"`
	RecipientAccount string          `json:"recipientAccount"`
	Amount           decimal.Decimal `json:"amount"`
	SifraPlacanja    string          `json:"sifraPlacanja"`
	Model            string          `json:"model"`
	PozivNaBroj      string          `json:"pozivNaBroj"`
	PaymentPurpose   string          `json:"paymentPurpose"`
	Deadline         domain.Date     `json:"deadline"`
}

// ToPaymentTypeResponse converts a domain.PaymentType to its DTO.
func ToPaymentTypeResponse(pt *domain.PaymentType) PaymentTypeResponse {
	return PaymentTypeResponse{
		PaymentTypeID: pt.PaymentTypeID,
		Code:          pt.Code,
		NameSr:        pt.NameSr,
		NameRu:        pt.NameRu,
		SortOrder:     pt.SortOrder,
	}
}

// ToYearDecisionResponse converts a domain.YearDecision to its DTO.
func ToYearDecisionResponse(d *domain.YearDecision) YearDecisionResponse {
	return YearDecisionResponse{
		DecisionID:       d.DecisionID,
		Year:             d.Year,
		PaymentTypeID:    d.PaymentTypeID,
		PeriodStart:      d.PeriodStart,
		PeriodEnd:        d.PeriodEnd,
		MonthlyAmount:    d.MonthlyAmount,
		RecipientName:    d.RecipientName,
		RecipientAccount: d.RecipientAccount,
		SifraPlacanja:    d.SifraPlacanja,
		Model:            d.Model,
		PozivNaBroj:      d.PozivNaBroj,
		PozivNaBrojNext:  d.PozivNaBrojNext,
		PaymentPurpose:   d.PaymentPurpose,
		Currency:         d.Currency,
		IsProvisional:    d.IsProvisional,
		IsActive:         d.IsActive,
	}
}

// ToMonthlyObligationResponse converts one installment, deriving its status
// relative to today.
func ToMonthlyObligationResponse(o *domain.MonthlyObligation, typeCode string, today domain.Date) MonthlyObligationResponse {
	return MonthlyObligationResponse{
		ObligationID:     o.ObligationID,
		Year:             o.Year,
		Month:            int(o.Month),
		PaymentTypeID:    o.PaymentTypeID,
		PaymentTypeCode:  typeCode,
		Amount:           o.Amount,
		Deadline:         o.Deadline,
		PaidDate:         o.PaidDate,
		Status:           o.Status(today),
		PaymentReference: o.PaymentReference,
		ExpenseID:        o.ExpenseID,
		Note:             o.Note,
	}
}

// ToObligationScheduleResponse assembles the yearly schedule with totals.
func ToObligationScheduleResponse(year int, obligations []domain.MonthlyObligation, typeCodes map[string]string, today domain.Date) ObligationScheduleResponse {
	res := ObligationScheduleResponse{Year: year, Obligations: make([]MonthlyObligationResponse, len(obligations))}
	for i, o := range obligations {
		res.Obligations[i] = ToMonthlyObligationResponse(&o, typeCodes[o.PaymentTypeID], today)
		res.TotalDue = res.TotalDue.Add(o.Amount)
		if o.PaidDate != nil {
			res.TotalPaid = res.TotalPaid.Add(o.Amount)
		}
	}
	return res
}
