package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an issued invoice.
// InvoiceNumber is optional: when omitted the next number in the yearly
// sequence is allocated automatically.
type CreateIncomeRequest struct {
	IssuedDate    domain.Date     `json:"issuedDate" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      *string         `json:"clientID"`
	ClientName    string          `json:"clientName"`
	Description   string          `json:"description"`
	AmountRSD     decimal.Decimal `json:"amountRSD" binding:"required"`
	ProjectID     *string         `json:"projectID"`
	ContractID    *string         `json:"contractID"`
	Note          string          `json:"note"`
}

// UpdateIncomeRequest defines the data allowed for updating an invoice.
type UpdateIncomeRequest struct {
	IssuedDate  *domain.Date     `json:"issuedDate"`
	ClientID    *string          `json:"clientID"`
	ClientName  *string          `json:"clientName"`
	Description *string          `json:"description"`
	AmountRSD   *decimal.Decimal `json:"amountRSD"`
	ProjectID   *string          `json:"projectID"`
	ContractID  *string          `json:"contractID"`
	Note        *string          `json:"note"`
}

// MarkIncomePaidRequest records the collection of an invoice.
type MarkIncomePaidRequest struct {
	PaidDate      domain.Date `json:"paidDate" binding:"required"`
	BankReference string      `json:"bankReference"`
}

// ListIncomesParams defines query parameters for listing invoices.
type ListIncomesParams struct {
	From      string `form:"from" binding:"omitempty,dateonly"`
	To        string `form:"to" binding:"omitempty,dateonly"`
	Status    string `form:"status" binding:"omitempty,oneof=issued paid cancelled"`
	ClientID  string `form:"clientID"`
	ProjectID string `form:"projectID"`
	Year      int    `form:"year"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

// NextInvoiceNumberResponse carries the suggested next number in the yearly
// sequence without allocating it.
type NextInvoiceNumberResponse struct {
	Year          int    `json:"year"`
	InvoiceNumber string `json:"invoiceNumber"`
}

// IncomeResponse defines the data returned for an invoice.
type IncomeResponse struct {
	IncomeID      string              `json:"incomeID"`
	IssuedDate    domain.Date         `json:"issuedDate"`
	InvoiceNumber string              `json:"invoiceNumber"`
	InvoiceYear   int                 `json:"invoiceYear"`
	ClientID      *string             `json:"clientID,omitempty"`
	ClientName    string              `json:"clientName"`
	Description   string              `json:"description"`
	AmountRSD     decimal.Decimal     `json:"amountRSD"`
	Currency      string              `json:"currency"`
	PaidDate      *domain.Date        `json:"paidDate,omitempty"`
	Status        domain.IncomeStatus `json:"status"`
	ProjectID     *string             `json:"projectID,omitempty"`
	ContractID    *string             `json:"contractID,omitempty"`
	BankReference string              `json:"bankReference"`
	Note          string              `json:"note"`
}

// ListIncomesResponse wraps the invoice list with the period total.
type ListIncomesResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
	Total   decimal.Decimal  `json:"total"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse DTO.
func ToIncomeResponse(i *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:      i.IncomeID,
		IssuedDate:    i.IssuedDate,
		InvoiceNumber: i.InvoiceNumber,
		InvoiceYear:   i.InvoiceYear,
		ClientID:      i.ClientID,
		ClientName:    i.ClientName,
		Description:   i.Description,
		AmountRSD:     i.AmountRSD,
		Currency:      i.Currency,
		PaidDate:      i.PaidDate,
		Status:        i.Status,
		ProjectID:     i.ProjectID,
		ContractID:    i.ContractID,
		BankReference: i.BankReference,
		Note:          i.Note,
	}
}

// ToListIncomesResponse converts invoices to the list DTO, summing amounts of
// non-cancelled rows.
func ToListIncomesResponse(incomes []domain.Income) ListIncomesResponse {
	res := ListIncomesResponse{Incomes: make([]IncomeResponse, len(incomes))}
	for i, inc := range incomes {
		res.Incomes[i] = ToIncomeResponse(&inc)
		if inc.Status != domain.IncomeCancelled {
			res.Total = res.Total.Add(inc.AmountRSD)
		}
	}
	return res
}
