package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Date         domain.Date     `json:"date" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Category     string          `json:"category"`
	PaidDate     *domain.Date    `json:"paidDate"`
	IsTaxRelated bool            `json:"isTaxRelated"`
	ProjectID    *string         `json:"projectID"`
	Note         string          `json:"note"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
// Reversal rows and rows that have been reversed reject updates.
type UpdateExpenseRequest struct {
	Date         *domain.Date     `json:"date"`
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Category     *string          `json:"category"`
	IsTaxRelated *bool            `json:"isTaxRelated"`
	ProjectID    *string          `json:"projectID"`
	Note         *string          `json:"note"`
}

// MarkExpensePaidRequest records the settlement of an expense.
type MarkExpensePaidRequest struct {
	PaidDate      domain.Date `json:"paidDate" binding:"required"`
	BankReference string      `json:"bankReference"`
}

// ReverseExpenseRequest creates a storno row that cancels an expense.
type ReverseExpenseRequest struct {
	Date domain.Date `json:"date" binding:"required"`
	Note string      `json:"note"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	From             string `form:"from" binding:"omitempty,dateonly"`
	To               string `form:"to" binding:"omitempty,dateonly"`
	Status           string `form:"status" binding:"omitempty,oneof=planned paid reversed"`
	Category         string `form:"category"`
	ProjectID        string `form:"projectID"`
	IncludeReversals bool   `form:"includeReversals,default=true"`
	Limit            int    `form:"limit,default=50"`
	Offset           int    `form:"offset,default=0"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID         string               `json:"expenseID"`
	Date              domain.Date          `json:"date"`
	Description       string               `json:"description"`
	Amount            decimal.Decimal      `json:"amount"`
	Currency          string               `json:"currency"`
	Category          string               `json:"category"`
	BankReference     string               `json:"bankReference"`
	PaidDate          *domain.Date         `json:"paidDate,omitempty"`
	Status            domain.ExpenseStatus `json:"status"`
	IsTaxRelated      bool                 `json:"isTaxRelated"`
	Source            domain.ExpenseSource `json:"source"`
	ReversedExpenseID *string              `json:"reversedExpenseID,omitempty"`
	ReversalOfID      *string              `json:"reversalOfID,omitempty"`
	ProjectID         *string              `json:"projectID,omitempty"`
	Note              string               `json:"note"`
}

// ListExpensesResponse wraps the expense list with the net total.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:         e.ExpenseID,
		Date:              e.Date,
		Description:       e.Description,
		Amount:            e.Amount,
		Currency:          e.Currency,
		Category:          e.Category,
		BankReference:     e.BankReference,
		PaidDate:          e.PaidDate,
		Status:            e.Status,
		IsTaxRelated:      e.IsTaxRelated,
		Source:            e.Source,
		ReversedExpenseID: e.ReversedExpenseID,
		ReversalOfID:      e.ReversalOfID,
		ProjectID:         e.ProjectID,
		Note:              e.Note,
	}
}

// ToListExpensesResponse converts expenses to the list DTO. Reversal rows
// carry negative amounts, so a plain sum yields the net total.
func ToListExpensesResponse(expenses []domain.Expense) ListExpensesResponse {
	res := ListExpensesResponse{Expenses: make([]ExpenseResponse, len(expenses))}
	for i, e := range expenses {
		res.Expenses[i] = ToExpenseResponse(&e)
		res.Total = res.Total.Add(e.Amount)
	}
	return res
}
