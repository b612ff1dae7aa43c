package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest defines the data needed to register a contract.
type CreateContractRequest struct {
	Number        string              `json:"number" binding:"required"`
	Date          domain.Date         `json:"date" binding:"required"`
	ClientID      string              `json:"clientID" binding:"required"`
	ProjectID     *string             `json:"projectID"`
	ContractType  domain.ContractType `json:"contractType" binding:"required,oneof=service supply rent commission"`
	Subject       string              `json:"subject"`
	Amount        decimal.Decimal     `json:"amount"`
	Currency      string              `json:"currency"`
	ValidityStart *domain.Date        `json:"validityStart"`
	ValidityEnd   *domain.Date        `json:"validityEnd"`
	Note          string              `json:"note"`
}

// UpdateContractRequest defines the data allowed for updating a contract.
type UpdateContractRequest struct {
	Number        *string                `json:"number"`
	Date          *domain.Date           `json:"date"`
	ProjectID     *string                `json:"projectID"`
	ContractType  *domain.ContractType   `json:"contractType" binding:"omitempty,oneof=service supply rent commission"`
	Subject       *string                `json:"subject"`
	Amount        *decimal.Decimal       `json:"amount"`
	Currency      *string                `json:"currency"`
	ValidityStart *domain.Date           `json:"validityStart"`
	ValidityEnd   *domain.Date           `json:"validityEnd"`
	Status        *domain.ContractStatus `json:"status" binding:"omitempty,oneof=active completed cancelled"`
	Note          *string                `json:"note"`
}

// ListContractsParams defines query parameters for listing contracts.
type ListContractsParams struct {
	ClientID string `form:"clientID"`
	Status   string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ContractID    string                `json:"contractID"`
	Number        string                `json:"number"`
	Date          domain.Date           `json:"date"`
	ClientID      string                `json:"clientID"`
	ProjectID     *string               `json:"projectID,omitempty"`
	ContractType  domain.ContractType   `json:"contractType"`
	Subject       string                `json:"subject"`
	Amount        decimal.Decimal       `json:"amount"`
	Currency      string                `json:"currency"`
	ValidityStart *domain.Date          `json:"validityStart,omitempty"`
	ValidityEnd   *domain.Date          `json:"validityEnd,omitempty"`
	Status        domain.ContractStatus `json:"status"`
	Note          string                `json:"note"`
}

// ToContractResponse converts a domain.Contract to ContractResponse DTO.
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:    c.ContractID,
		Number:        c.Number,
		Date:          c.Date,
		ClientID:      c.ClientID,
		ProjectID:     c.ProjectID,
		ContractType:  c.ContractType,
		Subject:       c.Subject,
		Amount:        c.Amount,
		Currency:      c.Currency,
		ValidityStart: c.ValidityStart,
		ValidityEnd:   c.ValidityEnd,
		Status:        c.Status,
		Note:          c.Note,
	}
}

// ToListContractsResponse converts a slice of domain.Contract to response DTOs.
func ToListContractsResponse(contracts []domain.Contract) []ContractResponse {
	res := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		res[i] = ToContractResponse(&c)
	}
	return res
}
