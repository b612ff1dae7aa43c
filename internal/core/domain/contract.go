package domain

import "github.com/shopspring/decimal"

// ContractStatus tracks contract validity.
type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractCompleted ContractStatus = "completed"
	ContractCancelled ContractStatus = "cancelled"
)

// ContractType matches the agreement categories used on payment documents.
type ContractType string

const (
	ContractService    ContractType = "service"
	ContractSupply     ContractType = "supply"
	ContractRent       ContractType = "rent"
	ContractCommission ContractType = "commission"
)

// Contract is an agreement with a client; incomes may reference it.
type Contract struct {
	ContractID    string          `json:"contractID"`
	Number        string          `json:"number"`
	Date          Date            `json:"date"`
	ClientID      string          `json:"clientID"`
	ProjectID     *string         `json:"projectID,omitempty"`
	ContractType  ContractType    `json:"contractType"`
	Subject       string          `json:"subject"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	ValidityStart *Date           `json:"validityStart,omitempty"`
	ValidityEnd   *Date           `json:"validityEnd,omitempty"`
	Status        ContractStatus  `json:"status"`
	Note          string          `json:"note"`
	AuditFields
}
