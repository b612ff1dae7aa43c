package dto

import (
	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateEnterpriseRequest defines the data allowed for updating the business
// profile. All fields are optional.
type UpdateEnterpriseRequest struct {
	Name               *string          `json:"name"`
	Address            *string          `json:"address"`
	PIB                *string          `json:"pib" binding:"omitempty,pib"`
	MaticniBroj        *string          `json:"maticniBroj"`
	BankName           *string          `json:"bankName"`
	BankAccount        *string          `json:"bankAccount"`
	BankSwift          *string          `json:"bankSwift"`
	MainActivityCode   *string          `json:"mainActivityCode"`
	OpeningCashBalance *decimal.Decimal `json:"openingCashBalance"`
	OpeningCashDate    *domain.Date     `json:"openingCashDate"`
}

// EnterpriseResponse defines the data returned for the business profile.
type EnterpriseResponse struct {
	EnterpriseID       string          `json:"enterpriseID"`
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	PIB                string          `json:"pib"`
	MaticniBroj        string          `json:"maticniBroj"`
	BankName           string          `json:"bankName"`
	BankAccount        string          `json:"bankAccount"`
	BankSwift          string          `json:"bankSwift"`
	MainActivityCode   string          `json:"mainActivityCode"`
	OpeningCashBalance decimal.Decimal `json:"openingCashBalance"`
	OpeningCashDate    domain.Date     `json:"openingCashDate"`
}

// ToEnterpriseResponse converts a domain.Enterprise to EnterpriseResponse DTO.
func ToEnterpriseResponse(e *domain.Enterprise) EnterpriseResponse {
	return EnterpriseResponse{
		EnterpriseID:       e.EnterpriseID,
		Name:               e.Name,
		Address:            e.Address,
		PIB:                e.PIB,
		MaticniBroj:        e.MaticniBroj,
		BankName:           e.BankName,
		BankAccount:        e.BankAccount,
		BankSwift:          e.BankSwift,
		MainActivityCode:   e.MainActivityCode,
		OpeningCashBalance: e.OpeningCashBalance,
		OpeningCashDate:    e.OpeningCashDate,
	}
}
