package domain

import "github.com/shopspring/decimal"

// Enterprise holds the single business profile: registration data, bank
// details and the opening cash balance the cash-flow report starts from.
type Enterprise struct {
	EnterpriseID       string          `json:"enterpriseID"`
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	PIB                string          `json:"pib"`
	MaticniBroj        string          `json:"maticniBroj"` // company registration number
	BankName           string          `json:"bankName"`
	BankAccount        string          `json:"bankAccount"`
	BankSwift          string          `json:"bankSwift"`
	MainActivityCode   string          `json:"mainActivityCode"`
	OpeningCashBalance decimal.Decimal `json:"openingCashBalance"`
	OpeningCashDate    Date            `json:"openingCashDate"`
	AuditFields
}
