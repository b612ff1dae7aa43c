package domain

// ClientType distinguishes legal entities from individuals.
type ClientType string

const (
	ClientLegal      ClientType = "legal"
	ClientIndividual ClientType = "individual"
)

// Client is a counterparty invoices are issued to.
type Client struct {
	ClientID   string     `json:"clientID"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	PIB        string     `json:"pib"` // tax identification number
	Contact    string     `json:"contact"`
	ClientType ClientType `json:"clientType"`
	IsArchived bool       `json:"isArchived"`
	AuditFields
}
