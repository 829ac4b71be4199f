package domain

import "github.com/shopspring/decimal"

// Category is a billing rate definition scoped to one project.
type Category struct {
	CategoryID string          `json:"categoryID"`
	ProjectID  string          `json:"projectID"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
	Currency   CurrencyCode    `json:"currency"`
	ManagedBy  string          `json:"managedBy"`
}
