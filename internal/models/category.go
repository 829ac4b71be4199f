package models

import "github.com/shopspring/decimal"

// Category is the categories table row.
type Category struct {
	CategoryID string          `db:"category_id"`
	ProjectID  string          `db:"project_id"`
	Name       string          `db:"name"`
	Rate       decimal.Decimal `db:"rate"`
	Currency   string          `db:"currency"`
	ManagedBy  string          `db:"managed_by"`
}
