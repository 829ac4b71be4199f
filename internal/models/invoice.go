package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the invoices table row.
type Invoice struct {
	InvoiceID           string          `db:"invoice_id"`
	ProjectID           *string         `db:"project_id"`
	ProjectNameSnapshot string          `db:"project_name_snapshot"`
	PeriodStart         *time.Time      `db:"period_start"`
	PeriodEnd           *time.Time      `db:"period_end"`
	Month               int             `db:"month"`
	Year                int             `db:"year"`
	TotalAmount         decimal.Decimal `db:"total_amount"`
	FileReference       string          `db:"file_reference"`
	FileName            string          `db:"file_name"`
	GeneratedAt         time.Time       `db:"generated_at"`
	GeneratedBy         *string         `db:"generated_by"`
}
