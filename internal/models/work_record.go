package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkRecord is the work_records table row.
type WorkRecord struct {
	RecordID   string    `db:"record_id"`
	UserID     *string   `db:"user_id"`
	ProjectID  string    `db:"project_id"`
	FolderName string    `db:"folder_name"`
	CategoryID *string   `db:"category_id"`
	Quantity   int       `db:"quantity"`
	WorkDate   time.Time `db:"work_date"`
	IsSlot     bool      `db:"is_slot"`
}

// WorkRecordDetail is a work record joined with its project, category and user.
type WorkRecordDetail struct {
	WorkRecord
	ProjectName      string              `db:"project_name"`
	ProjectManagedBy string              `db:"project_managed_by"`
	CategoryName     *string             `db:"category_name"`
	CategoryRate     decimal.NullDecimal `db:"category_rate"`
	CategoryCurrency *string             `db:"category_currency"`
	Username         *string             `db:"username"`
}
