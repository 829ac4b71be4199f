package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SlotFolderName is the placeholder folder name of an unfilled slot.
const SlotFolderName = "N/A"

// WorkRecord is a unit of billable work. A nil UserID marks an unfilled slot.
type WorkRecord struct {
	RecordID   string    `json:"recordID"`
	UserID     *string   `json:"userID,omitempty"`
	ProjectID  string    `json:"projectID"`
	FolderName string    `json:"folderName"`
	CategoryID *string   `json:"categoryID,omitempty"`
	Quantity   int       `json:"quantity"`
	Date       time.Time `json:"date"`
	IsSlot     bool      `json:"isSlot"`
}

// IsOpenSlot reports whether the record is a slot nobody has claimed yet.
func (r WorkRecord) IsOpenSlot() bool {
	return r.IsSlot && r.UserID == nil
}

// WorkRecordDetail is a WorkRecord joined with the project, category and user
// attributes needed by reports and invoices.
type WorkRecordDetail struct {
	WorkRecord
	ProjectName      string           `json:"projectName"`
	ProjectManagedBy string           `json:"projectManagedBy"`
	CategoryName     *string          `json:"categoryName,omitempty"`
	CategoryRate     *decimal.Decimal `json:"categoryRate,omitempty"`
	CategoryCurrency *CurrencyCode    `json:"categoryCurrency,omitempty"`
	Username         *string          `json:"username,omitempty"`
}

// Rate is the category rate, zero when the record has no category.
func (d WorkRecordDetail) Rate() decimal.Decimal {
	if d.CategoryRate == nil {
		return decimal.Zero
	}
	return *d.CategoryRate
}

// Amount is quantity × rate.
func (d WorkRecordDetail) Amount() decimal.Decimal {
	return decimal.NewFromInt(int64(d.Quantity)).Mul(d.Rate())
}

// CategoryLabel is the category name or "N/A".
func (d WorkRecordDetail) CategoryLabel() string {
	if d.CategoryName == nil {
		return SlotFolderName
	}
	return *d.CategoryName
}

// Currency is the category currency, DefaultCurrency when unset.
func (d WorkRecordDetail) Currency() CurrencyCode {
	if d.CategoryCurrency == nil || *d.CategoryCurrency == "" {
		return DefaultCurrency
	}
	return d.CategoryCurrency.Normalize()
}

// WorkFilter narrows a scoped set of work records. Nil fields do not filter.
type WorkFilter struct {
	ProjectID        *string
	PrincipalID      *string
	ProjectName      *string // case-insensitive substring
	From             *time.Time
	To               *time.Time // inclusive, whole day
	Query            string     // case-insensitive substring of folder or category name
	ExcludeOpenSlots bool
}

// Matches evaluates the filter against a single record.
func (f WorkFilter) Matches(d WorkRecordDetail) bool {
	if f.ProjectID != nil && d.ProjectID != *f.ProjectID {
		return false
	}
	if f.PrincipalID != nil && (d.UserID == nil || *d.UserID != *f.PrincipalID) {
		return false
	}
	if f.ProjectName != nil && !containsFold(d.ProjectName, *f.ProjectName) {
		return false
	}
	if f.From != nil && d.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !d.Date.Before(EndOfDay(*f.To)) {
		return false
	}
	if f.Query != "" && !containsFold(d.FolderName, f.Query) && (d.CategoryName == nil || !containsFold(*d.CategoryName, f.Query)) {
		return false
	}
	if f.ExcludeOpenSlots && d.IsOpenSlot() {
		return false
	}
	return true
}

// EndOfDay returns the first instant after the calendar day of t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
