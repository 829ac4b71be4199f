package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// WorkEntryInput is one line of a work submission. Lines that cannot be
// recorded (missing folder, negative quantity, foreign category) are skipped.
type WorkEntryInput struct {
	FolderName string  `json:"folderName"`
	CategoryID *string `json:"categoryID"`
	Quantity   *int    `json:"quantity"`
	Date       *string `json:"date"` // YYYY-MM-DD, defaults to now
}

// SubmitWorkRequest records a batch of work against one project.
type SubmitWorkRequest struct {
	ProjectID string           `json:"projectID" binding:"required,uuid"`
	Entries   []WorkEntryInput `json:"entries" binding:"required,min=1,max=500"`
}

// SubmitWorkResponse reports the outcome of a submission.
type SubmitWorkResponse struct {
	Created []WorkRecordResponse `json:"created"`
	Skipped int                  `json:"skipped"`
}

// CreateSlotsRequest pre-creates unassigned slots in a project.
type CreateSlotsRequest struct {
	ProjectID string `json:"projectID" binding:"required,uuid"`
	Count     int    `json:"count" binding:"required,min=1,max=100"`
}

// FillSlotInput claims one slot.
type FillSlotInput struct {
	SlotID     string  `json:"slotID"`
	CategoryID *string `json:"categoryID"`
	Quantity   *int    `json:"quantity"`
}

// FillSlotsRequest claims a batch of slots for the caller.
type FillSlotsRequest struct {
	Slots []FillSlotInput `json:"slots" binding:"required,min=1,max=100"`
}

// FillSlotsResponse reports how many slots were claimed.
type FillSlotsResponse struct {
	Filled  int `json:"filled"`
	Skipped int `json:"skipped"`
}

// WorkRecordFilterParams are the query parameters of the work aggregator.
// Unparseable dates, months and page sizes are ignored.
type WorkRecordFilterParams struct {
	ProjectID    string `form:"projectID"`
	PrincipalID  string `form:"principalID"`
	Project      string `form:"project"`
	Query        string `form:"q"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
	RevenueMonth string `form:"revenueMonth"`
	PageSize     string `form:"pageSize"`
	PageToken    string `form:"pageToken"`
}

// WorkRecordResponse defines the data returned for a work record.
type WorkRecordResponse struct {
	RecordID     string           `json:"recordID"`
	UserID       *string          `json:"userID,omitempty"`
	Username     *string          `json:"username,omitempty"`
	ProjectID    string           `json:"projectID"`
	ProjectName  string           `json:"projectName,omitempty"`
	FolderName   string           `json:"folderName"`
	CategoryID   *string          `json:"categoryID,omitempty"`
	CategoryName *string          `json:"categoryName,omitempty"`
	Quantity     int              `json:"quantity"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Date         time.Time        `json:"date"`
	IsSlot       bool             `json:"isSlot"`
}

// ToWorkRecordResponse converts a bare domain.WorkRecord
func ToWorkRecordResponse(r *domain.WorkRecord) WorkRecordResponse {
	return WorkRecordResponse{
		RecordID:   r.RecordID,
		UserID:     r.UserID,
		ProjectID:  r.ProjectID,
		FolderName: r.FolderName,
		CategoryID: r.CategoryID,
		Quantity:   r.Quantity,
		Date:       r.Date,
		IsSlot:     r.IsSlot,
	}
}

// ToWorkRecordDetailResponse converts a joined record, including its amount.
func ToWorkRecordDetailResponse(d *domain.WorkRecordDetail) WorkRecordResponse {
	res := ToWorkRecordResponse(&d.WorkRecord)
	res.Username = d.Username
	res.ProjectName = d.ProjectName
	res.CategoryName = d.CategoryName
	if d.CategoryRate != nil {
		rate, amount := d.Rate(), d.Amount()
		res.Rate, res.Amount = &rate, &amount
	}
	return res
}

func ToListWorkRecordResponse(records []domain.WorkRecord) []WorkRecordResponse {
	res := make([]WorkRecordResponse, len(records))
	for i := range records {
		res[i] = ToWorkRecordResponse(&records[i])
	}
	return res
}

func ToListWorkRecordDetailResponse(records []domain.WorkRecordDetail) []WorkRecordResponse {
	res := make([]WorkRecordResponse, len(records))
	for i := range records {
		res[i] = ToWorkRecordDetailResponse(&records[i])
	}
	return res
}
