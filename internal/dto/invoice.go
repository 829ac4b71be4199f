package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// GenerateInvoiceRequest selects the work records to invoice.
// Unparseable dates are ignored. The bank layout needs a projectID.
type GenerateInvoiceRequest struct {
	ProjectID   *string `json:"projectID"`
	PrincipalID *string `json:"principalID"`
	Project     string  `json:"project"`
	Query       string  `json:"q"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Layout      string  `json:"layout" binding:"omitempty,oneof=itemized bank"`
}

// ListInvoicesParams filters invoice listings. Month uses YYYY-MM; a
// malformed month is ignored.
type ListInvoicesParams struct {
	ProjectID string `form:"projectID"`
	Month     string `form:"month"`
}

// BulkInvoiceRequest names the invoices of a bulk operation.
type BulkInvoiceRequest struct {
	InvoiceIDs []string `json:"invoiceIDs" binding:"required,min=1,max=200,dive,required"`
}

// BulkDeleteResponse reports the outcome of a bulk delete.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
}

// InvoiceResponse defines the data returned for an invoice artifact.
type InvoiceResponse struct {
	InvoiceID   string          `json:"invoiceID"`
	ProjectID   *string         `json:"projectID,omitempty"`
	ProjectName string          `json:"projectName"`
	PeriodStart *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd   *time.Time      `json:"periodEnd,omitempty"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	FileName    string          `json:"fileName"`
	GeneratedAt time.Time       `json:"generatedAt"`
	GeneratedBy *string         `json:"generatedBy,omitempty"`
}

// ToInvoiceResponse converts a domain.InvoiceArtifact to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.InvoiceArtifact) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		ProjectID:   inv.ProjectID,
		ProjectName: inv.ProjectNameSnapshot,
		PeriodStart: inv.PeriodStart,
		PeriodEnd:   inv.PeriodEnd,
		Month:       inv.Month,
		Year:        inv.Year,
		TotalAmount: inv.TotalAmount,
		FileName:    inv.FileName,
		GeneratedAt: inv.GeneratedAt,
		GeneratedBy: inv.GeneratedBy,
	}
}

func ToListInvoiceResponse(invoices []domain.InvoiceArtifact) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}
