package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// InvoiceContentType is the MIME type of generated invoices.
	InvoiceContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// InvoiceTemplateName is the logical name of the invoice template.
	InvoiceTemplateName = "InvoiceTemplate.xlsx"
)

// InvoiceLayout selects how an invoice document is laid out on the template.
type InvoiceLayout uint8

const (
	LayoutItemized InvoiceLayout = iota // one row per work record
	LayoutBank                          // summary totals with bank details
)

// ParseInvoiceLayout maps a request value onto a layout. Empty means itemized.
func ParseInvoiceLayout(value string) (InvoiceLayout, error) {
	switch value {
	case "", "itemized":
		return LayoutItemized, nil
	case "bank":
		return LayoutBank, nil
	}
	return LayoutItemized, fmt.Errorf("unknown invoice layout %q", value)
}

func (l InvoiceLayout) String() string {
	if l == LayoutBank {
		return "bank"
	}
	return "itemized"
}

// InvoiceFileName builds the persisted file name of an invoice.
func InvoiceFileName(projectName string, year int, month time.Month) string {
	return fmt.Sprintf("Invoice_%s_%d_%d.xlsx", projectName, year, int(month))
}

// BankInvoiceFileName builds the persisted file name of a bank invoice.
func BankInvoiceFileName(projectName string, year int, month time.Month) string {
	return fmt.Sprintf("Bank_Invoice_%s_%d_%d.xlsx", projectName, year, int(month))
}

// BankInvoiceReference is the invoice number printed on a bank invoice,
// derived from the requested period bounds.
func BankInvoiceReference(from, to *time.Time) string {
	const layout = "2006-01-02"
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf("Bank Invoice - %s to %s", from.Format(layout), to.Format(layout))
	case from != nil:
		return "Bank Invoice - From " + from.Format(layout)
	case to != nil:
		return "Bank Invoice - Until " + to.Format(layout)
	}
	return "Bank Invoice"
}

// InvoiceArtifact is the immutable record of a generated invoice document.
type InvoiceArtifact struct {
	InvoiceID           string          `json:"invoiceID"`
	ProjectID           *string         `json:"projectID,omitempty"`
	ProjectNameSnapshot string          `json:"projectNameSnapshot"`
	PeriodStart         *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd           *time.Time      `json:"periodEnd,omitempty"`
	Month               int             `json:"month"`
	Year                int             `json:"year"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	FileReference       string          `json:"fileReference"`
	FileName            string          `json:"fileName"`
	GeneratedAt         time.Time       `json:"generatedAt"`
	GeneratedBy         *string         `json:"generatedBy,omitempty"`
}

// InvoiceFilter narrows an invoice listing. Nil fields do not filter.
type InvoiceFilter struct {
	ProjectID *string
	Year      *int
	Month     *int
}

// Matches evaluates the filter against an artifact's stored period.
func (f InvoiceFilter) Matches(inv InvoiceArtifact) bool {
	if f.ProjectID != nil && (inv.ProjectID == nil || *inv.ProjectID != *f.ProjectID) {
		return false
	}
	if f.Year != nil && inv.Year != *f.Year {
		return false
	}
	if f.Month != nil && inv.Month != *f.Month {
		return false
	}
	return true
}

// InvoiceLine is one rendered content row of an invoice.
type InvoiceLine struct {
	Folder   string
	Category string
	Date     time.Time
	Quantity int
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}

// InvoiceDocument is everything the renderer needs to fill a template.
type InvoiceDocument struct {
	Lines         []InvoiceLine
	TotalQuantity int64
	TotalAmount   decimal.Decimal
	Currency      CurrencyCode
	AmountInWords string // full "In Words: ..." line; empty leaves the row untouched
	Layout        InvoiceLayout
	Reference     string   // invoice number, bank layout only
	BankDetails   []string // bank layout only
}

// NewInvoiceDocument builds lines from records in the given order and
// accumulates the totals in fixed-point arithmetic. The currency is taken
// from the first record's category.
func NewInvoiceDocument(records []WorkRecordDetail) InvoiceDocument {
	doc := InvoiceDocument{
		Lines:       make([]InvoiceLine, 0, len(records)),
		TotalAmount: decimal.Zero,
		Currency:    DefaultCurrency,
	}
	for i, r := range records {
		if i == 0 {
			doc.Currency = r.Currency()
		}
		amount := r.Amount()
		doc.Lines = append(doc.Lines, InvoiceLine{
			Folder:   r.FolderName,
			Category: r.CategoryLabel(),
			Date:     r.Date,
			Quantity: r.Quantity,
			Rate:     r.Rate(),
			Amount:   amount,
		})
		doc.TotalQuantity += int64(r.Quantity)
		doc.TotalAmount = doc.TotalAmount.Add(amount)
	}
	return doc
}

// GeneratedInvoice is the result of a synthesis call.
type GeneratedInvoice struct {
	FileName      string
	ContentType   string
	Content       []byte
	TotalQuantity int64
	TotalAmount   decimal.Decimal
	Artifact      *InvoiceArtifact // nil when no project was identifiable or persistence failed
	PersistErr    error            // non-fatal persistence failure
}
