package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// InvoiceReader defines read operations for invoice artifacts
type InvoiceReader interface {
	// FindInvoices lists scoped invoices, most recently generated first.
	FindInvoices(ctx context.Context, scope domain.Scope, filter domain.InvoiceFilter) ([]domain.InvoiceArtifact, error)
	FindInvoiceInScope(ctx context.Context, scope domain.Scope, invoiceID string) (*domain.InvoiceArtifact, error)
	// FindInvoicesByIDs returns the scoped subset of ids; unknown or hidden ids are skipped.
	FindInvoicesByIDs(ctx context.Context, scope domain.Scope, invoiceIDs []string) ([]domain.InvoiceArtifact, error)
	SumInvoiceTotals(ctx context.Context, scope domain.Scope) (decimal.Decimal, error)
}

// InvoiceWriter defines write operations for invoice artifacts. Artifacts are never updated.
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.InvoiceArtifact) error
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
