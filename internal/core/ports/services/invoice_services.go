package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// InvoiceSynthesisSvc generates invoice documents.
type InvoiceSynthesisSvc interface {
	// GenerateInvoice renders the scoped, filtered records into an invoice.
	// It returns apperrors.ErrNothingToInvoice when no record qualifies.
	// Persistence failures are reported in GeneratedInvoice.PersistErr, not as an error.
	GenerateInvoice(ctx context.Context, actorID string, req dto.GenerateInvoiceRequest) (*domain.GeneratedInvoice, error)
}

// InvoiceArchiveSvc manages persisted invoice artifacts.
type InvoiceArchiveSvc interface {
	ListInvoices(ctx context.Context, actorID string, params dto.ListInvoicesParams) ([]domain.InvoiceArtifact, error)
	DownloadInvoice(ctx context.Context, actorID, invoiceID string) (*domain.InvoiceArtifact, []byte, error)
	// DeleteInvoice removes the backing file first and the record only on success.
	DeleteInvoice(ctx context.Context, actorID, invoiceID string) error
	// BulkDeleteInvoices deletes the invoices in scope and returns deleted and skipped counts.
	BulkDeleteInvoices(ctx context.Context, actorID string, invoiceIDs []string) (int, int, error)
	// BulkDownloadInvoices zips the invoices in scope.
	BulkDownloadInvoices(ctx context.Context, actorID string, invoiceIDs []string) ([]byte, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceSynthesisSvc
	InvoiceArchiveSvc
}
