package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// TemplateProvider supplies template documents by logical name.
type TemplateProvider interface {
	Template(ctx context.Context, name string) ([]byte, error)
}

// WordsConverter spells out an amount, e.g. 37.50 -> "Thirty-Seven And 50/100".
type WordsConverter interface {
	Words(amount decimal.Decimal, locale string) (string, error)
}

// ArtifactStore persists generated documents and attachments.
type ArtifactStore interface {
	// Store writes content under key and returns the reference to keep.
	Store(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Open(ctx context.Context, ref string) ([]byte, error)
	Delete(ctx context.Context, ref string) error
}

// InvoiceRenderer splices an invoice document into a template.
type InvoiceRenderer interface {
	Render(ctx context.Context, template []byte, doc domain.InvoiceDocument) ([]byte, error)
}
