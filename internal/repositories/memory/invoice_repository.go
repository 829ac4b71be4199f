package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

type invoiceRepository struct {
	s *Store
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

func (r *invoiceRepository) visible(scope domain.Scope, inv domain.InvoiceArtifact) bool {
	return scope.MatchInvoice(inv, r.s.projectManager(inv.ProjectID))
}

func sortInvoices(invoices []domain.InvoiceArtifact) {
	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].GeneratedAt.Equal(invoices[j].GeneratedAt) {
			return invoices[i].GeneratedAt.After(invoices[j].GeneratedAt)
		}
		return invoices[i].InvoiceID < invoices[j].InvoiceID
	})
}

func (r *invoiceRepository) FindInvoices(ctx context.Context, scope domain.Scope, filter domain.InvoiceFilter) ([]domain.InvoiceArtifact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.InvoiceArtifact{}
	for _, inv := range r.s.invoices {
		if r.visible(scope, inv) && filter.Matches(inv) {
			out = append(out, inv)
		}
	}
	sortInvoices(out)
	return out, nil
}

func (r *invoiceRepository) FindInvoiceInScope(ctx context.Context, scope domain.Scope, invoiceID string) (*domain.InvoiceArtifact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[invoiceID]
	if !ok || !r.visible(scope, inv) {
		return nil, notFound("invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) FindInvoicesByIDs(ctx context.Context, scope domain.Scope, invoiceIDs []string) ([]domain.InvoiceArtifact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.InvoiceArtifact{}
	seen := map[string]struct{}{}
	for _, id := range invoiceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if inv, ok := r.s.invoices[id]; ok && r.visible(scope, inv) {
			out = append(out, inv)
		}
	}
	sortInvoices(out)
	return out, nil
}

func (r *invoiceRepository) SumInvoiceTotals(ctx context.Context, scope domain.Scope) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := decimal.Zero
	for _, inv := range r.s.invoices {
		if r.visible(scope, inv) {
			total = total.Add(inv.TotalAmount)
		}
	}
	return total, nil
}

func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.InvoiceArtifact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.invoices[invoice.InvoiceID]; exists {
		return apperrors.NewConflictError("invoice already exists")
	}
	r.s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (r *invoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[invoiceID]; !ok {
		return notFound("invoice")
	}
	delete(r.s.invoices, invoiceID)
	return nil
}
