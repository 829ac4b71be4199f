package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/models"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const fullInvoiceSelectQuery = `
SELECT
	i.invoice_id, i.project_id, i.project_name_snapshot, i.period_start, i.period_end, i.month, i.year,
	i.total_amount, i.file_reference, i.file_name, i.generated_at, i.generated_by
FROM invoices i
LEFT JOIN projects pj ON pj.project_id = i.project_id`

const invoiceOrder = " ORDER BY i.generated_at DESC, i.invoice_id"

func toModelInvoice(d domain.InvoiceArtifact) models.Invoice {
	return models.Invoice{
		InvoiceID:           d.InvoiceID,
		ProjectID:           d.ProjectID,
		ProjectNameSnapshot: d.ProjectNameSnapshot,
		PeriodStart:         d.PeriodStart,
		PeriodEnd:           d.PeriodEnd,
		Month:               d.Month,
		Year:                d.Year,
		TotalAmount:         d.TotalAmount,
		FileReference:       d.FileReference,
		FileName:            d.FileName,
		GeneratedAt:         d.GeneratedAt,
		GeneratedBy:         d.GeneratedBy,
	}
}

func toDomainInvoice(m models.Invoice) domain.InvoiceArtifact {
	return domain.InvoiceArtifact{
		InvoiceID:           m.InvoiceID,
		ProjectID:           m.ProjectID,
		ProjectNameSnapshot: m.ProjectNameSnapshot,
		PeriodStart:         m.PeriodStart,
		PeriodEnd:           m.PeriodEnd,
		Month:               m.Month,
		Year:                m.Year,
		TotalAmount:         m.TotalAmount,
		FileReference:       m.FileReference,
		FileName:            m.FileName,
		GeneratedAt:         m.GeneratedAt,
		GeneratedBy:         m.GeneratedBy,
	}
}

func (r *PgxInvoiceRepository) getInvoices(ctx context.Context, filterQuery string, args ...any) ([]domain.InvoiceArtifact, error) {
	rows, err := r.Pool.Query(ctx, fullInvoiceSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query invoices", err)
	}
	defer rows.Close()
	modelInvoices, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect invoice rows", err)
	}
	invoices := make([]domain.InvoiceArtifact, len(modelInvoices))
	for i, m := range modelInvoices {
		invoices[i] = toDomainInvoice(m)
	}
	return invoices, nil
}

// FindInvoices filters on the stored month and year, which were taken in the
// invoice timezone at generation time.
func (r *PgxInvoiceRepository) FindInvoices(ctx context.Context, scope domain.Scope, filter domain.InvoiceFilter) ([]domain.InvoiceArtifact, error) {
	var b whereBuilder
	b.scope(scope, domain.EntityInvoice)
	if filter.ProjectID != nil {
		b.add("i.project_id = " + b.arg(*filter.ProjectID))
	}
	if filter.Year != nil {
		b.add("i.year = " + b.arg(*filter.Year))
	}
	if filter.Month != nil {
		b.add("i.month = " + b.arg(*filter.Month))
	}
	return r.getInvoices(ctx, b.String()+invoiceOrder, b.args...)
}

func (r *PgxInvoiceRepository) FindInvoiceInScope(ctx context.Context, scope domain.Scope, invoiceID string) (*domain.InvoiceArtifact, error) {
	var b whereBuilder
	b.add("i.invoice_id = " + b.arg(invoiceID))
	b.scope(scope, domain.EntityInvoice)
	invoices, err := r.getInvoices(ctx, b.String(), b.args...)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, apperrors.NewNotFoundError("invoice")
	}
	return &invoices[0], nil
}

func (r *PgxInvoiceRepository) FindInvoicesByIDs(ctx context.Context, scope domain.Scope, invoiceIDs []string) ([]domain.InvoiceArtifact, error) {
	if len(invoiceIDs) == 0 {
		return []domain.InvoiceArtifact{}, nil
	}
	var b whereBuilder
	b.add("i.invoice_id = ANY(" + b.arg(invoiceIDs) + ")")
	b.scope(scope, domain.EntityInvoice)
	return r.getInvoices(ctx, b.String()+invoiceOrder, b.args...)
}

func (r *PgxInvoiceRepository) SumInvoiceTotals(ctx context.Context, scope domain.Scope) (decimal.Decimal, error) {
	var b whereBuilder
	b.scope(scope, domain.EntityInvoice)
	query := "SELECT COALESCE(SUM(i.total_amount), 0) FROM invoices i LEFT JOIN projects pj ON pj.project_id = i.project_id" + b.String()
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, b.args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to sum invoice totals", err)
	}
	return total, nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.InvoiceArtifact) error {
	m := toModelInvoice(invoice)
	query := `
		INSERT INTO invoices (
			invoice_id, project_id, project_name_snapshot, period_start, period_end, month, year,
			total_amount, file_reference, file_name, generated_at, generated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.ProjectID, m.ProjectNameSnapshot, m.PeriodStart, m.PeriodEnd, m.Month, m.Year,
		m.TotalAmount, m.FileReference, m.FileName, m.GeneratedAt, m.GeneratedBy,
	)
	if err != nil {
		return writeError("invoice", err)
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return r.execAffecting(ctx, "invoice", `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
}
