package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PrincipalRepo:  newPgxPrincipalRepository(dbPool),
		ProjectRepo:    newPgxProjectRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
		WorkRecordRepo: newPgxWorkRecordRepository(dbPool),
		InvoiceRepo:    newPgxInvoiceRepository(dbPool),
	}
}
