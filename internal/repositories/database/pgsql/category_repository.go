package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/models"
)

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// managed_by is read from the owning project so it follows the manager.
const fullCategorySelectQuery = `
SELECT c.category_id, c.project_id, c.name, c.rate, c.currency, pj.managed_by
FROM categories c
JOIN projects pj ON pj.project_id = c.project_id`

func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID: d.CategoryID,
		ProjectID:  d.ProjectID,
		Name:       d.Name,
		Rate:       d.Rate,
		Currency:   string(d.Currency),
		ManagedBy:  d.ManagedBy,
	}
}

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		ProjectID:  m.ProjectID,
		Name:       m.Name,
		Rate:       m.Rate,
		Currency:   domain.CurrencyCode(m.Currency).Normalize(),
		ManagedBy:  m.ManagedBy,
	}
}

func (r *PgxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, fullCategorySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query categories", err)
	}
	defer rows.Close()
	modelCategories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect category rows", err)
	}
	categories := make([]domain.Category, len(modelCategories))
	for i, m := range modelCategories {
		categories[i] = toDomainCategory(m)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) FindCategoryInScope(ctx context.Context, scope domain.Scope, categoryID string) (*domain.Category, error) {
	var b whereBuilder
	b.add("c.category_id = " + b.arg(categoryID))
	b.scope(scope, domain.EntityCategory)
	categories, err := r.getCategories(ctx, b.String(), b.args...)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.NewNotFoundError("category")
	}
	return &categories[0], nil
}

func (r *PgxCategoryRepository) FindCategoriesByProject(ctx context.Context, scope domain.Scope, projectID string) ([]domain.Category, error) {
	var b whereBuilder
	b.add("c.project_id = " + b.arg(projectID))
	b.scope(scope, domain.EntityCategory)
	return r.getCategories(ctx, b.String()+" ORDER BY c.name", b.args...)
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)
	query := `
		INSERT INTO categories (category_id, project_id, name, rate, currency, managed_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.CategoryID, m.ProjectID, m.Name, m.Rate, m.Currency, m.ManagedBy)
	if err != nil {
		return writeError("category", err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := toModelCategory(category)
	query := `UPDATE categories SET name = $2, rate = $3, currency = $4 WHERE category_id = $1;`
	return r.execAffecting(ctx, "category", query, m.CategoryID, m.Name, m.Rate, m.Currency)
}

// DeleteCategory leaves referencing work records uncategorized through ON DELETE SET NULL.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return r.execAffecting(ctx, "category", `DELETE FROM categories WHERE category_id = $1;`, categoryID)
}
