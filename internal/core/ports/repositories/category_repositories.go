package repositories

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// CategoryReader defines read operations for categories
type CategoryReader interface {
	FindCategoryInScope(ctx context.Context, scope domain.Scope, categoryID string) (*domain.Category, error)
	// FindCategoriesByProject lists the categories of a project in scope, ordered by name.
	FindCategoriesByProject(ctx context.Context, scope domain.Scope, projectID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for categories.
// SaveCategory and UpdateCategory return apperrors.ErrDuplicate when the name is taken in the project.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
