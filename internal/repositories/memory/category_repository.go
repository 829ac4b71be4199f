package memory

import (
	"context"
	"sort"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

type categoryRepository struct {
	s *Store
}

var _ portsrepo.CategoryRepositoryFacade = (*categoryRepository)(nil)

func (r *categoryRepository) visible(scope domain.Scope, c domain.Category) bool {
	p, ok := r.s.projects[c.ProjectID]
	return ok && scope.MatchCategory(c, p.ManagedBy)
}

func (r *categoryRepository) FindCategoryInScope(ctx context.Context, scope domain.Scope, categoryID string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[categoryID]
	if !ok || !r.visible(scope, c) {
		return nil, notFound("category")
	}
	c.ManagedBy = r.s.projects[c.ProjectID].ManagedBy
	return &c, nil
}

func (r *categoryRepository) FindCategoriesByProject(ctx context.Context, scope domain.Scope, projectID string) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Category{}
	for _, c := range r.s.categories {
		if c.ProjectID == projectID && r.visible(scope, c) {
			c.ManagedBy = r.s.projects[c.ProjectID].ManagedBy
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// nameTaken reports whether another category of the project uses name. Callers hold the lock.
func (r *categoryRepository) nameTaken(c domain.Category) bool {
	for id, other := range r.s.categories {
		if id != c.CategoryID && other.ProjectID == c.ProjectID && sameFold(other.Name, c.Name) {
			return true
		}
	}
	return false
}

func (r *categoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[category.ProjectID]; !ok {
		return apperrors.NewValidationFailedError("project does not exist")
	}
	if _, exists := r.s.categories[category.CategoryID]; exists || r.nameTaken(category) {
		return apperrors.NewConflictError("category name already used in this project")
	}
	r.s.categories[category.CategoryID] = category
	return nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.CategoryID]; !ok {
		return notFound("category")
	}
	if r.nameTaken(category) {
		return apperrors.NewConflictError("category name already used in this project")
	}
	r.s.categories[category.CategoryID] = category
	return nil
}

// DeleteCategory leaves referencing work records uncategorized.
func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[categoryID]; !ok {
		return notFound("category")
	}
	delete(r.s.categories, categoryID)
	for id, rec := range r.s.workRecords {
		if rec.CategoryID != nil && *rec.CategoryID == categoryID {
			rec.CategoryID = nil
			r.s.workRecords[id] = rec
		}
	}
	return nil
}
