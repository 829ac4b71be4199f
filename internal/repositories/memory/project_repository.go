package memory

import (
	"context"
	"sort"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

type projectRepository struct {
	s *Store
}

var _ portsrepo.ProjectRepositoryFacade = (*projectRepository)(nil)

func (r *projectRepository) FindProjectInScope(ctx context.Context, scope domain.Scope, projectID string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[projectID]
	if !ok || !scope.MatchProject(p) {
		return nil, notFound("project")
	}
	return &p, nil
}

func (r *projectRepository) FindProjects(ctx context.Context, scope domain.Scope) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Project{}
	for _, p := range r.s.projects {
		if scope.MatchProject(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *projectRepository) CountProjects(ctx context.Context, scope domain.Scope) (int, error) {
	projects, err := r.FindProjects(ctx, scope)
	return len(projects), err
}

func (r *projectRepository) CountProjectsOf(ctx context.Context, principalID string) (int, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	created, managed := 0, 0
	for _, p := range r.s.projects {
		if p.CreatedBy == principalID {
			created++
		}
		if p.ManagedBy == principalID {
			managed++
		}
	}
	return created, managed, nil
}

func (r *projectRepository) FindProjectsOf(ctx context.Context, principalID string) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Project{}
	for _, p := range r.s.projects {
		if p.CreatedBy == principalID || p.ManagedBy == principalID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProjectID < out[j].ProjectID })
	return out, nil
}

func (r *projectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.projects[project.ProjectID]; exists {
		return apperrors.NewConflictError("project already exists")
	}
	for _, id := range []string{project.CreatedBy, project.ManagedBy} {
		if _, ok := r.s.principals[id]; !ok {
			return apperrors.NewValidationFailedError("project owner does not exist")
		}
	}
	r.s.projects[project.ProjectID] = project
	return nil
}

func (r *projectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[project.ProjectID]; !ok {
		return notFound("project")
	}
	r.s.projects[project.ProjectID] = project
	return nil
}

func (r *projectRepository) DeleteProject(ctx context.Context, projectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[projectID]; !ok {
		return notFound("project")
	}
	r.s.deleteProjectLocked(projectID)
	return nil
}
