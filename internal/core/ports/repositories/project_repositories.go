package repositories

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// ProjectReader defines read operations for projects
type ProjectReader interface {
	FindProjectInScope(ctx context.Context, scope domain.Scope, projectID string) (*domain.Project, error)
	// FindProjects lists projects matching the scope, newest start date first.
	FindProjects(ctx context.Context, scope domain.Scope) ([]domain.Project, error)
	CountProjects(ctx context.Context, scope domain.Scope) (int, error)
	// CountProjectsOf returns how many projects a principal created and manages.
	CountProjectsOf(ctx context.Context, principalID string) (created int, managed int, err error)
	// FindProjectsOf lists the projects a principal created or manages.
	FindProjectsOf(ctx context.Context, principalID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for projects
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectRepositoryFacade combines all project repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
