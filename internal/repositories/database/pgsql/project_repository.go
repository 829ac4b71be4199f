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

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

const fullProjectSelectQuery = `
SELECT pj.project_id, pj.name, pj.start_date, pj.end_date, pj.attachment_ref, pj.created_by, pj.managed_by, pj.created_at
FROM projects pj`

func toModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:     d.ProjectID,
		Name:          d.Name,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		AttachmentRef: d.AttachmentRef,
		CreatedBy:     d.CreatedBy,
		ManagedBy:     d.ManagedBy,
		CreatedAt:     d.CreatedAt,
	}
}

func toDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:     m.ProjectID,
		Name:          m.Name,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		AttachmentRef: m.AttachmentRef,
		CreatedBy:     m.CreatedBy,
		ManagedBy:     m.ManagedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	rows, err := r.Pool.Query(ctx, fullProjectSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query projects", err)
	}
	defer rows.Close()
	modelProjects, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Project])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect project rows", err)
	}
	projects := make([]domain.Project, len(modelProjects))
	for i, m := range modelProjects {
		projects[i] = toDomainProject(m)
	}
	return projects, nil
}

func (r *PgxProjectRepository) FindProjectInScope(ctx context.Context, scope domain.Scope, projectID string) (*domain.Project, error) {
	var b whereBuilder
	b.add("pj.project_id = " + b.arg(projectID))
	b.scope(scope, domain.EntityProject)
	projects, err := r.getProjects(ctx, b.String(), b.args...)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.NewNotFoundError("project")
	}
	return &projects[0], nil
}

func (r *PgxProjectRepository) FindProjects(ctx context.Context, scope domain.Scope) ([]domain.Project, error) {
	var b whereBuilder
	b.scope(scope, domain.EntityProject)
	return r.getProjects(ctx, b.String()+" ORDER BY pj.start_date DESC, pj.name", b.args...)
}

func (r *PgxProjectRepository) CountProjects(ctx context.Context, scope domain.Scope) (int, error) {
	var b whereBuilder
	b.scope(scope, domain.EntityProject)
	return r.count(ctx, "SELECT COUNT(*) FROM projects pj"+b.String(), b.args...)
}

func (r *PgxProjectRepository) CountProjectsOf(ctx context.Context, principalID string) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE created_by = $1), COUNT(*) FILTER (WHERE managed_by = $1)
		FROM projects;
	`
	var created, managed int
	if err := r.Pool.QueryRow(ctx, query, principalID).Scan(&created, &managed); err != nil {
		return 0, 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count projects", err)
	}
	return created, managed, nil
}

func (r *PgxProjectRepository) FindProjectsOf(ctx context.Context, principalID string) ([]domain.Project, error) {
	return r.getProjects(ctx, " WHERE pj.created_by = $1 OR pj.managed_by = $1 ORDER BY pj.project_id", principalID)
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
		INSERT INTO projects (project_id, name, start_date, end_date, attachment_ref, created_by, managed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.ProjectID, m.Name, m.StartDate, m.EndDate, m.AttachmentRef, m.CreatedBy, m.ManagedBy, m.CreatedAt)
	if err != nil {
		return writeError("project", err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	m := toModelProject(project)
	query := `
		UPDATE projects
		SET name = $2, start_date = $3, end_date = $4, attachment_ref = $5, managed_by = $6
		WHERE project_id = $1;
	`
	return r.execAffecting(ctx, "project", query, m.ProjectID, m.Name, m.StartDate, m.EndDate, m.AttachmentRef, m.ManagedBy)
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	return r.execAffecting(ctx, "project", `DELETE FROM projects WHERE project_id = $1;`, projectID)
}
