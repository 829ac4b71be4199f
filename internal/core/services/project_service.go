package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

const dateLayout = "2006-01-02"

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	artifacts   ports.ArtifactStore
	now         func() time.Time
}

// ProjectServiceOption is a functional option for configuring the project service
type ProjectServiceOption func(*projectService)

// WithAttachmentStore enables project attachments.
func WithAttachmentStore(store ports.ArtifactStore) ProjectServiceOption {
	return func(s *projectService) {
		s.artifacts = store
	}
}

// WithProjectClock overrides the clock used for creation timestamps.
func WithProjectClock(now func() time.Time) ProjectServiceOption {
	return func(s *projectService) {
		s.now = now
	}
}

// NewProjectService creates a new project service with the provided options
func NewProjectService(repo portsrepo.ProjectRepositoryFacade, scopes portssvc.ScopeResolverSvc, options ...ProjectServiceOption) portssvc.ProjectSvcFacade {
	svc := &projectService{
		BaseService: BaseService{Scopes: scopes},
		projectRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) GetProject(ctx context.Context, actorID, projectID string) (*domain.Project, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityProject)
	if err != nil {
		return nil, err
	}
	return s.projectRepo.FindProjectInScope(ctx, scope, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, actorID string) ([]domain.Project, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityProject)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.FindProjects(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

// CreateProject makes the actor both creator and manager of the project.
func (s *projectService) CreateProject(ctx context.Context, actorID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	actor, _, err := s.managerScope(ctx, actorID, domain.EntityProject, "create projects")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("project name is required")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("startDate must use YYYY-MM-DD")
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(start) {
		return nil, apperrors.NewValidationFailedError("endDate must not be before startDate")
	}

	project := domain.Project{
		ProjectID: uuid.NewString(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		CreatedBy: actor.PrincipalID,
		ManagedBy: actor.PrincipalID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("name", name))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, actorID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.manageableProject(ctx, actorID, projectID, "update projects")
	if err != nil {
		return nil, err
	}

	updated := *project
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("project name must not be empty")
		}
		updated.Name = name
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationFailedError("startDate must use YYYY-MM-DD")
		}
		updated.StartDate = start
	}
	if req.ClearEndDate {
		updated.EndDate = nil
	} else if req.EndDate != nil {
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		updated.EndDate = end
	}
	if updated.EndDate != nil && updated.EndDate.Before(updated.StartDate) {
		return nil, apperrors.NewValidationFailedError("endDate must not be before startDate")
	}

	if err := s.projectRepo.UpdateProject(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return &updated, nil
}

// DeleteProject removes the project together with its categories and work records.
// Invoices keep their snapshot.
func (s *projectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	project, err := s.manageableProject(ctx, actorID, projectID, "delete projects")
	if err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if project.AttachmentRef != nil && s.artifacts != nil {
		if err := s.artifacts.Delete(ctx, *project.AttachmentRef); err != nil {
			s.LogError(ctx, err, "Failed to delete project attachment", slog.String("project_id", projectID))
		}
	}
	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}

// UploadAttachment stores a file against the project, replacing any previous one.
func (s *projectService) UploadAttachment(ctx context.Context, actorID, projectID, fileName string, content []byte, contentType string) (*domain.Project, error) {
	if s.artifacts == nil {
		return nil, apperrors.NewAppError(501, "attachments are not configured", apperrors.ErrArtifact)
	}
	project, err := s.manageableProject(ctx, actorID, projectID, "upload attachments")
	if err != nil {
		return nil, err
	}
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return nil, apperrors.NewValidationFailedError("attachment file name is required")
	}

	key := path.Join("projects", projectID, uuid.NewString()+"-"+base)
	ref, err := s.artifacts.Store(ctx, key, content, contentType)
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.String("project_id", projectID))
		return nil, fmt.Errorf("%w: store attachment: %v", apperrors.ErrArtifact, err)
	}

	previous := project.AttachmentRef
	updated := *project
	updated.AttachmentRef = &ref
	if err := s.projectRepo.UpdateProject(ctx, updated); err != nil {
		_ = s.artifacts.Delete(ctx, ref)
		return nil, fmt.Errorf("failed to attach file: %w", err)
	}
	if previous != nil {
		if err := s.artifacts.Delete(ctx, *previous); err != nil {
			s.LogWarn(ctx, "Failed to remove replaced attachment", slog.String("ref", *previous), slog.String("error", err.Error()))
		}
	}
	return &updated, nil
}

// manageableProject loads a project visible to actorID and checks it may be mutated.
func (s *projectService) manageableProject(ctx context.Context, actorID, projectID, action string) (*domain.Project, error) {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityProject, action)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectInScope(ctx, scope, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	if !canManage(actor, project.ManagedBy) {
		return nil, apperrors.NewForbiddenError("only the managing admin may " + action)
	}
	return project, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", *value))
	}
	return &t, nil
}
