package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/utils"
)

// principalService implements the PrincipalSvcFacade interface
type principalService struct {
	BaseService
	principalRepo portsrepo.PrincipalRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	artifacts     ports.ArtifactStore
}

// PrincipalServiceOption is a functional option for configuring the principal service
type PrincipalServiceOption func(*principalService)

// WithPrincipalAttachmentStore lets principal deletion remove the attachments
// of the projects that cascade with it.
func WithPrincipalAttachmentStore(store ports.ArtifactStore) PrincipalServiceOption {
	return func(s *principalService) {
		s.artifacts = store
	}
}

// NewPrincipalService creates a new principal service
func NewPrincipalService(
	principalRepo portsrepo.PrincipalRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	scopes portssvc.ScopeResolverSvc,
	options ...PrincipalServiceOption,
) portssvc.PrincipalSvcFacade {
	svc := &principalService{
		BaseService:   BaseService{Scopes: scopes},
		principalRepo: principalRepo,
		projectRepo:   projectRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PrincipalSvcFacade = (*principalService)(nil)

func (s *principalService) GetPrincipal(ctx context.Context, actorID, principalID string) (*domain.Principal, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityPrincipal)
	if err != nil {
		return nil, err
	}
	principal, err := s.principalRepo.FindPrincipalInScope(ctx, scope, principalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find principal", slog.String("principal_id", principalID))
		}
		return nil, err
	}
	return principal, nil
}

func (s *principalService) ListPrincipals(ctx context.Context, actorID string, params dto.ListPrincipalsParams) ([]domain.Principal, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityPrincipal)
	if err != nil {
		return nil, err
	}

	query := domain.PrincipalQuery{
		Search: strings.TrimSpace(params.Search),
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Role != "" {
		role, err := domain.ParseRole(params.Role)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		query.Role = &role
	}

	principals, err := s.principalRepo.FindPrincipals(ctx, scope, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list principals")
		return nil, fmt.Errorf("failed to list principals: %w", err)
	}
	if principals == nil {
		return []domain.Principal{}, nil
	}
	return principals, nil
}

// CreatePrincipal provisions a principal on behalf of actorID. Super admins may
// pick any role; admins create standard users only.
func (s *principalService) CreatePrincipal(ctx context.Context, actorID string, req dto.CreatePrincipalRequest) (*domain.Principal, error) {
	actor, err := s.Scopes.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	role := domain.RoleStandardUser
	if req.Role != "" {
		requested, err := domain.ParseRole(req.Role)
		if err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		role = requested
	}

	switch actor.Role {
	case domain.RoleSuperAdmin:
	case domain.RoleAdmin:
		if role != domain.RoleStandardUser {
			return nil, apperrors.NewForbiddenError("only super admins may assign roles")
		}
	case domain.RoleStandardUser:
		return nil, apperrors.NewForbiddenError("standard users may not provision principals")
	default:
		return nil, fmt.Errorf("unknown role %d for acting principal", uint8(actor.Role))
	}

	creator := actor.PrincipalID
	principal, err := s.newPrincipal(ctx, req.Username, req.Email, req.Password, role, &creator)
	if err != nil {
		return nil, err
	}

	if err := domain.CheckProvisioningChain(principal.PrincipalID, principal.CreatedBy, s.creatorOf(ctx)); err != nil {
		if errors.Is(err, domain.ErrProvisioningCycle) {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		return nil, err
	}

	if err := s.principalRepo.SavePrincipal(ctx, *principal); err != nil {
		s.LogError(ctx, err, "Failed to save principal", slog.String("email", principal.Email))
		return nil, fmt.Errorf("failed to create principal: %w", err)
	}

	s.LogInfo(ctx, "Principal created",
		slog.String("principal_id", principal.PrincipalID),
		slog.String("role", principal.Role.String()))
	return principal, nil
}

// UpdatePrincipalRole is reserved to super admins. A principal that still
// manages projects or has provisioned principals keeps a role able to own
// them, and an admin always hangs off a super admin.
func (s *principalService) UpdatePrincipalRole(ctx context.Context, actorID, principalID string, req dto.UpdatePrincipalRoleRequest) (*domain.Principal, error) {
	actor, err := s.Scopes.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleSuperAdmin {
		return nil, apperrors.NewForbiddenError("only super admins may change roles")
	}
	if principalID == actor.PrincipalID {
		return nil, apperrors.NewForbiddenError("principals may not change their own role")
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	scope, err := s.Scopes.ResolveScope(actor, domain.EntityPrincipal)
	if err != nil {
		return nil, err
	}
	target, err := s.principalRepo.FindPrincipalInScope(ctx, scope, principalID)
	if err != nil {
		return nil, err
	}
	if target.Role == role {
		return target, nil
	}

	if err := s.checkRoleChange(ctx, target, role); err != nil {
		return nil, err
	}
	createdBy, err := s.creatorForRole(ctx, actor, target, role)
	if err != nil {
		return nil, err
	}

	if err := s.principalRepo.UpdatePrincipalRole(ctx, principalID, role, createdBy); err != nil {
		s.LogError(ctx, err, "Failed to update role", slog.String("principal_id", principalID))
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	s.LogInfo(ctx, "Principal role changed",
		slog.String("principal_id", principalID),
		slog.String("from", target.Role.String()),
		slog.String("to", role.String()))
	target.Role = role
	target.CreatedBy = createdBy
	return target, nil
}

// checkRoleChange refuses a demotion that would leave projects managed by a
// standard user or provisioned principals under a creator that may not own them.
func (s *principalService) checkRoleChange(ctx context.Context, target *domain.Principal, role domain.Role) error {
	provisioned := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseCreatedBy, Subject: target.PrincipalID}
	switch role {
	case domain.RoleSuperAdmin:
		return nil
	case domain.RoleAdmin:
		for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin} {
			count, err := s.principalRepo.CountPrincipals(ctx, provisioned, &r)
			if err != nil {
				return fmt.Errorf("failed to count provisioned principals: %w", err)
			}
			if count > 0 {
				return apperrors.NewForbiddenError("principal still owns admins; reassign them first")
			}
		}
		return nil
	case domain.RoleStandardUser:
		_, managed, err := s.projectRepo.CountProjectsOf(ctx, target.PrincipalID)
		if err != nil {
			return fmt.Errorf("failed to count managed projects: %w", err)
		}
		if managed > 0 {
			return apperrors.NewForbiddenError(fmt.Sprintf("principal still manages %d projects", managed))
		}
		count, err := s.principalRepo.CountPrincipals(ctx, provisioned, nil)
		if err != nil {
			return fmt.Errorf("failed to count provisioned principals: %w", err)
		}
		if count > 0 {
			return apperrors.NewForbiddenError("principal still owns provisioned principals")
		}
		return nil
	default:
		return fmt.Errorf("unknown role %d", uint8(role))
	}
}

// creatorForRole returns the createdBy link the target keeps under role. An
// admin whose creator is not a super admin is re-parented to the acting super admin.
func (s *principalService) creatorForRole(ctx context.Context, actor, target *domain.Principal, role domain.Role) (*string, error) {
	if role != domain.RoleAdmin || target.CreatedBy == nil {
		return target.CreatedBy, nil
	}
	creator, err := s.principalRepo.FindPrincipalByID(ctx, *target.CreatedBy)
	switch {
	case err == nil && creator.Role == domain.RoleSuperAdmin:
		return target.CreatedBy, nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	reparent := actor.PrincipalID
	if err := domain.CheckProvisioningChain(target.PrincipalID, &reparent, s.creatorOf(ctx)); err != nil {
		if errors.Is(err, domain.ErrProvisioningCycle) {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		return nil, err
	}
	return &reparent, nil
}

// DeletePrincipal refuses self-deletion and deleting one's own creator; admins
// only reach principals they created through their scope.
func (s *principalService) DeletePrincipal(ctx context.Context, actorID, principalID string) error {
	actor, err := s.Scopes.LoadActor(ctx, actorID)
	if err != nil {
		return err
	}
	if principalID == actor.PrincipalID {
		return apperrors.NewForbiddenError("principals may not delete themselves")
	}
	if actor.IsCreatedBy(principalID) {
		return apperrors.NewForbiddenError("principals may not delete their creator")
	}
	if !actor.Role.IsManager() {
		return apperrors.NewForbiddenError("only admins may delete principals")
	}

	scope, err := s.Scopes.ResolveScope(actor, domain.EntityPrincipal)
	if err != nil {
		return err
	}
	if _, err := s.principalRepo.FindPrincipalInScope(ctx, scope, principalID); err != nil {
		return err
	}
	projects, err := s.projectRepo.FindProjectsOf(ctx, principalID)
	if err != nil {
		return fmt.Errorf("failed to load projects of principal: %w", err)
	}

	if err := s.principalRepo.DeletePrincipal(ctx, principalID); err != nil {
		s.LogError(ctx, err, "Failed to delete principal", slog.String("principal_id", principalID))
		return fmt.Errorf("failed to delete principal: %w", err)
	}
	s.removeAttachments(ctx, projects)
	s.LogInfo(ctx, "Principal deleted",
		slog.String("principal_id", principalID),
		slog.Int("cascaded_projects", len(projects)))
	return nil
}

// removeAttachments deletes the files of projects that are already gone.
// Failures are logged; the rows no longer reference the files.
func (s *principalService) removeAttachments(ctx context.Context, projects []domain.Project) {
	if s.artifacts == nil {
		return
	}
	for _, p := range projects {
		if p.AttachmentRef == nil {
			continue
		}
		if err := s.artifacts.Delete(ctx, *p.AttachmentRef); err != nil {
			s.LogError(ctx, err, "Failed to delete project attachment", slog.String("project_id", p.ProjectID))
		}
	}
}

func (s *principalService) EnsureSuperAdmin(ctx context.Context, username, email, password string) (*domain.Principal, bool, error) {
	existing, err := s.principalRepo.FindPrincipalByEmail(ctx, normalizeEmail(email))
	if err == nil {
		if existing.Role != domain.RoleSuperAdmin {
			s.LogWarn(ctx, "Bootstrap email belongs to a principal without the super admin role", slog.String("principal_id", existing.PrincipalID))
		}
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up bootstrap principal: %w", err)
	}

	principal, err := s.newPrincipal(ctx, username, email, password, domain.RoleSuperAdmin, nil)
	if err != nil {
		return nil, false, err
	}
	if err := s.principalRepo.SavePrincipal(ctx, *principal); err != nil {
		return nil, false, fmt.Errorf("failed to save bootstrap principal: %w", err)
	}
	s.LogInfo(ctx, "Bootstrap super admin created", slog.String("principal_id", principal.PrincipalID))
	return principal, true, nil
}

func (s *principalService) newPrincipal(ctx context.Context, username, email, password string, role domain.Role, createdBy *string) (*domain.Principal, error) {
	email = normalizeEmail(email)
	if strings.TrimSpace(username) == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationFailedError("username, email and password are required")
	}

	_, err := s.principalRepo.FindPrincipalByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.NewConflictError("a principal with this email already exists")
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &domain.Principal{
		PrincipalID:  uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedBy:    createdBy,
		DateJoined:   time.Now().UTC(),
	}, nil
}

// creatorOf returns a lookup for CheckProvisioningChain. A missing principal ends the chain.
func (s *principalService) creatorOf(ctx context.Context) func(string) (*string, error) {
	return func(principalID string) (*string, error) {
		p, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return p.CreatedBy, nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
