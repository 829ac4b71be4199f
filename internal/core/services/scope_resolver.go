package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
)

// scopeResolver implements the ScopeResolverSvc interface
type scopeResolver struct {
	BaseService
	principalRepo portsrepo.PrincipalReader
}

// NewScopeResolver creates the resolver every other service authorizes through.
func NewScopeResolver(principalRepo portsrepo.PrincipalReader) portssvc.ScopeResolverSvc {
	return &scopeResolver{principalRepo: principalRepo}
}

var _ portssvc.ScopeResolverSvc = (*scopeResolver)(nil)

func (s *scopeResolver) LoadActor(ctx context.Context, principalID string) (*domain.Principal, error) {
	if principalID == "" {
		return nil, fmt.Errorf("%w: no acting principal", apperrors.ErrUnauthorized)
	}
	actor, err := s.principalRepo.FindPrincipalByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Token subject no longer exists", slog.String("principal_id", principalID))
			return nil, fmt.Errorf("%w: acting principal no longer exists", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load acting principal", slog.String("principal_id", principalID))
		return nil, err
	}
	return actor, nil
}

func (s *scopeResolver) ResolveScope(actor *domain.Principal, kind domain.EntityKind) (domain.Scope, error) {
	return ResolveScope(actor, kind)
}

// ResolveScope returns the visibility predicate of actor over entities of kind.
//
//	kind        super admin  admin (a)                 standard user (u)
//	principal   all          createdBy == a            id == u
//	project     all          managedBy == a            managedBy == u.createdBy
//	category    all          project.managedBy == a    project.managedBy == u.createdBy
//	work record all          project.managedBy == a    user == u
//	invoice     all          project.managedBy == a    none
//
// A standard user without a creator sees no projects or categories.
// Unknown roles and kinds are errors.
func ResolveScope(actor *domain.Principal, kind domain.EntityKind) (domain.Scope, error) {
	if actor == nil {
		return domain.Scope{}, fmt.Errorf("%w: no acting principal", apperrors.ErrUnauthorized)
	}
	none := domain.Scope{Kind: kind, Clause: domain.ClauseNone}

	switch actor.Role {
	case domain.RoleSuperAdmin:
		switch kind {
		case domain.EntityPrincipal, domain.EntityProject, domain.EntityCategory, domain.EntityWorkRecord, domain.EntityInvoice:
			return domain.Scope{Kind: kind, Clause: domain.ClauseAll}, nil
		}

	case domain.RoleAdmin:
		subject := actor.PrincipalID
		switch kind {
		case domain.EntityPrincipal:
			return domain.Scope{Kind: kind, Clause: domain.ClauseCreatedBy, Subject: subject}, nil
		case domain.EntityProject:
			return domain.Scope{Kind: kind, Clause: domain.ClauseManagedBy, Subject: subject}, nil
		case domain.EntityCategory, domain.EntityWorkRecord, domain.EntityInvoice:
			return domain.Scope{Kind: kind, Clause: domain.ClauseProjectManagedBy, Subject: subject}, nil
		}

	case domain.RoleStandardUser:
		switch kind {
		case domain.EntityPrincipal:
			return domain.Scope{Kind: kind, Clause: domain.ClauseSelf, Subject: actor.PrincipalID}, nil
		case domain.EntityProject:
			if actor.CreatedBy == nil {
				return none, nil
			}
			return domain.Scope{Kind: kind, Clause: domain.ClauseManagedBy, Subject: *actor.CreatedBy}, nil
		case domain.EntityCategory:
			if actor.CreatedBy == nil {
				return none, nil
			}
			return domain.Scope{Kind: kind, Clause: domain.ClauseProjectManagedBy, Subject: *actor.CreatedBy}, nil
		case domain.EntityWorkRecord:
			return domain.Scope{Kind: kind, Clause: domain.ClauseOwnedBy, Subject: actor.PrincipalID}, nil
		case domain.EntityInvoice:
			return none, nil
		}

	default:
		return domain.Scope{}, fmt.Errorf("cannot resolve scope for unknown role %d", uint8(actor.Role))
	}
	return domain.Scope{}, fmt.Errorf("cannot resolve scope for unknown entity kind %s", kind)
}
