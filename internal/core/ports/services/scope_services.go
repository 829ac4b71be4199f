package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// ScopeResolverSvc turns an acting principal into per-entity visibility predicates.
type ScopeResolverSvc interface {
	// LoadActor loads the acting principal; an unknown id is apperrors.ErrUnauthorized.
	LoadActor(ctx context.Context, principalID string) (*domain.Principal, error)

	// ResolveScope returns the visibility predicate of actor for kind.
	ResolveScope(actor *domain.Principal, kind domain.EntityKind) (domain.Scope, error)
}
