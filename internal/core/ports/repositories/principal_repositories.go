package repositories

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// PrincipalReader defines read operations for principals
type PrincipalReader interface {
	// FindPrincipalByID retrieves a principal without applying any scope.
	// Only used to load the acting principal and to walk provisioning chains.
	FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error)

	// FindPrincipalByEmail retrieves a principal by its login email.
	FindPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error)

	// FindPrincipalInScope retrieves a principal only if it matches the scope.
	FindPrincipalInScope(ctx context.Context, scope domain.Scope, principalID string) (*domain.Principal, error)

	// FindPrincipals lists principals matching the scope and query, ordered by username.
	FindPrincipals(ctx context.Context, scope domain.Scope, query domain.PrincipalQuery) ([]domain.Principal, error)

	// CountPrincipals counts principals matching the scope, optionally restricted to a role.
	CountPrincipals(ctx context.Context, scope domain.Scope, role *domain.Role) (int, error)
}

// PrincipalWriter defines write operations for principals
type PrincipalWriter interface {
	SavePrincipal(ctx context.Context, principal domain.Principal) error
	// UpdatePrincipalRole sets the role and the provisioning link together.
	UpdatePrincipalRole(ctx context.Context, principalID string, role domain.Role, createdBy *string) error
	// DeletePrincipal removes the principal; owned projects and records cascade.
	DeletePrincipal(ctx context.Context, principalID string) error
}

// PrincipalRepositoryFacade combines all principal repository interfaces
type PrincipalRepositoryFacade interface {
	PrincipalReader
	PrincipalWriter
}
