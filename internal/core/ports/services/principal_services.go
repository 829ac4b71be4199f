package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// PrincipalReaderSvc defines read operations for principals
type PrincipalReaderSvc interface {
	GetPrincipal(ctx context.Context, actorID, principalID string) (*domain.Principal, error)
	ListPrincipals(ctx context.Context, actorID string, params dto.ListPrincipalsParams) ([]domain.Principal, error)
}

// PrincipalWriterSvc defines write operations for principals
type PrincipalWriterSvc interface {
	// CreatePrincipal provisions a principal with createdBy set to the actor.
	CreatePrincipal(ctx context.Context, actorID string, req dto.CreatePrincipalRequest) (*domain.Principal, error)

	// UpdatePrincipalRole changes a role. Only super admins may do this.
	UpdatePrincipalRole(ctx context.Context, actorID, principalID string, req dto.UpdatePrincipalRoleRequest) (*domain.Principal, error)

	// DeletePrincipal removes a principal and cascades to what it owns.
	DeletePrincipal(ctx context.Context, actorID, principalID string) error
}

// PrincipalBootstrapSvc seeds the first super admin.
type PrincipalBootstrapSvc interface {
	// EnsureSuperAdmin creates a super admin with the given credentials unless the email exists.
	EnsureSuperAdmin(ctx context.Context, username, email, password string) (*domain.Principal, bool, error)
}

// PrincipalSvcFacade combines all principal service interfaces
type PrincipalSvcFacade interface {
	PrincipalReaderSvc
	PrincipalWriterSvc
	PrincipalBootstrapSvc
}
