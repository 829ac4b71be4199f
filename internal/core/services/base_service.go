package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Scopes portssvc.ScopeResolverSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// actorScope loads the acting principal and resolves its scope for kind.
func (s *BaseService) actorScope(ctx context.Context, actorID string, kind domain.EntityKind) (*domain.Principal, domain.Scope, error) {
	actor, err := s.Scopes.LoadActor(ctx, actorID)
	if err != nil {
		return nil, domain.Scope{}, err
	}
	scope, err := s.Scopes.ResolveScope(actor, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve scope", slog.String("kind", kind.String()))
		return nil, domain.Scope{}, err
	}
	return actor, scope, nil
}

// managerScope is actorScope restricted to admins and super admins.
// The role check runs before any scoped read.
func (s *BaseService) managerScope(ctx context.Context, actorID string, kind domain.EntityKind, action string) (*domain.Principal, domain.Scope, error) {
	actor, err := s.Scopes.LoadActor(ctx, actorID)
	if err != nil {
		return nil, domain.Scope{}, err
	}
	if !actor.Role.IsManager() {
		s.LogWarn(ctx, "Manager-only action refused", slog.String("action", action), slog.String("role", actor.Role.String()))
		return nil, domain.Scope{}, apperrors.NewForbiddenError(fmt.Sprintf("only admins may %s", action))
	}
	scope, err := s.Scopes.ResolveScope(actor, kind)
	if err != nil {
		return nil, domain.Scope{}, err
	}
	return actor, scope, nil
}

// canManage reports whether actor holds mutation rights over something managed by managedBy.
func canManage(actor *domain.Principal, managedBy string) bool {
	return actor.Role == domain.RoleSuperAdmin || (actor.Role == domain.RoleAdmin && actor.PrincipalID == managedBy)
}
