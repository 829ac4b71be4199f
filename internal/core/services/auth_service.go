package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
	"github.com/subhoajk39-commits/invvvoice/internal/platform/config"
	"github.com/subhoajk39-commits/invvvoice/internal/utils"
)

// authService implements the AuthSvc interface.
type authService struct {
	BaseService
	cfg           *config.Config
	principalRepo portsrepo.PrincipalReader
}

// NewAuthService creates a new authentication service.
func NewAuthService(cfg *config.Config, principalRepo portsrepo.PrincipalReader) portssvc.AuthSvc {
	return &authService{cfg: cfg, principalRepo: principalRepo}
}

var _ portssvc.AuthSvc = (*authService)(nil)

// Login checks the credentials and issues an access token whose subject is the principal id.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	invalid := fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)

	principal, err := s.principalRepo.FindPrincipalByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.CheckPasswordHash(req.Password, "")
			middleware.RecordLoginAttempt(false)
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to look up principal for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, principal.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.String("principal_id", principal.PrincipalID))
		middleware.RecordLoginAttempt(false)
		return nil, invalid
	}

	token, expiresAt, err := utils.GenerateJWT(principal.PrincipalID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("principal_id", principal.PrincipalID))
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	middleware.RecordLoginAttempt(true)
	s.LogInfo(ctx, "Principal logged in", slog.String("principal_id", principal.PrincipalID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: dto.ToPrincipalResponse(principal),
	}, nil
}
