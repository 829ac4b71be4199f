package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// AuthSvc authenticates principals and issues access tokens.
type AuthSvc interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
