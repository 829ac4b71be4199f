package dto

import (
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// CreatePrincipalRequest defines the data needed to provision a principal.
// Role is optional; only super admins may set it.
type CreatePrincipalRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,role"`
}

// UpdatePrincipalRoleRequest changes the role of a principal.
type UpdatePrincipalRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// ListPrincipalsParams defines query parameters for listing principals.
type ListPrincipalsParams struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,role"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// PrincipalResponse defines the data returned for a principal.
type PrincipalResponse struct {
	PrincipalID string    `json:"principalID"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	RoleName    string    `json:"roleName"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	DateJoined  time.Time `json:"dateJoined"`
}

// ListPrincipalsResponse wraps the list of principals.
type ListPrincipalsResponse struct {
	Principals []PrincipalResponse `json:"principals"`
}

// ToPrincipalResponse converts a domain.Principal to PrincipalResponse DTO
func ToPrincipalResponse(p *domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		PrincipalID: p.PrincipalID,
		Username:    p.Username,
		Email:       p.Email,
		Role:        p.Role.String(),
		RoleName:    p.Role.DisplayName(),
		CreatedBy:   p.CreatedBy,
		DateJoined:  p.DateJoined,
	}
}

// ToListPrincipalsResponse converts a slice of domain.Principal to ListPrincipalsResponse DTO
func ToListPrincipalsResponse(principals []domain.Principal) ListPrincipalsResponse {
	res := make([]PrincipalResponse, len(principals))
	for i := range principals {
		res[i] = ToPrincipalResponse(&principals[i])
	}
	return ListPrincipalsResponse{Principals: res}
}
