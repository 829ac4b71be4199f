package domain

import (
	"errors"
	"time"
)

// MaxProvisioningDepth bounds the createdBy chain walked when validating it.
const MaxProvisioningDepth = 32

// ErrProvisioningCycle is returned when a createdBy chain loops back on itself.
var ErrProvisioningCycle = errors.New("principal provisioning chain contains a cycle")

// Principal is an authenticated actor of the system.
type Principal struct {
	PrincipalID  string    `json:"principalID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedBy    *string   `json:"createdBy,omitempty"` // principal that provisioned this one
	DateJoined   time.Time `json:"dateJoined"`
}

// IsCreatedBy reports whether p was provisioned by principalID.
func (p Principal) IsCreatedBy(principalID string) bool {
	return p.CreatedBy != nil && *p.CreatedBy == principalID
}

// CheckProvisioningChain walks the createdBy chain starting at start and fails if
// it revisits a principal, reaches candidateID, or exceeds MaxProvisioningDepth.
// lookup returns the creator of a principal, or nil when the chain ends.
func CheckProvisioningChain(candidateID string, start *string, lookup func(principalID string) (*string, error)) error {
	seen := map[string]struct{}{}
	if candidateID != "" {
		seen[candidateID] = struct{}{}
	}
	current := start
	for depth := 0; current != nil; depth++ {
		if depth >= MaxProvisioningDepth {
			return ErrProvisioningCycle
		}
		if _, dup := seen[*current]; dup {
			return ErrProvisioningCycle
		}
		seen[*current] = struct{}{}
		next, err := lookup(*current)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

// PrincipalQuery narrows and pages a principal listing.
type PrincipalQuery struct {
	Search string // case-insensitive substring of the username
	Role   *Role
	Limit  int
	Offset int
}
