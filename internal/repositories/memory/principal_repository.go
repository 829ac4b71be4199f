package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

type principalRepository struct {
	s *Store
}

var _ portsrepo.PrincipalRepositoryFacade = (*principalRepository)(nil)

func (r *principalRepository) FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.principals[principalID]
	if !ok {
		return nil, notFound("principal")
	}
	return &p, nil
}

func (r *principalRepository) FindPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.principals {
		if sameFold(p.Email, email) {
			return &p, nil
		}
	}
	return nil, notFound("principal")
}

func (r *principalRepository) FindPrincipalInScope(ctx context.Context, scope domain.Scope, principalID string) (*domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.principals[principalID]
	if !ok || !scope.MatchPrincipal(p) {
		return nil, notFound("principal")
	}
	return &p, nil
}

func (r *principalRepository) matching(scope domain.Scope, search string, role *domain.Role) []domain.Principal {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []domain.Principal{}
	for _, p := range r.s.principals {
		if !scope.MatchPrincipal(p) {
			continue
		}
		if role != nil && p.Role != *role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Username), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *principalRepository) FindPrincipals(ctx context.Context, scope domain.Scope, query domain.PrincipalQuery) ([]domain.Principal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.matching(scope, query.Search, query.Role)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Username != out[j].Username {
			return out[i].Username < out[j].Username
		}
		return out[i].PrincipalID < out[j].PrincipalID
	})
	if query.Offset > 0 {
		if query.Offset >= len(out) {
			return []domain.Principal{}, nil
		}
		out = out[query.Offset:]
	}
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *principalRepository) CountPrincipals(ctx context.Context, scope domain.Scope, role *domain.Role) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.matching(scope, "", role)), nil
}

func (r *principalRepository) SavePrincipal(ctx context.Context, principal domain.Principal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.principals[principal.PrincipalID]; exists {
		return apperrors.NewConflictError("principal already exists")
	}
	for _, p := range r.s.principals {
		if sameFold(p.Email, principal.Email) {
			return apperrors.NewConflictError("a principal with this email already exists")
		}
	}
	if principal.CreatedBy != nil {
		if _, ok := r.s.principals[*principal.CreatedBy]; !ok {
			return apperrors.NewValidationFailedError("creator does not exist")
		}
	}
	r.s.principals[principal.PrincipalID] = principal
	return nil
}

func (r *principalRepository) UpdatePrincipalRole(ctx context.Context, principalID string, role domain.Role, createdBy *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.principals[principalID]
	if !ok {
		return notFound("principal")
	}
	if createdBy != nil {
		if _, ok := r.s.principals[*createdBy]; !ok {
			return apperrors.NewValidationFailedError("creator does not exist")
		}
	}
	p.Role = role
	p.CreatedBy = createdBy
	r.s.principals[principalID] = p
	return nil
}

// DeletePrincipal cascades to the principal's projects and own records;
// principals it created and invoices it generated keep existing unlinked.
func (r *principalRepository) DeletePrincipal(ctx context.Context, principalID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.principals[principalID]; !ok {
		return notFound("principal")
	}
	delete(r.s.principals, principalID)

	for id, p := range r.s.principals {
		if p.IsCreatedBy(principalID) {
			p.CreatedBy = nil
			r.s.principals[id] = p
		}
	}
	for id, p := range r.s.projects {
		if p.CreatedBy == principalID || p.ManagedBy == principalID {
			r.s.deleteProjectLocked(id)
		}
	}
	for id, rec := range r.s.workRecords {
		if rec.UserID != nil && *rec.UserID == principalID {
			delete(r.s.workRecords, id)
		}
	}
	for id, inv := range r.s.invoices {
		if inv.GeneratedBy != nil && *inv.GeneratedBy == principalID {
			inv.GeneratedBy = nil
			r.s.invoices[id] = inv
		}
	}
	return nil
}
