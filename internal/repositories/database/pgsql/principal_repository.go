package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/models"
)

type PgxPrincipalRepository struct {
	BaseRepository
}

func newPgxPrincipalRepository(pool *pgxpool.Pool) portsrepo.PrincipalRepositoryFacade {
	return &PgxPrincipalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrincipalRepositoryFacade = (*PgxPrincipalRepository)(nil)

const fullPrincipalSelectQuery = `
SELECT pr.principal_id, pr.username, pr.email, pr.password_hash, pr.role, pr.created_by, pr.date_joined
FROM principals pr`

func toModelPrincipal(d domain.Principal) models.Principal {
	return models.Principal{
		PrincipalID:  d.PrincipalID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role.String(),
		CreatedBy:    d.CreatedBy,
		DateJoined:   d.DateJoined,
	}
}

func toDomainPrincipal(m models.Principal) (domain.Principal, error) {
	role, err := domain.ParseRole(m.Role)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("principal %s: %w", m.PrincipalID, err)
	}
	return domain.Principal{
		PrincipalID:  m.PrincipalID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         role,
		CreatedBy:    m.CreatedBy,
		DateJoined:   m.DateJoined,
	}, nil
}

func (r *PgxPrincipalRepository) getPrincipals(ctx context.Context, filterQuery string, args ...any) ([]domain.Principal, error) {
	rows, err := r.Pool.Query(ctx, fullPrincipalSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query principals", err)
	}
	defer rows.Close()
	modelPrincipals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Principal])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect principal rows", err)
	}
	principals := make([]domain.Principal, 0, len(modelPrincipals))
	for _, m := range modelPrincipals {
		p, err := toDomainPrincipal(m)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "invalid principal row", err)
		}
		principals = append(principals, p)
	}
	return principals, nil
}

func (r *PgxPrincipalRepository) getOne(ctx context.Context, filterQuery string, args ...any) (*domain.Principal, error) {
	principals, err := r.getPrincipals(ctx, filterQuery, args...)
	if err != nil {
		return nil, err
	}
	if len(principals) == 0 {
		return nil, apperrors.NewNotFoundError("principal")
	}
	return &principals[0], nil
}

func (r *PgxPrincipalRepository) FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error) {
	return r.getOne(ctx, " WHERE pr.principal_id = $1", principalID)
}

func (r *PgxPrincipalRepository) FindPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	return r.getOne(ctx, " WHERE LOWER(pr.email) = LOWER($1)", strings.TrimSpace(email))
}

func (r *PgxPrincipalRepository) FindPrincipalInScope(ctx context.Context, scope domain.Scope, principalID string) (*domain.Principal, error) {
	var b whereBuilder
	b.add("pr.principal_id = " + b.arg(principalID))
	b.scope(scope, domain.EntityPrincipal)
	return r.getOne(ctx, b.String(), b.args...)
}

func principalConditions(scope domain.Scope, search string, role *domain.Role) *whereBuilder {
	b := &whereBuilder{}
	b.scope(scope, domain.EntityPrincipal)
	if role != nil {
		b.add("pr.role = " + b.arg(role.String()))
	}
	if search = strings.TrimSpace(search); search != "" {
		b.add("pr.username ILIKE " + b.arg(containsPattern(search)))
	}
	return b
}

func (r *PgxPrincipalRepository) FindPrincipals(ctx context.Context, scope domain.Scope, query domain.PrincipalQuery) ([]domain.Principal, error) {
	b := principalConditions(scope, query.Search, query.Role)
	filter := b.String() + " ORDER BY pr.username, pr.principal_id"
	if query.Limit > 0 {
		filter += " LIMIT " + b.arg(query.Limit)
	}
	if query.Offset > 0 {
		filter += " OFFSET " + b.arg(query.Offset)
	}
	return r.getPrincipals(ctx, filter, b.args...)
}

func (r *PgxPrincipalRepository) CountPrincipals(ctx context.Context, scope domain.Scope, role *domain.Role) (int, error) {
	b := principalConditions(scope, "", role)
	return r.count(ctx, "SELECT COUNT(*) FROM principals pr"+b.String(), b.args...)
}

func (r *PgxPrincipalRepository) SavePrincipal(ctx context.Context, principal domain.Principal) error {
	m := toModelPrincipal(principal)
	query := `
		INSERT INTO principals (principal_id, username, email, password_hash, role, created_by, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, m.PrincipalID, m.Username, m.Email, m.PasswordHash, m.Role, m.CreatedBy, m.DateJoined)
	if err != nil {
		return writeError("principal", err)
	}
	return nil
}

func (r *PgxPrincipalRepository) UpdatePrincipalRole(ctx context.Context, principalID string, role domain.Role, createdBy *string) error {
	query := `UPDATE principals SET role = $2, created_by = $3 WHERE principal_id = $1;`
	return r.execAffecting(ctx, "principal", query, principalID, role.String(), createdBy)
}

// DeletePrincipal relies on the schema's ON DELETE rules for dependent rows.
func (r *PgxPrincipalRepository) DeletePrincipal(ctx context.Context, principalID string) error {
	return r.execAffecting(ctx, "principal", `DELETE FROM principals WHERE principal_id = $1;`, principalID)
}
