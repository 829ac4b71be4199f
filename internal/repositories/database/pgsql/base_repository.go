package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// count runs a COUNT query.
func (r *BaseRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(http.StatusInternalServerError, "failed to count rows", err)
	}
	return n, nil
}

// execAffecting runs a statement and reports ErrNotFound when it touched no row.
func (r *BaseRepository) execAffecting(ctx context.Context, entity, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return writeError(entity, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entity)
	}
	return nil
}

// writeError translates constraint violations into domain errors.
func writeError(entity string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflictError(entity + " already exists")
		case pgForeignKeyViolation:
			return apperrors.NewValidationFailedError(entity + " references a missing record")
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to write "+entity, err)
}

// readError maps an empty single-row result onto ErrNotFound.
func readError(entity string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(entity)
	}
	return apperrors.NewAppError(http.StatusInternalServerError, "failed to query "+entity, err)
}
