package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/models"
)

type PgxWorkRecordRepository struct {
	BaseRepository
}

func newPgxWorkRecordRepository(pool *pgxpool.Pool) portsrepo.WorkRecordRepositoryFacade {
	return &PgxWorkRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkRecordRepositoryFacade = (*PgxWorkRecordRepository)(nil)

const fullWorkRecordSelectQuery = `
SELECT
	w.record_id, w.user_id, w.project_id, w.folder_name, w.category_id, w.quantity, w.work_date, w.is_slot,
	pj.name AS project_name, pj.managed_by AS project_managed_by,
	c.name AS category_name, c.rate AS category_rate, c.currency AS category_currency,
	pr.username
FROM work_records w
JOIN projects pj ON pj.project_id = w.project_id
LEFT JOIN categories c ON c.category_id = w.category_id
LEFT JOIN principals pr ON pr.principal_id = w.user_id`

const workRecordOrder = " ORDER BY w.work_date DESC, w.record_id"

func toModelWorkRecord(d domain.WorkRecord) models.WorkRecord {
	return models.WorkRecord{
		RecordID:   d.RecordID,
		UserID:     d.UserID,
		ProjectID:  d.ProjectID,
		FolderName: d.FolderName,
		CategoryID: d.CategoryID,
		Quantity:   d.Quantity,
		WorkDate:   d.Date,
		IsSlot:     d.IsSlot,
	}
}

func toDomainWorkRecordDetail(m models.WorkRecordDetail) domain.WorkRecordDetail {
	d := domain.WorkRecordDetail{
		WorkRecord: domain.WorkRecord{
			RecordID:   m.RecordID,
			UserID:     m.UserID,
			ProjectID:  m.ProjectID,
			FolderName: m.FolderName,
			CategoryID: m.CategoryID,
			Quantity:   m.Quantity,
			Date:       m.WorkDate,
			IsSlot:     m.IsSlot,
		},
		ProjectName:      m.ProjectName,
		ProjectManagedBy: m.ProjectManagedBy,
		CategoryName:     m.CategoryName,
		Username:         m.Username,
	}
	if m.CategoryRate.Valid {
		rate := m.CategoryRate.Decimal
		d.CategoryRate = &rate
	}
	if m.CategoryCurrency != nil {
		currency := domain.CurrencyCode(*m.CategoryCurrency).Normalize()
		d.CategoryCurrency = &currency
	}
	return d
}

func (r *PgxWorkRecordRepository) getWorkRecords(ctx context.Context, filterQuery string, args ...any) ([]domain.WorkRecordDetail, error) {
	rows, err := r.Pool.Query(ctx, fullWorkRecordSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query work records", err)
	}
	defer rows.Close()
	modelRecords, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WorkRecordDetail])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to collect work record rows", err)
	}
	records := make([]domain.WorkRecordDetail, len(modelRecords))
	for i, m := range modelRecords {
		records[i] = toDomainWorkRecordDetail(m)
	}
	return records, nil
}

// applyWorkFilter mirrors domain.WorkFilter.Matches in SQL.
func applyWorkFilter(b *whereBuilder, f domain.WorkFilter) {
	if f.ProjectID != nil {
		b.add("w.project_id = " + b.arg(*f.ProjectID))
	}
	if f.PrincipalID != nil {
		b.add("w.user_id = " + b.arg(*f.PrincipalID))
	}
	if f.ProjectName != nil {
		b.add("pj.name ILIKE " + b.arg(containsPattern(*f.ProjectName)))
	}
	if f.From != nil {
		b.add("w.work_date >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.add("w.work_date < " + b.arg(domain.EndOfDay(*f.To)))
	}
	if f.Query != "" {
		p := b.arg(containsPattern(f.Query))
		b.add(fmt.Sprintf("(w.folder_name ILIKE %s OR c.name ILIKE %s)", p, p))
	}
	if f.ExcludeOpenSlots {
		b.add("NOT (w.is_slot AND w.user_id IS NULL)")
	}
}

func (r *PgxWorkRecordRepository) FindWorkRecords(ctx context.Context, scope domain.Scope, filter domain.WorkFilter) ([]domain.WorkRecordDetail, error) {
	var b whereBuilder
	b.scope(scope, domain.EntityWorkRecord)
	applyWorkFilter(&b, filter)
	return r.getWorkRecords(ctx, b.String()+workRecordOrder, b.args...)
}

func (r *PgxWorkRecordRepository) FindWorkRecordInScope(ctx context.Context, scope domain.Scope, recordID string) (*domain.WorkRecordDetail, error) {
	var b whereBuilder
	b.add("w.record_id = " + b.arg(recordID))
	b.scope(scope, domain.EntityWorkRecord)
	records, err := r.getWorkRecords(ctx, b.String(), b.args...)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError("work record")
	}
	return &records[0], nil
}

func (r *PgxWorkRecordRepository) FindOpenSlots(ctx context.Context, projectScope domain.Scope) ([]domain.WorkRecordDetail, error) {
	var b whereBuilder
	b.add("w.is_slot AND w.user_id IS NULL")
	b.scope(projectScope, domain.EntityProject)
	return r.getWorkRecords(ctx, b.String()+workRecordOrder, b.args...)
}

// SaveWorkRecords inserts the batch in one transaction.
func (r *PgxWorkRecordRepository) SaveWorkRecords(ctx context.Context, records []domain.WorkRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	query := `
		INSERT INTO work_records (record_id, user_id, project_id, folder_name, category_id, quantity, work_date, is_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, record := range records {
		m := toModelWorkRecord(record)
		batch.Queue(query, m.RecordID, m.UserID, m.ProjectID, m.FolderName, m.CategoryID, m.Quantity, m.WorkDate, m.IsSlot)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for range records {
		if _, execErr := br.Exec(); execErr != nil && batchErr == nil {
			batchErr = writeError("work record", execErr)
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = writeError("work record", closeErr)
	}
	if batchErr != nil {
		return batchErr
	}
	return r.Commit(ctx, tx)
}

// ClaimSlot only updates a row that is still an open slot.
func (r *PgxWorkRecordRepository) ClaimSlot(ctx context.Context, slotID, userID, categoryID string, quantity int, date time.Time) error {
	query := `
		UPDATE work_records
		SET user_id = $2, category_id = $3, quantity = $4, work_date = $5
		WHERE record_id = $1 AND is_slot AND user_id IS NULL;
	`
	return r.execAffecting(ctx, "open slot", query, slotID, userID, categoryID, quantity, date)
}

func (r *PgxWorkRecordRepository) DeleteWorkRecord(ctx context.Context, recordID string) error {
	return r.execAffecting(ctx, "work record", `DELETE FROM work_records WHERE record_id = $1;`, recordID)
}
