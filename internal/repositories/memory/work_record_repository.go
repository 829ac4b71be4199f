package memory

import (
	"context"
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

type workRecordRepository struct {
	s *Store
}

var _ portsrepo.WorkRecordRepositoryFacade = (*workRecordRepository)(nil)

func (r *workRecordRepository) FindWorkRecords(ctx context.Context, scope domain.Scope, filter domain.WorkFilter) ([]domain.WorkRecordDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.WorkRecordDetail{}
	for _, rec := range r.s.workRecords {
		d := r.s.detail(rec)
		if scope.MatchWorkRecord(d) && filter.Matches(d) {
			out = append(out, d)
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *workRecordRepository) FindWorkRecordInScope(ctx context.Context, scope domain.Scope, recordID string) (*domain.WorkRecordDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.workRecords[recordID]
	if !ok {
		return nil, notFound("work record")
	}
	d := r.s.detail(rec)
	if !scope.MatchWorkRecord(d) {
		return nil, notFound("work record")
	}
	return &d, nil
}

func (r *workRecordRepository) FindOpenSlots(ctx context.Context, projectScope domain.Scope) ([]domain.WorkRecordDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.WorkRecordDetail{}
	for _, rec := range r.s.workRecords {
		if !rec.IsOpenSlot() {
			continue
		}
		if p, ok := r.s.projects[rec.ProjectID]; ok && projectScope.MatchProject(p) {
			out = append(out, r.s.detail(rec))
		}
	}
	sortRecords(out)
	return out, nil
}

func (r *workRecordRepository) SaveWorkRecords(ctx context.Context, records []domain.WorkRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range records {
		if _, exists := r.s.workRecords[rec.RecordID]; exists {
			return apperrors.NewConflictError("work record already exists")
		}
		if _, ok := r.s.projects[rec.ProjectID]; !ok {
			return apperrors.NewValidationFailedError("project does not exist")
		}
		if rec.UserID != nil {
			if _, ok := r.s.principals[*rec.UserID]; !ok {
				return apperrors.NewValidationFailedError("user does not exist")
			}
		}
		if rec.CategoryID != nil {
			if _, ok := r.s.categories[*rec.CategoryID]; !ok {
				return apperrors.NewValidationFailedError("category does not exist")
			}
		}
	}
	for _, rec := range records {
		r.s.workRecords[rec.RecordID] = rec
	}
	return nil
}

func (r *workRecordRepository) ClaimSlot(ctx context.Context, slotID, userID, categoryID string, quantity int, date time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.workRecords[slotID]
	if !ok || !rec.IsOpenSlot() {
		return notFound("open slot")
	}
	if _, ok := r.s.categories[categoryID]; !ok {
		return apperrors.NewValidationFailedError("category does not exist")
	}
	user, category := userID, categoryID
	rec.UserID = &user
	rec.CategoryID = &category
	rec.Quantity = quantity
	rec.Date = date
	r.s.workRecords[slotID] = rec
	return nil
}

func (r *workRecordRepository) DeleteWorkRecord(ctx context.Context, recordID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workRecords[recordID]; !ok {
		return notFound("work record")
	}
	delete(r.s.workRecords, recordID)
	return nil
}
