package repositories

import (
	"context"
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// WorkRecordReader defines read operations for work records
type WorkRecordReader interface {
	// FindWorkRecords returns scoped and filtered records ordered by date desc, then id asc.
	FindWorkRecords(ctx context.Context, scope domain.Scope, filter domain.WorkFilter) ([]domain.WorkRecordDetail, error)
	FindWorkRecordInScope(ctx context.Context, scope domain.Scope, recordID string) (*domain.WorkRecordDetail, error)
	// FindOpenSlots returns unclaimed slots of the projects matching projectScope.
	FindOpenSlots(ctx context.Context, projectScope domain.Scope) ([]domain.WorkRecordDetail, error)
}

// WorkRecordWriter defines write operations for work records
type WorkRecordWriter interface {
	// SaveWorkRecords persists all records atomically.
	SaveWorkRecords(ctx context.Context, records []domain.WorkRecord) error
	// ClaimSlot assigns an open slot. It returns apperrors.ErrNotFound when the
	// slot does not exist or was claimed in the meantime.
	ClaimSlot(ctx context.Context, slotID, userID, categoryID string, quantity int, date time.Time) error
	DeleteWorkRecord(ctx context.Context, recordID string) error
}

// WorkRecordRepositoryFacade combines all work record repository interfaces
type WorkRecordRepositoryFacade interface {
	WorkRecordReader
	WorkRecordWriter
}
