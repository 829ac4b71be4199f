package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// WorkSubmissionSvc defines operations standard users perform on their work
type WorkSubmissionSvc interface {
	// SubmitWork records a batch of work for the actor. Invalid lines are skipped and counted.
	SubmitWork(ctx context.Context, actorID string, req dto.SubmitWorkRequest) ([]domain.WorkRecord, int, error)

	// ListOpenSlots lists unclaimed slots the actor may fill.
	ListOpenSlots(ctx context.Context, actorID string) ([]domain.WorkRecordDetail, error)

	// FillSlots claims slots for the actor. It returns filled and skipped counts.
	FillSlots(ctx context.Context, actorID string, req dto.FillSlotsRequest) (int, int, error)
}

// WorkManagementSvc defines operations managers perform on work records
type WorkManagementSvc interface {
	CreateSlots(ctx context.Context, actorID string, req dto.CreateSlotsRequest) ([]domain.WorkRecord, error)
	DeleteWorkRecord(ctx context.Context, actorID, recordID string) error
}

// WorkRecordSvcFacade combines all work record service interfaces
type WorkRecordSvcFacade interface {
	WorkSubmissionSvc
	WorkManagementSvc
}
