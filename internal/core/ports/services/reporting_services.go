package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// ReportingSvc is the work aggregator: scoped listings and statistics.
type ReportingSvc interface {
	// Aggregate returns a page of scoped, filtered records and the summary of the whole filtered set.
	Aggregate(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.WorkAggregate, error)

	// Dashboard returns the manager overview. Managers only.
	Dashboard(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.Dashboard, error)

	// PrincipalReport summarises the activity of a principal in the actor's scope. Managers only.
	PrincipalReport(ctx context.Context, actorID, principalID string) (*domain.PrincipalReport, error)
}
