package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/utils/pagination"
)

// recentEntriesLimit bounds PrincipalReport.RecentWorkEntries.
const recentEntriesLimit = 10

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	location *time.Location
	now      func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingLocation sets the time zone filter dates and calendar months are read in.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithReportingClock overrides the clock used for the current month.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos portsrepo.RepositoryProvider, scopes portssvc.ScopeResolverSvc, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{
		BaseService: BaseService{Scopes: scopes},
		repos:       repos,
		location:    time.UTC,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// Aggregate returns one page of the scoped, filtered records ordered by date
// desc then id asc, and the summary of the whole filtered set.
func (s *reportingService) Aggregate(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.WorkAggregate, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityWorkRecord)
	if err != nil {
		return nil, err
	}
	filter, revenue := workFilterFromParams(params, s.location)

	records, err := s.repos.WorkRecordRepo.FindWorkRecords(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load work records", slog.String("scope", scope.String()))
		return nil, fmt.Errorf("failed to aggregate work records: %w", err)
	}

	page, next, err := pagination.Page(records, params.PageToken, pageSize(params.PageSize), recordCursor)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if page == nil {
		page = []domain.WorkRecordDetail{}
	}

	s.LogDebug(ctx, "Work records aggregated", slog.Int("total", len(records)), slog.Int("page", len(page)))
	return &domain.WorkAggregate{
		Records:       page,
		NextPageToken: next,
		Summary:       domain.SummarizeWorkRecords(records, s.now().In(s.location), revenue),
	}, nil
}

// Dashboard is the manager overview: the aggregate summary plus scoped counts.
func (s *reportingService) Dashboard(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.Dashboard, error) {
	actor, workScope, err := s.managerScope(ctx, actorID, domain.EntityWorkRecord, "view the dashboard")
	if err != nil {
		return nil, err
	}
	filter, revenue := workFilterFromParams(params, s.location)
	if revenue == nil {
		current := domain.YearMonth{Year: s.now().In(s.location).Year(), Month: s.now().In(s.location).Month()}
		revenue = &current
	}

	records, err := s.repos.WorkRecordRepo.FindWorkRecords(ctx, workScope, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}
	dashboard := &domain.Dashboard{
		Summary: domain.SummarizeWorkRecords(records, s.now().In(s.location), revenue),
	}

	projectScope, err := s.Scopes.ResolveScope(actor, domain.EntityProject)
	if err != nil {
		return nil, err
	}
	if dashboard.TotalProjects, err = s.repos.ProjectRepo.CountProjects(ctx, projectScope); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	principalScope, err := s.Scopes.ResolveScope(actor, domain.EntityPrincipal)
	if err != nil {
		return nil, err
	}
	member := domain.RoleStandardUser
	if dashboard.TotalTeamMembers, err = s.repos.PrincipalRepo.CountPrincipals(ctx, principalScope, &member); err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}

	invoiceScope, err := s.Scopes.ResolveScope(actor, domain.EntityInvoice)
	if err != nil {
		return nil, err
	}
	if dashboard.TotalInvoicedAmount, err = s.repos.InvoiceRepo.SumInvoiceTotals(ctx, invoiceScope); err != nil {
		return nil, fmt.Errorf("failed to sum invoices: %w", err)
	}
	return dashboard, nil
}

// PrincipalReport summarises a principal visible to the actor. Work statistics
// only cover records the actor may see.
func (s *reportingService) PrincipalReport(ctx context.Context, actorID, principalID string) (*domain.PrincipalReport, error) {
	actor, principalScope, err := s.managerScope(ctx, actorID, domain.EntityPrincipal, "view principal reports")
	if err != nil {
		return nil, err
	}
	target, err := s.repos.PrincipalRepo.FindPrincipalInScope(ctx, principalScope, principalID)
	if err != nil {
		return nil, err
	}
	report := &domain.PrincipalReport{
		Principal:         *target,
		ProjectStatistics: []domain.ProjectStat{},
	}

	if target.CreatedBy != nil {
		creator, err := s.repos.PrincipalRepo.FindPrincipalByID(ctx, *target.CreatedBy)
		switch {
		case err == nil:
			report.CreatedByUsername = &creator.Username
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("failed to load creator: %w", err)
		}
	}

	workScope, err := s.Scopes.ResolveScope(actor, domain.EntityWorkRecord)
	if err != nil {
		return nil, err
	}
	records, err := s.repos.WorkRecordRepo.FindWorkRecords(ctx, workScope, domain.WorkFilter{PrincipalID: &target.PrincipalID})
	if err != nil {
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}

	stats := map[string]*domain.ProjectStat{}
	for _, r := range records {
		report.TotalWorkEntries++
		report.TotalQuantity += int64(r.Quantity)
		stat, ok := stats[r.ProjectID]
		if !ok {
			stat = &domain.ProjectStat{ProjectID: r.ProjectID, ProjectName: r.ProjectName}
			stats[r.ProjectID] = stat
		}
		stat.TotalEntries++
		stat.TotalQuantity += int64(r.Quantity)
	}
	for _, stat := range stats {
		report.ProjectStatistics = append(report.ProjectStatistics, *stat)
	}
	sort.Slice(report.ProjectStatistics, func(i, j int) bool {
		a, b := report.ProjectStatistics[i], report.ProjectStatistics[j]
		if a.TotalEntries != b.TotalEntries {
			return a.TotalEntries > b.TotalEntries
		}
		return a.ProjectName < b.ProjectName
	})

	if len(records) > recentEntriesLimit {
		records = records[:recentEntriesLimit]
	}
	report.RecentWorkEntries = records
	if report.RecentWorkEntries == nil {
		report.RecentWorkEntries = []domain.WorkRecordDetail{}
	}

	if report.ProjectsCreatedCount, report.ProjectsManagedCount, err = s.repos.ProjectRepo.CountProjectsOf(ctx, target.PrincipalID); err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	return report, nil
}

func recordCursor(r domain.WorkRecordDetail) pagination.Cursor {
	return pagination.Cursor{Date: r.Date, ID: r.RecordID}
}
