package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// MaxSlotsPerRequest bounds CreateSlots.
const MaxSlotsPerRequest = 100

// workRecordService implements the WorkRecordSvcFacade interface
type workRecordService struct {
	BaseService
	workRepo     portsrepo.WorkRecordRepositoryFacade
	projectRepo  portsrepo.ProjectReader
	categoryRepo portsrepo.CategoryReader
	now          func() time.Time
	location     *time.Location
}

// WorkRecordServiceOption is a functional option for configuring the work record service
type WorkRecordServiceOption func(*workRecordService)

// WithWorkRecordClock overrides the clock used to date submissions and claims.
func WithWorkRecordClock(now func() time.Time) WorkRecordServiceOption {
	return func(s *workRecordService) {
		s.now = now
	}
}

// WithWorkRecordLocation sets the zone submitted calendar dates are read in.
// It must match the zone filters and invoices use.
func WithWorkRecordLocation(loc *time.Location) WorkRecordServiceOption {
	return func(s *workRecordService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewWorkRecordService creates a new work record service with the provided options
func NewWorkRecordService(
	workRepo portsrepo.WorkRecordRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	categoryRepo portsrepo.CategoryReader,
	scopes portssvc.ScopeResolverSvc,
	options ...WorkRecordServiceOption,
) portssvc.WorkRecordSvcFacade {
	svc := &workRecordService{
		BaseService:  BaseService{Scopes: scopes},
		workRepo:     workRepo,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
		location:     time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WorkRecordSvcFacade = (*workRecordService)(nil)

// SubmitWork records the valid lines of req for the actor in a visible project.
// Lines without a folder, with a missing or negative quantity, an unparseable
// date or a category of another project are skipped.
func (s *workRecordService) SubmitWork(ctx context.Context, actorID string, req dto.SubmitWorkRequest) ([]domain.WorkRecord, int, error) {
	actor, projectScope, err := s.actorScope(ctx, actorID, domain.EntityProject)
	if err != nil {
		return nil, 0, err
	}
	project, err := s.projectRepo.FindProjectInScope(ctx, projectScope, req.ProjectID)
	if err != nil {
		return nil, 0, err
	}
	categories, err := s.projectCategories(ctx, actor, project.ProjectID)
	if err != nil {
		return nil, 0, err
	}

	now := s.now().In(s.location)
	records := make([]domain.WorkRecord, 0, len(req.Entries))
	skipped := 0
	for i, entry := range req.Entries {
		record, reason := buildWorkRecord(entry, project.ProjectID, actor.PrincipalID, categories, now, s.location)
		if reason != "" {
			skipped++
			s.LogDebug(ctx, "Skipping work entry", slog.Int("line", i), slog.String("reason", reason))
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return records, skipped, nil
	}
	if err := s.workRepo.SaveWorkRecords(ctx, records); err != nil {
		s.LogError(ctx, err, "Failed to save work records", slog.String("project_id", project.ProjectID))
		return nil, 0, fmt.Errorf("failed to submit work: %w", err)
	}
	s.LogInfo(ctx, "Work submitted",
		slog.String("project_id", project.ProjectID),
		slog.Int("created", len(records)),
		slog.Int("skipped", skipped))
	return records, skipped, nil
}

func buildWorkRecord(entry dto.WorkEntryInput, projectID, userID string, categories map[string]struct{}, now time.Time, loc *time.Location) (domain.WorkRecord, string) {
	folder := strings.TrimSpace(entry.FolderName)
	if folder == "" {
		return domain.WorkRecord{}, "missing folder"
	}
	if entry.Quantity == nil || *entry.Quantity < 0 {
		return domain.WorkRecord{}, "missing or negative quantity"
	}
	var categoryID *string
	if entry.CategoryID != nil && *entry.CategoryID != "" {
		if _, ok := categories[*entry.CategoryID]; !ok {
			return domain.WorkRecord{}, "category not in project"
		}
		id := *entry.CategoryID
		categoryID = &id
	}
	date := now
	if entry.Date != nil && *entry.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, *entry.Date, loc)
		if err != nil {
			return domain.WorkRecord{}, "invalid date"
		}
		date = parsed
	}
	user := userID
	return domain.WorkRecord{
		RecordID:   uuid.NewString(),
		UserID:     &user,
		ProjectID:  projectID,
		FolderName: folder,
		CategoryID: categoryID,
		Quantity:   *entry.Quantity,
		Date:       date,
	}, ""
}

// CreateSlots pre-creates unassigned records that standard users claim later.
func (s *workRecordService) CreateSlots(ctx context.Context, actorID string, req dto.CreateSlotsRequest) ([]domain.WorkRecord, error) {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityProject, "create slots")
	if err != nil {
		return nil, err
	}
	if req.Count < 1 || req.Count > MaxSlotsPerRequest {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("slot count must be between 1 and %d", MaxSlotsPerRequest))
	}
	project, err := s.projectRepo.FindProjectInScope(ctx, scope, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, project.ManagedBy) {
		return nil, apperrors.NewForbiddenError("only the managing admin may create slots")
	}

	now := s.now().In(s.location)
	slots := make([]domain.WorkRecord, req.Count)
	for i := range slots {
		slots[i] = domain.WorkRecord{
			RecordID:   uuid.NewString(),
			ProjectID:  project.ProjectID,
			FolderName: domain.SlotFolderName,
			Date:       now,
			IsSlot:     true,
		}
	}
	if err := s.workRepo.SaveWorkRecords(ctx, slots); err != nil {
		s.LogError(ctx, err, "Failed to save slots", slog.String("project_id", project.ProjectID))
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}
	s.LogInfo(ctx, "Slots created", slog.String("project_id", project.ProjectID), slog.Int("count", req.Count))
	return slots, nil
}

func (s *workRecordService) ListOpenSlots(ctx context.Context, actorID string) ([]domain.WorkRecordDetail, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityProject)
	if err != nil {
		return nil, err
	}
	slots, err := s.workRepo.FindOpenSlots(ctx, scope)
	if err != nil {
		s.LogError(ctx, err, "Failed to list open slots")
		return nil, fmt.Errorf("failed to list open slots: %w", err)
	}
	if slots == nil {
		return []domain.WorkRecordDetail{}, nil
	}
	return slots, nil
}

// FillSlots claims open slots of visible projects for the actor. Each claim
// needs a category of the slot's project and a non-negative quantity; slots
// claimed concurrently by someone else are skipped.
func (s *workRecordService) FillSlots(ctx context.Context, actorID string, req dto.FillSlotsRequest) (int, int, error) {
	actor, scope, err := s.actorScope(ctx, actorID, domain.EntityProject)
	if err != nil {
		return 0, 0, err
	}
	open, err := s.workRepo.FindOpenSlots(ctx, scope)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load open slots: %w", err)
	}
	slots := make(map[string]domain.WorkRecordDetail, len(open))
	for _, slot := range open {
		slots[slot.RecordID] = slot
	}

	categoriesByProject := map[string]map[string]struct{}{}
	now := s.now().In(s.location)
	filled, skipped := 0, 0
	for _, input := range req.Slots {
		slot, ok := slots[input.SlotID]
		if !ok || input.Quantity == nil || *input.Quantity < 0 || input.CategoryID == nil {
			skipped++
			continue
		}
		categories, ok := categoriesByProject[slot.ProjectID]
		if !ok {
			if categories, err = s.projectCategories(ctx, actor, slot.ProjectID); err != nil {
				return filled, skipped, err
			}
			categoriesByProject[slot.ProjectID] = categories
		}
		if _, ok := categories[*input.CategoryID]; !ok {
			skipped++
			continue
		}

		err := s.workRepo.ClaimSlot(ctx, slot.RecordID, actor.PrincipalID, *input.CategoryID, *input.Quantity, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				skipped++
				continue
			}
			s.LogError(ctx, err, "Failed to claim slot", slog.String("slot_id", slot.RecordID))
			return filled, skipped, fmt.Errorf("failed to fill slot: %w", err)
		}
		delete(slots, slot.RecordID)
		filled++
	}
	s.LogInfo(ctx, "Slots filled", slog.Int("filled", filled), slog.Int("skipped", skipped))
	return filled, skipped, nil
}

func (s *workRecordService) DeleteWorkRecord(ctx context.Context, actorID, recordID string) error {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityWorkRecord, "delete work records")
	if err != nil {
		return err
	}
	record, err := s.workRepo.FindWorkRecordInScope(ctx, scope, recordID)
	if err != nil {
		return err
	}
	if !canManage(actor, record.ProjectManagedBy) {
		return apperrors.NewForbiddenError("only the managing admin may delete work records")
	}
	if err := s.workRepo.DeleteWorkRecord(ctx, recordID); err != nil {
		s.LogError(ctx, err, "Failed to delete work record", slog.String("record_id", recordID))
		return fmt.Errorf("failed to delete work record: %w", err)
	}
	return nil
}

// projectCategories returns the ids of the categories of projectID visible to actor.
func (s *workRecordService) projectCategories(ctx context.Context, actor *domain.Principal, projectID string) (map[string]struct{}, error) {
	scope, err := s.Scopes.ResolveScope(actor, domain.EntityCategory)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindCategoriesByProject(ctx, scope, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	ids := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		ids[c.CategoryID] = struct{}{}
	}
	return ids, nil
}
