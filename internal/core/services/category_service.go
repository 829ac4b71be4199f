package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	projectRepo  portsrepo.ProjectReader
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade, projectRepo portsrepo.ProjectReader, scopes portssvc.ScopeResolverSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{Scopes: scopes},
		categoryRepo: categoryRepo,
		projectRepo:  projectRepo,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory adds a rate to a project. The category is managed by the project's manager.
func (s *categoryService) CreateCategory(ctx context.Context, actorID, projectID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityProject, "create categories")
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectInScope(ctx, scope, projectID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, project.ManagedBy) {
		return nil, apperrors.NewForbiddenError("only the managing admin may create categories")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("category name is required")
	}
	rate, err := parseRate(req.Rate)
	if err != nil {
		return nil, err
	}
	currency, err := parseCategoryCurrency(req.Currency)
	if err != nil {
		return nil, err
	}

	category := domain.Category{
		CategoryID: uuid.NewString(),
		ProjectID:  project.ProjectID,
		Name:       name,
		Rate:       rate,
		Currency:   currency,
		ManagedBy:  project.ManagedBy,
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save category", slog.String("project_id", projectID))
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("project_id", projectID))
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, actorID, projectID string) ([]domain.Category, error) {
	_, scope, err := s.actorScope(ctx, actorID, domain.EntityCategory)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindCategoriesByProject(ctx, scope, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, actorID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.manageableCategory(ctx, actorID, categoryID, "update categories")
	if err != nil {
		return nil, err
	}

	updated := *category
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("category name must not be empty")
		}
		updated.Name = name
	}
	if req.Rate != nil {
		if updated.Rate, err = parseRate(*req.Rate); err != nil {
			return nil, err
		}
	}
	if req.Currency != nil {
		if updated.Currency, err = parseCategoryCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.UpdateCategory(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &updated, nil
}

// DeleteCategory removes a category; work records referencing it become uncategorized.
func (s *categoryService) DeleteCategory(ctx context.Context, actorID, categoryID string) error {
	if _, err := s.manageableCategory(ctx, actorID, categoryID, "delete categories"); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

// manageableCategory loads a visible category that actorID may mutate:
// super admins always, admins when they manage the category.
func (s *categoryService) manageableCategory(ctx context.Context, actorID, categoryID, action string) (*domain.Category, error) {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityCategory, action)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryInScope(ctx, scope, categoryID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, category.ManagedBy) {
		return nil, apperrors.NewForbiddenError("only the managing admin may " + action)
	}
	return category, nil
}

func parseRate(value string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationFailedError(fmt.Sprintf("invalid rate %q", value))
	}
	if rate.IsNegative() || !rate.Equal(rate.Round(2)) {
		return decimal.Zero, apperrors.NewValidationFailedError("rate must be non-negative with at most two decimals")
	}
	return rate, nil
}

func parseCategoryCurrency(value string) (domain.CurrencyCode, error) {
	if strings.TrimSpace(value) == "" {
		return domain.DefaultCurrency, nil
	}
	code := domain.CurrencyCode(value).Normalize()
	if !code.IsCategoryCurrency() {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("unsupported category currency %q", value))
	}
	return code, nil
}
