package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// CategorySvcFacade manages the billing categories of projects.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, actorID, projectID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context, actorID, projectID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, actorID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actorID, categoryID string) error
}
