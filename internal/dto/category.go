package dto

import (
	"github.com/shopspring/decimal"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a billing category.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Rate     string `json:"rate" binding:"required,rate"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Rate     *string `json:"rate" binding:"omitempty,rate"`
	Currency *string `json:"currency" binding:"omitempty,currency"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string          `json:"categoryID"`
	ProjectID  string          `json:"projectID"`
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"`
	Currency   string          `json:"currency"`
	ManagedBy  string          `json:"managedBy"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		ProjectID:  c.ProjectID,
		Name:       c.Name,
		Rate:       c.Rate,
		Currency:   string(c.Currency),
		ManagedBy:  c.ManagedBy,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
