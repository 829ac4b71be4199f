package dto

import (
	"time"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a project.
// Dates use the YYYY-MM-DD layout.
type CreateProjectRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	StartDate string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   *string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProjectRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	StartDate    *string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	ClearEndDate bool    `json:"clearEndDate"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID     string     `json:"projectID"`
	Name          string     `json:"name"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	HasAttachment bool       `json:"hasAttachment"`
	CreatedBy     string     `json:"createdBy"`
	ManagedBy     string     `json:"managedBy"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		HasAttachment: p.AttachmentRef != nil,
		CreatedBy:     p.CreatedBy,
		ManagedBy:     p.ManagedBy,
		CreatedAt:     p.CreatedAt,
	}
}

// ToListProjectResponse converts a slice of domain.Project to a slice of ProjectResponse DTOs
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}
