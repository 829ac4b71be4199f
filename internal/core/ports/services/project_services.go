package services

import (
	"context"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	GetProject(ctx context.Context, actorID, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, actorID string) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, actorID string, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, actorID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID string) error
	UploadAttachment(ctx context.Context, actorID, projectID, fileName string, content []byte, contentType string) (*domain.Project, error)
}

// ProjectSvcFacade combines all project service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
