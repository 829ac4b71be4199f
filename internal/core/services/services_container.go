package services

import (
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab InvoiceCollaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Every service authorizes through the scope resolver
	container.Scope = NewScopeResolver(repos.PrincipalRepo)

	container.Principal = NewPrincipalService(repos.PrincipalRepo, repos.ProjectRepo, container.Scope,
		WithPrincipalAttachmentStore(collab.Artifacts),
	)
	container.Auth = NewAuthService(cfg, repos.PrincipalRepo)
	container.Project = NewProjectService(repos.ProjectRepo, container.Scope,
		WithAttachmentStore(collab.Artifacts),
	)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.ProjectRepo, container.Scope)
	container.WorkRecord = NewWorkRecordService(repos.WorkRecordRepo, repos.ProjectRepo, repos.CategoryRepo, container.Scope,
		WithWorkRecordLocation(cfg.Invoice.Location),
	)
	container.Reporting = NewReportingService(repos, container.Scope,
		WithReportingLocation(cfg.Invoice.Location),
	)
	container.Invoice = NewInvoiceService(repos.WorkRecordRepo, repos.InvoiceRepo, collab, container.Scope,
		WithInvoiceTemplate(cfg.Invoice.TemplateName),
		WithWordsLocale(cfg.Invoice.WordsLocale),
		WithInvoiceLocation(cfg.Invoice.Location),
		WithBankDetails(cfg.Invoice.BankDetails),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ScopeResolverSvc    = (*scopeResolver)(nil)
	_ portssvc.PrincipalSvcFacade  = (*principalService)(nil)
	_ portssvc.AuthSvc             = (*authService)(nil)
	_ portssvc.ProjectSvcFacade    = (*projectService)(nil)
	_ portssvc.CategorySvcFacade   = (*categoryService)(nil)
	_ portssvc.WorkRecordSvcFacade = (*workRecordService)(nil)
	_ portssvc.ReportingSvc        = (*reportingService)(nil)
	_ portssvc.InvoiceSvcFacade    = (*invoiceService)(nil)
)
