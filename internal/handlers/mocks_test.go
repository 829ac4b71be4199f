package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

// --- Mock PrincipalService ---
type MockPrincipalService struct {
	mock.Mock
}

func (m *MockPrincipalService) GetPrincipal(ctx context.Context, actorID, principalID string) (*domain.Principal, error) {
	args := m.Called(ctx, actorID, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
func (m *MockPrincipalService) ListPrincipals(ctx context.Context, actorID string, params dto.ListPrincipalsParams) ([]domain.Principal, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}
func (m *MockPrincipalService) CreatePrincipal(ctx context.Context, actorID string, req dto.CreatePrincipalRequest) (*domain.Principal, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
func (m *MockPrincipalService) UpdatePrincipalRole(ctx context.Context, actorID, principalID string, req dto.UpdatePrincipalRoleRequest) (*domain.Principal, error) {
	args := m.Called(ctx, actorID, principalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
func (m *MockPrincipalService) DeletePrincipal(ctx context.Context, actorID, principalID string) error {
	args := m.Called(ctx, actorID, principalID)
	return args.Error(0)
}
func (m *MockPrincipalService) EnsureSuperAdmin(ctx context.Context, username, email, password string) (*domain.Principal, bool, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Principal), args.Bool(1), args.Error(2)
}

var _ portssvc.PrincipalSvcFacade = (*MockPrincipalService)(nil)

// --- Mock ProjectService ---
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProject(ctx context.Context, actorID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, actorID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) ListProjects(ctx context.Context, actorID string) ([]domain.Project, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectService) CreateProject(ctx context.Context, actorID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) UpdateProject(ctx context.Context, actorID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, actorID, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	args := m.Called(ctx, actorID, projectID)
	return args.Error(0)
}
func (m *MockProjectService) UploadAttachment(ctx context.Context, actorID, projectID, fileName string, content []byte, contentType string) (*domain.Project, error) {
	args := m.Called(ctx, actorID, projectID, fileName, content, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, actorID, projectID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, actorID, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context, actorID, projectID string) ([]domain.Category, error) {
	args := m.Called(ctx, actorID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, actorID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, actorID, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) DeleteCategory(ctx context.Context, actorID, categoryID string) error {
	args := m.Called(ctx, actorID, categoryID)
	return args.Error(0)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock WorkRecordService ---
type MockWorkRecordService struct {
	mock.Mock
}

func (m *MockWorkRecordService) SubmitWork(ctx context.Context, actorID string, req dto.SubmitWorkRequest) ([]domain.WorkRecord, int, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.WorkRecord), args.Int(1), args.Error(2)
}
func (m *MockWorkRecordService) ListOpenSlots(ctx context.Context, actorID string) ([]domain.WorkRecordDetail, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkRecordDetail), args.Error(1)
}
func (m *MockWorkRecordService) FillSlots(ctx context.Context, actorID string, req dto.FillSlotsRequest) (int, int, error) {
	args := m.Called(ctx, actorID, req)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockWorkRecordService) CreateSlots(ctx context.Context, actorID string, req dto.CreateSlotsRequest) ([]domain.WorkRecord, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkRecord), args.Error(1)
}
func (m *MockWorkRecordService) DeleteWorkRecord(ctx context.Context, actorID, recordID string) error {
	args := m.Called(ctx, actorID, recordID)
	return args.Error(0)
}

var _ portssvc.WorkRecordSvcFacade = (*MockWorkRecordService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Aggregate(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.WorkAggregate, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkAggregate), args.Error(1)
}
func (m *MockReportingService) Dashboard(ctx context.Context, actorID string, params dto.WorkRecordFilterParams) (*domain.Dashboard, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
func (m *MockReportingService) PrincipalReport(ctx context.Context, actorID, principalID string) (*domain.PrincipalReport, error) {
	args := m.Called(ctx, actorID, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrincipalReport), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GenerateInvoice(ctx context.Context, actorID string, req dto.GenerateInvoiceRequest) (*domain.GeneratedInvoice, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedInvoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, actorID string, params dto.ListInvoicesParams) ([]domain.InvoiceArtifact, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceArtifact), args.Error(1)
}
func (m *MockInvoiceService) DownloadInvoice(ctx context.Context, actorID, invoiceID string) (*domain.InvoiceArtifact, []byte, error) {
	args := m.Called(ctx, actorID, invoiceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.InvoiceArtifact), args.Get(1).([]byte), args.Error(2)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, actorID, invoiceID string) error {
	args := m.Called(ctx, actorID, invoiceID)
	return args.Error(0)
}
func (m *MockInvoiceService) BulkDeleteInvoices(ctx context.Context, actorID string, invoiceIDs []string) (int, int, error) {
	args := m.Called(ctx, actorID, invoiceIDs)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *MockInvoiceService) BulkDownloadInvoices(ctx context.Context, actorID string, invoiceIDs []string) ([]byte, error) {
	args := m.Called(ctx, actorID, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)
