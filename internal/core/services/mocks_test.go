package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// --- Mock PrincipalRepository ---
type MockPrincipalRepository struct {
	mock.Mock
}

func (m *MockPrincipalRepository) FindPrincipalByID(ctx context.Context, principalID string) (*domain.Principal, error) {
	args := m.Called(ctx, principalID)
	var p *domain.Principal
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Principal)
	}
	return p, args.Error(1)
}

func (m *MockPrincipalRepository) FindPrincipalByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	args := m.Called(ctx, email)
	var p *domain.Principal
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Principal)
	}
	return p, args.Error(1)
}

func (m *MockPrincipalRepository) FindPrincipalInScope(ctx context.Context, scope domain.Scope, principalID string) (*domain.Principal, error) {
	args := m.Called(ctx, scope, principalID)
	var p *domain.Principal
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Principal)
	}
	return p, args.Error(1)
}

func (m *MockPrincipalRepository) FindPrincipals(ctx context.Context, scope domain.Scope, query domain.PrincipalQuery) ([]domain.Principal, error) {
	args := m.Called(ctx, scope, query)
	var ps []domain.Principal
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Principal)
	}
	return ps, args.Error(1)
}

func (m *MockPrincipalRepository) CountPrincipals(ctx context.Context, scope domain.Scope, role *domain.Role) (int, error) {
	args := m.Called(ctx, scope, role)
	return args.Int(0), args.Error(1)
}

func (m *MockPrincipalRepository) SavePrincipal(ctx context.Context, principal domain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func (m *MockPrincipalRepository) UpdatePrincipalRole(ctx context.Context, principalID string, role domain.Role, createdBy *string) error {
	args := m.Called(ctx, principalID, role, createdBy)
	return args.Error(0)
}

func (m *MockPrincipalRepository) DeletePrincipal(ctx context.Context, principalID string) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindProjectInScope(ctx context.Context, scope domain.Scope, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, scope, projectID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) FindProjects(ctx context.Context, scope domain.Scope) ([]domain.Project, error) {
	args := m.Called(ctx, scope)
	var ps []domain.Project
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Project)
	}
	return ps, args.Error(1)
}

func (m *MockProjectRepository) CountProjects(ctx context.Context, scope domain.Scope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepository) CountProjectsOf(ctx context.Context, principalID string) (int, int, error) {
	args := m.Called(ctx, principalID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProjectRepository) FindProjectsOf(ctx context.Context, principalID string) ([]domain.Project, error) {
	args := m.Called(ctx, principalID)
	var ps []domain.Project
	if args.Get(0) != nil {
		ps = args.Get(0).([]domain.Project)
	}
	return ps, args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryInScope(ctx context.Context, scope domain.Scope, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, scope, categoryID)
	var c *domain.Category
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Category)
	}
	return c, args.Error(1)
}

func (m *MockCategoryRepository) FindCategoriesByProject(ctx context.Context, scope domain.Scope, projectID string) ([]domain.Category, error) {
	args := m.Called(ctx, scope, projectID)
	var cs []domain.Category
	if args.Get(0) != nil {
		cs = args.Get(0).([]domain.Category)
	}
	return cs, args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock WorkRecordRepository ---
type MockWorkRecordRepository struct {
	mock.Mock
}

func (m *MockWorkRecordRepository) FindWorkRecords(ctx context.Context, scope domain.Scope, filter domain.WorkFilter) ([]domain.WorkRecordDetail, error) {
	args := m.Called(ctx, scope, filter)
	var rs []domain.WorkRecordDetail
	if args.Get(0) != nil {
		rs = args.Get(0).([]domain.WorkRecordDetail)
	}
	return rs, args.Error(1)
}

func (m *MockWorkRecordRepository) FindWorkRecordInScope(ctx context.Context, scope domain.Scope, recordID string) (*domain.WorkRecordDetail, error) {
	args := m.Called(ctx, scope, recordID)
	var r *domain.WorkRecordDetail
	if args.Get(0) != nil {
		r = args.Get(0).(*domain.WorkRecordDetail)
	}
	return r, args.Error(1)
}

func (m *MockWorkRecordRepository) FindOpenSlots(ctx context.Context, projectScope domain.Scope) ([]domain.WorkRecordDetail, error) {
	args := m.Called(ctx, projectScope)
	var rs []domain.WorkRecordDetail
	if args.Get(0) != nil {
		rs = args.Get(0).([]domain.WorkRecordDetail)
	}
	return rs, args.Error(1)
}

func (m *MockWorkRecordRepository) SaveWorkRecords(ctx context.Context, records []domain.WorkRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockWorkRecordRepository) ClaimSlot(ctx context.Context, slotID, userID, categoryID string, quantity int, date time.Time) error {
	args := m.Called(ctx, slotID, userID, categoryID, quantity, date)
	return args.Error(0)
}

func (m *MockWorkRecordRepository) DeleteWorkRecord(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindInvoices(ctx context.Context, scope domain.Scope, filter domain.InvoiceFilter) ([]domain.InvoiceArtifact, error) {
	args := m.Called(ctx, scope, filter)
	var is []domain.InvoiceArtifact
	if args.Get(0) != nil {
		is = args.Get(0).([]domain.InvoiceArtifact)
	}
	return is, args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceInScope(ctx context.Context, scope domain.Scope, invoiceID string) (*domain.InvoiceArtifact, error) {
	args := m.Called(ctx, scope, invoiceID)
	var i *domain.InvoiceArtifact
	if args.Get(0) != nil {
		i = args.Get(0).(*domain.InvoiceArtifact)
	}
	return i, args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoicesByIDs(ctx context.Context, scope domain.Scope, invoiceIDs []string) ([]domain.InvoiceArtifact, error) {
	args := m.Called(ctx, scope, invoiceIDs)
	var is []domain.InvoiceArtifact
	if args.Get(0) != nil {
		is = args.Get(0).([]domain.InvoiceArtifact)
	}
	return is, args.Error(1)
}

func (m *MockInvoiceRepository) SumInvoiceTotals(ctx context.Context, scope domain.Scope) (decimal.Decimal, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.InvoiceArtifact) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Mock collaborators ---
type MockTemplateProvider struct {
	mock.Mock
}

func (m *MockTemplateProvider) Template(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(ctx context.Context, template []byte, doc domain.InvoiceDocument) ([]byte, error) {
	args := m.Called(ctx, template, doc)
	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

type MockWordsConverter struct {
	mock.Mock
}

func (m *MockWordsConverter) Words(amount decimal.Decimal, locale string) (string, error) {
	args := m.Called(amount, locale)
	return args.String(0), args.Error(1)
}

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Store(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) Open(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

func (m *MockArtifactStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// --- fixtures ---

func stringPtr(s string) *string { return &s }

func superAdmin(id string) *domain.Principal {
	return &domain.Principal{PrincipalID: id, Username: "root", Role: domain.RoleSuperAdmin}
}

func admin(id string) *domain.Principal {
	return &domain.Principal{PrincipalID: id, Username: "admin-" + id, Role: domain.RoleAdmin}
}

func standardUser(id, creator string) *domain.Principal {
	p := &domain.Principal{PrincipalID: id, Username: "user-" + id, Role: domain.RoleStandardUser}
	if creator != "" {
		p.CreatedBy = stringPtr(creator)
	}
	return p
}

func detail(id, user, project, managedBy, folder string, qty int, date time.Time, category string, rate string) domain.WorkRecordDetail {
	d := domain.WorkRecordDetail{
		WorkRecord: domain.WorkRecord{
			RecordID:   id,
			ProjectID:  project,
			FolderName: folder,
			Quantity:   qty,
			Date:       date,
		},
		ProjectName:      "Project " + project,
		ProjectManagedBy: managedBy,
	}
	if user != "" {
		d.UserID = stringPtr(user)
		d.Username = stringPtr("user-" + user)
	}
	if category != "" {
		r := decimal.RequireFromString(rate)
		usd := domain.CurrencyUSD
		d.CategoryID = stringPtr("cat-" + category)
		d.CategoryName = stringPtr(category)
		d.CategoryRate = &r
		d.CategoryCurrency = &usd
	}
	return d
}
