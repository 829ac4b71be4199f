//go:build integration

package pgsql_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/repositories/database/pgsql"
	"github.com/subhoajk39-commits/invvvoice/pkg/database"
)

func stringPtr(s string) *string { return &s }

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

type PgsqlIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	dsn       string
	repos     portsrepo.RepositoryProvider
	day       time.Time
	closePool func()
}

func TestPgsqlIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PgsqlIntegrationSuite))
}

func (s *PgsqlIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("invoicer_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	s.dsn, err = container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := database.NewPgxPool(s.ctx, s.dsn, true)
	s.Require().NoError(err)
	s.closePool = pool.Close
	s.repos = pgsql.NewRepositoryProvider(pool)
	s.day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (s *PgsqlIntegrationSuite) TearDownSuite() {
	if s.closePool != nil {
		s.closePool()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// SetupTest rebuilds the schema from the migrations and seeds two admins with one project each.
func (s *PgsqlIntegrationSuite) SetupTest() {
	db, err := sql.Open("pgx", s.dsn)
	s.Require().NoError(err)
	defer db.Close()
	driver, err := mpg.WithInstance(db, &mpg.Config{})
	s.Require().NoError(err)
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath(), "postgres", driver)
	s.Require().NoError(err)
	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		s.Require().NoError(err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		s.Require().NoError(err)
	}

	for _, p := range []domain.Principal{
		{PrincipalID: "root", Username: "root", Email: "root@example.com", PasswordHash: "x", Role: domain.RoleSuperAdmin, DateJoined: s.day},
		{PrincipalID: "adm", Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleAdmin, CreatedBy: stringPtr("root"), DateJoined: s.day},
		{PrincipalID: "adm2", Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: domain.RoleAdmin, CreatedBy: stringPtr("root"), DateJoined: s.day},
		{PrincipalID: "u1", Username: "carol", Email: "carol@example.com", PasswordHash: "x", Role: domain.RoleStandardUser, CreatedBy: stringPtr("adm"), DateJoined: s.day},
	} {
		s.Require().NoError(s.repos.PrincipalRepo.SavePrincipal(s.ctx, p))
	}
	s.Require().NoError(s.repos.ProjectRepo.SaveProject(s.ctx, domain.Project{ProjectID: "p1", Name: "Atlas", StartDate: s.day, CreatedBy: "adm", ManagedBy: "adm", CreatedAt: s.day}))
	s.Require().NoError(s.repos.ProjectRepo.SaveProject(s.ctx, domain.Project{ProjectID: "p2", Name: "Borealis", StartDate: s.day.AddDate(0, 1, 0), CreatedBy: "root", ManagedBy: "adm2", CreatedAt: s.day}))
	s.Require().NoError(s.repos.CategoryRepo.SaveCategory(s.ctx, domain.Category{CategoryID: "c1", ProjectID: "p1", Name: "Editing", Rate: decimal.RequireFromString("2.50"), Currency: domain.CurrencyUSD, ManagedBy: "adm"}))
	s.Require().NoError(s.repos.WorkRecordRepo.SaveWorkRecords(s.ctx, []domain.WorkRecord{
		{RecordID: "r1", UserID: stringPtr("u1"), ProjectID: "p1", FolderName: "F1", CategoryID: stringPtr("c1"), Quantity: 4, Date: s.day},
		{RecordID: "r2", ProjectID: "p1", FolderName: domain.SlotFolderName, Date: s.day, IsSlot: true},
	}))
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, domain.InvoiceArtifact{
		InvoiceID:   "i1", ProjectID: stringPtr("p1"), ProjectNameSnapshot: "Atlas", Month: 3, Year: 2025,
		TotalAmount: decimal.NewFromInt(10), FileReference: "invoices/i1/a.xlsx", FileName: "a.xlsx", GeneratedAt: s.day, GeneratedBy: stringPtr("adm"),
	}))
}

func adminScope(kind domain.EntityKind, clause domain.ScopeClause) domain.Scope {
	return domain.Scope{Kind: kind, Clause: clause, Subject: "adm"}
}

func (s *PgsqlIntegrationSuite) TestScopedReads() {
	projects, err := s.repos.ProjectRepo.FindProjects(s.ctx, adminScope(domain.EntityProject, domain.ClauseManagedBy))
	s.Require().NoError(err)
	s.Require().Len(projects, 1)
	s.Equal("p1", projects[0].ProjectID)

	records, err := s.repos.WorkRecordRepo.FindWorkRecords(s.ctx, adminScope(domain.EntityWorkRecord, domain.ClauseProjectManagedBy), domain.WorkFilter{ExcludeOpenSlots: true})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("carol", *records[0].Username)
	s.True(records[0].Amount().Equal(decimal.NewFromInt(10)))

	records, err = s.repos.WorkRecordRepo.FindWorkRecords(s.ctx, domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseAll}, domain.WorkFilter{ExcludeOpenSlots: true, ProjectName: stringPtr("TLA")})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("r1", records[0].RecordID)

	principals, err := s.repos.PrincipalRepo.FindPrincipals(s.ctx, adminScope(domain.EntityPrincipal, domain.ClauseCreatedBy), domain.PrincipalQuery{})
	s.Require().NoError(err)
	s.Require().Len(principals, 1)
	s.Equal(domain.RoleStandardUser, principals[0].Role)

	_, err = s.repos.InvoiceRepo.FindInvoiceInScope(s.ctx, domain.Scope{Kind: domain.EntityInvoice, Clause: domain.ClauseProjectManagedBy, Subject: "adm2"}, "i1")
	s.ErrorIs(err, apperrors.ErrNotFound)

	total, err := s.repos.InvoiceRepo.SumInvoiceTotals(s.ctx, adminScope(domain.EntityInvoice, domain.ClauseProjectManagedBy))
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(10)))
}

func (s *PgsqlIntegrationSuite) TestConstraintMapping() {
	err := s.repos.PrincipalRepo.SavePrincipal(s.ctx, domain.Principal{PrincipalID: "dup", Username: "dup", Email: "ALICE@example.com", PasswordHash: "x", Role: domain.RoleStandardUser, DateJoined: s.day})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.repos.CategoryRepo.SaveCategory(s.ctx, domain.Category{CategoryID: "c9", ProjectID: "p1", Name: "editing", Currency: domain.CurrencyUSD, ManagedBy: "adm"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.repos.ProjectRepo.SaveProject(s.ctx, domain.Project{ProjectID: "p9", Name: "Ghost", StartDate: s.day, CreatedBy: "nobody", ManagedBy: "nobody", CreatedAt: s.day})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.ErrorIs(s.repos.PrincipalRepo.UpdatePrincipalRole(s.ctx, "nobody", domain.RoleAdmin, nil), apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationSuite) TestClaimSlotOnce() {
	s.Require().NoError(s.repos.WorkRecordRepo.ClaimSlot(s.ctx, "r2", "u1", "c1", 3, s.day))
	s.ErrorIs(s.repos.WorkRecordRepo.ClaimSlot(s.ctx, "r2", "u1", "c1", 3, s.day), apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationSuite) TestSaveWorkRecordsRollsBack() {
	err := s.repos.WorkRecordRepo.SaveWorkRecords(s.ctx, []domain.WorkRecord{
		{RecordID: "r3", ProjectID: "p1", FolderName: "ok", Quantity: 1, Date: s.day},
		{RecordID: "r4", ProjectID: "missing", FolderName: "bad", Quantity: 1, Date: s.day},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.repos.WorkRecordRepo.FindWorkRecordInScope(s.ctx, domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseAll}, "r3")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationSuite) TestDeleteCascades() {
	s.Require().NoError(s.repos.CategoryRepo.DeleteCategory(s.ctx, "c1"))
	rec, err := s.repos.WorkRecordRepo.FindWorkRecordInScope(s.ctx, domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseAll}, "r1")
	s.Require().NoError(err)
	s.Nil(rec.CategoryID)

	s.Require().NoError(s.repos.PrincipalRepo.DeletePrincipal(s.ctx, "adm"))

	u1, err := s.repos.PrincipalRepo.FindPrincipalByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Nil(u1.CreatedBy)

	inv, err := s.repos.InvoiceRepo.FindInvoiceInScope(s.ctx, domain.Scope{Kind: domain.EntityInvoice, Clause: domain.ClauseAll}, "i1")
	s.Require().NoError(err)
	s.Nil(inv.ProjectID)
	s.Nil(inv.GeneratedBy)
	s.Equal("Atlas", inv.ProjectNameSnapshot)

	records, err := s.repos.WorkRecordRepo.FindWorkRecords(s.ctx, domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseAll}, domain.WorkFilter{})
	s.Require().NoError(err)
	s.Empty(records)
}
