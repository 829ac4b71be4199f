// Package memory is an in-process implementation of the repository ports.
// It applies the same scope predicates and cascade rules as the PostgreSQL
// schema and backs STORE_DRIVER=memory and tests.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
)

// Store holds every entity behind one lock.
type Store struct {
	mu          sync.RWMutex
	principals  map[string]domain.Principal
	projects    map[string]domain.Project
	categories  map[string]domain.Category
	workRecords map[string]domain.WorkRecord
	invoices    map[string]domain.InvoiceArtifact
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		principals:  make(map[string]domain.Principal),
		projects:    make(map[string]domain.Project),
		categories:  make(map[string]domain.Category),
		workRecords: make(map[string]domain.WorkRecord),
		invoices:    make(map[string]domain.InvoiceArtifact),
	}
}

// NewRepositoryProvider returns all repositories backed by one fresh store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().Provider()
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PrincipalRepo:  &principalRepository{s},
		ProjectRepo:    &projectRepository{s},
		CategoryRepo:   &categoryRepository{s},
		WorkRecordRepo: &workRecordRepository{s},
		InvoiceRepo:    &invoiceRepository{s},
	}
}

// detail joins a record with its project, category and user. Callers hold the lock.
func (s *Store) detail(r domain.WorkRecord) domain.WorkRecordDetail {
	d := domain.WorkRecordDetail{WorkRecord: r}
	if p, ok := s.projects[r.ProjectID]; ok {
		d.ProjectName = p.Name
		d.ProjectManagedBy = p.ManagedBy
	}
	if r.CategoryID != nil {
		if c, ok := s.categories[*r.CategoryID]; ok {
			name, rate, currency := c.Name, c.Rate, c.Currency
			d.CategoryName = &name
			d.CategoryRate = &rate
			d.CategoryCurrency = &currency
		}
	}
	if r.UserID != nil {
		if u, ok := s.principals[*r.UserID]; ok {
			username := u.Username
			d.Username = &username
		}
	}
	return d
}

func (s *Store) projectManager(projectID *string) *string {
	if projectID == nil {
		return nil
	}
	p, ok := s.projects[*projectID]
	if !ok {
		return nil
	}
	managedBy := p.ManagedBy
	return &managedBy
}

// deleteProjectLocked removes a project with its categories and records.
// Invoices keep their snapshot and lose the link.
func (s *Store) deleteProjectLocked(projectID string) {
	delete(s.projects, projectID)
	for id, c := range s.categories {
		if c.ProjectID == projectID {
			delete(s.categories, id)
		}
	}
	for id, r := range s.workRecords {
		if r.ProjectID == projectID {
			delete(s.workRecords, id)
		}
	}
	for id, inv := range s.invoices {
		if inv.ProjectID != nil && *inv.ProjectID == projectID {
			inv.ProjectID = nil
			s.invoices[id] = inv
		}
	}
}

func sortRecords(records []domain.WorkRecordDetail) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].RecordID < records[j].RecordID
	})
}

func notFound(entity string) error {
	return apperrors.NewNotFoundError(entity)
}

func sameFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
