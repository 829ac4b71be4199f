package domain

import "fmt"

// EntityKind enumerates the entity types visibility is resolved for.
type EntityKind uint8

const (
	entityUnknown EntityKind = iota
	EntityPrincipal
	EntityProject
	EntityCategory
	EntityWorkRecord
	EntityInvoice
)

func (k EntityKind) String() string {
	switch k {
	case EntityPrincipal:
		return "principal"
	case EntityProject:
		return "project"
	case EntityCategory:
		return "category"
	case EntityWorkRecord:
		return "work_record"
	case EntityInvoice:
		return "invoice"
	default:
		return "unknown"
	}
}

// ScopeClause is the shape of a visibility predicate. The zero value denies everything.
type ScopeClause uint8

const (
	ClauseNone             ScopeClause = iota
	ClauseAll                          // unconditional
	ClauseSelf                         // principal.id == Subject
	ClauseCreatedBy                    // principal.createdBy == Subject
	ClauseManagedBy                    // project.managedBy == Subject
	ClauseProjectManagedBy             // owning project's managedBy == Subject
	ClauseOwnedBy                      // workRecord.user == Subject
)

// Scope is a visibility predicate for one entity kind.
type Scope struct {
	Kind    EntityKind
	Clause  ScopeClause
	Subject string
}

func (s Scope) String() string {
	return fmt.Sprintf("%s:%d:%s", s.Kind, s.Clause, s.Subject)
}

// IsNone reports whether the scope can never match.
func (s Scope) IsNone() bool {
	return s.Clause == ClauseNone
}

// MatchPrincipal evaluates the scope against a principal.
func (s Scope) MatchPrincipal(p Principal) bool {
	if s.Kind != EntityPrincipal {
		return false
	}
	switch s.Clause {
	case ClauseAll:
		return true
	case ClauseSelf:
		return p.PrincipalID == s.Subject
	case ClauseCreatedBy:
		return p.IsCreatedBy(s.Subject)
	default:
		return false
	}
}

// MatchProject evaluates the scope against a project.
func (s Scope) MatchProject(p Project) bool {
	if s.Kind != EntityProject {
		return false
	}
	switch s.Clause {
	case ClauseAll:
		return true
	case ClauseManagedBy:
		return p.ManagedBy == s.Subject
	default:
		return false
	}
}

// MatchCategory evaluates the scope against a category of a project managed by projectManagedBy.
func (s Scope) MatchCategory(c Category, projectManagedBy string) bool {
	if s.Kind != EntityCategory {
		return false
	}
	switch s.Clause {
	case ClauseAll:
		return true
	case ClauseProjectManagedBy:
		return projectManagedBy == s.Subject
	default:
		return false
	}
}

// MatchWorkRecord evaluates the scope against a joined work record.
func (s Scope) MatchWorkRecord(d WorkRecordDetail) bool {
	if s.Kind != EntityWorkRecord {
		return false
	}
	switch s.Clause {
	case ClauseAll:
		return true
	case ClauseProjectManagedBy:
		return d.ProjectManagedBy == s.Subject
	case ClauseOwnedBy:
		return d.UserID != nil && *d.UserID == s.Subject
	default:
		return false
	}
}

// MatchInvoice evaluates the scope against an invoice whose project (if any) is
// managed by projectManagedBy.
func (s Scope) MatchInvoice(inv InvoiceArtifact, projectManagedBy *string) bool {
	if s.Kind != EntityInvoice {
		return false
	}
	switch s.Clause {
	case ClauseAll:
		return true
	case ClauseProjectManagedBy:
		return projectManagedBy != nil && *projectManagedBy == s.Subject
	default:
		return false
	}
}
