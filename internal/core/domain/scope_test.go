package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

func TestScope_MatchProject(t *testing.T) {
	managed := domain.Project{ProjectID: "p1", ManagedBy: "admin-a"}
	other := domain.Project{ProjectID: "p2", ManagedBy: "admin-b"}

	all := domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseAll}
	assert.True(t, all.MatchProject(managed))
	assert.True(t, all.MatchProject(other))

	byManager := domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseManagedBy, Subject: "admin-a"}
	assert.True(t, byManager.MatchProject(managed))
	assert.False(t, byManager.MatchProject(other))

	none := domain.Scope{Kind: domain.EntityProject}
	assert.True(t, none.IsNone())
	assert.False(t, none.MatchProject(managed))

	wrongKind := domain.Scope{Kind: domain.EntityCategory, Clause: domain.ClauseAll}
	assert.False(t, wrongKind.MatchProject(managed))
}

func TestScope_MatchWorkRecord(t *testing.T) {
	mine := domain.WorkRecordDetail{WorkRecord: domain.WorkRecord{RecordID: "r1", UserID: stringPtr("u1")}, ProjectManagedBy: "admin-a"}
	theirs := domain.WorkRecordDetail{WorkRecord: domain.WorkRecord{RecordID: "r2", UserID: stringPtr("u2")}, ProjectManagedBy: "admin-a"}
	slot := domain.WorkRecordDetail{WorkRecord: domain.WorkRecord{RecordID: "r3", IsSlot: true}, ProjectManagedBy: "admin-a"}

	owned := domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseOwnedBy, Subject: "u1"}
	assert.True(t, owned.MatchWorkRecord(mine))
	assert.False(t, owned.MatchWorkRecord(theirs), "records of other users in the same project stay hidden")
	assert.False(t, owned.MatchWorkRecord(slot))

	managedBy := domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseProjectManagedBy, Subject: "admin-a"}
	assert.True(t, managedBy.MatchWorkRecord(mine))
	assert.True(t, managedBy.MatchWorkRecord(theirs))
	assert.True(t, managedBy.MatchWorkRecord(slot))
}

func TestScope_MatchPrincipalAndInvoice(t *testing.T) {
	admin := domain.Principal{PrincipalID: "admin-a", Role: domain.RoleAdmin}
	user := domain.Principal{PrincipalID: "u1", Role: domain.RoleStandardUser, CreatedBy: stringPtr("admin-a")}

	createdBy := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseCreatedBy, Subject: "admin-a"}
	assert.True(t, createdBy.MatchPrincipal(user))
	assert.False(t, createdBy.MatchPrincipal(admin))

	self := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseSelf, Subject: "u1"}
	assert.True(t, self.MatchPrincipal(user))
	assert.False(t, self.MatchPrincipal(admin))

	inv := domain.InvoiceArtifact{InvoiceID: "i1"}
	invScope := domain.Scope{Kind: domain.EntityInvoice, Clause: domain.ClauseProjectManagedBy, Subject: "admin-a"}
	assert.True(t, invScope.MatchInvoice(inv, stringPtr("admin-a")))
	assert.False(t, invScope.MatchInvoice(inv, nil), "orphaned invoices are only visible to super admins")
}
