package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

func TestWhereBuilder_Scope(t *testing.T) {
	tests := []struct {
		name     string
		scope    domain.Scope
		kind     domain.EntityKind
		wantSQL  string
		wantArgs []any
	}{
		{"all", domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseAll}, domain.EntityProject, "", nil},
		{"none", domain.Scope{Kind: domain.EntityInvoice, Clause: domain.ClauseNone}, domain.EntityInvoice, " WHERE FALSE", nil},
		{"kind mismatch", domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseAll}, domain.EntityInvoice, " WHERE FALSE", nil},
		{"self", domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseSelf, Subject: "u1"}, domain.EntityPrincipal, " WHERE pr.principal_id = $1", []any{"u1"}},
		{"created by", domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseCreatedBy, Subject: "a1"}, domain.EntityPrincipal, " WHERE pr.created_by = $1", []any{"a1"}},
		{"managed by", domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseManagedBy, Subject: "a1"}, domain.EntityProject, " WHERE pj.managed_by = $1", []any{"a1"}},
		{"project managed by", domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseProjectManagedBy, Subject: "a1"}, domain.EntityWorkRecord, " WHERE pj.managed_by = $1", []any{"a1"}},
		{"owned by", domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseOwnedBy, Subject: "u1"}, domain.EntityWorkRecord, " WHERE w.user_id = $1", []any{"u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b whereBuilder
			b.scope(tt.scope, tt.kind)
			assert.Equal(t, tt.wantSQL, b.String())
			assert.Equal(t, tt.wantArgs, b.args)
		})
	}
}

func TestWhereBuilder_Placeholders(t *testing.T) {
	var b whereBuilder
	b.add("w.record_id = " + b.arg("r1"))
	b.scope(domain.Scope{Kind: domain.EntityWorkRecord, Clause: domain.ClauseOwnedBy, Subject: "u1"}, domain.EntityWorkRecord)
	b.add("w.folder_name ILIKE " + b.arg(containsPattern("50%_off")))

	assert.Equal(t, " WHERE w.record_id = $1 AND w.user_id = $2 AND w.folder_name ILIKE $3", b.String())
	assert.Equal(t, []any{"r1", "u1", `%50\%\_off%`}, b.args)
}
