package pgsql

import (
	"fmt"
	"strings"

	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
)

// Table aliases shared by every query so a scope clause always names the same column.
const (
	aliasPrincipal = "pr"
	aliasProject   = "pj"
	aliasWorkRec   = "w"
)

var scopeColumns = map[domain.ScopeClause]string{
	domain.ClauseSelf:             aliasPrincipal + ".principal_id",
	domain.ClauseCreatedBy:        aliasPrincipal + ".created_by",
	domain.ClauseManagedBy:        aliasProject + ".managed_by",
	domain.ClauseProjectManagedBy: aliasProject + ".managed_by",
	domain.ClauseOwnedBy:          aliasWorkRec + ".user_id",
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// arg appends a value and returns its placeholder.
func (b *whereBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

// scope renders the visibility predicate for an entity kind. A scope for another
// kind or an unknown clause matches nothing.
func (b *whereBuilder) scope(s domain.Scope, kind domain.EntityKind) {
	if s.Kind != kind {
		b.add("FALSE")
		return
	}
	if s.Clause == domain.ClauseAll {
		return
	}
	col, ok := scopeColumns[s.Clause]
	if !ok {
		b.add("FALSE")
		return
	}
	b.add(col + " = " + b.arg(s.Subject))
}

func (b *whereBuilder) String() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
