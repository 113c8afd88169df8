package postgres

import (
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
)

func TestProcedureListQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   domain.ProcedureFilter
		contains []string
		excludes []string
		wantArgs int
		noWhere  bool
	}{
		{
			name:    "no filter",
			filter:  domain.ProcedureFilter{},
			noWhere: true,
		},
		{
			name:     "exclude archived",
			filter:   domain.ProcedureFilter{ExcludeArchived: true},
			contains: []string{"p.status <> 'archived'"},
		},
		{
			name:     "published only",
			filter:   domain.ProcedureFilter{Statuses: []domain.ProcedureStatus{domain.ProcedureStatusPublished}},
			contains: []string{"p.status = ANY($1)"},
			excludes: []string{"archived"},
			wantArgs: 1,
		},
		{
			name: "involving person",
			filter: domain.ProcedureFilter{
				ExcludeArchived: true,
				InvolvingPerson: "person-1",
			},
			contains: []string{"p.status <> 'archived' AND (p.created_by = $1 OR EXISTS", "pm.person_id = $1"},
			wantArgs: 1,
		},
		{
			name: "statuses and person number their placeholders",
			filter: domain.ProcedureFilter{
				Statuses:        []domain.ProcedureStatus{domain.ProcedureStatusDraft, domain.ProcedureStatusReview},
				InvolvingPerson: "person-1",
			},
			contains: []string{"p.status = ANY($1)", "p.created_by = $2"},
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := procedureListQuery(tt.filter)

			assert.Contains(t, query, "LEFT JOIN procedure_members")
			assert.Contains(t, query, "GROUP BY p.id")
			// The member aggregate carries its own FILTER (WHERE ...), so look
			// for the clause the builder appends.
			assert.Equal(t, !tt.noWhere, strings.Contains(query, "\nWHERE "))
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, query, s)
			}
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestProcedureListQuery_StatusArgIsArray(t *testing.T) {
	_, args := procedureListQuery(domain.ProcedureFilter{
		Statuses: []domain.ProcedureStatus{domain.ProcedureStatusPublished},
	})
	require.Len(t, args, 1)

	arr, ok := args[0].(*pq.StringArray)
	require.True(t, ok, "expected *pq.StringArray, got %T", args[0])
	assert.Equal(t, pq.StringArray{"published"}, *arr)
}
