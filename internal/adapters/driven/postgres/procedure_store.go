package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProcedureStore = (*ProcedureStore)(nil)

// ProcedureStore implements driven.ProcedureStore using PostgreSQL
type ProcedureStore struct {
	db *DB
}

// NewProcedureStore creates a new ProcedureStore
func NewProcedureStore(db *DB) *ProcedureStore {
	return &ProcedureStore{db: db}
}

// List returns the procedures matching filter with their members
func (s *ProcedureStore) List(ctx context.Context, filter domain.ProcedureFilter) ([]*domain.Procedure, error) {
	query, args := procedureListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var procedures []*domain.Procedure
	for rows.Next() {
		var p domain.Procedure
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Category,
			&p.Version,
			&p.Status,
			pq.Array(&p.Keywords),
			&p.Body,
			&p.CreatedBy,
			&p.CreatedAt,
			&p.UpdatedAt,
			pq.Array(&p.Members),
		)
		if err != nil {
			return nil, err
		}
		procedures = append(procedures, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return procedures, nil
}

// procedureListQuery builds the member-aggregating select for filter
func procedureListQuery(filter domain.ProcedureFilter) (string, []any) {
	var where []string
	var args []any

	if filter.ExcludeArchived {
		where = append(where, fmt.Sprintf("p.status <> '%s'", domain.ProcedureStatusArchived))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			statuses = append(statuses, string(st))
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("p.status = ANY($%d)", len(args)))
	}
	if filter.InvolvingPerson != "" {
		args = append(args, filter.InvolvingPerson)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(p.created_by = $%d OR EXISTS (SELECT 1 FROM procedure_members pm WHERE pm.procedure_id = p.id AND pm.person_id = $%d))",
			n, n))
	}

	var b strings.Builder
	b.WriteString(`SELECT p.id, p.title, p.category, p.version, p.status, p.keywords, p.body, p.created_by,
	p.created_at, p.updated_at,
	COALESCE(array_agg(m.person_id ORDER BY m.person_id) FILTER (WHERE m.person_id IS NOT NULL), '{}') AS members
FROM procedures p
LEFT JOIN procedure_members m ON m.procedure_id = p.id`)
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString("\nGROUP BY p.id\nORDER BY p.title, p.id")
	return b.String(), args
}
