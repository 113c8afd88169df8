package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PersonStore = (*PersonStore)(nil)

const personColumns = `id, first_name, last_name, title, role_group, position, department,
	work_phone, work_email, private_phone, private_email, show_private_contact, active`

// PersonStore implements driven.PersonStore using PostgreSQL
type PersonStore struct {
	db *DB
}

// NewPersonStore creates a new PersonStore
func NewPersonStore(db *DB) *PersonStore {
	return &PersonStore{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*domain.Person, error) {
	var p domain.Person
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Title,
		&p.RoleGroup,
		&p.Position,
		&p.Department,
		&p.WorkPhone,
		&p.WorkEmail,
		&p.PrivatePhone,
		&p.PrivateEmail,
		&p.ShowPrivateContact,
		&p.Active,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActive returns all active personnel ordered by name
func (s *PersonStore) ListActive(ctx context.Context) ([]*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE active ORDER BY last_name, first_name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

// Get retrieves a person by ID
func (s *PersonStore) Get(ctx context.Context, id string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1`

	p, err := scanPerson(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
