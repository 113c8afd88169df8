package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps login sessions in the sessions table. main uses it
// when no Redis URL is configured.
type SessionStore struct {
	db *DB
}

func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

const sessionColumns = `id, user_id, token, refresh_token, expires_at, created_at, user_agent, ip_address`

// Save upserts by id; user_id and created_at never change after insert.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			user_agent = EXCLUDED.user_agent,
			ip_address = EXCLUDED.ip_address`,
		session.ID, session.UserID, session.Token, session.RefreshToken,
		session.ExpiresAt, session.CreatedAt, session.UserAgent, session.IPAddress,
	)
	return err
}

// Get hides expired rows so they behave like deleted ones.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.queryOne(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1 AND expires_at > NOW()`, id)
}

// GetByRefreshToken returns expired sessions too; the auth service turns
// those into ErrTokenExpired.
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return s.queryOne(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE refresh_token = $1 AND refresh_token <> ''`, refreshToken)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (s *SessionStore) queryOne(ctx context.Context, query string, arg any) (*domain.Session, error) {
	var sess domain.Session
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&sess.ID, &sess.UserID, &sess.Token, &sess.RefreshToken,
		&sess.ExpiresAt, &sess.CreatedAt, &sess.UserAgent, &sess.IPAddress,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrSessionNotFound
	case err != nil:
		return nil, err
	}
	return &sess, nil
}
