package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
)

var _ driven.SessionStore = (*SessionStore)(nil)

// Key layout:
//
//	wardhub:session:<id>               JSON session, TTL = ExpiresAt
//	wardhub:session:refresh:<token>    session id, same TTL
//	wardhub:session:user:<user id>     set of session ids
const (
	sessionPrefix        = "wardhub:session:"
	sessionRefreshPrefix = "wardhub:session:refresh:"
	sessionUserPrefix    = "wardhub:session:user:"

	// userSetTTL bounds how long an idle user's session set survives
	userSetTTL = 30 * 24 * time.Hour
)

// SessionStore keeps sessions in Redis and lets key TTLs do the expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes the session and its indexes in one transaction. A session
// that has already expired is not stored.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	userKey := sessionUserPrefix + session.UserID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionPrefix+session.ID, data, ttl)
		if session.RefreshToken != "" {
			pipe.Set(ctx, sessionRefreshPrefix+session.RefreshToken, session.ID, ttl)
		}
		pipe.SAdd(ctx, userKey, session.ID)
		pipe.Expire(ctx, userKey, userSetTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return decodeSession(data)
}

// GetByRefreshToken follows the refresh index. An index entry whose
// session key is gone reads as not found.
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrSessionNotFound
	}
	id, err := s.client.Get(ctx, sessionRefreshPrefix+refreshToken).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve refresh token: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete is a no-op for unknown or expired sessions.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.purge(ctx, session.UserID, []*domain.Session{session})
}

// DeleteByUser drops every live session of the user and the user's set.
// Ids whose session key already expired are only removed from the set.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	userKey := sessionUserPrefix + userID
	ids, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("list sessions of %s: %w", userID, err)
	}

	var live []*domain.Session
	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = sessionPrefix + id
		}
		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("load sessions of %s: %w", userID, err)
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			if session, err := decodeSession([]byte(raw)); err == nil {
				live = append(live, session)
			}
		}
	}

	if err := s.purge(ctx, userID, live); err != nil {
		return err
	}
	if err := s.client.Del(ctx, userKey).Err(); err != nil {
		return fmt.Errorf("drop session set of %s: %w", userID, err)
	}
	return nil
}

// purge removes the sessions and their indexes in one transaction.
func (s *SessionStore) purge(ctx context.Context, userID string, sessions []*domain.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, session := range sessions {
			pipe.Del(ctx, sessionPrefix+session.ID)
			if session.RefreshToken != "" {
				pipe.Del(ctx, sessionRefreshPrefix+session.RefreshToken)
			}
			pipe.SRem(ctx, sessionUserPrefix+userID, session.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete sessions of %s: %w", userID, err)
	}
	return nil
}

// Ping lets the readiness handler check Redis.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeSession(data []byte) (*domain.Session, error) {
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
