package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

const sessionKeyPrefix = "personnel:session:"

func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

type sessionRepositoryImpl struct {
	rdb redis.Cmdable
	now func() time.Time
}

// NewSessionRepository stores sessions as JSON values that expire with the
// session.
func NewSessionRepository(rdb redis.Cmdable) auth.SessionRepository {
	return &sessionRepositoryImpl{rdb: rdb, now: time.Now}
}

func (r *sessionRepositoryImpl) Save(ctx context.Context, session *auth.Session) error {
	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return auth.ErrSessionExpired
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, SessionKey(session.ID), string(payload), ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepositoryImpl) Get(ctx context.Context, id string) (*auth.Session, error) {
	raw, err := r.rdb.Get(ctx, SessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, auth.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s auth.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, auth.ErrSessionNotFound
	}
	return &s, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
