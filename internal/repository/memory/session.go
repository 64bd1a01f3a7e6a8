package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

type SessionRepository interface {
	auth.SessionRepository
	auth.SessionPruner
}

type sessionRepositoryImpl struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
	now      func() time.Time
}

// NewSessionRepository keeps sessions in process memory. They are lost on
// restart, which signs every user out.
func NewSessionRepository() SessionRepository {
	return newSessionRepository(time.Now)
}

func newSessionRepository(now func() time.Time) *sessionRepositoryImpl {
	return &sessionRepositoryImpl{sessions: make(map[string]auth.Session), now: now}
}

func (r *sessionRepositoryImpl) Save(ctx context.Context, session *auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = *session
	r.pruneLocked()
	return nil
}

func (r *sessionRepositoryImpl) Get(ctx context.Context, id string) (*auth.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok || s.Expired(r.now()) {
		return nil, auth.ErrSessionNotFound
	}
	return &s, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *sessionRepositoryImpl) PruneExpired(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pruneLocked(), nil
}

func (r *sessionRepositoryImpl) pruneLocked() int {
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
