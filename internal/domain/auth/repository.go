package auth

import "context"

// SessionRepository persists sessions. Get returns ErrSessionNotFound for
// unknown or expired ids.
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionPruner is implemented by stores that keep expired rows until
// they are swept.
type SessionPruner interface {
	PruneExpired(ctx context.Context) (int, error)
}
