package auth

import "context"

type AuthService interface {
	// Login exchanges credentials with the backend and opens a session.
	Login(ctx context.Context, req LoginRequest, tracking SessionTrackingRequest) (*Session, error)
	// Logout drops the session. Unknown ids are not an error.
	Logout(ctx context.Context, sessionID string) error
	// Session loads a live session.
	Session(ctx context.Context, sessionID string) (*Session, error)
	// SetFlash stores a one-shot message shown on the next page.
	SetFlash(ctx context.Context, session *Session, message string) error
	// TakeFlash returns and clears the pending message.
	TakeFlash(ctx context.Context, session *Session) string
}
