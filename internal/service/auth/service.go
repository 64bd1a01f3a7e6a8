package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

// Poster is the anonymous backend call used for /login.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

type AuthServiceImpl struct {
	backend  Poster
	sessions auth.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(backend Poster, sessions auth.SessionRepository, ttl time.Duration) auth.AuthService {
	return &AuthServiceImpl{
		backend:  backend,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login implements auth.AuthService. Every failure the user can cause is
// reported as auth.ErrInvalidCredentials; the backend's detail is only logged.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, tracking auth.SessionTrackingRequest) (*auth.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	var resp auth.LoginResponse
	if err := a.backend.Post(ctx, "/login", req, &resp); err != nil {
		slog.WarnContext(ctx, "login rejected by backend",
			"regimental_no", req.RegimentalNo,
			"error", err,
		)
		return nil, auth.ErrInvalidCredentials
	}
	if resp.Token == "" {
		slog.WarnContext(ctx, "login response unusable",
			"regimental_no", req.RegimentalNo,
			"error", auth.ErrMissingToken,
		)
		return nil, auth.ErrInvalidCredentials
	}

	now := a.now()
	session := &auth.Session{
		ID:        uuid.NewString(),
		User:      resp.Identity(),
		Token:     resp.Token,
		IPAddress: tracking.IPAddress,
		UserAgent: tracking.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.InfoContext(ctx, "user signed in",
		"user_id", session.User.ID,
		"role", session.User.Role,
	)
	return session, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := a.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Session implements auth.AuthService.
func (a *AuthServiceImpl) Session(ctx context.Context, sessionID string) (*auth.Session, error) {
	s, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Expired(a.now()) {
		return nil, auth.ErrSessionExpired
	}
	return s, nil
}

// SetFlash implements auth.AuthService.
func (a *AuthServiceImpl) SetFlash(ctx context.Context, session *auth.Session, message string) error {
	session.Flash = message
	if err := a.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}
	return nil
}

// TakeFlash implements auth.AuthService.
func (a *AuthServiceImpl) TakeFlash(ctx context.Context, session *auth.Session) string {
	msg := session.Flash
	if msg == "" {
		return ""
	}
	session.Flash = ""
	if err := a.sessions.Save(ctx, session); err != nil && !errors.Is(err, auth.ErrSessionExpired) {
		slog.ErrorContext(ctx, "failed to clear flash", "error", err)
	}
	return msg
}
