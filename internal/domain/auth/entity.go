package auth

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is the identity the backend returned at login. It is never modified
// for the lifetime of the session.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RegimentalNo string `json:"regimentalNo"`
	Role         Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Home is the landing path for the user's role.
func (u User) Home() string {
	if u.IsAdmin() {
		return "/admin"
	}
	return "/employee"
}

// Session is one signed-in browser. Token is the backend bearer credential
// and never leaves the server.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Token     string    `json:"token"`
	Flash     string    `json:"flash,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionTrackingRequest carries client metadata recorded with the session
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}
