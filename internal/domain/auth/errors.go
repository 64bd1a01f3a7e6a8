package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session has expired")
	ErrMissingToken       = errors.New("backend did not return a token")
)

// InvalidCredentialsMessage is the only text shown for any login failure.
const InvalidCredentialsMessage = "Invalid credentials. Please try again."
