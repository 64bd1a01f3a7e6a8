package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/apiclient"
	"github.com/cmlabs-hris/personnel-web/internal/repository/memory"
)

type posterFunc func(ctx context.Context, path string, body, out any) error

func (f posterFunc) Post(ctx context.Context, path string, body, out any) error {
	return f(ctx, path, body, out)
}

func loginReply(resp auth.LoginResponse) posterFunc {
	return func(_ context.Context, path string, _, out any) error {
		*(out.(*auth.LoginResponse)) = resp
		return nil
	}
}

func decodeInto(t *testing.T, raw string) auth.LoginResponse {
	t.Helper()
	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return resp
}

func TestLogin_Success(t *testing.T) {
	sessions := memory.NewSessionRepository()
	resp := decodeInto(t, `{"token":"tok","user":{"_id":"u1","name":"Admin","regimentalNo":"A1","role":"admin"}}`)
	svc := NewAuthService(loginReply(resp), sessions, time.Hour)

	s, err := svc.Login(context.Background(), auth.LoginRequest{RegimentalNo: "A1", Password: "secret"}, auth.SessionTrackingRequest{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "u1", s.User.ID)
	assert.True(t, s.User.IsAdmin())
	assert.Equal(t, "/admin", s.User.Home())

	stored, err := sessions.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", stored.IPAddress)
}

func TestLogin_FlatResponse(t *testing.T) {
	resp := decodeInto(t, `{"token":"tok","id":"u2","name":"J. Doe","regimentalNo":"123","role":"employee"}`)
	svc := NewAuthService(loginReply(resp), memory.NewSessionRepository(), time.Hour)

	s, err := svc.Login(context.Background(), auth.LoginRequest{RegimentalNo: "123", Password: "x"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "u2", s.User.ID)
	assert.False(t, s.User.IsAdmin())
	assert.Equal(t, "/employee", s.User.Home())
}

func TestLogin_Failures(t *testing.T) {
	backendErr := posterFunc(func(context.Context, string, any, any) error {
		return &apiclient.APIError{Method: "POST", Path: "/login", StatusCode: 401, Message: "bad password"}
	})
	noToken := loginReply(auth.LoginResponse{})
	called := false
	neverCalled := posterFunc(func(context.Context, string, any, any) error {
		called = true
		return nil
	})

	tests := []struct {
		name    string
		backend Poster
		req     auth.LoginRequest
	}{
		{"backend rejects", backendErr, auth.LoginRequest{RegimentalNo: "1", Password: "x"}},
		{"no token", noToken, auth.LoginRequest{RegimentalNo: "1", Password: "x"}},
		{"empty fields", neverCalled, auth.LoginRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := memory.NewSessionRepository()
			svc := NewAuthService(tt.backend, sessions, time.Hour)

			s, err := svc.Login(context.Background(), tt.req, auth.SessionTrackingRequest{})
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, auth.ErrInvalidCredentials))
		})
	}
	assert.False(t, called)
}

func TestLogoutAndFlash(t *testing.T) {
	sessions := memory.NewSessionRepository()
	resp := decodeInto(t, `{"token":"tok","user":{"_id":"u1","role":"admin"}}`)
	svc := NewAuthService(loginReply(resp), sessions, time.Hour)
	ctx := context.Background()

	s, err := svc.Login(ctx, auth.LoginRequest{RegimentalNo: "A1", Password: "x"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.SetFlash(ctx, s, "Initial password for J. Doe: 123456"))
	loaded, err := svc.Session(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initial password for J. Doe: 123456", svc.TakeFlash(ctx, loaded))

	loaded, err = svc.Session(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, svc.TakeFlash(ctx, loaded))

	require.NoError(t, svc.Logout(ctx, s.ID))
	_, err = svc.Session(ctx, s.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	assert.NoError(t, svc.Logout(ctx, ""))
}
