package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetAttachesBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]map[string]any{{"_id": "1", "name": "EL"}})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", time.Second).WithToken("tok-123")

	var out []map[string]any
	err := c.Get(context.Background(), "/leave", url.Values{"employee_id": {"e1"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "employee_id=e1", gotQuery)
	assert.Equal(t, "/api/leave", gotPath)
	require.Len(t, out, 1)
	assert.Equal(t, "EL", out[0]["name"])
}

func TestClient_PostSendsJSON(t *testing.T) {
	var body map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	err := c.Post(context.Background(), "course", map[string]any{"name": "Rope rescue"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Rope rescue", body["name"])
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusUnauthorized, `{"message":"jwt expired"}`, ErrUnauthorized, "jwt expired"},
		{http.StatusForbidden, `{"error":"admins only"}`, ErrForbidden, "admins only"},
		{http.StatusNotFound, `not here`, ErrNotFound, "not here"},
		{http.StatusUnprocessableEntity, `{"error":{"message":"bad date"}}`, ErrBadRequest, "bad date"},
	}
	for _, c := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(c.status)
			_, _ = w.Write([]byte(c.body))
		}))

		err := New(srv.URL, time.Second).Delete(context.Background(), "/bmi/1")
		srv.Close()

		require.Error(t, err)
		assert.True(t, errors.Is(err, c.want), "status %d", c.status)
		assert.Equal(t, c.status, StatusCode(err))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, c.msg, apiErr.Message)
		assert.Equal(t, http.MethodDelete, apiErr.Method)
	}
}

func TestClient_ServerErrorIsNotASentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Get(context.Background(), "/employee", nil, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := New(srv.URL, time.Second).Get(context.Background(), "/employee", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := New(srv.URL, 50*time.Millisecond).Get(context.Background(), "/employee", nil, nil)
	assert.Error(t, err)
}
