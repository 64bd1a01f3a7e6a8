package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/repository/postgresql"
)

func setupSessionRepo(t *testing.T) (postgresql.SessionRepository, *TestDatabaseSetup) {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)

	repo := postgresql.NewSessionRepository(setup.DB)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, setup.TruncateSessions(ctx))
	return repo, setup
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	id := uuid.NewString()
	s := &auth.Session{
		ID:        id,
		User:      auth.User{ID: "u1", Name: "Admin", RegimentalNo: "A1", Role: auth.RoleAdmin},
		Token:     "tok",
		IPAddress: "127.0.0.1",
		UserAgent: "go-test",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, auth.RoleAdmin, got.User.Role)

	s.Flash = "saved"
	require.NoError(t, repo.Save(ctx, s))
	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "saved", got.Flash)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSessionRepository_ExpiredIsNotFound(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	id := uuid.NewString()
	require.NoError(t, repo.Save(ctx, &auth.Session{
		ID:        id,
		User:      auth.User{ID: "u1", Role: auth.RoleEmployee},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := repo.Get(ctx, id)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestSessionRepository_PruneExpired(t *testing.T) {
	repo, _ := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &auth.Session{
		ID:        uuid.NewString(),
		User:      auth.User{ID: "u1", Role: auth.RoleEmployee},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	live := uuid.NewString()
	require.NoError(t, repo.Save(ctx, &auth.Session{
		ID:        live,
		User:      auth.User{ID: "u2", Role: auth.RoleEmployee},
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	n, err := repo.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "the second save already swept the expired row")

	_, err = repo.Get(ctx, live)
	assert.NoError(t, err)
}
