package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := newSessionRepository(func() time.Time { return now })
	ctx := context.Background()

	s := &auth.Session{
		ID:        "s1",
		User:      auth.User{ID: "u1", Name: "Admin", Role: auth.RoleAdmin},
		Token:     "tok",
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.True(t, got.User.IsAdmin())

	got.Token = "changed"
	again, _ := repo.Get(ctx, "s1")
	assert.Equal(t, "tok", again.Token)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	assert.NoError(t, repo.Delete(ctx, "missing"))
}

func TestSessionRepository_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := newSessionRepository(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &auth.Session{ID: "s1", ExpiresAt: now.Add(time.Minute)}))

	now = now.Add(2 * time.Minute)
	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	require.NoError(t, repo.Save(ctx, &auth.Session{ID: "s2", ExpiresAt: now.Add(time.Minute)}))
	assert.Len(t, repo.sessions, 1)
}

func TestSessionRepository_PruneExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	repo := newSessionRepository(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &auth.Session{ID: "short", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Save(ctx, &auth.Session{ID: "long", ExpiresAt: now.Add(time.Hour)}))

	now = now.Add(10 * time.Minute)
	n, err := repo.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, repo.sessions, 1)

	n, err = repo.PruneExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessionRepository_Concurrent(t *testing.T) {
	repo := newSessionRepository(time.Now)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%10)
			_ = repo.Save(ctx, &auth.Session{ID: id, ExpiresAt: time.Now().Add(time.Hour)})
			_, _ = repo.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	assert.Len(t, repo.sessions, 10)
}
