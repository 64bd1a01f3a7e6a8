package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
)

type stubBackend struct {
	calls    atomic.Int32
	searches []string
	mu       sync.Mutex
	delay    time.Duration
	reply    any
	err      error
}

func (b *stubBackend) Get(ctx context.Context, path string, query url.Values, out any) error {
	b.calls.Add(1)
	b.mu.Lock()
	b.searches = append(b.searches, query.Get("search"))
	b.mu.Unlock()
	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if b.err != nil {
		return b.err
	}
	raw, _ := json.Marshal(b.reply)
	return json.Unmarshal(raw, out)
}

func (b *stubBackend) Post(context.Context, string, any, any) error { return nil }
func (b *stubBackend) Put(context.Context, string, any, any) error  { return nil }
func (b *stubBackend) Delete(context.Context, string) error         { return nil }

var _ crud.Backend = (*stubBackend)(nil)

func TestSearchEmployees_EmptySearchMakesNoRequest(t *testing.T) {
	backend := &stubBackend{}
	svc := NewService(Config{})

	for _, q := range []string{"", "   "} {
		opts, err := svc.SearchEmployees(context.Background(), backend, "k", q)
		require.NoError(t, err)
		assert.Empty(t, opts)
	}
	assert.Equal(t, int32(0), backend.calls.Load())
}

func TestSearchEmployees_Labels(t *testing.T) {
	backend := &stubBackend{reply: []map[string]any{
		{"_id": "e1", "name": "J. Doe", "regimentalNo": "123"},
		{"id": "e2", "name": "A. Smith"},
	}}
	svc := NewService(Config{})

	opts, err := svc.Search(context.Background(), backend, "employee", "k", "do")
	require.NoError(t, err)
	assert.Equal(t, []crud.Option{
		{Value: "e1", Label: "J. Doe (123)"},
		{Value: "e2", Label: "A. Smith"},
	}, opts)
	assert.Equal(t, []string{"do"}, backend.searches)
}

func TestSearch_UnknownLookup(t *testing.T) {
	svc := NewService(Config{})
	_, err := svc.Search(context.Background(), &stubBackend{}, "payroll", "k", "x")
	assert.ErrorIs(t, err, ErrUnknownLookup)
}

func TestSearchEmployees_NewerSearchWins(t *testing.T) {
	backend := &stubBackend{reply: []map[string]any{{"_id": "e1", "name": "Bob"}}}
	svc := NewService(Config{Debounce: 100 * time.Millisecond})

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.SearchEmployees(context.Background(), backend, "dialog-1", "b")
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return svc.searches.Len() == 1 }, time.Second, time.Millisecond)

	opts, err := svc.SearchEmployees(context.Background(), backend, "dialog-1", "bob")
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	assert.ErrorIs(t, <-firstErr, latest.ErrSuperseded)
	assert.Equal(t, int32(1), backend.calls.Load())
	assert.Equal(t, []string{"bob"}, backend.searches)
}

func TestSearchEmployees_BackendError(t *testing.T) {
	backend := &stubBackend{err: errors.New("down")}
	svc := NewService(Config{})

	_, err := svc.SearchEmployees(context.Background(), backend, "k", "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, latest.ErrSuperseded)
}

type memStore struct {
	mu   sync.Mutex
	cats []equipment.Category
	sets int
}

func (m *memStore) Get(context.Context) ([]equipment.Category, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cats, m.cats != nil, nil
}

func (m *memStore) Set(_ context.Context, cats []equipment.Category, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cats = cats
	m.sets++
	return nil
}

func TestCategories_SingleBackendCallForConcurrentMisses(t *testing.T) {
	backend := &stubBackend{
		delay: 20 * time.Millisecond,
		reply: []map[string]any{{"_id": "c1", "name": "Comms"}, {"_id": "c2", "name": "Arms"}},
	}
	store := &memStore{}
	svc := NewService(Config{CategoryTTL: time.Minute, Store: store})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cats, err := svc.Categories(context.Background(), backend)
			assert.NoError(t, err)
			assert.Len(t, cats, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), backend.calls.Load())
	assert.Equal(t, 1, store.sets)

	opts, err := svc.CategoryOptions(context.Background(), backend)
	require.NoError(t, err)
	assert.Equal(t, crud.Option{Value: "c1", Label: "Comms"}, opts[0])
	assert.Equal(t, int32(1), backend.calls.Load())
}

func TestCategories_SharedStoreHit(t *testing.T) {
	backend := &stubBackend{}
	store := &memStore{cats: []equipment.Category{{ID: "c9", Name: "Stores"}}}
	svc := NewService(Config{CategoryTTL: time.Minute, Store: store})

	cats, err := svc.Categories(context.Background(), backend)
	require.NoError(t, err)
	assert.Equal(t, "c9", cats[0].ID)
	assert.Equal(t, int32(0), backend.calls.Load())
}

func TestCategories_ExpiryAndInvalidate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	backend := &stubBackend{reply: []map[string]any{{"_id": "c1", "name": "Comms"}}}
	svc := NewService(Config{CategoryTTL: time.Minute})
	svc.now = func() time.Time { return now }

	_, err := svc.Categories(context.Background(), backend)
	require.NoError(t, err)
	_, err = svc.Categories(context.Background(), backend)
	require.NoError(t, err)
	assert.Equal(t, int32(1), backend.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = svc.Categories(context.Background(), backend)
	require.NoError(t, err)
	assert.Equal(t, int32(2), backend.calls.Load())

	svc.InvalidateCategories()
	_, err = svc.Categories(context.Background(), backend)
	require.NoError(t, err)
	assert.Equal(t, int32(3), backend.calls.Load())
}

func TestCategories_BackendFailure(t *testing.T) {
	svc := NewService(Config{CategoryTTL: time.Minute})
	_, err := svc.Categories(context.Background(), &stubBackend{err: errors.New("down")})
	assert.ErrorIs(t, err, equipment.ErrCategoriesUnavailable)
}
