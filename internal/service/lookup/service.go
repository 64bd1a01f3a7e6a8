// Package lookup serves the async-searchable selects and the cached option
// lists used by the form dialogs.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
)

var ErrUnknownLookup = errors.New("unknown lookup")

// CategoryStore is a shared cache for the equipment category list.
type CategoryStore interface {
	Get(ctx context.Context) ([]equipment.Category, bool, error)
	Set(ctx context.Context, cats []equipment.Category, ttl time.Duration) error
}

type Config struct {
	Debounce    time.Duration
	CategoryTTL time.Duration
	// Store is optional; without it categories are cached in process only.
	Store CategoryStore
}

type Service struct {
	searches *latest.Group
	debounce time.Duration

	flight   singleflight.Group
	store    CategoryStore
	ttl      time.Duration
	mu       sync.RWMutex
	cats     []equipment.Category
	catsTill time.Time
	now      func() time.Time
}

func NewService(cfg Config) *Service {
	return &Service{
		searches: latest.NewGroup(),
		debounce: cfg.Debounce,
		store:    cfg.Store,
		ttl:      cfg.CategoryTTL,
		now:      time.Now,
	}
}

// Search answers /lookup/{name}. key identifies the searching dialog; a newer
// search under the same key supersedes the older one, which then returns
// latest.ErrSuperseded without having reached the backend.
func (s *Service) Search(ctx context.Context, backend crud.Backend, name, key, search string) ([]crud.Option, error) {
	switch name {
	case "employee":
		return s.SearchEmployees(ctx, backend, key, search)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownLookup, name)
	}
}

type employeeHit struct {
	ID           string `json:"_id"`
	AltID        string `json:"id"`
	Name         string `json:"name"`
	RegimentalNo string `json:"regimentalNo"`
}

// SearchEmployees finds employees by name or regimental number. An empty
// search returns no options and makes no backend request.
func (s *Service) SearchEmployees(ctx context.Context, backend crud.Backend, key, search string) ([]crud.Option, error) {
	ctx, ticket := s.searches.Begin(ctx, "employee|"+key)
	defer ticket.Done()

	search = strings.TrimSpace(search)
	if search == "" {
		return []crud.Option{}, nil
	}
	if !latest.Debounce(ctx, ticket, s.debounce) {
		return nil, latest.ErrSuperseded
	}

	var hits []employeeHit
	err := backend.Get(ctx, "/employee/search", url.Values{"search": {search}}, &hits)
	if latest.Superseded(ctx, err) || !ticket.Current() {
		return nil, latest.ErrSuperseded
	}
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	opts := make([]crud.Option, 0, len(hits))
	for _, h := range hits {
		id := h.ID
		if id == "" {
			id = h.AltID
		}
		opts = append(opts, crud.Option{Value: id, Label: employee.Label(h.Name, h.RegimentalNo)})
	}
	return opts, nil
}

// Categories returns the equipment categories, trying the in-process copy,
// then the shared store, then the backend. Concurrent misses share one
// backend request.
func (s *Service) Categories(ctx context.Context, backend crud.Backend) ([]equipment.Category, error) {
	if cats, ok := s.local(); ok {
		return cats, nil
	}

	v, err, _ := s.flight.Do("categories", func() (any, error) {
		if cats, ok := s.local(); ok {
			return cats, nil
		}
		if s.store != nil {
			cats, ok, err := s.store.Get(ctx)
			if err != nil {
				slog.WarnContext(ctx, "category cache unavailable", "error", err)
			} else if ok {
				s.remember(cats)
				return cats, nil
			}
		}

		var cats []equipment.Category
		fetchCtx := context.WithoutCancel(ctx)
		if err := backend.Get(fetchCtx, "/equipment/category", nil, &cats); err != nil {
			return nil, fmt.Errorf("%w: %w", equipment.ErrCategoriesUnavailable, err)
		}
		s.remember(cats)
		if s.store != nil && s.ttl > 0 {
			if err := s.store.Set(fetchCtx, cats, s.ttl); err != nil {
				slog.WarnContext(ctx, "failed to cache categories", "error", err)
			}
		}
		return cats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]equipment.Category), nil
}

// CategoryOptions adapts Categories to a select field's option source.
func (s *Service) CategoryOptions(ctx context.Context, backend crud.Backend) ([]crud.Option, error) {
	cats, err := s.Categories(ctx, backend)
	if err != nil {
		return nil, err
	}
	opts := make([]crud.Option, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, crud.Option{Value: c.Key(), Label: c.Name})
	}
	return opts, nil
}

// InvalidateCategories drops the in-process copy.
func (s *Service) InvalidateCategories() {
	s.mu.Lock()
	s.cats, s.catsTill = nil, time.Time{}
	s.mu.Unlock()
}

func (s *Service) local() ([]equipment.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cats == nil || !s.now().Before(s.catsTill) {
		return nil, false
	}
	return s.cats, true
}

func (s *Service) remember(cats []equipment.Category) {
	if s.ttl <= 0 {
		return
	}
	if cats == nil {
		cats = []equipment.Category{}
	}
	s.mu.Lock()
	s.cats, s.catsTill = cats, s.now().Add(s.ttl)
	s.mu.Unlock()
}
