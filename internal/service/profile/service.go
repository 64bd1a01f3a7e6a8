// Package profile assembles the employee profile screen: the employee record
// with its leave, BMI and medical lists, and the draft used while editing.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/resource"
)

type Profile struct {
	Employee crud.Record
	// Lists holds the scoped sub-lists keyed by resource name.
	Lists map[string][]crud.Record
}

func (p *Profile) List(name string) []crud.Record {
	return p.Lists[name]
}

type Service struct {
	registry *resource.Registry
}

func NewService(registry *resource.Registry) *Service {
	return &Service{registry: registry}
}

func employeePath(id string) string {
	return "/employee/" + url.PathEscape(id)
}

// Load fetches the employee and, concurrently, the requested sub-lists
// scoped to it. Only the employee fetch can fail the load; a failing
// sub-list is logged and left empty.
func (s *Service) Load(ctx context.Context, backend crud.Backend, id string, lists ...string) (*Profile, error) {
	p := &Profile{Lists: make(map[string][]crud.Record, len(lists))}
	results := make([][]crud.Record, len(lists))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var rec crud.Record
		if err := backend.Get(gctx, employeePath(id), nil, &rec); err != nil {
			return fmt.Errorf("load employee %s: %w", id, err)
		}
		p.Employee = rec
		return nil
	})

	for i, name := range lists {
		res, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		g.Go(func() error {
			records, err := crud.NewEngine(res, backend).List(gctx, id)
			if err != nil {
				slog.ErrorContext(ctx, "failed to load profile list",
					"employee_id", id,
					"list", name,
					"error", err,
				)
				return nil
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, name := range lists {
		p.Lists[name] = results[i]
	}
	return p, nil
}

// Update validates the draft, fetches the current document and saves the
// draft over it. A draft that fails validation issues no request.
func (s *Service) Update(ctx context.Context, backend crud.Backend, id string, draft *employee.UpdateProfileRequest) (crud.Record, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var current crud.Record
	if err := backend.Get(ctx, employeePath(id), nil, &current); err != nil {
		return nil, fmt.Errorf("load employee %s: %w", id, err)
	}
	return s.Save(ctx, backend, id, current, draft)
}

// Save validates the draft and writes the whole employee document back in a
// single PUT. Fields the profile does not edit are carried over from the
// current document; the nested course and equipment arrays are replaced.
func (s *Service) Save(ctx context.Context, backend crud.Backend, id string, current crud.Record, draft *employee.UpdateProfileRequest) (crud.Record, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	doc := current.Clone()
	delete(doc, "password")
	doc["name"] = draft.Name
	doc["phone"] = draft.Phone
	doc["regimentalNo"] = draft.RegimentalNo
	doc["role"] = draft.Role
	doc["rank"] = draft.Rank
	doc["dob"] = draft.DOB
	doc["doj"] = draft.DOJ
	doc["courses"] = nonNil(draft.Courses)
	doc["equipment"] = nonNil(draft.Equipment)

	var saved crud.Record
	if err := backend.Put(ctx, employeePath(id), doc, &saved); err != nil {
		return nil, fmt.Errorf("save employee %s: %w", id, err)
	}
	return saved, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
