// Package resource declares the entity lists of the console on top of the
// generic crud engine.
package resource

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/password"
)

// Deps are the collaborators the declarations close over.
type Deps struct {
	// Passwords generates initial employee passwords. Nil disables generation
	// and the create dialog asks for a password instead.
	Passwords *password.Generator
	// Categories loads equipment categories for the select field.
	Categories            crud.OptionsFunc
	EnforceLeaveDateOrder bool
	Logger                *slog.Logger
}

type Registry struct {
	byName map[string]*crud.Resource
	order  []*crud.Resource
	// selfLeave is the employee self-service leave list.
	selfLeave *crud.Resource
}

func NewRegistry(deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Categories == nil {
		deps.Categories = func(context.Context, crud.Backend) ([]crud.Option, error) { return nil, nil }
	}

	all := []*crud.Resource{
		Employee(deps),
		Leave(deps),
		Course(),
		BMI(),
		Medical(),
		Equipment(deps),
	}
	r := &Registry{
		byName:    make(map[string]*crud.Resource, len(all)),
		order:     all,
		selfLeave: SelfLeave(deps),
	}
	for _, res := range all {
		r.byName[res.Name] = res
	}
	return r
}

func (r *Registry) Get(name string) (*crud.Resource, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// All returns the admin lists in menu order.
func (r *Registry) All() []*crud.Resource {
	return r.order
}

func (r *Registry) SelfLeave() *crud.Resource {
	return r.selfLeave
}

// ProfileLists are the lists shown scoped on an employee profile.
var ProfileLists = []string{"leave", "bmi", "medical"}
