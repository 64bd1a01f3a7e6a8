package crud

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

type Engine struct {
	res     *Resource
	backend Backend
}

func NewEngine(res *Resource, backend Backend) *Engine {
	return &Engine{res: res, backend: backend}
}

func (e *Engine) Resource() *Resource {
	return e.res
}

// Submission is one posted dialog.
type Submission struct {
	EditMode bool
	// Selected is the id of the record being edited.
	Selected string
	Values   Values
	// Scope is the owning record id for scoped lists.
	Scope string
}

type Outcome struct {
	// Notice is shown once after the redirect, e.g. a generated password.
	Notice string
	Record Record
}

// List fetches the records for the list, narrowed to scope when the resource
// is scoped and scope is set.
func (e *Engine) List(ctx context.Context, scope string) ([]Record, error) {
	var query url.Values
	if e.res.ScopeParam != "" && scope != "" {
		query = url.Values{e.res.ScopeParam: {scope}}
	}

	var records []Record
	if err := e.backend.Get(ctx, e.res.Path, query, &records); err != nil {
		return nil, fmt.Errorf("list %s: %w", e.res.Name, err)
	}
	return records, nil
}

// Submit validates the dialog and, if it passes, creates or updates the
// record. Validation failures return validator.ValidationErrors and never
// reach the backend.
func (e *Engine) Submit(ctx context.Context, s Submission) (Outcome, error) {
	if s.EditMode {
		if !e.res.Actions.Update {
			return Outcome{}, ErrNotPermitted
		}
		if strings.TrimSpace(s.Selected) == "" {
			return Outcome{}, ErrNoSelection
		}
	} else if !e.res.Actions.Create {
		return Outcome{}, ErrNotPermitted
	}

	if s.Values == nil {
		s.Values = Values{}
	}
	Derive(e.res, s.Values)

	scoped := s.Scope != "" && e.res.ScopeField != ""
	fields := e.res.FormFields(scoped, !s.EditMode)
	if err := Validate(fields, s.Values); err != nil {
		return Outcome{}, err
	}
	for _, check := range e.res.Checks {
		if err := check(ctx, s.Values); err != nil {
			return Outcome{}, err
		}
	}

	payload, err := Payload(fields, s.Values, s.EditMode)
	if err != nil {
		return Outcome{}, err
	}
	if scoped {
		payload[e.res.ScopeField] = s.Scope
	}

	var out Outcome
	if s.EditMode {
		var saved Record
		if err := e.backend.Put(ctx, e.recordPath(s.Selected), payload, &saved); err != nil {
			return Outcome{}, fmt.Errorf("update %s %s: %w", e.res.Name, s.Selected, err)
		}
		out.Record = saved
		return out, nil
	}

	for k, v := range e.res.Fixed {
		payload[k] = v
	}
	if e.res.OnCreate != nil {
		notice, err := e.res.OnCreate(ctx, payload)
		if err != nil {
			return Outcome{}, fmt.Errorf("prepare %s: %w", e.res.Name, err)
		}
		out.Notice = notice
	}

	var saved Record
	if err := e.backend.Post(ctx, e.res.Path, payload, &saved); err != nil {
		return Outcome{}, fmt.Errorf("create %s: %w", e.res.Name, err)
	}
	out.Record = saved
	return out, nil
}

// Delete removes the record only when the user confirmed. An unconfirmed
// call returns ErrNotConfirmed without contacting the backend.
func (e *Engine) Delete(ctx context.Context, id string, confirmed bool) error {
	if !e.res.Actions.Delete {
		return ErrNotPermitted
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	if err := e.backend.Delete(ctx, e.recordPath(id)); err != nil {
		return fmt.Errorf("delete %s %s: %w", e.res.Name, id, err)
	}
	return nil
}

func (e *Engine) recordPath(id string) string {
	return e.res.Path + "/" + url.PathEscape(id)
}

// Find returns the record with id from records.
func Find(records []Record, id string) (Record, bool) {
	if id == "" {
		return nil, false
	}
	for _, r := range records {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// ToggleExpanded returns the row to expand after clicking id while current is
// expanded. At most one row is expanded and clicking it again collapses it.
func ToggleExpanded(current, id string) string {
	if current == id {
		return ""
	}
	return id
}
