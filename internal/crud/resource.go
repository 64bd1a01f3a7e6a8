// Package crud is the generic list and form engine shared by every entity
// screen. A Resource declares what a list shows and edits; an Engine runs the
// fetch, submit and delete cycle for it against the backend.
package crud

import (
	"context"
	"net/url"
)

// Backend is the subset of the API client the engine needs.
type Backend interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

type Kind int

const (
	KindText Kind = iota
	KindTextarea
	KindDate
	KindNumber
	KindSelect
	KindCheckbox
	KindReference
)

var kindNames = [...]string{"text", "textarea", "date", "number", "select", "checkbox", "reference"}

// String is the kind's form control name. It doubles as the HTML input type
// for text, date and number fields.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "text"
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsFunc loads select options at render time.
type OptionsFunc func(ctx context.Context, backend Backend) ([]Option, error)

// DeriveFunc computes a read-only value from the other submitted values.
// ok=false leaves the field blank.
type DeriveFunc func(values Values) (value string, ok bool)

// Reference marks a field as an async-searchable pick of another record.
type Reference struct {
	// Lookup is the name served at /lookup/{name}.
	Lookup      string
	Placeholder string
}

type Field struct {
	Key         string
	Label       string
	Kind        Kind
	Required    bool
	Default     string
	Placeholder string
	Options     []Option
	OptionsFrom OptionsFunc
	Reference   *Reference
	Derive      DeriveFunc
	// CreateOnly fields are shown in the create dialog only.
	CreateOnly bool
}

// ReadOnly reports whether the field is computed rather than entered.
func (f Field) ReadOnly() bool {
	return f.Derive != nil
}

// Column is one table cell, or one row of the expanded detail view.
type Column struct {
	Key   string
	Label string
	// Wide columns are hidden below the large breakpoint.
	Wide   bool
	Format func(Record) string
}

// Value renders the column for r.
func (c Column) Value(r Record) string {
	if c.Format != nil {
		return c.Format(r)
	}
	return r.Display(c.Key)
}

type Actions struct {
	Create bool
	Update bool
	Delete bool
}

// CreateHook runs before the create request and may add to the payload. The
// returned notice is shown once after the redirect.
type CreateHook func(ctx context.Context, payload map[string]any) (notice string, err error)

// Check is a cross-field rule. Returning validator.ValidationErrors blocks the
// submit; returning nil lets it through.
type Check func(ctx context.Context, values Values) error

type Resource struct {
	Name     string
	Title    string
	Singular string
	Path     string
	// ScopeParam is the backend query param that narrows the list, and
	// ScopeField the payload field set to the same value on create.
	ScopeParam string
	ScopeField string

	Columns []Column
	Details []Column
	Fields  []Field
	Actions Actions

	ConfirmDelete string
	// Fixed values are written into every create payload.
	Fixed    map[string]any
	OnCreate CreateHook
	Checks   []Check

	// ShowLoadError renders an inline message when the list cannot load.
	ShowLoadError bool
}

// FormFields returns the fields shown in a dialog. In a scoped list the scope
// field is implied and therefore omitted.
func (r *Resource) FormFields(scoped, create bool) []Field {
	out := make([]Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		if scoped && f.Key == r.ScopeField {
			continue
		}
		if f.CreateOnly && !create {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (r *Resource) Field(key string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Table flattens records into the column headers and cell values used by the
// list and by exports.
func (r *Resource) Table(records []Record, withDetails bool) ([]string, [][]string) {
	cols := append([]Column{}, r.Columns...)
	if withDetails {
		seen := make(map[string]bool, len(cols))
		for _, c := range cols {
			seen[c.Key] = true
		}
		for _, d := range r.Details {
			if !seen[d.Key] {
				cols = append(cols, d)
			}
		}
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Label
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.Value(rec)
		}
		rows[i] = row
	}
	return headers, rows
}
