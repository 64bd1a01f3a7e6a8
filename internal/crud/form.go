package crud

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

// Values are the submitted form values keyed by field.
type Values map[string]string

// Get returns the trimmed value for key.
func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// LabelSuffix names the hidden input that carries a reference's label so a
// re-rendered dialog can show the picked record without another lookup.
const LabelSuffix = "__label"

// Bind reads the resource's fields out of a posted form. An absent checkbox
// binds as "false". Derived fields are recomputed and the posted value is
// ignored.
func Bind(res *Resource, form url.Values) (Values, map[string]string) {
	values := make(Values, len(res.Fields))
	labels := make(map[string]string)
	for _, f := range res.Fields {
		switch f.Kind {
		case KindCheckbox:
			values[f.Key] = strconv.FormatBool(checked(form.Get(f.Key)))
		default:
			if _, ok := form[f.Key]; ok {
				values[f.Key] = form.Get(f.Key)
			}
		}
		if f.Kind == KindReference {
			if l := form.Get(f.Key + LabelSuffix); l != "" {
				labels[f.Key] = l
			}
		}
	}
	Derive(res, values)
	return values, labels
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Derive fills every derived field from its siblings.
func Derive(res *Resource, values Values) {
	for _, f := range res.Fields {
		if f.Derive == nil {
			continue
		}
		if v, ok := f.Derive(values); ok {
			values[f.Key] = v
		} else {
			values[f.Key] = ""
		}
	}
}

// Validate applies presence checks to fields. It returns nil or
// validator.ValidationErrors naming each empty required field.
func Validate(fields []Field, values Values) error {
	var errs validator.ValidationErrors
	for _, f := range fields {
		if !f.Required || f.ReadOnly() || f.Kind == KindCheckbox {
			continue
		}
		if validator.IsEmpty(values[f.Key]) {
			errs = append(errs, validator.ValidationError{
				Field:   f.Key,
				Message: f.Label + " is required",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Payload converts values into the backend JSON body. With complete unset
// empty optional values are left out. With complete set every field is
// sent so an update can clear it: empty text as "", empty dates, numbers,
// references and derived values as null.
func Payload(fields []Field, values Values, complete bool) (map[string]any, error) {
	body := make(map[string]any, len(fields))
	for _, f := range fields {
		raw := values.Get(f.Key)
		if raw == "" && f.Kind != KindCheckbox {
			if complete {
				body[f.Key] = emptyValue(f)
			}
			continue
		}
		switch f.Kind {
		case KindCheckbox:
			body[f.Key] = checked(raw)
		case KindNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, validator.ValidationErrors{{
					Field:   f.Key,
					Message: fmt.Sprintf("%s must be a number", f.Label),
				}}
			}
			body[f.Key] = n
		default:
			if f.ReadOnly() {
				if n, err := strconv.ParseFloat(raw, 64); err == nil {
					body[f.Key] = n
					continue
				}
			}
			body[f.Key] = raw
		}
	}
	return body, nil
}

// emptyValue is what a cleared field is sent as.
func emptyValue(f Field) any {
	if f.ReadOnly() {
		return nil
	}
	switch f.Kind {
	case KindDate, KindNumber, KindReference:
		return nil
	}
	return ""
}

// FormField is a field ready for rendering.
type FormField struct {
	Field
	Value   string
	Label   string
	Options []Option
	Error   string
}

// FormFields resolves dynamic options and pairs each field with its current
// value. An options source that fails yields an empty option list.
func (e *Engine) FormFields(ctx context.Context, d *Dialog, scoped bool) ([]FormField, error) {
	fields := e.res.FormFields(scoped, d.Mode == ModeCreate)
	errs := d.fieldErrors()

	var firstErr error
	out := make([]FormField, 0, len(fields))
	for _, f := range fields {
		ff := FormField{
			Field:   f,
			Value:   d.Values[f.Key],
			Label:   d.Labels[f.Key],
			Options: f.Options,
			Error:   errs[f.Key],
		}
		if f.OptionsFrom != nil {
			opts, err := f.OptionsFrom(ctx, e.backend)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("options for %s: %w", f.Key, err)
			}
			ff.Options = opts
		}
		out = append(out, ff)
	}
	return out, firstErr
}
