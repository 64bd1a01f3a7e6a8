package crud

import (
	"errors"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

type Mode string

const (
	ModeCreate Mode = "new"
	ModeEdit   Mode = "edit"
)

// Dialog is the state of an open form dialog.
type Dialog struct {
	Mode   Mode
	ID     string
	Values Values
	Labels map[string]string
	Errors validator.ValidationErrors
	// Message is a non-field error such as a failed save.
	Message string
}

// NewDialog opens a dialog. A nil selected record opens it in create mode
// with field defaults; otherwise the values are pre-filled from the record.
func NewDialog(res *Resource, selected Record) *Dialog {
	d := &Dialog{
		Mode:   ModeCreate,
		Values: make(Values, len(res.Fields)),
		Labels: make(map[string]string),
	}
	if selected == nil {
		for _, f := range res.Fields {
			d.Values[f.Key] = f.Default
		}
		Derive(res, d.Values)
		return d
	}

	d.Mode = ModeEdit
	d.ID = selected.ID()
	for _, f := range res.Fields {
		switch f.Kind {
		case KindReference:
			id, label := selected.Ref(f.Key)
			d.Values[f.Key] = id
			d.Labels[f.Key] = label
		case KindDate:
			d.Values[f.Key] = validator.DateOnly(selected.String(f.Key))
		case KindCheckbox:
			d.Values[f.Key] = boolString(selected.Bool(f.Key))
		case KindSelect:
			if id, _ := selected.Ref(f.Key); id != "" {
				d.Values[f.Key] = id
			} else {
				d.Values[f.Key] = selected.String(f.Key)
			}
		default:
			d.Values[f.Key] = selected.String(f.Key)
		}
	}
	Derive(res, d.Values)
	return d
}

// ReopenDialog rebuilds a dialog from a failed submission.
func ReopenDialog(s Submission, labels map[string]string, err error) *Dialog {
	d := &Dialog{Mode: ModeCreate, Values: s.Values, Labels: labels}
	if s.EditMode {
		d.Mode = ModeEdit
		d.ID = s.Selected
	}
	if d.Labels == nil {
		d.Labels = map[string]string{}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		d.Errors = verrs
		return d
	}
	if err != nil {
		d.Message = SaveFailedMessage
	}
	return d
}

func (d *Dialog) fieldErrors() map[string]string {
	if len(d.Errors) == 0 {
		return nil
	}
	return d.Errors.ToMap()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
