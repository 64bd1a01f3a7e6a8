package view

import (
	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/analytics"
	"github.com/cmlabs-hris/personnel-web/internal/domain/equipment"
)

type Header struct {
	Label string
	Wide  bool
}

type Cell struct {
	Value string
	Wide  bool
}

type Detail struct {
	Label string
	Value string
}

type Row struct {
	ID         string
	Cells      []Cell
	Expanded   bool
	Details    []Detail
	ToggleURL  string
	EditURL    string
	DeleteURL  string
	ProfileURL string
}

// DialogView is an open create or edit form.
type DialogView struct {
	Title     string
	Mode      crud.Mode
	ID        string
	Fields    []crud.FormField
	Message   string
	Action    string
	CancelURL string
	DeriveURL string
}

func (d *DialogView) HasDerived() bool {
	for _, f := range d.Fields {
		if f.ReadOnly() {
			return true
		}
	}
	return false
}

// ListView is one entity table, either a page of its own or a section of
// the profile.
type ListView struct {
	Name      string
	Title     string
	Singular  string
	Headers   []Header
	Rows      []Row
	LoadError string
	Dialog    *DialogView
	CanCreate bool
	NewURL    string
	ExportURL string
}

type ConfirmView struct {
	Message   string
	Action    string
	CancelURL string
}

type LoginView struct {
	RegimentalNo string
	Error        string
}

// ProfileField is one labelled input of the basic information card.
type ProfileField struct {
	Key      string
	Label    string
	Type     string
	Value    string
	Required bool
	Options  []crud.Option
}

type CourseRow struct {
	NameInput      string
	CompletedInput string
	Name           string
	Completed      bool
	Remove         string
}

type EquipmentRow struct {
	NameInput     string
	AssignedInput string
	Name          string
	AssignedDate  string
	Remove        string
}

type ProfileView struct {
	ID        string
	Name      string
	LoadError string
	Editing   bool
	Error     string
	Fields    []ProfileField
	Courses   []CourseRow
	Equipment []EquipmentRow

	// Form bookkeeping for the edit draft.
	Action         string
	CourseCount    int
	EquipmentCount int
	CourseCountKey string
	EquipCountKey  string
	EditURL        string
	CancelURL      string
	SheetURL       string

	Lists []ListView
}

type DashboardView struct {
	Analytics  analytics.Analytics
	Attendance []analytics.Share
	Leave      []analytics.Share
	Equipment  []analytics.Share
}

type HomeView struct {
	Items     []equipment.Assigned
	LoadError string
}
