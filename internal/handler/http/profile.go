package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/export"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
	"github.com/cmlabs-hris/personnel-web/internal/resource"
	"github.com/cmlabs-hris/personnel-web/internal/service/profile"
)

type ProfileHandler interface {
	View(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Sheet(w http.ResponseWriter, r *http.Request)
	Self(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	*Console
	registry *resource.Registry
	profiles *profile.Service
	loads    *latest.Group
}

func NewProfileHandler(console *Console, registry *resource.Registry, profiles *profile.Service, loads *latest.Group) ProfileHandler {
	return &ProfileHandlerImpl{Console: console, registry: registry, profiles: profiles, loads: loads}
}

// NewProfileListHandler serves the leave, BMI and medical lists embedded in
// the profile at /admin/employee/{id}/{sub}.
func NewProfileListHandler(console *Console, registry *resource.Registry, profiles *profile.Service, loads *latest.Group) ListHandler {
	p := &ProfileHandlerImpl{Console: console, registry: registry, profiles: profiles, loads: loads}
	return &ListHandlerImpl{Console: console, site: &profileSite{p: p}}
}

// profileState is what the page shows besides the loaded records.
type profileState struct {
	editing bool
	// draft overrides the stored values while editing.
	draft   *employee.UpdateProfileRequest
	message string
	// open names the sub-list whose dialog is shown.
	open   string
	dialog *crud.Dialog
}

// employeeID reads {id} on routes shared with the other resources, which
// only the employee resource answers.
func employeeID(r *http.Request) (string, bool) {
	if chi.URLParam(r, "resource") != "employee" {
		return "", false
	}
	id := chi.URLParam(r, "id")
	return id, id != ""
}

func profileURL(id string) string {
	return "/admin/employee/" + url.PathEscape(id)
}

// View implements ProfileHandler.
func (p *ProfileHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		p.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}
	p.renderProfile(w, r, id, profileState{editing: r.URL.Query().Get("edit") == "1"}, http.StatusOK)
}

// Update implements ProfileHandler. Row actions re-render the posted draft;
// only the save action writes to the backend.
func (p *ProfileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		p.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.Error("Update profile parse error", "error", err)
		p.renderError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	draft := profile.DraftFromForm(r.PostForm)
	action := r.PostForm.Get("action")
	if action != "" && action != profile.ActionSave {
		if err := profile.Apply(draft, action); err != nil {
			slog.Warn("Update profile action ignored", "action", action, "error", err)
		}
		p.renderProfile(w, r, id, profileState{editing: true, draft: draft}, http.StatusOK)
		return
	}

	if _, err := p.profiles.Update(r.Context(), p.backend(r), id, draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			p.renderProfile(w, r, id, profileState{editing: true, draft: draft, message: employee.RequiredFieldsMessage}, http.StatusUnprocessableEntity)
			return
		}
		if p.sessionLost(w, r, err) {
			return
		}
		slog.Error("Update profile service error", "employee_id", id, "error", err)
		p.renderProfile(w, r, id, profileState{editing: true, draft: draft, message: crud.SaveFailedMessage}, http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, profileURL(id), http.StatusSeeOther)
}

// Sheet implements ProfileHandler.
func (p *ProfileHandlerImpl) Sheet(w http.ResponseWriter, r *http.Request) {
	id, ok := employeeID(r)
	if !ok {
		p.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}

	prof, err := p.profiles.Load(r.Context(), p.backend(r), id, resource.ProfileLists...)
	if err != nil {
		if p.sessionLost(w, r, err) {
			return
		}
		slog.Error("Sheet load error", "employee_id", id, "error", err)
		p.renderError(w, r, http.StatusBadGateway, employee.LoadFailedMessage)
		return
	}

	sheet := p.sheet(prof)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="employee-`+url.PathEscape(id)+`.pdf"`)
	if err := export.WritePDF(w, sheet); err != nil {
		slog.Error("Sheet write error", "employee_id", id, "error", err)
	}
}

// Self implements ProfileHandler. Employees see their own record read-only.
func (p *ProfileHandlerImpl) Self(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	pv := view.ProfileView{ID: sess.User.ID}
	prof, err := p.profiles.Load(r.Context(), p.backend(r), sess.User.ID)
	if err != nil {
		if p.sessionLost(w, r, err) {
			return
		}
		slog.Error("Self profile load error", "error", err)
		pv.LoadError = employee.LoadFailedMessage
		p.render(w, r, http.StatusOK, view.PageProfile, "My Profile", pv)
		return
	}

	pv = profileView(prof.Employee, sess.User.ID, profileState{})
	pv.EditURL, pv.SheetURL, pv.Action = "", "", ""
	p.render(w, r, http.StatusOK, view.PageProfile, "My Profile", pv)
}

func (p *ProfileHandlerImpl) target(id, name string) (*listTarget, bool) {
	res, ok := p.registry.Get(name)
	if !ok || !slices.Contains(resource.ProfileLists, name) {
		return nil, false
	}
	base := profileURL(id)
	return &listTarget{
		res:         res,
		scope:       id,
		listURL:     base,
		formURL:     base + "/" + res.Name,
		recordParam: "rid",
	}, true
}

func (p *ProfileHandlerImpl) renderProfile(w http.ResponseWriter, r *http.Request, id string, st profileState, status int) {
	var (
		prof       *profile.Profile
		err        error
		superseded bool
	)
	if supersedable(r) {
		ctx, ticket := p.loads.Begin(r.Context(), p.sessionID(r)+"|"+profileURL(id))
		prof, err = p.profiles.Load(ctx, p.backend(r), id, resource.ProfileLists...)
		superseded = latest.Superseded(ctx, err)
		ticket.Done()
	} else {
		prof, err = p.profiles.Load(r.Context(), p.backend(r), id, resource.ProfileLists...)
	}

	if superseded {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		if p.sessionLost(w, r, err) {
			return
		}
		slog.Error("Profile load error", "employee_id", id, "error", err)
		p.render(w, r, http.StatusBadGateway, view.PageProfile, "Employee Profile", view.ProfileView{
			ID:        id,
			LoadError: employee.LoadFailedMessage,
		})
		return
	}

	pv := profileView(prof.Employee, id, st)
	q := r.URL.Query()
	for _, name := range resource.ProfileLists {
		t, ok := p.target(id, name)
		if !ok {
			continue
		}
		records := prof.List(name)
		var d *crud.Dialog
		if name == st.open {
			d = st.dialog
			if d == nil {
				d = dialogFromQuery(q, t.res, records)
			}
		}
		pv.Lists = append(pv.Lists, p.listView(r.Context(), r, t, records, q.Get("expand"), d))
	}

	title := prof.Employee.String("name")
	if title == "" {
		title = "Employee Profile"
	}
	p.render(w, r, status, view.PageProfile, title, pv)
}

func profileView(rec crud.Record, id string, st profileState) view.ProfileView {
	draft := st.draft
	if draft == nil {
		draft = profile.DraftFromRecord(rec)
	}
	base := profileURL(id)

	pv := view.ProfileView{
		ID:             id,
		Name:           draft.Name,
		Editing:        st.editing,
		Error:          st.message,
		Action:         base,
		EditURL:        base + "?edit=1",
		CancelURL:      base,
		SheetURL:       base + "/sheet.pdf",
		CourseCount:    len(draft.Courses),
		EquipmentCount: len(draft.Equipment),
		CourseCountKey: profile.CourseCount,
		EquipCountKey:  profile.EquipmentCount,
		Fields: []view.ProfileField{
			{Key: "name", Label: "Name", Type: "text", Value: draft.Name, Required: true},
			{Key: "phone", Label: "Phone", Type: "text", Value: draft.Phone},
			{Key: "regimentalNo", Label: "Regimental No", Type: "text", Value: draft.RegimentalNo},
			{Key: "role", Label: "Role", Type: "select", Value: draft.Role, Required: true, Options: selectOptions(employee.Roles)},
			{Key: "rank", Label: "Rank", Type: "select", Value: draft.Rank, Required: true, Options: selectOptions(employee.Ranks)},
			{Key: "dob", Label: "Date of Birth", Type: "date", Value: draft.DOB, Required: true},
			{Key: "doj", Label: "Date of Joining", Type: "date", Value: draft.DOJ, Required: true},
		},
	}
	for i, c := range draft.Courses {
		pv.Courses = append(pv.Courses, view.CourseRow{
			NameInput:      profile.CourseName(i),
			CompletedInput: profile.CourseCompleted(i),
			Name:           c.Name,
			Completed:      c.Completed,
			Remove:         profile.ActionRemoveCourse + ":" + strconv.Itoa(i),
		})
	}
	for i, e := range draft.Equipment {
		pv.Equipment = append(pv.Equipment, view.EquipmentRow{
			NameInput:     profile.EquipmentName(i),
			AssignedInput: profile.EquipmentAssigned(i),
			Name:          e.Name,
			AssignedDate:  e.AssignedDate,
			Remove:        profile.ActionRemoveEquipment + ":" + strconv.Itoa(i),
		})
	}
	return pv
}

func selectOptions(values []string) []crud.Option {
	opts := make([]crud.Option, len(values))
	for i, v := range values {
		opts[i] = crud.Option{Value: v, Label: v}
	}
	return opts
}

func (p *ProfileHandlerImpl) sheet(prof *profile.Profile) export.Sheet {
	rec := prof.Employee
	draft := profile.DraftFromRecord(rec)
	s := export.Sheet{
		Title: employee.Label(draft.Name, draft.RegimentalNo),
		Fields: [][2]string{
			{"Name", draft.Name},
			{"Regimental No", draft.RegimentalNo},
			{"Role", draft.Role},
			{"Rank", draft.Rank},
			{"Phone", draft.Phone},
			{"Date of Birth", draft.DOB},
			{"Date of Joining", draft.DOJ},
		},
	}

	courses := export.Section{Title: "Courses", Headers: []string{"Name", "Completed"}}
	for _, c := range draft.Courses {
		done := "No"
		if c.Completed {
			done = "Yes"
		}
		courses.Rows = append(courses.Rows, []string{c.Name, done})
	}
	equipment := export.Section{Title: "Equipment", Headers: []string{"Name", "Assigned Date"}}
	for _, e := range draft.Equipment {
		equipment.Rows = append(equipment.Rows, []string{e.Name, e.AssignedDate})
	}
	s.Sections = append(s.Sections, courses, equipment)

	for _, name := range resource.ProfileLists {
		res, ok := p.registry.Get(name)
		if !ok {
			continue
		}
		headers, rows := res.Table(prof.List(name), false)
		s.Sections = append(s.Sections, export.Section{Title: res.Title, Headers: headers, Rows: rows})
	}
	return s
}

// profileSite mounts the profile sub-lists under the employee's profile.
type profileSite struct {
	p *ProfileHandlerImpl
}

func (s *profileSite) resolve(r *http.Request) (*listTarget, bool) {
	id, ok := employeeID(r)
	if !ok {
		return nil, false
	}
	return s.p.target(id, chi.URLParam(r, "sub"))
}

func (s *profileSite) render(w http.ResponseWriter, r *http.Request, t *listTarget, d *crud.Dialog, status int) {
	s.p.renderProfile(w, r, t.scope, profileState{open: t.res.Name, dialog: d}, status)
}
