package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/employee"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/response"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/export"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
	"github.com/cmlabs-hris/personnel-web/internal/resource"
)

const (
	defaultConfirmDelete = "Are you sure you want to delete this record?"
	deleteFailedMessage  = "Could not delete. Please try again."
)

type ListHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Derive(w http.ResponseWriter, r *http.Request)
	ConfirmDelete(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

// listTarget is one list as mounted at a URL.
type listTarget struct {
	res   *crud.Resource
	scope string
	// listURL is where the browser returns after a mutation or cancel.
	listURL string
	// formURL is the base for dialog, derive and delete routes.
	formURL     string
	recordParam string
	exportable  bool
	profileLink bool
}

func (t *listTarget) scoped() bool {
	return t.scope != "" && t.res.ScopeField != ""
}

// listSite knows where its lists live and how their page is drawn.
type listSite interface {
	resolve(r *http.Request) (*listTarget, bool)
	// render draws the page with d open. A nil d opens the dialog named in
	// the query, if any.
	render(w http.ResponseWriter, r *http.Request, t *listTarget, d *crud.Dialog, status int)
}

type ListHandlerImpl struct {
	*Console
	site listSite
}

// NewAdminListHandler serves /admin/{resource}.
func NewAdminListHandler(console *Console, registry *resource.Registry, loads *latest.Group) ListHandler {
	return &ListHandlerImpl{
		Console: console,
		site:    &adminSite{Console: console, registry: registry, loads: loads},
	}
}

// NewSelfLeaveHandler serves the signed-in employee's /employee/leaves.
func NewSelfLeaveHandler(console *Console, registry *resource.Registry, loads *latest.Group) ListHandler {
	return &ListHandlerImpl{
		Console: console,
		site:    &selfLeaveSite{adminSite{Console: console, registry: registry, loads: loads}},
	}
}

// List implements ListHandler.
func (h *ListHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}
	h.site.render(w, r, t, nil, http.StatusOK)
}

// Submit implements ListHandler.
func (h *ListHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.Error("Submit parse error", "error", err)
		h.renderError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	values, labels := crud.Bind(t.res, r.PostForm)
	sub := crud.Submission{
		EditMode: r.PostForm.Get("mode") == string(crud.ModeEdit),
		Selected: r.PostForm.Get("id"),
		Values:   values,
		Scope:    t.scope,
	}

	out, err := crud.NewEngine(t.res, h.backend(r)).Submit(r.Context(), sub)
	if err != nil {
		if h.sessionLost(w, r, err) {
			return
		}
		d := crud.ReopenDialog(sub, labels, err)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			// The list is not refetched; the dialog is shown on its own.
			h.render(w, r, http.StatusUnprocessableEntity, view.PageForm, h.dialogTitle(t, d), h.dialogView(r.Context(), r, t, d))
			return
		}
		slog.Error("Submit service error", "list", t.res.Name, "edit", sub.EditMode, "error", err)
		h.site.render(w, r, t, d, http.StatusUnprocessableEntity)
		return
	}

	h.flash(r, out.Notice)
	http.Redirect(w, r, t.listURL, http.StatusSeeOther)
}

// Derive implements ListHandler. It answers the derived field values for
// the posted dialog without saving anything.
func (h *ListHandlerImpl) Derive(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok {
		response.NotFound(w, "List not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	values, _ := crud.Bind(t.res, r.PostForm)
	derived := make(map[string]string)
	for _, f := range t.res.Fields {
		if f.ReadOnly() {
			derived[f.Key] = values[f.Key]
		}
	}
	response.Success(w, derived)
}

// ConfirmDelete implements ListHandler.
func (h *ListHandlerImpl) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok || !t.res.Actions.Delete {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}

	msg := t.res.ConfirmDelete
	if msg == "" {
		msg = defaultConfirmDelete
	}
	id := chi.URLParam(r, t.recordParam)
	h.render(w, r, http.StatusOK, view.PageConfirm, "Delete "+t.res.Singular, view.ConfirmView{
		Message:   msg,
		Action:    t.formURL + "/" + url.PathEscape(id) + "/delete",
		CancelURL: t.listURL,
	})
}

// Delete implements ListHandler. Only confirm=yes reaches the backend.
func (h *ListHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}

	confirmed := r.PostFormValue("confirm") == "yes"
	id := chi.URLParam(r, t.recordParam)
	err := crud.NewEngine(t.res, h.backend(r)).Delete(r.Context(), id, confirmed)
	switch {
	case err == nil, errors.Is(err, crud.ErrNotConfirmed):
	case h.sessionLost(w, r, err):
		return
	default:
		slog.Error("Delete service error", "list", t.res.Name, "id", id, "error", err)
		h.flash(r, deleteFailedMessage)
	}
	http.Redirect(w, r, t.listURL, http.StatusSeeOther)
}

// Export implements ListHandler.
func (h *ListHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	t, ok := h.site.resolve(r)
	if !ok || !t.exportable {
		h.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}

	records, err := crud.NewEngine(t.res, h.backend(r)).List(r.Context(), t.scope)
	if err != nil {
		if h.sessionLost(w, r, err) {
			return
		}
		slog.Error("Export list error", "list", t.res.Name, "error", err)
		h.renderError(w, r, http.StatusBadGateway, "Could not export. Please try again.")
		return
	}

	headers, rows := t.res.Table(records, true)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.res.Name+`.xlsx"`)
	if err := export.WriteXLSX(w, t.res.Title, headers, rows); err != nil {
		slog.Error("Export write error", "list", t.res.Name, "error", err)
	}
}

// loadList fetches the records for t. On GET a newer load of the same list
// by the same session cancels this one, which then reports superseded=true.
// Form posts always load, so their reply is never dropped.
func (c *Console) loadList(r *http.Request, loads *latest.Group, t *listTarget) (records []crud.Record, superseded bool, err error) {
	engine := crud.NewEngine(t.res, c.backend(r))
	if !supersedable(r) {
		records, err = engine.List(r.Context(), t.scope)
		return records, false, err
	}

	ctx, ticket := loads.Begin(r.Context(), c.sessionID(r)+"|"+t.formURL)
	defer ticket.Done()

	records, err = engine.List(ctx, t.scope)
	if latest.Superseded(ctx, err) {
		return nil, true, err
	}
	return records, false, err
}

// supersedable reports whether a newer load may cancel r. Only page loads
// qualify; the browser has already moved on from a replaced navigation.
func supersedable(r *http.Request) bool {
	return r.Method == http.MethodGet || r.Method == http.MethodHead
}

// dialogFromQuery opens the dialog named by ?dialog=new or ?dialog=edit&id=.
func dialogFromQuery(q url.Values, res *crud.Resource, records []crud.Record) *crud.Dialog {
	switch crud.Mode(q.Get("dialog")) {
	case crud.ModeCreate:
		if res.Actions.Create {
			return crud.NewDialog(res, nil)
		}
	case crud.ModeEdit:
		if !res.Actions.Update {
			return nil
		}
		if rec, ok := crud.Find(records, q.Get("id")); ok {
			return crud.NewDialog(res, rec)
		}
	}
	return nil
}

// listView turns records into the table model, with d rendered as an open
// dialog when set.
func (c *Console) listView(ctx context.Context, r *http.Request, t *listTarget, records []crud.Record, expand string, d *crud.Dialog) view.ListView {
	res := t.res
	lv := view.ListView{
		Name:      res.Name,
		Title:     res.Title,
		Singular:  res.Singular,
		CanCreate: res.Actions.Create,
		NewURL:    t.formURL + "?dialog=new",
	}
	if t.exportable {
		lv.ExportURL = t.formURL + "/export.xlsx"
	}
	for _, col := range res.Columns {
		lv.Headers = append(lv.Headers, view.Header{Label: col.Label, Wide: col.Wide})
	}

	for _, rec := range records {
		id := rec.ID()
		row := view.Row{ID: id, Expanded: id != "" && id == expand}
		for _, col := range res.Columns {
			row.Cells = append(row.Cells, view.Cell{Value: col.Value(rec), Wide: col.Wide})
		}
		if row.Expanded {
			for _, col := range res.Details {
				row.Details = append(row.Details, view.Detail{Label: col.Label, Value: col.Value(rec)})
			}
		}
		row.ToggleURL = t.listURL
		if next := crud.ToggleExpanded(expand, id); next != "" {
			row.ToggleURL += "?expand=" + url.QueryEscape(next)
		}
		if res.Actions.Update {
			row.EditURL = t.formURL + "?dialog=edit&id=" + url.QueryEscape(id)
		}
		if res.Actions.Delete {
			row.DeleteURL = t.formURL + "/" + url.PathEscape(id) + "/delete"
		}
		if t.profileLink {
			row.ProfileURL = "/admin/employee/" + url.PathEscape(id)
		}
		lv.Rows = append(lv.Rows, row)
	}

	if d != nil {
		lv.Dialog = c.dialogView(ctx, r, t, d)
	}
	return lv
}

func (c *Console) dialogView(ctx context.Context, r *http.Request, t *listTarget, d *crud.Dialog) *view.DialogView {
	engine := crud.NewEngine(t.res, c.backend(r))
	fields, err := engine.FormFields(ctx, d, t.scoped())
	if err != nil {
		slog.ErrorContext(ctx, "failed to load dialog options", "list", t.res.Name, "error", err)
	}

	return &view.DialogView{
		Title:     c.dialogTitle(t, d),
		Mode:      d.Mode,
		ID:        d.ID,
		Fields:    fields,
		Message:   d.Message,
		Action:    t.formURL,
		CancelURL: t.listURL,
		DeriveURL: t.formURL + "/derive",
	}
}

func (c *Console) dialogTitle(t *listTarget, d *crud.Dialog) string {
	if d.Mode == crud.ModeEdit {
		return "Edit " + t.res.Singular
	}
	return "Add " + t.res.Singular
}

// adminSite mounts every registered list at /admin/{resource}.
type adminSite struct {
	*Console
	registry *resource.Registry
	loads    *latest.Group
}

func (s *adminSite) resolve(r *http.Request) (*listTarget, bool) {
	res, ok := s.registry.Get(chi.URLParam(r, "resource"))
	if !ok {
		return nil, false
	}
	base := "/admin/" + res.Name
	return &listTarget{
		res:         res,
		listURL:     base,
		formURL:     base,
		recordParam: "id",
		exportable:  true,
		profileLink: res.Name == "employee",
	}, true
}

func (s *adminSite) render(w http.ResponseWriter, r *http.Request, t *listTarget, d *crud.Dialog, status int) {
	records, superseded, err := s.loadList(r, s.loads, t)
	if superseded {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var loadErr string
	if err != nil {
		if s.sessionLost(w, r, err) {
			return
		}
		slog.Error("List load error", "list", t.res.Name, "error", err)
		if t.res.ShowLoadError {
			loadErr = employee.LoadFailedMessage
		}
	}

	q := r.URL.Query()
	if d == nil {
		d = dialogFromQuery(q, t.res, records)
	}
	lv := s.listView(r.Context(), r, t, records, q.Get("expand"), d)
	lv.LoadError = loadErr
	s.Console.render(w, r, status, view.PageList, t.res.Title, lv)
}

// selfLeaveSite is the employee's own leave list, scoped to the session user.
type selfLeaveSite struct {
	adminSite
}

func (s *selfLeaveSite) resolve(r *http.Request) (*listTarget, bool) {
	sess := sessionFrom(r)
	if sess == nil {
		return nil, false
	}
	return &listTarget{
		res:         s.registry.SelfLeave(),
		scope:       sess.User.ID,
		listURL:     "/employee/leaves",
		formURL:     "/employee/leaves",
		recordParam: "id",
	}, true
}
