package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/service/dashboard"
)

type DashboardHandler interface {
	Admin(w http.ResponseWriter, r *http.Request)
	Employee(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	*Console
	dashboardService *dashboard.Service
}

func NewDashboardHandler(console *Console, dashboardService *dashboard.Service) DashboardHandler {
	return &DashboardHandlerImpl{Console: console, dashboardService: dashboardService}
}

// Admin implements DashboardHandler.
func (d *DashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	a := d.dashboardService.Analytics(r.Context(), d.backend(r))
	d.render(w, r, http.StatusOK, view.PageDashboard, "Dashboard", view.DashboardView{
		Analytics:  a,
		Attendance: a.Attendance(),
		Leave:      a.Leave(),
		Equipment:  a.Equipment(),
	})
}

// Employee implements DashboardHandler. It lists the equipment assigned to
// the signed-in employee.
func (d *DashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	var hv view.HomeView
	items, err := d.dashboardService.AssignedEquipment(r.Context(), d.backend(r))
	if err != nil {
		if d.sessionLost(w, r, err) {
			return
		}
		slog.Error("Assigned equipment load error", "error", err)
		hv.LoadError = "Failed to load assigned equipment."
	}
	hv.Items = items
	d.render(w, r, http.StatusOK, view.PageHome, "My Equipment", hv)
}
