package view

import (
	"strings"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

type MenuItem struct {
	Label  string
	URL    string
	Active bool
}

var adminMenu = []MenuItem{
	{Label: "Dashboard", URL: "/admin"},
	{Label: "Employees", URL: "/admin/employee"},
	{Label: "Leaves", URL: "/admin/leave"},
	{Label: "Courses", URL: "/admin/course"},
	{Label: "BMI", URL: "/admin/bmi"},
	{Label: "Medical", URL: "/admin/medical"},
	{Label: "Equipment", URL: "/admin/equipment"},
}

var employeeMenu = []MenuItem{
	{Label: "My Equipment", URL: "/employee"},
	{Label: "Leaves", URL: "/employee/leaves"},
	{Label: "Profile", URL: "/employee/profile"},
}

// Menu returns the role's menu with the entry for current marked active.
// An entry matches its own path and anything below it, except the role home
// which only matches itself.
func Menu(u auth.User, current string) []MenuItem {
	src := employeeMenu
	if u.IsAdmin() {
		src = adminMenu
	}
	out := make([]MenuItem, len(src))
	for i, item := range src {
		item.Active = current == item.URL ||
			(item.URL != u.Home() && strings.HasPrefix(current, item.URL+"/"))
		out[i] = item
	}
	return out
}

// BackURL is where the admin back button points, empty on the home page and
// for employees.
func BackURL(u auth.User, current string) string {
	if !u.IsAdmin() || current == u.Home() {
		return ""
	}
	return u.Home()
}
