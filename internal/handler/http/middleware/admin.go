package middleware

import (
	"net/http"
)

// AdminOnly keeps non-admin users out of the admin screens by sending them
// to their own home. The backend still authorises every call it receives.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !s.User.IsAdmin() {
			http.Redirect(w, r, s.User.Home(), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EmployeeOnly is the counterpart for the self-service screens.
func EmployeeOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFromContext(r.Context())
		if s == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if s.User.IsAdmin() {
			http.Redirect(w, r, s.User.Home(), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
