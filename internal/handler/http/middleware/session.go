package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/response"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/jwt"
)

type sessionKey struct{}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the signed-in session, or nil.
func SessionFromContext(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return s
}

// LoadSession resolves the cookie verified by jwtauth.Verify into a live
// session. Requests without one pass through anonymous.
func LoadSession(jwtService jwt.Service, authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}

			sid, err := jwtService.SessionID(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, err := authService.Session(r.Context(), sid)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionNotFound) && !errors.Is(err, auth.ErrSessionExpired) {
					slog.ErrorContext(r.Context(), "failed to load session", "error", err)
				}
				http.SetCookie(w, jwtService.ClearCookie())
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}

// AuthRequired sends anonymous page requests to /login and answers anonymous
// JSON requests with 401.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromContext(r.Context()) == nil {
			if wantsJSON(r) {
				response.Unauthorized(w, "Sign in required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/lookup/")
}
