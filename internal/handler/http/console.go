package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/personnel-web/internal/crud"
	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/apiclient"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/jwt"
)

// Console holds what every page handler shares: the renderer, the backend
// client and the session services.
type Console struct {
	renderer    *view.Renderer
	api         *apiclient.Client
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewConsole(renderer *view.Renderer, api *apiclient.Client, jwtService jwt.Service, authService auth.AuthService) *Console {
	return &Console{
		renderer:    renderer,
		api:         api,
		jwtService:  jwtService,
		authService: authService,
	}
}

// backend is the API client acting as the signed-in user.
func (c *Console) backend(r *http.Request) crud.Backend {
	s := middleware.SessionFromContext(r.Context())
	if s == nil {
		return c.api
	}
	return c.api.WithToken(s.Token)
}

func sessionFrom(r *http.Request) *auth.Session {
	return middleware.SessionFromContext(r.Context())
}

func (c *Console) sessionID(r *http.Request) string {
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		return s.ID
	}
	return ""
}

// page builds the layout data for the current user and consumes the pending
// flash message.
func (c *Console) page(r *http.Request, title string, data any) view.Page {
	p := view.Page{Title: title, Data: data}
	s := middleware.SessionFromContext(r.Context())
	if s == nil {
		return p
	}
	user := s.User
	p.User = &user
	p.Menu = view.Menu(user, r.URL.Path)
	p.BackURL = view.BackURL(user, r.URL.Path)
	p.Flash = c.authService.TakeFlash(r.Context(), s)
	return p
}

func (c *Console) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	c.renderer.Render(w, status, name, c.page(r, title, data))
}

func (c *Console) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	c.render(w, r, status, view.PageError, http.StatusText(status), message)
}

// flash queues a message for the page after the redirect.
func (c *Console) flash(r *http.Request, message string) {
	s := middleware.SessionFromContext(r.Context())
	if s == nil || message == "" {
		return
	}
	if err := c.authService.SetFlash(r.Context(), s, message); err != nil {
		slog.ErrorContext(r.Context(), "failed to store flash", "error", err)
	}
}

// sessionLost ends the session when the backend no longer accepts its token
// and sends the browser to /login. It reports whether it handled err.
func (c *Console) sessionLost(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	if sid := c.sessionID(r); sid != "" {
		if err := c.authService.Logout(r.Context(), sid); err != nil {
			slog.ErrorContext(r.Context(), "failed to drop rejected session", "error", err)
		}
	}
	slog.InfoContext(r.Context(), "backend rejected session token, signing out")
	http.SetCookie(w, c.jwtService.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}
