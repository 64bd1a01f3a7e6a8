package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
)

type AuthHandler interface {
	LoginPage(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	*Console
}

func NewAuthHandler(console *Console) AuthHandler {
	return &AuthHandlerImpl{Console: console}
}

// LoginPage implements AuthHandler.
func (a *AuthHandlerImpl) LoginPage(w http.ResponseWriter, r *http.Request) {
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		http.Redirect(w, r, s.User.Home(), http.StatusSeeOther)
		return
	}
	a.renderer.Render(w, http.StatusOK, view.PageLogin, view.Page{Title: "Sign in", Data: view.LoginView{}})
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("Login parse error", "error", err)
		a.loginFailed(w, "")
		return
	}

	req := auth.LoginRequest{
		RegimentalNo: r.PostForm.Get("regimentalNo"),
		Password:     r.PostForm.Get("password"),
	}
	tracking := auth.SessionTrackingRequest{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	session, err := a.authService.Login(r.Context(), req, tracking)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("Login service error", "error", err)
		}
		a.loginFailed(w, req.RegimentalNo)
		return
	}

	token, err := a.jwtService.IssueSessionToken(session.ID, string(session.User.Role), session.ExpiresAt)
	if err != nil {
		slog.Error("Login token error", "error", err)
		_ = a.authService.Logout(r.Context(), session.ID)
		a.loginFailed(w, req.RegimentalNo)
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(token, session.ExpiresAt))
	http.Redirect(w, r, session.User.Home(), http.StatusSeeOther)
}

func (a *AuthHandlerImpl) loginFailed(w http.ResponseWriter, regimentalNo string) {
	a.renderer.Render(w, http.StatusUnauthorized, view.PageLogin, view.Page{
		Title: "Sign in",
		Data: view.LoginView{
			RegimentalNo: regimentalNo,
			Error:        auth.InvalidCredentialsMessage,
		},
	})
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sid := a.sessionID(r)
	if sid == "" {
		// The cookie may still name a session the store already dropped.
		if token, _, err := jwtauth.FromContext(r.Context()); err == nil && token != nil {
			sid, _ = a.jwtService.SessionID(token)
		}
	}
	if err := a.authService.Logout(r.Context(), sid); err != nil {
		slog.Error("Logout service error", "error", err)
	}
	http.SetCookie(w, a.jwtService.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
