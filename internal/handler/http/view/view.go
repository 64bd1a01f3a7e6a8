// Package view renders the console's HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages rendered inside the layout.
const (
	PageLogin     = "login"
	PageList      = "list"
	PageConfirm   = "confirm"
	PageForm      = "form"
	PageProfile   = "profile"
	PageDashboard = "dashboard"
	PageHome      = "home"
	PageError     = "error"
)

var pageNames = []string{PageLogin, PageList, PageConfirm, PageForm, PageProfile, PageDashboard, PageHome, PageError}

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *auth.User
	Menu    []MenuItem
	Flash   string
	BackURL string
	Data    any
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
		"inc":     func(i int) int { return i + 1 },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with status. The page is rendered to a buffer
// first so a template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the stylesheet and script under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
