package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/jwt"
)

// NewLogger is the JSON logger in ECS field names shared by the request log
// and the application log.
func NewLogger(app, version, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	LoginLimiter   *middleware.IPRateLimiter
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authService auth.AuthService,
	authHandler AuthHandler,
	dashboardHandler DashboardHandler,
	listHandler ListHandler,
	profileHandler ProfileHandler,
	profileListHandler ListHandler,
	selfLeaveHandler ListHandler,
	lookupHandler LookupHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))
	r.Use(middleware.SecureHeaders)

	r.Handle("/static/*", view.Static())

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromCookie))
		r.Use(middleware.LoadSession(JWTService, authService))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			if s := middleware.SessionFromContext(r.Context()); s != nil {
				http.Redirect(w, r, s.User.Home(), http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})

		r.Get("/login", authHandler.LoginPage)
		r.Group(func(r chi.Router) {
			if opts.LoginLimiter != nil {
				r.Use(opts.LoginLimiter.Limit)
			}
			r.Post("/login", authHandler.Login)
		})
		r.Post("/logout", authHandler.Logout)

		r.Route("/lookup", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   opts.AllowedOrigins,
				AllowCredentials: true,
				AllowedMethods:   []string{"GET", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				MaxAge:           300,
			}))
			r.Use(middleware.AuthRequired)
			r.Get("/{name}", lookupHandler.Search)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRequired)
			r.Use(middleware.NoStore)

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", dashboardHandler.Admin)

				r.Route("/{resource}", func(r chi.Router) {
					r.Get("/", listHandler.List)
					r.Post("/", listHandler.Submit)
					r.Post("/derive", listHandler.Derive)
					r.Get("/export.xlsx", listHandler.Export)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/delete", listHandler.ConfirmDelete)
						r.Post("/delete", listHandler.Delete)

						// Employee profile
						r.Get("/", profileHandler.View)
						r.Post("/", profileHandler.Update)
						r.Get("/sheet.pdf", profileHandler.Sheet)

						r.Route("/{sub}", func(r chi.Router) {
							r.Get("/", profileListHandler.List)
							r.Post("/", profileListHandler.Submit)
							r.Post("/derive", profileListHandler.Derive)
							r.Get("/{rid}/delete", profileListHandler.ConfirmDelete)
							r.Post("/{rid}/delete", profileListHandler.Delete)
						})
					})
				})
			})

			// Employee self service
			r.Route("/employee", func(r chi.Router) {
				r.Use(middleware.EmployeeOnly)
				r.Get("/", dashboardHandler.Employee)
				r.Get("/profile", profileHandler.Self)
				r.Get("/leaves", selfLeaveHandler.List)
				r.Post("/leaves", selfLeaveHandler.Submit)
			})
		})
	})
	return r
}
