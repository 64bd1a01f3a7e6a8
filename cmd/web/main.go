package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/personnel-web/internal/config"
	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
	appHTTP "github.com/cmlabs-hris/personnel-web/internal/handler/http"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/personnel-web/internal/handler/http/view"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/apiclient"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/cron"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/database"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/jwt"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/latest"
	"github.com/cmlabs-hris/personnel-web/internal/pkg/password"
	"github.com/cmlabs-hris/personnel-web/internal/repository/memory"
	"github.com/cmlabs-hris/personnel-web/internal/repository/postgresql"
	"github.com/cmlabs-hris/personnel-web/internal/repository/redis"
	"github.com/cmlabs-hris/personnel-web/internal/resource"
	serviceAuth "github.com/cmlabs-hris/personnel-web/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/personnel-web/internal/service/dashboard"
	lookupService "github.com/cmlabs-hris/personnel-web/internal/service/lookup"
	profileService "github.com/cmlabs-hris/personnel-web/internal/service/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := appHTTP.NewLogger("personnel-web", cfg.App.Version, cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *goredis.Client
	if cfg.Session.Store == config.StoreRedis {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to redis: ", err)
		}
		defer rdb.Close()
	}

	var sessionRepo auth.SessionRepository
	switch cfg.Session.Store {
	case config.StoreMemory:
		sessionRepo = memory.NewSessionRepository()
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer db.Close()
		pgRepo := postgresql.NewSessionRepository(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare session table: ", err)
		}
		sessionRepo = pgRepo
	case config.StoreRedis:
		sessionRepo = redis.NewSessionRepository(rdb)
	default:
		log.Fatal("Unsupported session store: ", cfg.Session.Store)
	}

	scheduler := cron.NewScheduler(ctx, logger)
	if pruner, ok := sessionRepo.(auth.SessionPruner); ok {
		scheduler.AddJob("sweep-sessions", cfg.Session.PruneInterval, cron.SweepSessions(pruner, logger))
	}
	scheduler.Start()
	defer scheduler.Stop()

	lookupCfg := lookupService.Config{
		Debounce:    cfg.Feature.LookupDebounce,
		CategoryTTL: cfg.Feature.CategoryCacheTTL,
	}
	if rdb != nil {
		lookupCfg.Store = redis.NewCategoryCache(rdb)
	}
	lookupSvc := lookupService.NewService(lookupCfg)

	deps := resource.Deps{
		Categories:            lookupSvc.CategoryOptions,
		EnforceLeaveDateOrder: cfg.Feature.EnforceLeaveDateOrder,
		Logger:                logger,
	}
	if cfg.Feature.GenerateInitialPassword {
		deps.Passwords = password.NewGenerator()
	}
	registry := resource.NewRegistry(deps)

	api := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.CookieSecure)
	authService := serviceAuth.NewAuthService(api, sessionRepo, cfg.Session.TTL)
	profileSvc := profileService.NewService(registry)
	dashboardSvc := dashboardService.NewService()

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates: ", err)
	}
	loads := latest.NewGroup()
	console := appHTTP.NewConsole(renderer, api, JWTService, authService)

	authHandler := appHTTP.NewAuthHandler(console)
	dashboardHandler := appHTTP.NewDashboardHandler(console, dashboardSvc)
	listHandler := appHTTP.NewAdminListHandler(console, registry, loads)
	profileHandler := appHTTP.NewProfileHandler(console, registry, profileSvc, loads)
	profileListHandler := appHTTP.NewProfileListHandler(console, registry, profileSvc, loads)
	selfLeaveHandler := appHTTP.NewSelfLeaveHandler(console, registry, loads)
	lookupHandler := appHTTP.NewLookupHandler(console, lookupSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.Security.AllowedOrigins,
			LoginLimiter:   middleware.NewIPRateLimiter(cfg.Security.LoginRatePerMinute, cfg.Security.LoginBurst),
		},
		JWTService,
		authService,
		authHandler,
		dashboardHandler,
		listHandler,
		profileHandler,
		profileListHandler,
		selfLeaveHandler,
		lookupHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", srv.Addr, "session_store", cfg.Session.Store, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	slog.Info("server stopped")
}
