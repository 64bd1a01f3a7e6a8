package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Session store backends
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Security SecurityConfig
	Feature  FeatureConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int    `validate:"min=1,max=65535"`
	Env      string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`
	Version  string
}

// BackendConfig points at the personnel REST API
type BackendConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// SessionConfig holds session cookie and store configuration
type SessionConfig struct {
	Secret       string        `validate:"required,min=16"`
	TTL          time.Duration `validate:"gt=0"`
	Store        string        `validate:"oneof=memory postgres redis"`
	CookieSecure bool
	// PruneInterval is how often expired sessions are swept. Zero disables it.
	PruneInterval time.Duration `validate:"gte=0"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	AllowedOrigins     []string
	LoginRatePerMinute int `validate:"min=1"`
	LoginBurst         int `validate:"min=1"`
}

// FeatureConfig toggles behaviour that still has open questions with the backend team
type FeatureConfig struct {
	LookupDebounce          time.Duration `validate:"gte=0"`
	CategoryCacheTTL        time.Duration `validate:"gte=0"`
	GenerateInitialPassword bool
	EnforceLeaveDateOrder   bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
	}

	// Backend configuration
	apiTimeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		Timeout: apiTimeout,
	}

	// Session configuration
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	pruneInterval, err := time.ParseDuration(getEnv("SESSION_PRUNE_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_PRUNE_INTERVAL: %w", err)
	}

	config.Session = SessionConfig{
		Secret:        getEnv("SESSION_SECRET", ""),
		TTL:           sessionTTL,
		Store:         getEnv("SESSION_STORE", StoreMemory),
		CookieSecure:  getEnvBool("SESSION_COOKIE_SECURE", false),
		PruneInterval: pruneInterval,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "personnel_web"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Security configuration
	loginRate, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_PER_MINUTE: %w", err)
	}
	loginBurst, err := strconv.Atoi(getEnv("LOGIN_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_BURST: %w", err)
	}

	config.Security = SecurityConfig{
		AllowedOrigins:     getEnvSlice("CORS_ALLOWED_ORIGINS"),
		LoginRatePerMinute: loginRate,
		LoginBurst:         loginBurst,
	}

	// Feature configuration
	debounce, err := time.ParseDuration(getEnv("LOOKUP_DEBOUNCE", "250ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_DEBOUNCE: %w", err)
	}
	categoryTTL, err := time.ParseDuration(getEnv("CATEGORY_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATEGORY_CACHE_TTL: %w", err)
	}

	config.Feature = FeatureConfig{
		LookupDebounce:          debounce,
		CategoryCacheTTL:        categoryTTL,
		GenerateInitialPassword: getEnvBool("GENERATE_INITIAL_PASSWORD", true),
		EnforceLeaveDateOrder:   getEnvBool("ENFORCE_LEAVE_DATE_ORDER", false),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed on '%s'", fe.Namespace(), fe.Tag())
		}
		return err
	}
	if c.Session.Store == StorePostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when SESSION_STORE=postgres")
	}
	if c.Session.Store == StoreRedis && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE=redis")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL onto slog levels
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
