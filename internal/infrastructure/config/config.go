package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	HTTP     HTTPConfig
	Cache    CacheConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// DatabaseConfig holds the direct Postgres connection, used when Supabase is not configured
type DatabaseConfig struct {
	URL             string
	Timezone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SupabaseConfig holds the PostgREST endpoint and the JWT secret of the project
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	JWTSecret  string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	CORSOrigins     []string
	MonitoredPaths  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// CacheConfig holds in-memory cache settings
type CacheConfig struct {
	StatusTTL time.Duration
}

// IsProduction reports whether APP_ENV is production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UsePostgrest reports whether rows go through the Supabase REST API
// instead of a direct database connection
func (c *Config) UsePostgrest() bool {
	return c.Supabase.URL != "" && c.Supabase.ServiceKey != ""
}

// Load reads configuration.
// Priority (highest to lowest):
// 1. Environment variables (e.g., DATABASE_URL)
// 2. .env file in the working directory
// 3. Built-in defaults
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("PORT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Timezone:        v.GetString("DB_TIMEZONE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Supabase: SupabaseConfig{
			URL:        v.GetString("SUPABASE_URL"),
			ServiceKey: v.GetString("SUPABASE_SERVICE_KEY"),
			JWTSecret:  v.GetString("SUPABASE_JWT_SECRET"),
		},
		HTTP: HTTPConfig{
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
			MonitoredPaths:  splitList(v.GetString("MONITORED_PATHS")),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		Cache: CacheConfig{
			StatusTTL: v.GetDuration("STATUS_CACHE_TTL"),
		},
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default
func (c *Config) Validate() error {
	if c.Supabase.JWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is not defined in the environment")
	}
	if !c.UsePostgrest() && c.Database.URL == "" {
		return fmt.Errorf("either SUPABASE_URL and SUPABASE_SERVICE_KEY or DATABASE_URL must be defined")
	}
	if c.Cache.StatusTTL <= 0 {
		return fmt.Errorf("STATUS_CACHE_TTL must be positive, got %s", c.Cache.StatusTTL)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("MONITORED_PATHS", "/api/v1/surveys,/api/v1/analytics")
	v.SetDefault("HTTP_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("STATUS_CACHE_TTL", 30*time.Second)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
