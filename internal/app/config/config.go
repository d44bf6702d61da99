package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

type Config struct {
	HTTPAddr        string
	Environment     string
	LogLevel        string
	CORSAllowOrigin string
	HTTPTimeout     time.Duration

	StoreDriver            string
	DatabaseURL            string
	SQLitePath             string
	SupabaseURL            string
	SupabaseServiceRoleKey string

	// InternalToken guards the write API when set.
	InternalToken string
	// AccessPassword enables the bcrypt access gate when set.
	AccessPassword string

	SentryDSN         string
	SentryEnvironment string
	SentryRelease     string
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		Environment:     env("APP_ENV", "development"),
		LogLevel:        env("LOG_LEVEL", ""),
		CORSAllowOrigin: env("CORS_ALLOW_ORIGIN", "*"),
		HTTPTimeout:     envDuration("HTTP_TIMEOUT", 15*time.Second),

		StoreDriver:            strings.ToLower(env("STORE_DRIVER", DriverMemory)),
		DatabaseURL:            env("DATABASE_URL", ""),
		SQLitePath:             env("SQLITE_PATH", "tradedocs.db"),
		SupabaseURL:            env("SUPABASE_URL", ""),
		SupabaseServiceRoleKey: env("SUPABASE_SERVICE_ROLE_KEY", ""),

		InternalToken:  env("INTERNAL_TOKEN", ""),
		AccessPassword: env("ACCESS_PASSWORD", ""),

		SentryDSN:         env("SENTRY_DSN", ""),
		SentryEnvironment: env("SENTRY_ENVIRONMENT", "production"),
		SentryRelease:     env("SENTRY_RELEASE", "tradedocs@1.0.0"),
	}
	return cfg, cfg.validate()
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("missing env DATABASE_URL for store driver %q", c.StoreDriver)
		}
	case DriverSupabase:
		if c.SupabaseURL == "" || c.SupabaseServiceRoleKey == "" {
			return fmt.Errorf("missing env SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY for store driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
