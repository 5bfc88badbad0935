package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseDriver   string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	ActivitySubject  string
	JWTSecret        string
	MenuCacheTTL     time.Duration
	RateLimitMax     int
	RateLimitWindow  time.Duration
	BcryptCost       int
	ShutdownTimeout  time.Duration
	CORSAllowOrigins string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// AuthEnabled reports whether bearer token checks guard the catalogue writes.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads configuration values from environment variables and optional .env file.
// Variables use the LEARNROUTE_ prefix, e.g. LEARNROUTE_DATABASE_URL.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LEARNROUTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "LearnRoute API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("nats.subject", "learnroute.activity.created")
	v.SetDefault("menu.cache_ttl", "5m")
	v.SetDefault("rate_limit.max", 20)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("bcrypt.cost", 10)
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("cors.allow_origins", "*")

	menuTTL, err := parseDuration(v, "menu.cache_ttl")
	if err != nil {
		return Config{}, err
	}
	window, err := parseDuration(v, "rate_limit.window")
	if err != nil {
		return Config{}, err
	}
	shutdown, err := parseDuration(v, "shutdown.timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseDriver:   strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		ActivitySubject:  v.GetString("nats.subject"),
		JWTSecret:        v.GetString("jwt.secret"),
		MenuCacheTTL:     menuTTL,
		RateLimitMax:     v.GetInt("rate_limit.max"),
		RateLimitWindow:  window,
		BcryptCost:       v.GetInt("bcrypt.cost"),
		ShutdownTimeout:  shutdown,
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
	}

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres driver")
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:learnroute.db?cache=shared"
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 20
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
