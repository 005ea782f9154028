package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Rate limiter stores.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Token the external scheduler presents on /internal/jobs routes.
	JobToken       string
	JobItemTimeout time.Duration

	RedisURL       string
	RateLimit      string // ulule formatted rate, e.g. "100-M"
	RateLimitStore string
	RateCacheTTL   time.Duration
	NotifyQueue    string // Redis list the mail jobs are pushed to

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "expense-ledger")
	viper.SetDefault("JOB_TOKEN", "")
	viper.SetDefault("JOB_ITEM_TIMEOUT", "30s")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("RATE_LIMIT_STORE", RateLimitStoreMemory)
	viper.SetDefault("RATE_CACHE_TTL", "1m")
	viper.SetDefault("NOTIFY_QUEUE", "expense_ledger:mail_jobs")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.JobToken = viper.GetString("JOB_TOKEN")
	if cfg.JobToken == "" {
		log.Println("Warning: JOB_TOKEN not set. Internal job endpoints are disabled.")
	}
	cfg.JobItemTimeout = durationOrDefault("JOB_ITEM_TIMEOUT", 30*time.Second)

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RateLimitStore = viper.GetString("RATE_LIMIT_STORE")
	if cfg.RateLimitStore == RateLimitStoreRedis && cfg.RedisURL == "" {
		log.Println("Warning: RATE_LIMIT_STORE=redis but REDIS_URL is empty. Falling back to the memory store.")
		cfg.RateLimitStore = RateLimitStoreMemory
	}
	cfg.RateCacheTTL = durationOrDefault("RATE_CACHE_TTL", time.Minute)
	cfg.NotifyQueue = viper.GetString("NOTIFY_QUEUE")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
