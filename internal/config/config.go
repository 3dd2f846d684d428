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

// Session modes for the admin cookie
const (
	SessionModeMarker = "marker" // cookie carries the literal "authenticated" marker
	SessionModeSigned = "signed" // cookie carries an HS256 token with expiry
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Admin panel configuration
	Admin AdminConfig

	// Routing service (map polylines)
	Routing RoutingConfig

	// Search tuning
	Search SearchConfig

	// In-memory throttles for admin login and report submission
	RateLimit RateLimitConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
	Timezone    string // wall-clock zone used for departure times
	// TrustedProxies lists proxy addresses or CIDRs whose forwarding headers
	// gin may use for ClientIP. Empty trusts none.
	TrustedProxies []string
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// Location returns the configured timezone, falling back to UTC
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	Driver             string // "postgres" (lib/pq) or "pgx" (pgx/v5 stdlib)
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// AdminConfig holds the shared-secret and session cookie settings
type AdminConfig struct {
	SecretKey         string // plain shared secret
	SecretHash        string // bcrypt hash of the shared secret, preferred over SecretKey
	SessionMode       string
	SessionSigningKey string
	SessionMaxAge     time.Duration
}

// RoutingConfig holds settings for the public driving-route service
type RoutingConfig struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

// SearchConfig holds tuning knobs for schedule search
type SearchConfig struct {
	ScheduleFetchConcurrency int
}

// RateLimitConfig holds the login lockout and duplicate report windows
type RateLimitConfig struct {
	MaxLoginFailures int
	LoginWindow      time.Duration
	ReportWindow     time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			Timezone:       getEnv("TIMEZONE", "Asia/Famagusta"),
			TrustedProxies: getEnvAsSlice("TRUSTED_PROXIES", nil),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Driver:             getEnv("DATABASE_DRIVER", "postgres"),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Admin: AdminConfig{
			SecretKey:         getEnv("ADMIN_SECRET_KEY", ""),
			SecretHash:        getEnv("ADMIN_SECRET_HASH", ""),
			SessionMode:       getEnv("ADMIN_SESSION_MODE", SessionModeMarker),
			SessionSigningKey: getEnv("ADMIN_SESSION_SIGNING_KEY", ""),
			SessionMaxAge:     time.Duration(getEnvAsInt("ADMIN_SESSION_MAX_AGE", 604800)) * time.Second,
		},
		Routing: RoutingConfig{
			BaseURL: getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org"),
			Profile: getEnv("ROUTING_PROFILE", "driving"),
			Timeout: time.Duration(getEnvAsInt("ROUTING_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Search: SearchConfig{
			ScheduleFetchConcurrency: getEnvAsInt("SCHEDULE_FETCH_CONCURRENCY", 4),
		},
		RateLimit: RateLimitConfig{
			MaxLoginFailures: getEnvAsInt("ADMIN_LOGIN_MAX_FAILURES", 5),
			LoginWindow:      time.Duration(getEnvAsInt("ADMIN_LOGIN_WINDOW_SECONDS", 900)) * time.Second,
			ReportWindow:     time.Duration(getEnvAsInt("REPORT_DUPLICATE_WINDOW_SECONDS", 60)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "pgx" {
		return fmt.Errorf("invalid DATABASE_DRIVER: %s (must be 'postgres' or 'pgx')", c.Database.Driver)
	}

	if c.Admin.SecretKey == "" && c.Admin.SecretHash == "" {
		return fmt.Errorf("ADMIN_SECRET_KEY or ADMIN_SECRET_HASH is required")
	}

	switch c.Admin.SessionMode {
	case SessionModeMarker:
	case SessionModeSigned:
		if c.Admin.SessionSigningKey == "" {
			return fmt.Errorf("ADMIN_SESSION_SIGNING_KEY is required when ADMIN_SESSION_MODE=signed")
		}
	default:
		return fmt.Errorf("invalid ADMIN_SESSION_MODE: %s (must be 'marker' or 'signed')", c.Admin.SessionMode)
	}

	if c.Admin.SessionMaxAge <= 0 {
		return fmt.Errorf("ADMIN_SESSION_MAX_AGE must be positive")
	}

	if c.RateLimit.MaxLoginFailures > 0 && c.RateLimit.LoginWindow <= 0 {
		return fmt.Errorf("ADMIN_LOGIN_WINDOW_SECONDS must be positive when ADMIN_LOGIN_MAX_FAILURES is set")
	}

	if c.RateLimit.ReportWindow < 0 {
		return fmt.Errorf("REPORT_DUPLICATE_WINDOW_SECONDS must not be negative")
	}

	if c.Search.ScheduleFetchConcurrency <= 0 {
		c.Search.ScheduleFetchConcurrency = 1
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
