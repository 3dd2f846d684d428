package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{URL: "postgres://localhost/ulasim", Driver: "postgres"},
		Admin: AdminConfig{
			SecretKey:     "right",
			SessionMode:   SessionModeMarker,
			SessionMaxAge: 7 * 24 * time.Hour,
		},
		Search: SearchConfig{ScheduleFetchConcurrency: 4},
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Missing Database URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.URL = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "mysql"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing Admin Secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.SecretKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_SECRET")
	})

	t.Run("Hash Instead Of Plain Secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.SecretKey = ""
		cfg.Admin.SecretHash = "$2a$10$abcdefghijklmnopqrstuv"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Signed Mode Requires Signing Key", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.SessionMode = SessionModeSigned
		assert.Error(t, cfg.Validate())

		cfg.Admin.SessionSigningKey = "signing-key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Unknown Session Mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.SessionMode = "jwt"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Login Lockout Needs Window", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit = RateLimitConfig{MaxLoginFailures: 5}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_LOGIN_WINDOW_SECONDS")

		cfg.RateLimit.LoginWindow = -time.Second
		assert.Error(t, cfg.Validate())

		cfg.RateLimit.LoginWindow = 15 * time.Minute
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Negative Report Window", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.ReportWindow = -time.Minute
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "REPORT_DUPLICATE_WINDOW_SECONDS")

		// zero disables duplicate suppression
		cfg.RateLimit.ReportWindow = 0
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Concurrency Floor", func(t *testing.T) {
		cfg := validConfig()
		cfg.Search.ScheduleFetchConcurrency = 0
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 1, cfg.Search.ScheduleFetchConcurrency)
	})
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("TEST_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsSlice("TEST_ORIGINS", nil))

	t.Setenv("TEST_EMPTY", " , ")
	assert.Equal(t, []string{"x"}, getEnvAsSlice("TEST_EMPTY", []string{"x"}))
}

func TestServerLocation(t *testing.T) {
	assert.Equal(t, time.UTC, ServerConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "UTC", ServerConfig{Timezone: "UTC"}.Location().String())
}
