package services

import (
	"errors"
	"testing"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_Login(t *testing.T) {
	t.Run("Locks After Max Failures", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{MaxLoginFailures: 3, LoginWindow: time.Minute})
		ip := "10.0.0.1"

		for i := 1; i <= 2; i++ {
			assert.NoError(t, service.CheckLogin(ip))
			assert.Equal(t, i, service.RecordLoginFailure(ip))
		}
		assert.NoError(t, service.CheckLogin(ip))
		service.RecordLoginFailure(ip)

		err := service.CheckLogin(ip)
		var rateErr *RateLimitError
		require.True(t, errors.As(err, &rateErr))
		assert.Equal(t, "login", rateErr.Type)
		assert.True(t, rateErr.RetryAfter.After(time.Now()))

		// other addresses are unaffected
		assert.NoError(t, service.CheckLogin("10.0.0.2"))
	})

	t.Run("Success Resets", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{MaxLoginFailures: 1, LoginWindow: time.Minute})

		service.RecordLoginFailure("10.0.0.1")
		assert.Error(t, service.CheckLogin("10.0.0.1"))

		service.ResetLogin("10.0.0.1")
		assert.NoError(t, service.CheckLogin("10.0.0.1"))
	})

	t.Run("Window Expires", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{MaxLoginFailures: 1, LoginWindow: 20 * time.Millisecond})

		service.RecordLoginFailure("10.0.0.1")
		assert.Error(t, service.CheckLogin("10.0.0.1"))

		time.Sleep(40 * time.Millisecond)
		assert.NoError(t, service.CheckLogin("10.0.0.1"))
	})

	t.Run("Disabled", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{LoginWindow: time.Minute})

		for i := 0; i < 10; i++ {
			service.RecordLoginFailure("10.0.0.1")
		}
		assert.NoError(t, service.CheckLogin("10.0.0.1"))
	})

	t.Run("Zero Window Never Locks Permanently", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{MaxLoginFailures: 1})

		service.RecordLoginFailure("10.0.0.1")
		service.RecordLoginFailure("10.0.0.1")
		assert.NoError(t, service.CheckLogin("10.0.0.1"))
	})
}

func TestRateLimit_Report(t *testing.T) {
	t.Run("Duplicate Blocked", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{ReportWindow: time.Minute})

		require.NoError(t, service.ReserveReport("10.0.0.1", "s1"))

		err := service.ReserveReport("10.0.0.1", "s1")
		var rateErr *RateLimitError
		require.True(t, errors.As(err, &rateErr))
		assert.Equal(t, "report", rateErr.Type)

		assert.NoError(t, service.ReserveReport("10.0.0.1", "s2"))
		assert.NoError(t, service.ReserveReport("10.0.0.2", "s1"))
	})

	t.Run("Release Allows Retry", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{ReportWindow: time.Minute})

		require.NoError(t, service.ReserveReport("10.0.0.1", "s1"))
		service.ReleaseReport("10.0.0.1", "s1")
		assert.NoError(t, service.ReserveReport("10.0.0.1", "s1"))
	})

	t.Run("Disabled", func(t *testing.T) {
		service := NewRateLimitService(config.RateLimitConfig{})

		assert.NoError(t, service.ReserveReport("10.0.0.1", "s1"))
		assert.NoError(t, service.ReserveReport("10.0.0.1", "s1"))
	})
}
