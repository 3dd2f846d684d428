package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/config"
	cache "github.com/patrickmn/go-cache"
)

// RateLimitService throttles admin login attempts and duplicate report submissions.
// State is per process and is lost on restart.
type RateLimitService struct {
	cfg config.RateLimitConfig

	mu            sync.Mutex
	loginFailures *cache.Cache
	reports       *cache.Cache
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(cfg config.RateLimitConfig) *RateLimitService {
	return &RateLimitService{
		cfg:           cfg,
		loginFailures: cache.New(cfg.LoginWindow, 10*time.Minute),
		reports:       cache.New(cfg.ReportWindow, 10*time.Minute),
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "login" or "report"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CheckLogin rejects an IP that used up its failed login attempts
func (s *RateLimitService) CheckLogin(ip string) error {
	// a zero window would make go-cache entries never expire
	if s.cfg.MaxLoginFailures <= 0 || s.cfg.LoginWindow <= 0 {
		return nil
	}

	value, expires, found := s.loginFailures.GetWithExpiration(ip)
	if !found || value.(int) < s.cfg.MaxLoginFailures {
		return nil
	}
	return &RateLimitError{
		Message:    fmt.Sprintf("Too many failed login attempts. Please try again after %s", expires.Format("15:04:05")),
		RetryAfter: expires,
		Type:       "login",
	}
}

// RecordLoginFailure counts a failed attempt. The window starts at the first failure.
func (s *RateLimitService) RecordLoginFailure(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.loginFailures.IncrementInt(ip, 1)
	if err != nil {
		s.loginFailures.Set(ip, 1, cache.DefaultExpiration)
		return 1
	}
	return count
}

// ResetLogin forgets failures after a successful login
func (s *RateLimitService) ResetLogin(ip string) {
	s.loginFailures.Delete(ip)
}

// ReserveReport allows one report per IP and schedule within the report window
func (s *RateLimitService) ReserveReport(ip, scheduleID string) error {
	if s.cfg.ReportWindow <= 0 {
		return nil
	}

	key := reportKey(ip, scheduleID)
	if err := s.reports.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		_, expires, _ := s.reports.GetWithExpiration(key)
		return &RateLimitError{
			Message:    "This departure was already reported. Please wait before reporting it again",
			RetryAfter: expires,
			Type:       "report",
		}
	}
	return nil
}

// ReleaseReport drops a reservation whose submission failed
func (s *RateLimitService) ReleaseReport(ip, scheduleID string) {
	s.reports.Delete(reportKey(ip, scheduleID))
}

func reportKey(ip, scheduleID string) string {
	return ip + "|" + scheduleID
}
