package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/kktculasim/ulasim-backend/internal/config"
	"github.com/kktculasim/ulasim-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SessionMarker is the cookie value of a marker-mode session
const SessionMarker = "authenticated"

// AdminAuthService checks the shared admin secret and issues session cookie values
type AdminAuthService struct {
	secretKey  string
	secretHash string
	mode       string
	jwtService *jwt.Service
	maxAge     time.Duration
	logger     *logrus.Logger
}

// NewAdminAuthService creates a new admin auth service
func NewAdminAuthService(cfg config.AdminConfig, logger *logrus.Logger) *AdminAuthService {
	s := &AdminAuthService{
		secretKey:  cfg.SecretKey,
		secretHash: cfg.SecretHash,
		mode:       cfg.SessionMode,
		maxAge:     cfg.SessionMaxAge,
		logger:     logger,
	}
	if s.mode == "" {
		s.mode = config.SessionModeMarker
	}
	if s.mode == config.SessionModeSigned {
		s.jwtService = jwt.NewService(cfg.SessionSigningKey, cfg.SessionMaxAge)
	}
	return s
}

// MaxAge returns the session lifetime
func (s *AdminAuthService) MaxAge() time.Duration {
	return s.maxAge
}

// VerifySecret reports whether candidate matches the configured admin secret
func (s *AdminAuthService) VerifySecret(candidate string) bool {
	if candidate == "" {
		return false
	}
	if s.secretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(candidate)) == nil
	}
	if s.secretKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.secretKey)) == 1
}

// IssueSession returns the cookie value for a freshly authenticated admin
func (s *AdminAuthService) IssueSession() (string, error) {
	if s.mode != config.SessionModeSigned {
		return SessionMarker, nil
	}
	token, err := s.jwtService.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to issue session: %w", err)
	}
	return token, nil
}

// ValidSession reports whether a cookie value grants admin access
func (s *AdminAuthService) ValidSession(value string) bool {
	if value == "" {
		return false
	}
	if s.mode != config.SessionModeSigned {
		return subtle.ConstantTimeCompare([]byte(value), []byte(SessionMarker)) == 1
	}
	if _, err := s.jwtService.ValidateSessionToken(value); err != nil {
		s.logger.WithError(err).Debug("Rejected admin session token")
		return false
	}
	return true
}
