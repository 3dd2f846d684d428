package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/middleware"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/kktculasim/ulasim-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// AdminAuthHandler handles admin login and logout
type AdminAuthHandler struct {
	adminAuthService *services.AdminAuthService
	rateLimiter      *services.RateLimitService
	secureCookie     bool
	logger           *logrus.Logger
}

// NewAdminAuthHandler creates a new admin auth handler. secureCookie should be true in production.
func NewAdminAuthHandler(
	adminAuthService *services.AdminAuthService,
	rateLimiter *services.RateLimitService,
	secureCookie bool,
	logger *logrus.Logger,
) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminAuthService: adminAuthService,
		rateLimiter:      rateLimiter,
		secureCookie:     secureCookie,
		logger:           logger,
	}
}

// Login handles admin login requests
// @Summary Admin login
// @Description Compare the shared secret and set the admin session cookie
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Shared secret"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/admin/login [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SecretKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Secret key is required"})
		return
	}

	// headers are client controlled; only gin's trusted-proxy view keys the limiter
	ip := utils.GetRealIP(c)
	key := c.ClientIP()
	if err := h.rateLimiter.CheckLogin(key); err != nil {
		h.logger.WithFields(logrus.Fields{"ip": ip, "client_ip": key}).Warn("Admin login locked out")
		respondError(c, h.logger, err, "Login failed")
		return
	}

	if !h.adminAuthService.VerifySecret(req.SecretKey) {
		failures := h.rateLimiter.RecordLoginFailure(key)
		h.logger.WithFields(logrus.Fields{"ip": ip, "client_ip": key, "failures": failures}).Warn("Admin login failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid secret key"})
		return
	}
	h.rateLimiter.ResetLogin(key)

	value, err := h.adminAuthService.IssueSession()
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue admin session")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		middleware.AdminSessionCookie,
		value,
		int(h.adminAuthService.MaxAge().Seconds()),
		"/",
		"",
		h.secureCookie,
		true,
	)

	h.logger.WithField("ip", ip).Info("Admin login successful")
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Logout handles POST /api/admin/logout by deleting the session cookie
func (h *AdminAuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
