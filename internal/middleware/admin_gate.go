package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminSessionCookie is the name of the admin session cookie
const AdminSessionCookie = "admin_session"

// AdminLoginPath is the only admin page reachable without a session
const AdminLoginPath = "/admin/login"

// AdminAuthenticatedKey marks a request that passed the gate
const AdminAuthenticatedKey = "admin_authenticated"

// SessionValidator decides whether a cookie value grants admin access
type SessionValidator interface {
	ValidSession(value string) bool
}

func hasSession(c *gin.Context, validator SessionValidator) bool {
	value, err := c.Cookie(AdminSessionCookie)
	if err != nil {
		return false
	}
	return validator.ValidSession(value)
}

// AdminPageGate redirects unauthenticated admin page requests to the login page
func AdminPageGate(validator SessionValidator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == AdminLoginPath {
			c.Next()
			return
		}

		if !hasSession(c, validator) {
			logger.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Info("Redirecting anonymous admin request to login")
			c.Redirect(http.StatusSeeOther, AdminLoginPath)
			c.Abort()
			return
		}

		c.Set(AdminAuthenticatedKey, true)
		c.Next()
	}
}

// AdminAPIGate rejects unauthenticated admin API calls with 401
func AdminAPIGate(validator SessionValidator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasSession(c, validator) {
			logger.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"ip":     c.ClientIP(),
			}).Warn("Rejected unauthenticated admin API call")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Set(AdminAuthenticatedKey, true)
		c.Next()
	}
}
