package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type markerValidator struct{}

func (markerValidator) ValidSession(value string) bool { return value == "authenticated" }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupGateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	admin := router.Group("/admin", AdminPageGate(markerValidator{}, quietLogger()))
	admin.GET("", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"stats": "secret"}) })
	admin.GET("/reports", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"reports": "secret"}) })
	admin.GET("/login", func(c *gin.Context) { c.String(http.StatusOK, "login form") })

	api := router.Group("/api/admin", AdminAPIGate(markerValidator{}, quietLogger()))
	api.POST("/stops/create", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })

	return router
}

func TestAdminPageGate(t *testing.T) {
	router := setupGateRouter()

	t.Run("Anonymous Is Redirected", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/reports"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusSeeOther, w.Code, path)
			assert.Equal(t, AdminLoginPath, w.Header().Get("Location"))
			assert.NotContains(t, w.Body.String(), "secret")
		}
	})

	t.Run("Wrong Marker Is Redirected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "yes"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("Login Page Is Never Gated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "login form", w.Body.String())
	})

	t.Run("Valid Session Passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "authenticated"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "secret")
	})
}

func TestAdminAPIGate(t *testing.T) {
	router := setupGateRouter()

	t.Run("Missing Cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/stops/create", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("Valid Cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/admin/stops/create", nil)
		req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "authenticated"})
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
