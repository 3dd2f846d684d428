package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/middleware"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler mounted by the server
type Handlers struct {
	Search    *SearchHandler
	Report    *ReportHandler
	Map       *MapHandler
	AdminAuth *AdminAuthHandler
	Admin     *AdminHandler
}

// RegisterRoutes mounts the rider API, the admin API and the admin pages
func RegisterRoutes(router *gin.Engine, h Handlers, sessions middleware.SessionValidator, logger *logrus.Logger) {
	api := router.Group("/api")
	{
		api.GET("/locations", h.Search.GetLocations)
		api.GET("/schedules", h.Search.GetSchedules)
		api.GET("/smart-routes", h.Search.GetSmartRoutes)

		api.POST("/reports", h.Report.SubmitReport)
		api.GET("/issue-types", h.Report.GetIssueTypes)

		api.GET("/stops", h.Map.GetStops)
		api.GET("/stops/nearest", h.Map.GetNearestStop)
		api.GET("/map/route", h.Map.GetRouteLine)
	}

	// Login and logout are reachable without a session
	router.POST("/api/admin/login", h.AdminAuth.Login)
	router.POST("/api/admin/logout", h.AdminAuth.Logout)

	adminAPI := router.Group("/api/admin", middleware.AdminAPIGate(sessions, logger))
	{
		adminAPI.POST("/reports/resolve", h.Admin.ResolveReport)
		adminAPI.DELETE("/schedules/delete", h.Admin.DeleteSchedule)
		adminAPI.POST("/stops/create", h.Admin.CreateStop)
		adminAPI.PUT("/stops/update", h.Admin.UpdateStop)
		adminAPI.DELETE("/stops/delete", h.Admin.DeleteStop)
		adminAPI.POST("/routes/create", h.Admin.CreateRoute)
	}

	adminPages := router.Group("/admin", middleware.AdminPageGate(sessions, logger))
	{
		adminPages.GET("", h.Admin.Dashboard)
		adminPages.GET("/login", h.Admin.LoginPage)
		adminPages.GET("/reports", h.Admin.ReportsPage)
		adminPages.GET("/schedules", h.Admin.SchedulesPage)
		adminPages.GET("/stops", h.Admin.StopsPage)
	}
}
