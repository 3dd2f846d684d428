package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// AdminHandler handles admin mutations and admin page data
type AdminHandler struct {
	adminService  *services.AdminService
	reportService *services.ReportService
	stopService   *services.StopService
	logger        *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService *services.AdminService,
	reportService *services.ReportService,
	stopService *services.StopService,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		reportService: reportService,
		stopService:   stopService,
		logger:        logger,
	}
}

// ResolveReport handles POST /api/admin/reports/resolve
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	var req models.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Report ID is required"})
		return
	}

	if err := h.reportService.Resolve(c.Request.Context(), req.ReportID); err != nil {
		respondError(c, h.logger, err, "Failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// DeleteSchedule handles DELETE /api/admin/schedules/delete
func (h *AdminHandler) DeleteSchedule(c *gin.Context) {
	var req models.DeleteScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Schedule ID is required"})
		return
	}

	if err := h.adminService.DeleteSchedule(c.Request.Context(), req.ScheduleID); err != nil {
		respondError(c, h.logger, err, "Failed to delete schedule")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CreateStop handles POST /api/admin/stops/create
func (h *AdminHandler) CreateStop(c *gin.Context) {
	var req models.CreateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stop name is required"})
		return
	}

	stop, err := h.stopService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create stop")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stop": stop})
}

// UpdateStop handles PUT /api/admin/stops/update
func (h *AdminHandler) UpdateStop(c *gin.Context) {
	var req models.UpdateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stop ID and name are required"})
		return
	}

	stop, err := h.stopService.Update(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update stop")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stop": stop})
}

// DeleteStop handles DELETE /api/admin/stops/delete
func (h *AdminHandler) DeleteStop(c *gin.Context) {
	var req models.DeleteStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stop ID is required"})
		return
	}

	if err := h.stopService.Delete(c.Request.Context(), req.StopID); err != nil {
		respondError(c, h.logger, err, "Failed to delete stop")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CreateRoute handles POST /api/admin/routes/create
func (h *AdminHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	route, err := h.adminService.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCompany) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Company not found"})
			return
		}
		respondError(c, h.logger, err, "Failed to create route")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "route": route})
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ReportsPage handles GET /admin/reports
func (h *AdminHandler) ReportsPage(c *gin.Context) {
	reports, err := h.reportService.ListUnresolved(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to load reports")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

// SchedulesPage handles GET /admin/schedules
func (h *AdminHandler) SchedulesPage(c *gin.Context) {
	var filter models.ScheduleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	schedules, err := h.adminService.ListSchedules(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load schedules")
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules, "count": len(schedules)})
}

// StopsPage handles GET /admin/stops
func (h *AdminHandler) StopsPage(c *gin.Context) {
	stops, err := h.stopService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to load stops")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops, "count": len(stops)})
}

// LoginPage handles GET /admin/login
func (h *AdminHandler) LoginPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loginPage))
}

const loginPage = `<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>KKTC Ulaşım - Yönetici Girişi</title>
<style>
body{font-family:system-ui,sans-serif;max-width:360px;margin:80px auto;padding:0 16px}
input,button{width:100%;padding:10px;margin-top:8px;box-sizing:border-box}
#error{color:#b00020;min-height:1.2em}
</style>
</head>
<body>
<h1>Yönetici Girişi</h1>
<form id="login">
<input type="password" name="secretKey" placeholder="Gizli anahtar" autocomplete="current-password" required>
<button type="submit">Giriş Yap</button>
<p id="error"></p>
</form>
<script>
document.getElementById('login').addEventListener('submit', async function (e) {
  e.preventDefault();
  const res = await fetch('/api/admin/login', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({secretKey: e.target.secretKey.value})
  });
  if (res.ok) { window.location.href = '/admin'; return; }
  document.getElementById('error').textContent = 'Geçersiz anahtar';
});
</script>
</body>
</html>
`
