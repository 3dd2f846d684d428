package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/kktculasim/ulasim-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// ReportHandler handles rider issue reports
type ReportHandler struct {
	service     *services.ReportService
	rateLimiter *services.RateLimitService
	logger      *logrus.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *services.ReportService, rateLimiter *services.RateLimitService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// SubmitReport handles POST /api/reports
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req models.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, h.logger, err, "Failed to submit report")
		return
	}

	key := c.ClientIP()
	if err := h.rateLimiter.ReserveReport(key, req.ScheduleID); err != nil {
		respondError(c, h.logger, err, "Failed to submit report")
		return
	}

	report, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		h.rateLimiter.ReleaseReport(key, req.ScheduleID)
		respondError(c, h.logger, err, "Failed to submit report")
		return
	}

	device := utils.ParseUserAgent(c.Request.UserAgent())
	h.logger.WithFields(logrus.Fields{
		"report_id":   report.ID,
		"ip":          utils.GetRealIP(c),
		"device_type": device.DeviceType,
		"platform":    device.Platform,
	}).Info("Report received")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

// GetIssueTypes handles GET /api/issue-types
func (h *ReportHandler) GetIssueTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"issue_types": models.IssueTypes(),
	})
}
