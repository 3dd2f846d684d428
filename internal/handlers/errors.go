package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kktculasim/ulasim-backend/internal/database"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the body of a successful admin mutation
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondError maps service errors onto HTTP statuses. Backend details are logged, never returned.
func respondError(c *gin.Context, logger *logrus.Logger, err error, message string) {
	var validationErr *models.ValidationError
	var rateErr *services.RateLimitError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
	case errors.As(err, &rateErr):
		if wait := time.Until(rateErr.RetryAfter); wait > 0 {
			c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
		}
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: rateErr.Message})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
	}
}

// statusForResult returns 503 for a failed search so clients can tell it from an empty one
func statusForResult(status models.ResultStatus) int {
	if status == models.ResultFailed {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
