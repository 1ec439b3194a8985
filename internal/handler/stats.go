package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/metrics"
	"github.com/fittrack-id/fittrack-backend/internal/service"
)

// StatsHandler implements the dashboard and analytics endpoints.
type StatsHandler struct {
	service *service.StatsService
	logger  *zap.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger,
	}
}

// Dashboard handles GET /api/v1/stats/dashboard.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Progress handles GET /api/v1/stats/progress.
func (h *StatsHandler) Progress(c *gin.Context) {
	progress, err := h.service.Progress(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Overview handles GET /api/v1/stats/overview. The period is selected with
// either ?period=today|7days|30days|90days or a custom ?start=&end= pair.
func (h *StatsHandler) Overview(c *gin.Context) {
	email := c.Query("email")

	if start, end := c.Query("start"), c.Query("end"); start != "" || end != "" {
		h.customOverview(c, email, start, end)
		return
	}

	period := c.DefaultQuery("period", string(metrics.WindowLast7Days))
	overview, err := h.service.Overview(email, period, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *StatsHandler) customOverview(c *gin.Context, email, start, end string) {
	startTime, err := parseBoundary(start, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid start boundary",
			Details: stringPtr(err.Error()),
		})
		return
	}

	endTime, err := parseBoundary(end, true)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid end boundary",
			Details: stringPtr(err.Error()),
		})
		return
	}

	overview, err := h.service.OverviewRange(email, startTime, endTime)
	if err != nil {
		if errors.Is(err, metrics.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, errorResponse{
				Code:    "INVALID_RANGE",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// parseBoundary accepts either an RFC 3339 timestamp or a plain date. A
// date-only end boundary covers its whole calendar day.
func parseBoundary(value string, isEnd bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("boundary is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 timestamp or YYYY-MM-DD date: %w", err)
	}
	if isEnd {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return t, nil
}

// Trend handles GET /api/v1/stats/trend.
func (h *StatsHandler) Trend(c *gin.Context) {
	series, err := h.service.Trend(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, series)
}

// CalorieBalance handles GET /api/v1/stats/calorie-balance.
func (h *StatsHandler) CalorieBalance(c *gin.Context) {
	series, err := h.service.CalorieBalance(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, series)
}

// Comparison handles GET /api/v1/stats/weekly-comparison.
func (h *StatsHandler) Comparison(c *gin.Context) {
	comparison, err := h.service.Comparison(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// Distribution handles GET /api/v1/stats/distribution.
func (h *StatsHandler) Distribution(c *gin.Context) {
	dist, err := h.service.Distribution(c.Query("email"), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": dist})
}
