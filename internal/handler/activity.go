package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/service"
	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// ActivityHandler implements the activity logging endpoints.
type ActivityHandler struct {
	service *service.ActivityService
	logger  *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger,
	}
}

type logActivityRequest struct {
	Email string `json:"email"`
	service.LogRequest
}

// LogActivity handles POST /api/v1/activity.
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	event, err := h.service.LogActivity(req.Email, req.LogRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, event)
}

type logWaterRequest struct {
	Email  string  `json:"email"`
	Liters float64 `json:"liters"`
}

// LogWater handles POST /api/v1/water, adding onto today's total.
func (h *ActivityHandler) LogWater(c *gin.Context) {
	var req logWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	total, err := h.service.LogWater(req.Email, req.Liters)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":       model.DayKey(time.Now()),
		"day_total": total,
	})
}

type setWaterRequest struct {
	Email  string  `json:"email"`
	Day    string  `json:"day"`
	Liters float64 `json:"liters"`
}

// SetWater handles PUT /api/v1/water, overwriting one day's total.
func (h *ActivityHandler) SetWater(c *gin.Context) {
	var req setWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.service.SetWater(req.Email, req.Day, req.Liters); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":       req.Day,
		"day_total": req.Liters,
	})
}

// RecentEntries handles GET /api/v1/activity/recent.
func (h *ActivityHandler) RecentEntries(c *gin.Context) {
	email := c.Query("email")
	metric := model.MetricType(c.Query("type"))

	entries, err := h.service.RecentEntries(email, metric, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":    metric,
		"entries": entries,
		"count":   len(entries),
	})
}
