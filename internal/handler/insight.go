package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/ai"
)

// InsightHandler relays coaching questions and food photos to the AI
// client. The API key stays on the server; clients only see the answers.
type InsightHandler struct {
	client *ai.Client
	logger *zap.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(client *ai.Client, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		client: client,
		logger: logger,
	}
}

type analyzeRequest struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
}

// Analyze handles POST /api/v1/ai/analysis.
func (h *InsightHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Prompt is required",
		})
		return
	}

	answer, err := h.client.Analyze(c.Request.Context(), req.Category, req.Prompt)
	if err != nil {
		h.logger.Error("AI analysis failed",
			zap.Error(err),
			zap.String("category", req.Category),
		)
		status, code := classifyAIError(err)
		c.JSON(status, errorResponse{
			Code:    code,
			Message: "Failed to get AI analysis",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": req.Category,
		"answer":   answer,
	})
}

type detectFoodRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// DetectFood handles POST /api/v1/ai/detect-food.
func (h *InsightHandler) DetectFood(c *gin.Context) {
	var req detectFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if req.ImageBase64 == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Image is required",
		})
		return
	}

	estimate, err := h.client.DetectFood(c.Request.Context(), req.ImageBase64)
	if err != nil {
		h.logger.Error("food detection failed", zap.Error(err))
		status, code := classifyAIError(err)
		c.JSON(status, errorResponse{
			Code:    code,
			Message: "Failed to analyze food photo",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// classifyAIError maps upstream AI failures onto response statuses so
// clients can distinguish quota, rate limit and auth problems.
func classifyAIError(err error) (int, string) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "quota"):
		return http.StatusPaymentRequired, "QUOTA_EXCEEDED"
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication"):
		return http.StatusUnauthorized, "INVALID_API_KEY"
	default:
		return http.StatusInternalServerError, "AI_ERROR"
	}
}
