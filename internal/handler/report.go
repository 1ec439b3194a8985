package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/service"
)

// ReportHandler implements the report download endpoint.
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// Download handles GET /api/v1/reports/activity, rendering the PDF on the
// fly and streaming it back.
func (h *ReportHandler) Download(c *gin.Context) {
	email := c.Query("email")
	period := c.DefaultQuery("period", "7days")

	pdfBytes, filename, err := h.service.Generate(email, period, time.Now())
	if err != nil {
		h.logger.Error("failed to generate report",
			zap.Error(err),
			zap.String("user", email),
			zap.String("period", period),
		)
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "REPORT_ERROR",
			Message: "Failed to generate report",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
