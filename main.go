package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/internal/ai"
	"github.com/fittrack-id/fittrack-backend/internal/config"
	"github.com/fittrack-id/fittrack-backend/internal/handler"
	"github.com/fittrack-id/fittrack-backend/internal/middleware"
	"github.com/fittrack-id/fittrack-backend/internal/pdf"
	"github.com/fittrack-id/fittrack-backend/internal/service"
	"github.com/fittrack-id/fittrack-backend/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize OpenAI client
	aiClient, err := ai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.BaseURL,
		cfg.OpenAI.ChatModel,
		cfg.OpenAI.VisionModel,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize OpenAI client", zap.Error(err))
	}

	// Initialize the in-memory activity store
	activityStore := store.NewActivityStore(logger)

	// Initialize services
	activityService := service.NewActivityService(activityStore, logger)
	statsService := service.NewStatsService(activityStore, logger)

	// Initialize PDF generator and report service
	pdfGenerator := pdf.NewPDFGenerator(logger)
	reportService := service.NewReportService(activityStore, statsService, pdfGenerator, logger)

	// Initialize handlers
	activityHandler := handler.NewActivityHandler(activityService, logger)
	statsHandler := handler.NewStatsHandler(statsService, logger)
	insightHandler := handler.NewInsightHandler(aiClient, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register routes
	handler.RegisterRoutes(r, activityHandler, statsHandler, insightHandler, reportHandler)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
