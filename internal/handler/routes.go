package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(
	router *gin.Engine,
	activity *ActivityHandler,
	stats *StatsHandler,
	insight *InsightHandler,
	report *ReportHandler,
) {
	router.GET("/health", healthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/activity", activity.LogActivity)
		v1.GET("/activity/recent", activity.RecentEntries)
		v1.POST("/water", activity.LogWater)
		v1.PUT("/water", activity.SetWater)

		v1.GET("/stats/dashboard", stats.Dashboard)
		v1.GET("/stats/progress", stats.Progress)
		v1.GET("/stats/overview", stats.Overview)
		v1.GET("/stats/trend", stats.Trend)
		v1.GET("/stats/calorie-balance", stats.CalorieBalance)
		v1.GET("/stats/weekly-comparison", stats.Comparison)
		v1.GET("/stats/distribution", stats.Distribution)

		v1.POST("/ai/analysis", insight.Analyze)
		v1.POST("/ai/detect-food", insight.DetectFood)

		v1.GET("/reports/activity", report.Download)
	}
}

// healthCheck reports liveness for load balancers and uptime probes.
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "fittrack-backend",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
