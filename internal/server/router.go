package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iotsphere/iotsphere-backend/internal/handlers"
	"github.com/iotsphere/iotsphere-backend/internal/middleware"
)

type RouterConfig struct {
	HealthHandler     *handlers.HealthHandler
	ModelHandler      *handlers.ModelHandler
	MonitoringHandler *handlers.MonitoringHandler
	AlertHandler      *handlers.AlertHandler
	DeviceHandler     *handlers.DeviceHandler
	TagHandler        *handlers.TagHandler
	StreamHandler     *handlers.StreamHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestMetrics())

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Models
		api.GET("/models", cfg.ModelHandler.ListModels)
		api.POST("/models", cfg.ModelHandler.CreateModel)
		api.GET("/models/:id", cfg.ModelHandler.GetModel)
		api.POST("/models/:id/archive", cfg.ModelHandler.ArchiveModel)
		api.POST("/models/:id/unarchive", cfg.ModelHandler.UnarchiveModel)
		api.GET("/models/:id/versions", cfg.ModelHandler.ListVersions)
		api.GET("/models/:id/tags", cfg.ModelHandler.ListModelTags)

		// Model monitoring
		api.POST("/models/:id/metrics", cfg.MonitoringHandler.RecordMetrics)
		api.GET("/models/:id/metrics/history", cfg.MonitoringHandler.GetMetricsHistory)
		api.GET("/models/:id/metrics/latest", cfg.MonitoringHandler.GetLatestMetrics)

		// Alert rules and events
		api.GET("/alerts/rules", cfg.AlertHandler.ListRules)
		api.POST("/alerts/rules", cfg.AlertHandler.CreateRule)
		api.GET("/alerts/rules/:id", cfg.AlertHandler.GetRule)
		api.PUT("/alerts/rules/:id", cfg.AlertHandler.UpdateRule)
		api.DELETE("/alerts/rules/:id", cfg.AlertHandler.DeleteRule)
		api.GET("/alerts/triggered", cfg.MonitoringHandler.GetTriggeredAlerts)
		api.POST("/alerts/events/:id/resolve", cfg.MonitoringHandler.ResolveAlertEvent)

		// Devices and telemetry
		api.GET("/devices", cfg.DeviceHandler.ListDevices)
		api.POST("/devices", cfg.DeviceHandler.CreateDevice)
		api.GET("/devices/:id", cfg.DeviceHandler.GetDevice)
		api.PATCH("/devices/:id", cfg.DeviceHandler.UpdateDevice)
		api.DELETE("/devices/:id", cfg.DeviceHandler.DeleteDevice)
		api.POST("/devices/:id/readings", cfg.DeviceHandler.RecordReadings)
		api.GET("/devices/:id/readings", cfg.DeviceHandler.GetReadingHistory)
		api.GET("/devices/:id/readings/latest", cfg.DeviceHandler.GetLatestReading)

		// Tags
		api.GET("/tags", cfg.TagHandler.ListTags)
		api.POST("/tags", cfg.TagHandler.CreateTag)
		api.DELETE("/tags/:id", cfg.TagHandler.DeleteTag)
		api.POST("/tags/assign", cfg.TagHandler.AssignTag)
		api.POST("/tags/unassign", cfg.TagHandler.UnassignTag)

		// SSE
		api.GET("/stream", cfg.StreamHandler.Stream)
	}

	return router
}
