// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"matunda/internal/domain/batch"
	"matunda/internal/domain/reports"
	"matunda/internal/infrastructure/http/v1/handlers"
	"matunda/internal/infrastructure/http/v1/middleware"
	"matunda/internal/infrastructure/storage/postgres"
	"matunda/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// BatchService for batch lifecycle endpoints
	BatchService *batch.Service

	// ReportService for matching and report endpoints
	ReportService *reports.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(cfg.JWTValidator))
	{
		baseHandler := handlers.NewBaseHandler()

		batchHandler := handlers.NewBatchHandler(baseHandler, cfg.BatchService)
		batches := apiV1.Group("/batches")
		{
			// Mutations are restricted to stock-keeping roles; any
			// authenticated user may read.
			batches.POST("", middleware.RequireRole("owner", "manager"), batchHandler.Open)
			batches.GET("", batchHandler.List)
			batches.GET("/open", batchHandler.ListOpen)
			batches.GET("/:id", batchHandler.Get)
			batches.POST("/:id/close", middleware.RequireRole("owner", "manager"), batchHandler.Close)
		}

		reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportService)
		apiV1.GET("/sales/matched", reportsHandler.MatchedSales)

		reportsGroup := apiV1.Group("/reports")
		{
			reportsGroup.GET("/fruit-profitability", reportsHandler.FruitProfitability)
			reportsGroup.GET("/period-summaries", reportsHandler.PeriodSummaries)
		}
	}

	return router
}
