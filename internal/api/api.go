// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nktomer45/planboard/internal/api/handlers"
	"github.com/nktomer45/planboard/internal/api/middleware"
	"github.com/nktomer45/planboard/internal/dimension"
	"github.com/nktomer45/planboard/internal/service"
)

type Services struct {
	Planning   *service.PlanningService
	Metrics    *service.MetricsService
	Dimensions *dimension.Registry
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Planning != nil {
			planningHandler := handlers.NewPlanningHandler(services.Planning)
			planningGroup := apiGroup.Group("/planning")
			{
				planningGroup.GET("/stores", planningHandler.GetStores)
				planningGroup.GET("/skus", planningHandler.GetSKUs)
				planningGroup.GET("/calendar", planningHandler.GetCalendar)
				planningGroup.GET("/grid", planningHandler.GetGrid)
				planningGroup.POST("/refresh", planningHandler.Refresh)
				planningGroup.PUT("/rows/:id/units/:week", planningHandler.UpdateUnits)
				planningGroup.GET("/weekly", planningHandler.GetWeekly)
				planningGroup.GET("/export", planningHandler.Export)
				planningGroup.POST("/publish", planningHandler.Publish)
				planningGroup.GET("/exports", planningHandler.ListExports)
			}
		}

		if services.Metrics != nil {
			metricsHandler := handlers.NewMetricsHandler(services.Metrics)
			metricsGroup := apiGroup.Group("/metrics")
			{
				metricsGroup.POST("/calculate", metricsHandler.Calculate)
				metricsGroup.POST("/groups", metricsHandler.Groups)
				metricsGroup.GET("/margin", metricsHandler.GetMargin)
			}
			apiGroup.GET("/dimensions/grid", metricsHandler.GetDimensionGrid)
			apiGroup.POST("/dimensions/grid", metricsHandler.PostDimensionGrid)
		}

		if services.Dimensions != nil {
			dimensionHandler := handlers.NewDimensionHandler(services.Dimensions)
			dimensionGroup := apiGroup.Group("/dimensions")
			{
				dimensionGroup.GET("", dimensionHandler.ListKinds)
				dimensionGroup.GET("/:kind", dimensionHandler.List)
				dimensionGroup.POST("/:kind", dimensionHandler.Add)
				dimensionGroup.PUT("/:kind/:id", dimensionHandler.Update)
				dimensionGroup.DELETE("/:kind/:id", dimensionHandler.Delete)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
