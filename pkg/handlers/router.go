package handlers

import (
	"crypto/subtle"
	"net/http"

	config "clock-client/configs"
	"clock-client/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter はHTTP APIのルーティングを組み立てます。
func NewRouter(cfg *config.Config, clockService *services.ClockService, monitoringService *services.MonitoringService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(monitoringService.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-KEY")
	r.Use(cors.New(corsConfig))

	clockHandler := NewClockHandler(clockService)
	adminHandler := NewAdminHandler(cfg)
	monitoringHandler := NewMonitoringHandler(monitoringService)

	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware(cfg.APIKey))
	{
		clockGroup := v1.Group("/clock")
		{
			clockGroup.POST("/analyze", clockHandler.Analyze)
			clockGroup.POST("/resolve", clockHandler.Resolve)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	return r
}

// AuthMiddleware はX-API-KEYヘッダーを検証します。apiKeyが空の場合は認証を行いません。
func AuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		providedKey := c.GetHeader("X-API-KEY")
		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
