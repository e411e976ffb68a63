package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/michael-h-patrianna/plinko-sub001/internal/api/handlers"
	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/michael-h-patrianna/plinko-sub001/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Stateless trajectory generation (replay verification)
		v1.POST("/trajectory", handlers.GenerateTrajectory(cfg))

		// Session endpoints
		session := v1.Group("/sessions")
		{
			session.POST("", handlers.CreateSession(db, rdb, cfg))
			session.GET("/:token", handlers.GetSession)
			session.GET("/:token/board", handlers.GetBoard)
			session.POST("/:token/target", handlers.SetWinningSlot(db, rdb, cfg))
			session.POST("/:token/drop", handlers.Drop(db, rdb, cfg))
			session.POST("/:token/complete", handlers.CompleteSession)
			session.POST("/:token/reset", handlers.ResetSession)
			session.GET("/:token/history", handlers.GetDropHistory(db))
			session.DELETE("/:token", handlers.EndSession)
			session.GET("/:token/ws", handlers.HandleSessionWebSocket(db, rdb, cfg))
		}

		// Admin endpoints
		adminGroup := v1.Group("/admin")
		{
			adminGroup.POST("/login", handlers.AdminLogin(db, rdb, cfg))

			protected := adminGroup.Group("")
			protected.Use(handlers.RequireAdmin(cfg))
			{
				protected.POST("/sessions/:token/force", handlers.AdminForceOutcome(db, rdb, cfg))
				protected.GET("/diagnostics", handlers.AdminDiagnostics(db, cfg))
				protected.GET("/audit", handlers.AdminAuditLogs(db))
			}
		}
	}
}
