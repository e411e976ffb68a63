package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/michael-h-patrianna/plinko-sub001/internal/api"
	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/michael-h-patrianna/plinko-sub001/internal/database"
	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
	"github.com/michael-h-patrianna/plinko-sub001/internal/migrations"
	"github.com/michael-h-patrianna/plinko-sub001/internal/redis"
	"github.com/michael-h-patrianna/plinko-sub001/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Initialize the game manager with DB, Redis and config
	game.InitializeManager(db, rdb, cfg)

	// Wire Redis into the WS layer and start the drop event subscriber
	ws.SetRedisClient(rdb, cfg)
	ws.StartDropEventSubscriber(context.Background())

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, db, rdb, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Plinko server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
