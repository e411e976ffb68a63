package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Board defaults (used when a session request omits dimensions)
	BoardWidth  int
	BoardHeight int
	PegRows     int
	SlotCount   int

	// Session settings
	SessionExpiryMinutes int

	// Security
	JWTSecret       string
	AdminTokenHash  string // bcrypt hash of the admin token (overrides DB lookup if set)
	AdminSessionMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/plinko?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Board defaults
		BoardWidth:  getEnvInt("BOARD_WIDTH", 375),
		BoardHeight: getEnvInt("BOARD_HEIGHT", 500),
		PegRows:     getEnvInt("PEG_ROWS", 10),
		SlotCount:   getEnvInt("SLOT_COUNT", 6),

		// Sessions
		SessionExpiryMinutes: getEnvInt("SESSION_EXPIRY_MINUTES", 30),

		// Security
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		AdminTokenHash:  getEnv("ADMIN_TOKEN_HASH", ""),
		AdminSessionMin: getEnvInt("ADMIN_SESSION_MINUTES", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
