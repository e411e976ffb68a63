package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
)

var startTime = time.Now()

const version = "1.2.0-deterministic-solver"

// HealthCheck returns server health status
func HealthCheck(c *gin.Context) {
	payload := gin.H{
		"status":  "ok",
		"service": "plinko-api",
		"version": version,
		"uptime":  time.Since(startTime).String(),
	}
	if game.Manager != nil {
		payload["active_sessions"] = game.Manager.GetActiveSessionCount()
	}
	c.JSON(http.StatusOK, payload)
}
