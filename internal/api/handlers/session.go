package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
	"github.com/michael-h-patrianna/plinko-sub001/internal/models"
	"github.com/michael-h-patrianna/plinko-sub001/internal/ws"
	"github.com/redis/go-redis/v9"
)

// CreateSession creates a new plinko session. Board dimensions and the seed
// are optional; missing fields fall back to the configured defaults and a
// fresh random seed.
func CreateSession(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			BoardWidth  float64 `json:"board_width"`
			BoardHeight float64 `json:"board_height"`
			PegRows     int     `json:"peg_rows"`
			SlotCount   int     `json:"slot_count"`
			Seed        *int64  `json:"seed"`
		}
		// Empty body means all defaults
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
		}

		boardCfg := game.BoardConfig{
			Width:     req.BoardWidth,
			Height:    req.BoardHeight,
			PegRows:   req.PegRows,
			SlotCount: req.SlotCount,
		}
		if boardCfg.Width == 0 {
			boardCfg.Width = float64(cfg.BoardWidth)
		}
		if boardCfg.Height == 0 {
			boardCfg.Height = float64(cfg.BoardHeight)
		}
		if boardCfg.PegRows == 0 {
			boardCfg.PegRows = cfg.PegRows
		}
		if boardCfg.SlotCount == 0 {
			boardCfg.SlotCount = cfg.SlotCount
		}

		seed := randomSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}

		session, err := game.Manager.CreateSession(boardCfg, seed)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session": session,
			"board":   session.Engine().Board(),
		})
	}
}

// GetSession returns session state by token
func GetSession(c *gin.Context) {
	token := c.Param("token")
	session, err := game.Manager.GetSession(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetBoard returns the static board geometry for rendering
func GetBoard(c *gin.Context) {
	token := c.Param("token")
	session, err := game.Manager.GetSession(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": session.Engine().Board()})
}

// SetWinningSlot points the session at a winning slot before the drop. The
// response includes the regenerated trajectory so callers can preload it.
func SetWinningSlot(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		var req struct {
			Slot *int `json:"slot" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot is required"})
			return
		}

		traj, err := game.Manager.SetWinningSlot(token, *req.Slot)
		if err != nil {
			if err.Error() == "session not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			respondEngineError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"trajectory": traj,
			"slot":       *req.Slot,
		})
	}
}

// Drop plays the session's trajectory and returns it frame by frame
func Drop(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		traj, err := game.Manager.Drop(token)
		if err != nil {
			if err.Error() == "session not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			respondEngineError(c, err)
			return
		}

		log.Printf("[API] Drop for session %s landed slot %d (%d frames)",
			token, traj.LandedSlot, len(traj.Frames))
		c.JSON(http.StatusOK, gin.H{"trajectory": traj})
	}
}

// CompleteSession acknowledges that playback of the current drop finished
func CompleteSession(c *gin.Context) {
	token := c.Param("token")
	if err := game.Manager.CompletePlayback(token); err != nil {
		if err.Error() == "session not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResetSession clears the target and memoized trajectories for a new round
func ResetSession(c *gin.Context) {
	token := c.Param("token")
	if err := game.Manager.ResetSession(token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// EndSession removes the session entirely
func EndSession(c *gin.Context) {
	token := c.Param("token")
	if _, err := game.Manager.GetSession(token); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	game.Manager.EndSession(token)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetDropHistory returns the persisted drop outcomes for a session, newest
// first. Frames are not stored; replay clients re-derive them from the seed.
func GetDropHistory(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "drop history unavailable"})
			return
		}
		token := c.Param("token")

		var records []models.DropRecord
		err := db.Select(&records, `
			SELECT id, session_token, seed, target_slot, landed_slot, frame_count, attempts, created_at
			FROM drop_history
			WHERE session_token = $1
			ORDER BY created_at DESC
			LIMIT 100
		`, token)
		if err != nil {
			log.Printf("[DB] Failed to fetch drop history for %s: %v", token, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drop history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"drops": records})
	}
}

// GenerateTrajectory produces a single stateless trajectory for a pinned
// seed. Useful for replay verification: the same request always yields the
// same frames.
func GenerateTrajectory(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req game.GenerateConfig
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		traj, err := game.GenerateTrajectory(req)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trajectory": traj})
	}
}

// HandleSessionWebSocket upgrades the connection and streams drop events for
// the session
func HandleSessionWebSocket(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if _, err := game.Manager.GetSession(token); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		ws.HandleSessionSocket(c.Writer, c.Request, token)
	}
}
