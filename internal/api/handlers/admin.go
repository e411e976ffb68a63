package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"
	"github.com/michael-h-patrianna/plinko-sub001/internal/admin"
	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/michael-h-patrianna/plinko-sub001/internal/game"
	"github.com/redis/go-redis/v9"
)

// AdminLogin validates an operator token and issues a short-lived JWT.
// The token is checked against ADMIN_TOKEN_HASH when set, otherwise against
// the admin_accounts table.
func AdminLogin(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		username := strings.TrimSpace(req.Username)
		plainToken := strings.TrimSpace(req.Token)

		var verified bool
		if cfg.AdminTokenHash != "" {
			verified = admin.VerifyAdminToken(cfg.AdminTokenHash, plainToken)
		} else if db != nil {
			account, err := admin.GetAdminAccount(db, username)
			if err == nil {
				verified = admin.VerifyAdminToken(account.TokenHash, plainToken)
			}
		}

		if !verified {
			log.Printf("[ADMIN] Login failed for username %s", username)
			admin.LogAdminAction(db, username, c.ClientIP(), "/api/v1/admin/login", "login", map[string]interface{}{"username": username}, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		expiry := time.Duration(cfg.AdminSessionMin) * time.Minute
		claims := jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("[ADMIN] Failed to sign JWT for %s: %v", username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}

		admin.LogAdminAction(db, username, c.ClientIP(), "/api/v1/admin/login", "login_success", map[string]interface{}{"username": username}, true)
		c.JSON(http.StatusOK, gin.H{
			"token":      signed,
			"expires_in": int(expiry.Seconds()),
		})
	}
}

// RequireAdmin validates the Bearer JWT on admin routes
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("admin_username", claims.Subject)
		c.Next()
	}
}

// AdminForceOutcome points a live session at a winning slot. This is the
// operator-facing version of SetWinningSlot and is always audited.
func AdminForceOutcome(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		var req struct {
			Slot *int `json:"slot" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slot is required"})
			return
		}

		username := c.GetString("admin_username")
		details := map[string]interface{}{"session": token, "slot": *req.Slot}

		traj, err := game.Manager.SetWinningSlot(token, *req.Slot)
		if err != nil {
			admin.LogAdminAction(db, username, c.ClientIP(), "/api/v1/admin/sessions/force", "force_outcome", details, false)
			if err.Error() == "session not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
				return
			}
			respondEngineError(c, err)
			return
		}

		admin.LogAdminAction(db, username, c.ClientIP(), "/api/v1/admin/sessions/force", "force_outcome", details, true)
		log.Printf("[ADMIN] %s forced session %s to slot %d (%d attempts)",
			username, token, *req.Slot, traj.Attempts)
		c.JSON(http.StatusOK, gin.H{
			"slot":        *req.Slot,
			"attempts":    traj.Attempts,
			"frame_count": len(traj.Frames),
			"landed_slot": traj.LandedSlot,
		})
	}
}

// AdminDiagnostics runs a seed sweep over the configured board and reports
// physical extremes and the landing distribution
func AdminDiagnostics(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		seeds, _ := strconv.Atoi(c.DefaultQuery("seeds", "100"))
		if seeds < 1 || seeds > 10000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seeds must be between 1 and 10000"})
			return
		}
		target, _ := strconv.Atoi(c.DefaultQuery("target", "-1"))

		boardCfg := game.BoardConfig{
			Width:     float64(cfg.BoardWidth),
			Height:    float64(cfg.BoardHeight),
			PegRows:   cfg.PegRows,
			SlotCount: cfg.SlotCount,
		}

		result, err := game.RunSweep(boardCfg, seeds, 7919, target)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		username := c.GetString("admin_username")
		admin.LogAdminAction(db, username, c.ClientIP(), "/api/v1/admin/diagnostics", "diagnostics",
			map[string]interface{}{"seeds": seeds, "target": target, "failures": result.Failures}, true)
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

// AdminAuditLogs returns recent admin actions with pagination
func AdminAuditLogs(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit log unavailable"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit < 1 || limit > 500 {
			limit = 50
		}

		logs, err := admin.GetAdminAuditLogs(db, limit, offset)
		if err != nil {
			log.Printf("[ADMIN] Failed to fetch audit logs: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs, "limit": limit, "offset": offset})
	}
}
