package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/michael-h-patrianna/plinko-sub001/internal/config"
	"github.com/redis/go-redis/v9"
)

// Session is one player's plinko round: a board, a seed, and the live
// winning target. The trajectory engine inside is the only thing that
// touches randomness, and it owns it entirely.
type Session struct {
	Token        string      `json:"token"`
	Config       BoardConfig `json:"config"`
	Seed         int64       `json:"seed"`
	Status       string      `json:"status"`
	DropCount    int         `json:"drop_count"`
	CreatedAt    time.Time   `json:"created_at"`
	LastActivity time.Time   `json:"last_activity"`

	engine *Engine
}

// Engine exposes the session's trajectory engine (read-mostly; the manager
// lock guards mutations).
func (s *Session) Engine() *Engine { return s.engine }

// GameManager manages all active plinko sessions.
type GameManager struct {
	sessions map[string]*Session // keyed by session token
	rdb      *redis.Client       // Redis mirror + drop event pub/sub
	db       *sqlx.DB            // SQL DB for persistent drop history
	config   *config.Config
	mu       sync.RWMutex
}

var (
	// Global game manager instance
	Manager *GameManager
)

// InitializeManager initializes the global game manager with Redis, DB and config
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewGameManager(db, rdb, cfg)
	go Manager.StartExpiryChecker()
}

// NewGameManager creates a new game manager
func NewGameManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *GameManager {
	return &GameManager{
		sessions: make(map[string]*Session),
		rdb:      rdb,
		db:       db,
		config:   cfg,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// CreateSession builds a board for cfg and registers a session around it.
func (gm *GameManager) CreateSession(cfg BoardConfig, seed int64) (*Session, error) {
	engine, err := NewEngine(cfg, seed)
	if err != nil {
		return nil, err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	now := time.Now()
	s := &Session{
		Token:        generateToken(8),
		Config:       cfg,
		Seed:         seed,
		Status:       StatusReady,
		CreatedAt:    now,
		LastActivity: now,
		engine:       engine,
	}
	gm.sessions[s.Token] = s

	log.Printf("[SESSION] Created %s (w=%.0f h=%.0f rows=%d slots=%d seed=%d)",
		s.Token, cfg.Width, cfg.Height, cfg.PegRows, cfg.SlotCount, seed)

	gm.saveSessionToRedis(s)
	return s, nil
}

// GetSession returns a session by token.
func (gm *GameManager) GetSession(token string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	s, ok := gm.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

// SetWinningSlot re-targets the session's engine to a new winning slot and
// returns the regenerated trajectory. Used by the prize-selection layer and
// by dev tooling before a drop begins.
func (gm *GameManager) SetWinningSlot(token string, slot int) (*Trajectory, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, ok := gm.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	if s.Status != StatusReady {
		return nil, errors.New("round in progress; reset first")
	}

	traj, err := s.engine.RegenerateForSlot(slot)
	if err != nil {
		log.Printf("[SESSION] %s retarget to slot %d failed: %v", token, slot, err)
		return nil, err
	}

	s.LastActivity = time.Now()
	log.Printf("[SESSION] %s retargeted to slot %d (%d frames, %d attempts)",
		token, slot, len(traj.Frames), traj.Attempts)
	gm.saveSessionToRedis(s)
	return traj, nil
}

// Drop hands the session's trajectory to playback, records the outcome and
// publishes a drop event.
func (gm *GameManager) Drop(token string) (*Trajectory, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, ok := gm.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}

	traj, err := s.engine.Generate()
	if err != nil {
		log.Printf("[SESSION] %s drop failed: %v", token, err)
		return nil, err
	}

	s.Status = StatusDropped
	s.DropCount++
	s.LastActivity = time.Now()

	gm.recordDrop(s, traj)
	gm.publishDropEvent(s, traj)
	gm.saveSessionToRedis(s)
	return traj, nil
}

// CompletePlayback marks the current drop's animation as finished on the
// client. The round's outcome stays frozen until ResetSession starts the
// next one.
func (gm *GameManager) CompletePlayback(token string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, ok := gm.sessions[token]
	if !ok {
		return errors.New("session not found")
	}
	if s.Status != StatusDropped {
		return errors.New("no drop in progress")
	}
	s.Status = StatusCompleted
	s.LastActivity = time.Now()
	log.Printf("[SESSION] %s playback completed", token)
	gm.saveSessionToRedis(s)
	return nil
}

// ResetSession clears the target and memoized trajectories for a new round.
func (gm *GameManager) ResetSession(token string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	s, ok := gm.sessions[token]
	if !ok {
		return errors.New("session not found")
	}
	s.engine.Reset()
	s.Status = StatusReady
	s.LastActivity = time.Now()
	log.Printf("[SESSION] %s reset", token)
	gm.saveSessionToRedis(s)
	return nil
}

// EndSession removes a session entirely.
func (gm *GameManager) EndSession(token string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.sessions, token)
}

// GetActiveSessionCount returns the number of live sessions.
func (gm *GameManager) GetActiveSessionCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.sessions)
}

// recordDrop persists the drop outcome. Best-effort: the trajectory itself is
// never stored; the seed is the only externally meaningful artifact.
func (gm *GameManager) recordDrop(s *Session, traj *Trajectory) {
	if gm.db == nil {
		return
	}
	_, err := gm.db.Exec(
		`INSERT INTO drop_history (session_token, seed, target_slot, landed_slot, frame_count, attempts, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,NOW())`,
		s.Token, traj.Seed, s.engine.Target(), traj.LandedSlot, len(traj.Frames), traj.Attempts,
	)
	if err != nil {
		log.Printf("[DB] Failed to record drop for session %s: %v", s.Token, err)
	}
}

// publishDropEvent notifies the WS layer that a drop was played.
func (gm *GameManager) publishDropEvent(s *Session, traj *Trajectory) {
	if gm.rdb == nil {
		return
	}
	payload := map[string]interface{}{
		"type":          "ball_dropped",
		"session_token": s.Token,
		"landed_slot":   traj.LandedSlot,
		"seed":          traj.Seed,
		"frame_count":   len(traj.Frames),
	}
	b, _ := json.Marshal(payload)
	ctx := context.Background()
	if err := gm.rdb.Publish(ctx, "drop_events", b).Err(); err != nil {
		log.Printf("[SESSION] publish drop event failed for %s: %v", s.Token, err)
	}
}

// saveSessionToRedis mirrors session metadata to Redis with a TTL. Caller
// must hold the manager lock.
func (gm *GameManager) saveSessionToRedis(s *Session) {
	if gm.rdb == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[SESSION] Failed to marshal session %s: %v", s.Token, err)
		return
	}
	ctx := context.Background()
	key := "plinko:session:" + s.Token
	if err := gm.rdb.SetEx(ctx, key, data, time.Hour).Err(); err != nil {
		log.Printf("[SESSION] Failed to save session %s to Redis: %v", s.Token, err)
	}
}

// StartExpiryChecker periodically removes idle sessions.
func (gm *GameManager) StartExpiryChecker() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		gm.expireIdleSessions()
	}
}

func (gm *GameManager) expireIdleSessions() {
	maxIdle := 30 * time.Minute
	if gm.config != nil && gm.config.SessionExpiryMinutes > 0 {
		maxIdle = time.Duration(gm.config.SessionExpiryMinutes) * time.Minute
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	for token, s := range gm.sessions {
		if time.Since(s.LastActivity) > maxIdle {
			delete(gm.sessions, token)
			log.Printf("[SESSION] Expired idle session %s", token)
		}
	}
}
