package game

// Engine generates reproducible ball-drop trajectories for one board and
// seed. Generation is CPU-bound and synchronous: one call produces one
// complete trajectory before returning. Engines for different sessions run
// concurrently without coordination because each owns its own RNG forks and
// cache.
type Engine struct {
	cfg    BoardConfig
	board  *Board
	seed   int64
	cache  *TrajectoryCache
	target int // -1 means natural drop
}

// NewEngine validates the config, builds the static board geometry, and
// prepares an engine with no target (natural drops).
func NewEngine(cfg BoardConfig, seed int64) (*Engine, error) {
	board, err := NewBoard(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		board:  board,
		seed:   seed,
		cache:  NewTrajectoryCache(),
		target: -1,
	}, nil
}

// Board exposes the static geometry for renderers.
func (e *Engine) Board() *Board { return e.board }

// Seed returns the seed the engine derives every trajectory from.
func (e *Engine) Seed() int64 { return e.seed }

// Target returns the live winning slot, or -1 for natural drops.
func (e *Engine) Target() int { return e.target }

// Generate returns the trajectory for the current target, memoized by
// (board, seed, target).
func (e *Engine) Generate() (*Trajectory, error) {
	key := trajectoryKey{cfg: e.cfg, seed: e.seed, target: e.target}
	if t, ok := e.cache.get(key); ok {
		return t, nil
	}
	t, err := solve(e.board, e.seed, e.target)
	if err != nil {
		return nil, err
	}
	e.cache.put(key, t)
	return t, nil
}

// RegenerateForSlot re-targets the engine to a new winning slot and returns
// a trajectory guaranteed to land there. The previous target's cache entry
// is invalidated so a stale path can never be replayed.
func (e *Engine) RegenerateForSlot(target int) (*Trajectory, error) {
	if target < 0 || target >= e.cfg.SlotCount {
		return nil, &ConfigError{Field: "target", Reason: "slot index out of range"}
	}
	e.cache.invalidate(trajectoryKey{cfg: e.cfg, seed: e.seed, target: e.target})
	e.target = target
	return e.Generate()
}

// Reset clears the target and all memoized trajectories; used when the game
// round resets.
func (e *Engine) Reset() {
	e.target = -1
	e.cache.purge()
}

// GenerateConfig is the one-shot request shape for GenerateTrajectory.
type GenerateConfig struct {
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`
	PegRows     int     `json:"peg_rows"`
	SlotCount   int     `json:"slot_count"`
	Seed        int64   `json:"seed"`
}

// GenerateTrajectory produces a single natural-drop trajectory for a config,
// without keeping an engine around. Errors are ConfigError for malformed
// configs or a generation failure after exhausted retries.
func GenerateTrajectory(cfg GenerateConfig) (*Trajectory, error) {
	engine, err := NewEngine(BoardConfig{
		Width:     cfg.BoardWidth,
		Height:    cfg.BoardHeight,
		PegRows:   cfg.PegRows,
		SlotCount: cfg.SlotCount,
	}, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return engine.Generate()
}
