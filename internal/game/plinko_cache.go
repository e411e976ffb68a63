package game

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// trajectoryKey identifies one memoized generation: same board, same seed,
// same target. Structural equality is the cache contract.
type trajectoryKey struct {
	cfg    BoardConfig
	seed   int64
	target int
}

// TrajectoryCache memoizes validated trajectories within a session.
// Invalidation is explicit (retarget or reset), never time-based: trajectories
// are cheap to recompute but must stay consistent with the live target.
type TrajectoryCache struct {
	entries *lru.Cache[trajectoryKey, *Trajectory]
}

const trajectoryCacheSize = 64

func NewTrajectoryCache() *TrajectoryCache {
	entries, _ := lru.New[trajectoryKey, *Trajectory](trajectoryCacheSize)
	return &TrajectoryCache{entries: entries}
}

func (c *TrajectoryCache) get(key trajectoryKey) (*Trajectory, bool) {
	return c.entries.Get(key)
}

func (c *TrajectoryCache) put(key trajectoryKey, t *Trajectory) {
	c.entries.Add(key, t)
}

func (c *TrajectoryCache) invalidate(key trajectoryKey) {
	c.entries.Remove(key)
}

// purge drops every entry; used on game reset.
func (c *TrajectoryCache) purge() {
	c.entries.Purge()
}
