package game

import "testing"

func TestTrajectoryCacheRoundTrip(t *testing.T) {
	c := NewTrajectoryCache()
	key := trajectoryKey{cfg: testConfig(), seed: 1, target: 3}
	traj := &Trajectory{LandedSlot: 3, Seed: 1}

	if _, ok := c.get(key); ok {
		t.Error("empty cache returned a hit")
	}
	c.put(key, traj)
	got, ok := c.get(key)
	if !ok || got != traj {
		t.Error("cache miss after put")
	}

	// Structural equality of the triple is the contract: a different target
	// is a different entry.
	other := trajectoryKey{cfg: testConfig(), seed: 1, target: 4}
	if _, ok := c.get(other); ok {
		t.Error("different target should not hit")
	}
}

func TestTrajectoryCacheInvalidate(t *testing.T) {
	c := NewTrajectoryCache()
	key := trajectoryKey{cfg: testConfig(), seed: 7, target: 0}
	c.put(key, &Trajectory{})
	c.invalidate(key)
	if _, ok := c.get(key); ok {
		t.Error("entry survived invalidation")
	}

	c.put(key, &Trajectory{})
	c.purge()
	if _, ok := c.get(key); ok {
		t.Error("entry survived purge")
	}
}
