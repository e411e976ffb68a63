package game

import "fmt"

// steerPlan biases a simulation toward a target slot. The bias has two parts:
// a depth-scaled steering acceleration toward the slot center, and a shift of
// the bounce-perturbation distribution in the same direction. Both stay
// inside the step function's speed and displacement envelope, and both grow
// with the attempt index so early attempts look fully organic while late
// attempts converge.
type steerPlan struct {
	board    *Board
	targetX  float64
	strength float64
	startY   float64
}

func newSteerPlan(board *Board, target, attempt int) *steerPlan {
	strength := 0.35 + 0.015*float64(attempt)
	if strength > 1 {
		strength = 1
	}
	return &steerPlan{
		board:    board,
		targetX:  board.Slots[target].CenterX,
		strength: strength,
		startY:   board.BucketZoneY * 0.35,
	}
}

// accel returns the horizontal steering acceleration at pos, bounded by
// SteerAccel and ramping up with depth so the upper board stays unbiased.
func (p *steerPlan) accel(pos Vec2) float64 {
	if pos.Y < p.startY {
		return 0
	}
	depth := (pos.Y - p.startY) / (p.board.BucketZoneY - p.startY)
	if depth > 1 {
		depth = 1
	}
	a := (p.targetX - pos.X) * 3.0
	if a > SteerAccel {
		a = SteerAccel
	} else if a < -SteerAccel {
		a = -SteerAccel
	}
	return a * depth * p.strength
}

// shiftJitter moves the bounce perturbation toward the target without
// leaving the [-1, 1] range the natural distribution uses.
func (p *steerPlan) shiftJitter(base float64, pos Vec2) float64 {
	dir := 1.0
	if pos.X > p.targetX {
		dir = -1.0
	}
	shifted := base + dir*p.strength
	if shifted > 1 {
		shifted = 1
	} else if shifted < -1 {
		shifted = -1
	}
	return shifted
}

// simulate runs one complete drop and returns the raw trajectory. The caller
// validates it; an unsettled ball shows up as landedSlot -1 and a final frame
// above the bucket zone.
func simulate(board *Board, rng *RNG, bias *steerPlan, seed int64) *Trajectory {
	st := newStepper(board, rng, bias)
	ball := st.newBall()

	frames := make([]TrajectoryFrame, 0, 256)
	frames = append(frames, TrajectoryFrame{
		X: ball.pos.X,
		Y: ball.pos.Y,
	})
	for i := 0; i < MaxFramesPerDrop && !ball.settled; i++ {
		frames = append(frames, st.advance(&ball))
	}

	return &Trajectory{
		Frames:     frames,
		LandedSlot: ball.landedSlot,
		Seed:       seed,
	}
}

// solve produces a validated trajectory. target -1 means a natural drop
// (land anywhere); otherwise the result is guaranteed to land in target.
// Recoverable violations (stuck, speed, distance, wrong slot) are retried on
// forked child streams up to MaxSolverAttempts; exhaustion is fatal for the
// request. A visible error beats a silently wrong landing slot.
func solve(board *Board, seed int64, target int) (*Trajectory, error) {
	root := NewRNG(seed)
	var last *Violation
	for attempt := 0; attempt < MaxSolverAttempts; attempt++ {
		rng := root.Fork(uint32(attempt))
		var bias *steerPlan
		if target >= 0 {
			bias = newSteerPlan(board, target, attempt)
		}

		traj := simulate(board, rng, bias, seed)
		v := validateTrajectory(board, traj, target)
		if v == nil {
			traj.Attempts = attempt + 1
			return traj, nil
		}
		last = v
	}

	if target < 0 {
		return nil, fmt.Errorf("natural drop failed after %d attempts: %w", MaxSolverAttempts, last)
	}
	return nil, &TargetUnreachableError{
		Target:        target,
		Attempts:      MaxSolverAttempts,
		LastViolation: last,
	}
}
