package game

import (
	"errors"
	"math"
)

// SweepResult aggregates a diagnostic run over many seeds on one board.
type SweepResult struct {
	Seeds            int     `json:"seeds"`
	Target           int     `json:"target"`
	Failures         int     `json:"failures"`
	StuckCount       int     `json:"stuck_count"`
	SpeedCount       int     `json:"speed_count"`
	DistanceCount    int     `json:"distance_count"`
	WrongSlotCount   int     `json:"wrong_slot_count"`
	MaxSpeed         float64 `json:"max_speed"`
	MaxFrameDist     float64 `json:"max_frame_distance"`
	MaxAttempts      int     `json:"max_attempts"`
	TotalAttempts    int     `json:"total_attempts"`
	AvgFrames        float64 `json:"avg_frames"`
	SlotDistribution []int   `json:"slot_distribution"`
	FailedSeeds      []int64 `json:"failed_seeds,omitempty"`
}

// RunSweep drops one ball per seed (seed i maps to i*multiplier) and collects
// the physical extremes and landing distribution. target -1 sweeps natural
// drops; otherwise every drop is steered to that slot. Generation errors are
// counted rather than returned so a sweep always completes.
func RunSweep(cfg BoardConfig, seeds int, multiplier int64, target int) (*SweepResult, error) {
	board, err := NewBoard(cfg)
	if err != nil {
		return nil, err
	}

	res := &SweepResult{
		Seeds:            seeds,
		Target:           target,
		SlotDistribution: make([]int, cfg.SlotCount),
	}

	totalFrames := 0
	for i := 0; i < seeds; i++ {
		seed := int64(i) * multiplier
		traj, err := solve(board, seed, target)
		if err != nil {
			res.Failures++
			res.FailedSeeds = append(res.FailedSeeds, seed)
			var tErr *TargetUnreachableError
			var v *Violation
			switch {
			case errors.As(err, &tErr) && tErr.LastViolation != nil:
				res.countViolation(tErr.LastViolation.Kind)
			case errors.As(err, &v):
				res.countViolation(v.Kind)
			default:
				res.StuckCount++
			}
			continue
		}

		res.TotalAttempts += traj.Attempts
		if traj.Attempts > res.MaxAttempts {
			res.MaxAttempts = traj.Attempts
		}
		if traj.LandedSlot >= 0 && traj.LandedSlot < len(res.SlotDistribution) {
			res.SlotDistribution[traj.LandedSlot]++
		}
		totalFrames += len(traj.Frames)

		for j, f := range traj.Frames {
			speed := math.Sqrt(f.VX*f.VX + f.VY*f.VY)
			if speed > res.MaxSpeed {
				res.MaxSpeed = speed
			}
			if j == 0 {
				continue
			}
			prev := traj.Frames[j-1]
			dx := f.X - prev.X
			dy := f.Y - prev.Y
			if d := math.Sqrt(dx*dx + dy*dy); d > res.MaxFrameDist {
				res.MaxFrameDist = d
			}
		}
	}

	if succeeded := seeds - res.Failures; succeeded > 0 {
		res.AvgFrames = float64(totalFrames) / float64(succeeded)
	}
	return res, nil
}

func (r *SweepResult) countViolation(kind ViolationKind) {
	switch kind {
	case ViolationStuck:
		r.StuckCount++
	case ViolationSpeed:
		r.SpeedCount++
	case ViolationDistance:
		r.DistanceCount++
	case ViolationWrongSlot:
		r.WrongSlotCount++
	}
}
