package game

import (
	"fmt"
	"math"
)

// ViolationKind classifies why a trajectory was rejected.
type ViolationKind string

const (
	ViolationStuck     ViolationKind = "stuck"
	ViolationSpeed     ViolationKind = "speed"
	ViolationDistance  ViolationKind = "distance"
	ViolationWrongSlot ViolationKind = "wrong_slot"
)

// Violation is a structured rejection reason. The solver treats every kind
// as recoverable and retries on a forked stream; only retry exhaustion
// escalates past the engine boundary.
type Violation struct {
	Kind  ViolationKind
	Frame int
	Value float64
	Limit float64
}

func (v *Violation) Error() string {
	return fmt.Sprintf("trajectory %s violation at frame %d (value=%.2f limit=%.2f)",
		v.Kind, v.Frame, v.Value, v.Limit)
}

// validateTrajectory checks a produced path against the physical and
// animation contracts. Each check is independently falsifiable. target -1
// skips the landed-slot check.
func validateTrajectory(board *Board, t *Trajectory, target int) *Violation {
	if len(t.Frames) == 0 {
		return &Violation{Kind: ViolationStuck}
	}

	final := t.Frames[len(t.Frames)-1]
	if final.Y < board.BucketZoneY-BucketTolerance || t.LandedSlot < 0 {
		return &Violation{
			Kind:  ViolationStuck,
			Frame: len(t.Frames) - 1,
			Value: final.Y,
			Limit: board.BucketZoneY - BucketTolerance,
		}
	}

	// The ball must actually rest inside the slot it reports.
	if rest := board.SlotAt(final.X); rest != t.LandedSlot {
		return &Violation{
			Kind:  ViolationWrongSlot,
			Frame: len(t.Frames) - 1,
			Value: float64(rest),
			Limit: float64(t.LandedSlot),
		}
	}

	for i, f := range t.Frames {
		speed := math.Sqrt(f.VX*f.VX + f.VY*f.VY)
		if speed > MaxSpeed {
			return &Violation{Kind: ViolationSpeed, Frame: i, Value: speed, Limit: MaxSpeed}
		}
		if i == 0 {
			continue
		}
		prev := t.Frames[i-1]
		dx := f.X - prev.X
		dy := f.Y - prev.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > MaxFrameDistance {
			return &Violation{Kind: ViolationDistance, Frame: i, Value: dist, Limit: MaxFrameDistance}
		}
	}

	if target >= 0 && t.LandedSlot != target {
		return &Violation{
			Kind:  ViolationWrongSlot,
			Frame: len(t.Frames) - 1,
			Value: float64(t.LandedSlot),
			Limit: float64(target),
		}
	}

	return nil
}
