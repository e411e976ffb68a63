package game

// WallSide identifies which border a wall bounce happened against.
type WallSide string

const (
	WallLeft  WallSide = "left"
	WallRight WallSide = "right"
)

// TrajectoryFrame is one fixed physics timestep (1/60 s) of the ball's state.
// The optional members are only set on frames where the corresponding event
// happened, so the renderer can trigger peg flashes and bounce sounds.
type TrajectoryFrame struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Rotation float64 `json:"rotation"`

	PegHit      *int     `json:"peg_hit,omitempty"`
	WallImpact  WallSide `json:"wall_impact,omitempty"`
	FloorImpact bool     `json:"floor_impact,omitempty"`
}

// Trajectory is the full precomputed path of one ball drop. Immutable once
// returned; replaying the same seed against the same board produces
// bit-identical frames.
type Trajectory struct {
	Frames     []TrajectoryFrame `json:"frames"`
	LandedSlot int               `json:"landed_slot"`
	Seed       int64             `json:"seed"`
	Attempts   int               `json:"attempts"`
}
