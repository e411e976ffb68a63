package game

// Physics constants for the plinko trajectory engine.
// These MUST match the TypeScript constants in frontend/src/game/plinko/constants.ts
// exactly; the client replays the same frames the server validated.

const (
	// Fixed timestep: one frame = 1/60 s of simulated time.
	TimeStep  = 1.0 / 60.0
	FrameRate = 60

	Gravity          = 1400.0 // px/s^2
	TerminalVelocity = 600.0  // px/s, steady-state fall speed under drag
	MaxSpeed         = 800.0  // px/s, hard ceiling on resultant speed
	DragFactor       = 2.4    // per-second decay of speed above terminal

	// Per-frame displacement envelope the animation layer tolerates.
	// MaxSpeed * TimeStep is ~13.33; collision corrections are clamped to
	// MoveClamp so no frame pair ever exceeds MaxFrameDistance.
	MaxFrameDistance = 13.83
	MoveClamp        = 13.5

	BallRadius = 7.0
	PegRadius  = 5.0

	PegRestitution  = 0.72
	WallRestitution = 0.55
	BounceJitter    = 90.0  // max |horizontal perturbation| on a peg hit, px/s
	SteerAccel      = 340.0 // ceiling on solver steering acceleration, px/s^2

	// Bucket zone: below this fraction of the board height the ball is
	// considered to have reached the slots.
	BucketZoneRatio = 0.7
	BucketTolerance = 6.0

	SettleDamping   = 0.45
	SettleSpeed     = 2.0
	MaxSettleFrames = 20

	BorderWidth = 10.0
	MinPegCols  = 3
	DropJitter  = 12.0 // max |offset| of the drop point from board center, px

	MinSlotCount = 3
	MaxSlotCount = 8

	MaxFramesPerDrop  = 1500
	MaxSolverAttempts = 140

	RotationFactor = 0.6 // degrees of ball spin per px of horizontal travel
)
