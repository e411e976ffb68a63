package game

import "math"

// ballState is the mutable simulation state advanced one timestep at a time.
type ballState struct {
	pos          Vec2
	vel          Vec2
	rotation     float64
	lastPeg      int // peg hit on the previous frame, -1 otherwise
	settling     bool
	settled      bool
	settleFrames int
	landedSlot   int
}

// stepper advances a ball one fixed timestep at a time against a static
// board. bias is nil for natural drops; the target-slot solver installs one
// to steer the path without breaking the step invariants.
type stepper struct {
	board *Board
	rng   *RNG
	bias  *steerPlan
}

func newStepper(board *Board, rng *RNG, bias *steerPlan) *stepper {
	return &stepper{board: board, rng: rng, bias: bias}
}

// newBall places the ball at the drop point: board center plus a small
// seed-derived offset so identical boards still produce path diversity.
func (st *stepper) newBall() ballState {
	offset := (st.rng.Next()*2 - 1) * DropJitter
	return ballState{
		pos:        NewVec2(st.board.Config.Width/2+offset, BallRadius),
		lastPeg:    -1,
		landedSlot: -1,
	}
}

// advance computes the next frame's state: gravity and drag integration, peg
// and wall collision resolution, and bucket-zone settling. The per-frame
// displacement is clamped to MoveClamp so consecutive frames never violate
// the animation envelope.
func (st *stepper) advance(b *ballState) TrajectoryFrame {
	var frame TrajectoryFrame

	if b.settling {
		st.settle(b)
	} else {
		st.fall(b, &frame)
	}

	b.rotation = fix(b.rotation + b.vel.X*TimeStep*RotationFactor)

	frame.X = b.pos.X
	frame.Y = b.pos.Y
	frame.VX = b.vel.X
	frame.VY = b.vel.Y
	frame.Rotation = b.rotation
	return frame
}

func (st *stepper) fall(b *ballState, frame *TrajectoryFrame) {
	// Integrate gravity, solver steering, and drag toward terminal velocity.
	vx := b.vel.X
	vy := b.vel.Y + Gravity*TimeStep
	if st.bias != nil {
		vx += st.bias.accel(b.pos) * TimeStep
	}
	speed := math.Sqrt(vx*vx + vy*vy)
	if speed > TerminalVelocity {
		decayed := TerminalVelocity + (speed-TerminalVelocity)*(1-DragFactor*TimeStep)
		scale := decayed / speed
		vx *= scale
		vy *= scale
		speed = decayed
	}
	if speed > MaxSpeed {
		scale := (MaxSpeed - 0.5) / speed
		vx *= scale
		vy *= scale
	}
	b.vel = NewVec2(vx, vy)

	prev := b.pos
	next := b.pos.Plus(b.vel.Times(TimeStep))

	// Peg collision: reflect about the collision normal with restitution,
	// push the ball back to the contact ring, and add a bounded horizontal
	// perturbation. The previous frame's peg is excluded to prevent sticking.
	if peg := st.board.nearestPegWithin(next, BallRadius+PegRadius, b.lastPeg); peg != nil {
		n := next.Minus(peg.Pos).Normalize()
		if n.IsZero() {
			n = Vec2{X: 0, Y: -1}
		}
		next = peg.Pos.Plus(n.Times(BallRadius + PegRadius))

		vn := b.vel.Dot(n)
		if vn < 0 {
			b.vel = b.vel.Minus(n.Times(2 * vn)).Times(PegRestitution)
		} else {
			b.vel = b.vel.Times(PegRestitution)
		}
		b.vel = NewVec2(b.vel.X+st.bounceJitter(b), b.vel.Y)

		id := peg.ID
		frame.PegHit = &id
		b.lastPeg = peg.ID
	} else {
		b.lastPeg = -1
	}

	// Wall bounce: horizontal velocity reflects with damping at the borders.
	minX := BorderWidth + BallRadius
	maxX := st.board.Config.Width - BorderWidth - BallRadius
	if next.X <= minX {
		next = NewVec2(minX, next.Y)
		if b.vel.X < 0 {
			b.vel = NewVec2(-b.vel.X*WallRestitution, b.vel.Y)
		}
		frame.WallImpact = WallLeft
	} else if next.X >= maxX {
		next = NewVec2(maxX, next.Y)
		if b.vel.X > 0 {
			b.vel = NewVec2(-b.vel.X*WallRestitution, b.vel.Y)
		}
		frame.WallImpact = WallRight
	}

	// Collision corrections can push the step past the envelope; rescale.
	delta := next.Minus(prev)
	if d := delta.Magnitude(); d > MoveClamp {
		next = prev.Plus(delta.Times(MoveClamp / d))
	}

	// Resultant speed must never exceed the hard ceiling, even after the
	// bounce perturbation.
	if sp := b.vel.Magnitude(); sp > MaxSpeed {
		b.vel = b.vel.Times((MaxSpeed - 0.5) / sp)
	}

	b.pos = next

	// Bucket zone: past the threshold the ball decelerates to rest. The
	// landing slot is decided from the rest position, not the crossing point,
	// since residual horizontal momentum can still cross a slot boundary
	// during settling.
	if b.pos.Y >= st.board.BucketZoneY {
		b.settling = true
		frame.FloorImpact = true
	}
}

// settle damps the ball to rest just past the bucket-zone threshold. Gravity
// is off here. The landing slot is decided only once the ball stops, so the
// reported slot always matches where the ball visibly rests.
func (st *stepper) settle(b *ballState) {
	b.settleFrames++
	b.vel = b.vel.Times(SettleDamping)
	b.pos = b.pos.Plus(b.vel.Times(TimeStep))

	minX := BorderWidth + BallRadius
	maxX := st.board.Config.Width - BorderWidth - BallRadius
	if b.pos.X < minX {
		b.pos = NewVec2(minX, b.pos.Y)
	} else if b.pos.X > maxX {
		b.pos = NewVec2(maxX, b.pos.Y)
	}

	if b.vel.Magnitude() < SettleSpeed || b.settleFrames >= MaxSettleFrames {
		b.vel = Vec2{}
		b.settled = true
		b.landedSlot = st.board.SlotAt(b.pos.X)
	}
}

// bounceJitter draws the horizontal perturbation for a peg hit. Natural drops
// use the full symmetric range; the solver shifts the distribution toward the
// target slot but the magnitude stays inside the same bounds.
func (st *stepper) bounceJitter(b *ballState) float64 {
	base := st.rng.Next()*2 - 1
	if st.bias != nil {
		base = st.bias.shiftJitter(base, b.pos)
	}
	return fix(base * BounceJitter)
}
