package game

import "testing"

func validTrajectory(t *testing.T, board *Board) *Trajectory {
	t.Helper()
	traj, err := solve(board, 12345, -1)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return traj
}

func TestValidatorAcceptsGoodTrajectory(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := validTrajectory(t, board)
	if v := validateTrajectory(board, traj, -1); v != nil {
		t.Errorf("valid trajectory rejected: %v", v)
	}
	if v := validateTrajectory(board, traj, traj.LandedSlot); v != nil {
		t.Errorf("valid trajectory rejected with matching target: %v", v)
	}
}

func TestValidatorDetectsStuckBall(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := &Trajectory{
		Frames:     []TrajectoryFrame{{X: 100, Y: 40}, {X: 100, Y: 45}},
		LandedSlot: -1,
	}
	v := validateTrajectory(board, traj, -1)
	if v == nil || v.Kind != ViolationStuck {
		t.Errorf("expected stuck violation, got %v", v)
	}
}

func TestValidatorDetectsSpeedViolation(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := validTrajectory(t, board)

	bad := *traj
	bad.Frames = append([]TrajectoryFrame(nil), traj.Frames...)
	bad.Frames[5].VX = 700
	bad.Frames[5].VY = 700 // resultant ~990 > 800
	v := validateTrajectory(board, &bad, -1)
	if v == nil || v.Kind != ViolationSpeed {
		t.Errorf("expected speed violation, got %v", v)
	}
	if v != nil && v.Frame != 5 {
		t.Errorf("violation frame = %d, want 5", v.Frame)
	}
}

func TestValidatorDetectsDistanceViolation(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := validTrajectory(t, board)

	bad := *traj
	bad.Frames = append([]TrajectoryFrame(nil), traj.Frames...)
	bad.Frames[10].X += 50 // teleport
	v := validateTrajectory(board, &bad, -1)
	if v == nil || v.Kind != ViolationDistance {
		t.Errorf("expected distance violation, got %v", v)
	}
}

func TestValidatorDetectsRestSlotMismatch(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := validTrajectory(t, board)

	// A trajectory whose reported slot disagrees with where the final frame
	// rests is rejected even for natural drops.
	bad := *traj
	bad.LandedSlot = (traj.LandedSlot + 1) % board.Config.SlotCount
	v := validateTrajectory(board, &bad, -1)
	if v == nil || v.Kind != ViolationWrongSlot {
		t.Errorf("expected wrong-slot violation for rest mismatch, got %v", v)
	}
}

func TestValidatorDetectsWrongSlot(t *testing.T) {
	board := mustBoard(t, testConfig())
	traj := validTrajectory(t, board)

	wrongTarget := (traj.LandedSlot + 1) % board.Config.SlotCount
	v := validateTrajectory(board, traj, wrongTarget)
	if v == nil || v.Kind != ViolationWrongSlot {
		t.Errorf("expected wrong-slot violation, got %v", v)
	}
}

func TestValidatorRejectsEmptyTrajectory(t *testing.T) {
	board := mustBoard(t, testConfig())
	v := validateTrajectory(board, &Trajectory{}, -1)
	if v == nil || v.Kind != ViolationStuck {
		t.Errorf("expected stuck violation for empty trajectory, got %v", v)
	}
}
