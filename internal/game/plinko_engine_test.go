package game

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGenerateTrajectoryDeterminism(t *testing.T) {
	cfg := GenerateConfig{BoardWidth: 375, BoardHeight: 500, PegRows: 10, SlotCount: 6, Seed: 55433}

	a, err := GenerateTrajectory(cfg)
	if err != nil {
		t.Fatalf("GenerateTrajectory: %v", err)
	}
	b, err := GenerateTrajectory(cfg)
	if err != nil {
		t.Fatalf("GenerateTrajectory: %v", err)
	}

	if a.LandedSlot != b.LandedSlot {
		t.Errorf("landed slot differs: %d vs %d", a.LandedSlot, b.LandedSlot)
	}
	if !reflect.DeepEqual(a.Frames, b.Frames) {
		t.Error("frame sequences differ for identical config and seed")
	}
}

func TestGenerateTrajectoryExampleScenario(t *testing.T) {
	cfg := GenerateConfig{BoardWidth: 375, BoardHeight: 500, PegRows: 10, SlotCount: 6, Seed: 55433}
	traj, err := GenerateTrajectory(cfg)
	if err != nil {
		t.Fatalf("GenerateTrajectory: %v", err)
	}
	if len(traj.Frames) == 0 {
		t.Fatal("empty trajectory")
	}

	bucketY := 500 * BucketZoneRatio // 350
	final := traj.Frames[len(traj.Frames)-1]
	if final.Y < bucketY-BucketTolerance || final.Y > bucketY+25 {
		t.Errorf("final y %.1f not near bucket threshold %.1f", final.Y, bucketY)
	}
	if traj.LandedSlot < 0 || traj.LandedSlot >= 6 {
		t.Errorf("landed slot %d out of range", traj.LandedSlot)
	}
	if traj.Seed != 55433 {
		t.Errorf("trajectory should carry its seed, got %d", traj.Seed)
	}
}

func TestGenerateTrajectoryRejectsBadConfig(t *testing.T) {
	cases := []GenerateConfig{
		{BoardWidth: 0, BoardHeight: 500, PegRows: 10, SlotCount: 6, Seed: 1},
		{BoardWidth: 375, BoardHeight: 500, PegRows: 10, SlotCount: 2, Seed: 1},
		{BoardWidth: 375, BoardHeight: 500, PegRows: 10, SlotCount: 12, Seed: 1},
		{BoardWidth: 375, BoardHeight: 500, PegRows: -3, SlotCount: 6, Seed: 1},
	}
	for i, cfg := range cases {
		_, err := GenerateTrajectory(cfg)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Errorf("case %d: expected ConfigError, got %v", i, err)
		}
	}
}

func TestRegenerateForSlotAllTargets(t *testing.T) {
	// Every valid target of every supported slot count must be reachable.
	for slotCount := MinSlotCount; slotCount <= MaxSlotCount; slotCount++ {
		cfg := BoardConfig{Width: 375, Height: 500, PegRows: 10, SlotCount: slotCount}
		for target := 0; target < slotCount; target++ {
			engine, err := NewEngine(cfg, 55433+int64(slotCount*100+target))
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			traj, err := engine.RegenerateForSlot(target)
			if err != nil {
				t.Fatalf("slots=%d target=%d: %v", slotCount, target, err)
			}
			if traj.LandedSlot != target {
				t.Errorf("slots=%d target=%d: landed in %d", slotCount, target, traj.LandedSlot)
			}
		}
	}
}

// TestTargetedDropRestsInTargetSlot checks the guarantee end to end: a
// retargeted trajectory's final frame must rest inside the target slot's
// span, not merely have crossed the threshold above it.
func TestTargetedDropRestsInTargetSlot(t *testing.T) {
	cfg := testConfig()
	seeds := []int64{7919, 55433, 855265, 879009}
	for target := 0; target < cfg.SlotCount; target++ {
		for _, seed := range seeds {
			engine, err := NewEngine(cfg, seed)
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}
			traj, err := engine.RegenerateForSlot(target)
			if err != nil {
				t.Fatalf("seed %d target %d: %v", seed, target, err)
			}
			final := traj.Frames[len(traj.Frames)-1]
			slot := engine.Board().Slots[target]
			if final.X < slot.XStart || final.X >= slot.XEnd {
				t.Errorf("seed %d target %d: rest x=%.2f outside slot span [%.2f, %.2f)",
					seed, target, final.X, slot.XStart, slot.XEnd)
			}
		}
	}
}

func TestRegenerateForSlotDeterminism(t *testing.T) {
	cfg := BoardConfig{Width: 375, Height: 500, PegRows: 10, SlotCount: 6}

	run := func() *Trajectory {
		engine, err := NewEngine(cfg, 9001)
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		traj, err := engine.RegenerateForSlot(2)
		if err != nil {
			t.Fatalf("RegenerateForSlot: %v", err)
		}
		return traj
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Frames, b.Frames) {
		t.Error("targeted trajectories differ across runs with identical inputs")
	}
}

func TestRegenerateForSlotRejectsBadTarget(t *testing.T) {
	engine, err := NewEngine(testConfig(), 1)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	for _, target := range []int{-1, 6, 99} {
		if _, err := engine.RegenerateForSlot(target); err == nil {
			t.Errorf("target %d: expected error", target)
		}
	}
}

func TestRegenerateInvalidatesPreviousTarget(t *testing.T) {
	engine, err := NewEngine(testConfig(), 777)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	first, err := engine.RegenerateForSlot(1)
	if err != nil {
		t.Fatalf("RegenerateForSlot(1): %v", err)
	}
	second, err := engine.RegenerateForSlot(4)
	if err != nil {
		t.Fatalf("RegenerateForSlot(4): %v", err)
	}
	if second.LandedSlot != 4 {
		t.Errorf("retarget landed in %d, want 4", second.LandedSlot)
	}
	if first.LandedSlot != 1 {
		t.Errorf("first trajectory mutated: landed %d", first.LandedSlot)
	}

	// The old target's entry is gone; regenerating it rebuilds from scratch
	// and still lands correctly.
	back, err := engine.RegenerateForSlot(1)
	if err != nil {
		t.Fatalf("RegenerateForSlot(1) again: %v", err)
	}
	if back.LandedSlot != 1 {
		t.Errorf("re-regenerated trajectory landed in %d, want 1", back.LandedSlot)
	}
}

func TestGenerateIsMemoized(t *testing.T) {
	engine, err := NewEngine(testConfig(), 321)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	a, err := engine.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := engine.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a != b {
		t.Error("second Generate should return the cached trajectory")
	}

	engine.Reset()
	c, err := engine.Generate()
	if err != nil {
		t.Fatalf("Generate after reset: %v", err)
	}
	if c == a {
		t.Error("reset should purge the cache")
	}
	if !reflect.DeepEqual(a.Frames, c.Frames) {
		t.Error("regenerated natural drop should still be deterministic")
	}
}

// TestDiagnosticSweep mirrors the diagnostic harness: a hundred seeds, zero
// stuck balls, zero speed violations, zero distance violations.
func TestDiagnosticSweep(t *testing.T) {
	const seedMultiplier = 7919
	board := mustBoard(t, testConfig())

	for i := int64(0); i < 100; i++ {
		seed := i * seedMultiplier
		traj, err := GenerateTrajectory(GenerateConfig{
			BoardWidth: 375, BoardHeight: 500, PegRows: 10, SlotCount: 6, Seed: seed,
		})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		final := traj.Frames[len(traj.Frames)-1]
		if final.Y < board.BucketZoneY-BucketTolerance {
			t.Errorf("seed %d: stuck ball (final y %.1f)", seed, final.Y)
		}
		for j, f := range traj.Frames {
			if sp := math.Sqrt(f.VX*f.VX + f.VY*f.VY); sp > MaxSpeed {
				t.Errorf("seed %d frame %d: speed violation %.2f", seed, j, sp)
			}
			if j > 0 {
				p := traj.Frames[j-1]
				if d := math.Hypot(f.X-p.X, f.Y-p.Y); d > MaxFrameDistance {
					t.Errorf("seed %d frame %d: distance violation %.2f", seed, j, d)
				}
			}
		}
	}
}
