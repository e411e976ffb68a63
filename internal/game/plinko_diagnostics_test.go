package game

import "testing"

func TestRunSweepNatural(t *testing.T) {
	res, err := RunSweep(testConfig(), 50, 7919, -1)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if res.Failures != 0 {
		t.Fatalf("%d failures in natural sweep (seeds: %v)", res.Failures, res.FailedSeeds)
	}
	if res.MaxSpeed > MaxSpeed {
		t.Errorf("max speed %.2f exceeds ceiling", res.MaxSpeed)
	}
	if res.MaxFrameDist > MaxFrameDistance {
		t.Errorf("max frame distance %.2f exceeds envelope", res.MaxFrameDist)
	}

	landed := 0
	for _, n := range res.SlotDistribution {
		landed += n
	}
	if landed != 50 {
		t.Errorf("slot distribution sums to %d, want 50", landed)
	}
}

func TestRunSweepSteered(t *testing.T) {
	res, err := RunSweep(testConfig(), 20, 7919, 0)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if res.Failures != 0 {
		t.Fatalf("%d failures steering to slot 0", res.Failures)
	}
	if res.SlotDistribution[0] != 20 {
		t.Errorf("steered sweep landed %d/20 in slot 0", res.SlotDistribution[0])
	}
}

func TestRunSweepRejectsBadConfig(t *testing.T) {
	if _, err := RunSweep(BoardConfig{Width: -1, Height: 500, PegRows: 10, SlotCount: 6}, 10, 7919, -1); err == nil {
		t.Error("expected config error")
	}
}
