package game

import "testing"

// Manager tests run without DB or Redis; persistence is best-effort and
// nil-guarded, matching production behavior when backing stores are down.

func testManager() *GameManager {
	return NewGameManager(nil, nil, nil)
}

func TestManagerSessionLifecycle(t *testing.T) {
	gm := testManager()

	s, err := gm.CreateSession(testConfig(), 55433)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.Status != StatusReady {
		t.Errorf("new session status = %q", s.Status)
	}
	if gm.GetActiveSessionCount() != 1 {
		t.Errorf("active count = %d, want 1", gm.GetActiveSessionCount())
	}

	got, err := gm.GetSession(s.Token)
	if err != nil || got != s {
		t.Fatalf("GetSession: %v", err)
	}

	traj, err := gm.Drop(s.Token)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if len(traj.Frames) == 0 {
		t.Error("drop returned empty trajectory")
	}
	if s.Status != StatusDropped || s.DropCount != 1 {
		t.Errorf("after drop: status=%q drops=%d", s.Status, s.DropCount)
	}

	if err := gm.ResetSession(s.Token); err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if s.Status != StatusReady {
		t.Errorf("after reset: status=%q", s.Status)
	}

	gm.EndSession(s.Token)
	if _, err := gm.GetSession(s.Token); err == nil {
		t.Error("session still reachable after EndSession")
	}
}

func TestManagerRejectsBadBoard(t *testing.T) {
	gm := testManager()
	_, err := gm.CreateSession(BoardConfig{Width: 375, Height: 500, PegRows: 10, SlotCount: 20}, 1)
	if err == nil {
		t.Fatal("expected config error")
	}
}

func TestManagerSetWinningSlot(t *testing.T) {
	gm := testManager()
	s, err := gm.CreateSession(testConfig(), 4242)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	traj, err := gm.SetWinningSlot(s.Token, 3)
	if err != nil {
		t.Fatalf("SetWinningSlot: %v", err)
	}
	if traj.LandedSlot != 3 {
		t.Errorf("landed slot = %d, want 3", traj.LandedSlot)
	}

	// The drop replays the exact retargeted trajectory.
	dropped, err := gm.Drop(s.Token)
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if dropped.LandedSlot != 3 {
		t.Errorf("dropped slot = %d, want 3", dropped.LandedSlot)
	}

	// Mid-drop retargeting is refused; the caller must reset first.
	if _, err := gm.SetWinningSlot(s.Token, 1); err == nil {
		t.Error("expected retarget during drop to fail")
	}
	if err := gm.ResetSession(s.Token); err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if _, err := gm.SetWinningSlot(s.Token, 1); err != nil {
		t.Errorf("retarget after reset: %v", err)
	}
}

func TestManagerCompletePlayback(t *testing.T) {
	gm := testManager()
	s, err := gm.CreateSession(testConfig(), 55433)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// Nothing to complete before a drop.
	if err := gm.CompletePlayback(s.Token); err == nil {
		t.Error("expected completion before drop to fail")
	}

	if _, err := gm.Drop(s.Token); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if err := gm.CompletePlayback(s.Token); err != nil {
		t.Fatalf("CompletePlayback: %v", err)
	}
	if s.Status != StatusCompleted {
		t.Errorf("after completion: status=%q", s.Status)
	}

	// The outcome stays frozen until reset.
	if _, err := gm.SetWinningSlot(s.Token, 0); err == nil {
		t.Error("expected retarget after completion to fail")
	}
	if err := gm.ResetSession(s.Token); err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if s.Status != StatusReady {
		t.Errorf("after reset: status=%q", s.Status)
	}
	if _, err := gm.SetWinningSlot(s.Token, 0); err != nil {
		t.Errorf("retarget after reset: %v", err)
	}
}

func TestManagerUnknownToken(t *testing.T) {
	gm := testManager()
	if _, err := gm.GetSession("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
	if _, err := gm.Drop("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
	if err := gm.ResetSession("nope"); err == nil {
		t.Error("expected error for unknown session")
	}
}
