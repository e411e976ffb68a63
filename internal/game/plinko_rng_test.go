package game

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(55433)
	b := NewRNG(55433)
	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestRNGRange(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestRNGSeedNormalization(t *testing.T) {
	// Seeds outside 32 bits wrap instead of being rejected.
	a := NewRNG(-1)
	b := NewRNG(4294967295)
	if a.Next() != b.Next() {
		t.Error("seed -1 and 2^32-1 should normalize to the same stream")
	}
}

func TestRNGForkIsPure(t *testing.T) {
	parent := NewRNG(42)
	c1 := parent.Fork(3)
	parent.Next()
	parent.Next()
	// Forking is a function of the state at fork time, and the parent was
	// forked before any draws, so a fresh parent must agree.
	c2 := NewRNG(42).Fork(3)
	for i := 0; i < 100; i++ {
		if c1.Next() != c2.Next() {
			t.Fatalf("fork not reproducible at draw %d", i)
		}
	}
}

func TestRNGForkDecorrelated(t *testing.T) {
	parent := NewRNG(7)
	c0 := parent.Fork(0)
	c1 := parent.Fork(1)
	same := 0
	for i := 0; i < 100; i++ {
		if c0.Next() == c1.Next() {
			same++
		}
	}
	if same > 5 {
		t.Errorf("adjacent forks look correlated: %d/100 equal draws", same)
	}
}
