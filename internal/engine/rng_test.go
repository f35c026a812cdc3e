package engine

import "testing"

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)

	for i := 0; i < 100; i++ {
		av, bv := a.IntN(10), b.IntN(10)
		if av != bv {
			t.Fatalf("draw %d: %d != %d", i, av, bv)
		}
		if av < 0 || av >= 10 {
			t.Fatalf("draw %d out of range: %d", i, av)
		}
	}
}

func TestRNGSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestRNGPosition(t *testing.T) {
	r := NewRNG(7)
	if r.Position() != 0 {
		t.Fatalf("fresh position = %d, want 0", r.Position())
	}
	r.IntN(6)
	r.Bool()
	r.IntN(3)
	if r.Position() != 3 {
		t.Errorf("position = %d, want 3", r.Position())
	}
	if r.Seed() != 7 {
		t.Errorf("seed = %d, want 7", r.Seed())
	}
}

func TestRestoreRNG(t *testing.T) {
	orig := NewRNG(99)
	for i := 0; i < 17; i++ {
		orig.IntN(20)
	}

	restored := RestoreRNG(99, orig.Position())
	if restored.Position() != orig.Position() {
		t.Fatalf("restored position = %d, want %d", restored.Position(), orig.Position())
	}
	for i := 0; i < 50; i++ {
		ov, rv := orig.IntN(20), restored.IntN(20)
		if ov != rv {
			t.Fatalf("draw %d after restore: %d != %d", i, ov, rv)
		}
	}
}
