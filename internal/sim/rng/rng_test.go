package rng

import "testing"

func TestEndSkipMatchesComposition(t *testing.T) {
	if got := Java.Combine(17292); got != EndSkip {
		t.Fatalf("Java.Combine(17292)=%#x/%#x want %#x/%#x", got.Multiplier, got.Addend, EndSkip.Multiplier, EndSkip.Addend)
	}
}

func TestCombineMatchesRepeatedSteps(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 64, 1000} {
		state := Scramble(12345)
		want := state
		for i := 0; i < n; i++ {
			want = Java.Next(want)
		}
		if got := Java.Combine(n).Next(state); got != want {
			t.Fatalf("n=%d: combined=%d stepped=%d", n, got, want)
		}
	}
}

func TestRandomMatchesJavaStream(t *testing.T) {
	r := New(1551515151585454)
	for i, want := range []int32{65, 213, 5} {
		if got := r.NextInt(256); got != want {
			t.Fatalf("draw %d: NextInt(256)=%d want %d", i, got, want)
		}
	}
	if got := r.NextInt(100); got != 58 {
		t.Fatalf("NextInt(100)=%d want 58", got)
	}
	if got := r.NextDouble(); got != 0.3070625143824255 {
		t.Fatalf("NextDouble=%v want 0.3070625143824255", got)
	}
}

func TestAdvanceSkipsDraws(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 5; i++ {
		a.Next(32)
	}
	b.Advance(Java.Combine(5))
	if a.State() != b.State() {
		t.Fatalf("state mismatch: %d vs %d", a.State(), b.State())
	}
}

func TestNextIntPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(1).NextInt(0)
}

func TestMixNextWraps(t *testing.T) {
	// left*(left*a + c) + right with left = 1 wraps past 2^63.
	got := MixNext(1, 0)
	a, c := int64(6364136223846793005), int64(1442695040888963407)
	want := a + c
	if got != want {
		t.Fatalf("MixNext(1,0)=%d want %d", got, want)
	}
}
