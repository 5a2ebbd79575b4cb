package rng

import "testing"

func TestSeededStreamDeterminism(t *testing.T) {
	a := New()

	first := a.SeededStream("propagation", 42)
	second := a.SeededStream("propagation", 42)

	for i := 0; i < 100; i++ {
		got, want := second.Float64(), first.Float64()
		if got != want {
			t.Fatalf("draw %d diverged: %v != %v", i, got, want)
		}
	}
}

func TestSeededStreamNameSeparation(t *testing.T) {
	a := New()

	first := a.SeededStream("propagation", 42)
	second := a.SeededStream("perturbation", 42)

	same := true
	for i := 0; i < 10; i++ {
		if first.Float64() != second.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("differently named streams produced identical draws")
	}
}

func TestIterationStreamDeterminism(t *testing.T) {
	a := New()

	for _, iter := range []int{0, 1, 500, 999} {
		first := a.IterationStream(42, iter)
		second := a.IterationStream(42, iter)
		for i := 0; i < 50; i++ {
			got, want := second.Float64(), first.Float64()
			if got != want {
				t.Fatalf("iteration %d draw %d diverged: %v != %v", iter, i, got, want)
			}
		}
	}
}

func TestIterationStreamIndependence(t *testing.T) {
	a := New()

	// Adjacent iterations must not produce correlated openings. A shared
	// first draw would betray a weak derivation from (seed, ordinal).
	seen := make(map[float64]int)
	for iter := 0; iter < 1000; iter++ {
		v := a.IterationStream(42, iter).Float64()
		if prev, ok := seen[v]; ok {
			t.Fatalf("iterations %d and %d opened with identical draw %v", prev, iter, v)
		}
		seen[v] = iter
	}
}

func TestIterationStreamSeedSeparation(t *testing.T) {
	a := New()

	first := a.IterationStream(42, 0)
	second := a.IterationStream(43, 0)

	same := true
	for i := 0; i < 10; i++ {
		if first.Float64() != second.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different base seeds produced identical iteration streams")
	}
}
