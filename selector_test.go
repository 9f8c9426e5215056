package genalg

import (
	"math"
	"math/rand"
	"testing"
)

func TestCDFValuesShape(t *testing.T) {
	members := []Member{
		newMember([]float64{0}, 0),
		newMember([]float64{1}, 1),
		newMember([]float64{2}, 2),
		newMember([]float64{3}, -3),
	}

	cdf := cdfValues(members)
	if len(cdf) != len(members) {
		t.Fatalf("Expected %d cdf entries, got %d", len(members), len(cdf))
	}

	prev := 0.0
	for i, v := range cdf {
		if v < prev {
			t.Errorf("CDF decreases at index %d: %v -> %v", i, prev, v)
		}
		prev = v
	}

	if last := cdf[len(cdf)-1]; math.Abs(last-1) > 1e-9 {
		t.Errorf("CDF should end at 1.0, got %v", last)
	}
}

func TestCDFValuesUniformWeights(t *testing.T) {
	// Equal fitness yields equally spaced cdf entries.
	members := []Member{
		newMember([]float64{0}, 1),
		newMember([]float64{1}, 1),
		newMember([]float64{2}, 1),
		newMember([]float64{3}, 1),
	}

	cdf := cdfValues(members)
	for i, v := range cdf {
		want := float64(i+1) / 4
		if math.Abs(v-want) > 1e-12 {
			t.Errorf("Entry %d: expected %v, got %v", i, want, v)
		}
	}
}

func TestPickIndex(t *testing.T) {
	cdf := []float64{0.2, 0.5, 1.0}

	cases := []struct {
		draw float64
		want int
	}{
		{0.0, 0},
		{0.19, 0},
		{0.2, 0},
		{0.21, 1},
		{0.5, 1},
		{0.51, 2},
		{0.999, 2},
	}
	for _, tc := range cases {
		if got := pickIndex(cdf, tc.draw); got != tc.want {
			t.Errorf("pickIndex(%v) = %d, want %d", tc.draw, got, tc.want)
		}
	}
}

func TestPickIndexRoundingGuard(t *testing.T) {
	// A cdf whose last entry rounds a hair under 1.0 must still map every
	// draw to a valid index.
	cdf := []float64{0.5, 1 - 1e-12}
	if got := pickIndex(cdf, 0.9999999999999); got != 1 {
		t.Errorf("Expected clamp to last index, got %d", got)
	}
}

func TestPickIndexProportionality(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// One member holds 90% of the fitness mass; it should dominate draws.
	members := []Member{
		newMember([]float64{0}, 0), // fitness 1.0
		newMember([]float64{1}, 8), // fitness 1/9
	}
	cdf := cdfValues(members)

	counts := [2]int{}
	const draws = 10000
	for range draws {
		counts[pickIndex(cdf, rng.Float64())]++
	}

	share := float64(counts[0]) / draws
	if share < 0.85 || share > 0.95 {
		t.Errorf("Dominant member selected %v of the time, expected ~0.9", share)
	}
}

func TestPickMateDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(12))

	// Extreme fitness skew: member 0 takes essentially the whole mass, so
	// proportionate redraws keep landing on it and the uniform fallback must
	// kick in.
	members := []Member{
		newMember([]float64{0}, -1e12),
		newMember([]float64{1}, 1),
		newMember([]float64{2}, 1),
	}
	cdf := cdfValues(members)

	for range 100 {
		if mate := pickMate(rng, cdf, 0); mate == 0 {
			t.Fatal("pickMate returned the parent index")
		}
	}
}
