package genalg

import (
	"math/rand"
	"sort"
)

// cdfValues builds the cumulative fitness distribution over members. Entry i
// is the probability that a uniform draw selects a member with index <= i.
// The sequence is non-decreasing and its last entry is 1.0 up to rounding,
// since every fitness is strictly positive.
func cdfValues(members []Member) []float64 {
	var total float64
	for _, m := range members {
		total += m.Fitness
	}

	cdf := make([]float64, len(members))
	var cum float64
	for i, m := range members {
		cum += m.Fitness / total
		cdf[i] = cum
	}
	return cdf
}

// pickIndex maps a draw r in [0, 1) onto a member index through the
// cumulative distribution: the smallest i with cdf[i] >= r. The cdf is sorted
// by construction, so a binary search suffices.
func pickIndex(cdf []float64, r float64) int {
	i := sort.SearchFloat64s(cdf, r)
	if i >= len(cdf) {
		// Rounding can leave the final entry a hair under 1.0.
		i = len(cdf) - 1
	}
	return i
}

// mateRedraws bounds proportionate redraws for a distinct crossover mate
// before falling back to a uniform choice over the remaining members.
const mateRedraws = 64

// pickMate selects a member index distinct from parent, proportionally to
// fitness. When one member holds nearly the whole fitness mass proportionate
// redraws may keep landing on parent, so after a bounded number of attempts
// the mate is drawn uniformly from the other indices.
func pickMate(rng *rand.Rand, cdf []float64, parent int) int {
	for range mateRedraws {
		if i := pickIndex(cdf, rng.Float64()); i != parent {
			return i
		}
	}
	i := rng.Intn(len(cdf) - 1)
	if i >= parent {
		i++
	}
	return i
}
