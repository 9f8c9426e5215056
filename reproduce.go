package genalg

import "math/rand"

// crossoverAt performs single-point crossover of two equal-length parameter
// vectors at locus k in [1, len-1]: the first offspring takes a's prefix and
// b's suffix, the second the reverse. Fresh slices are returned; the parents
// are never aliased.
func crossoverAt(a, b []float64, k int) ([]float64, []float64) {
	first := make([]float64, len(a))
	second := make([]float64, len(a))
	copy(first, a[:k])
	copy(first[k:], b[k:])
	copy(second, b[:k])
	copy(second[k:], a[k:])
	return first, second
}

// mutateParams returns a copy of vals where each locus is independently
// replaced by a mutated value with probability pMutation.
func mutateParams(rng *rand.Rand, vals []float64, params []Param, pMutation float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if rng.Float64() < pMutation {
			out[i] = params[i].mutate(rng, v)
		} else {
			out[i] = v
		}
	}
	return out
}

// breed produces exactly popSize offspring vectors from the current members.
// Parents are chosen proportionally to fitness. With probability pCrossover
// (and at least two loci) a distinct mate is selected and single-point
// crossover yields two offspring at once; otherwise the parent's vector is
// carried forward alone. Every offspring is then subject to per-locus
// mutation. A final crossover pair can overshoot the target size by one, in
// which case the trailing offspring is dropped before evaluation.
func (p *Population) breed(pCrossover, pMutation float64) [][]float64 {
	cdf := cdfValues(p.members)
	offspring := make([][]float64, 0, p.popSize+1)

	for len(offspring) < p.popSize {
		parent := pickIndex(cdf, p.rng.Float64())

		if len(p.params) > 1 && p.rng.Float64() < pCrossover {
			mate := pickMate(p.rng, cdf, parent)
			k := 1 + p.rng.Intn(len(p.params)-1)
			first, second := crossoverAt(p.members[parent].Params, p.members[mate].Params, k)
			offspring = append(offspring,
				mutateParams(p.rng, first, p.params, pMutation),
				mutateParams(p.rng, second, p.params, pMutation))
		} else {
			offspring = append(offspring,
				mutateParams(p.rng, p.members[parent].Params, p.params, pMutation))
		}
	}
	return offspring[:p.popSize]
}
