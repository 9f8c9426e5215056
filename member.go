package genalg

// Member is one candidate solution: a parameter vector, the raw objective
// value it produced, and the fitness derived from that value. Members are
// immutable once built and are discarded wholesale at the end of each
// generation.
type Member struct {
	Params  []float64
	Value   float64
	Fitness float64
}

func newMember(params []float64, value float64) Member {
	return Member{Params: params, Value: value, Fitness: Fitness(value)}
}

// Fitness maps a raw objective value onto a strictly positive selection
// weight. The engine always maximizes fitness internally, so lower objective
// values (the minimization convention) must map to higher scores:
//
//	fitness(v) = 1 / (1 + v)  for v >= 0, in (0, 1]
//	fitness(v) = 1 + |v|      for v < 0, unbounded above 1
//
// Negative objective values score above every non-negative one and without a
// ceiling, so arbitrarily good negative-valued objectives keep being rewarded.
func Fitness(value float64) float64 {
	if value >= 0 {
		return 1 / (1 + value)
	}
	return 1 - value
}

// bestOf returns the member with the highest fitness. The first such member
// wins ties. Callers guarantee members is non-empty.
func bestOf(members []Member) Member {
	best := members[0]
	for _, m := range members[1:] {
		if m.Fitness > best.Fitness {
			best = m
		}
	}
	return best
}
