package genalg

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// Objective is the cost function under optimization. It receives one
// parameter vector, with exactly as many entries (in the same order) as
// parameters were added, plus the fixed arguments supplied at construction.
//
// A returned error fails the whole generation. Under parallel evaluation the
// function is called from multiple goroutines, so it must not mutate shared
// state; params and args are read-only for the duration of a generation.
type Objective func(params []float64, args map[string]any) (float64, error)

// evaluate runs the objective over every vector and returns the resulting
// members, one per vector in matching order. With parallelism above one the
// calls are spread over a bounded worker pool that exists only for this
// batch. Evaluation is all-or-nothing: the first error aborts the batch and
// no members are returned.
func (p *Population) evaluate(vectors [][]float64) ([]Member, error) {
	members := make([]Member, len(vectors))

	if p.parallelism <= 1 {
		for i, vec := range vectors {
			val, err := p.fn(vec, p.args)
			if err != nil {
				return nil, fmt.Errorf("objective failed for vector %d: %w", i, err)
			}
			members[i] = newMember(vec, val)
		}
		return members, nil
	}

	workers := pool.New().WithMaxGoroutines(p.parallelism).WithErrors()
	for i, vec := range vectors {
		// Each task owns a distinct slot of members, so no locking is needed.
		workers.Go(func() error {
			val, err := p.fn(vec, p.args)
			if err != nil {
				return fmt.Errorf("objective failed for vector %d: %w", i, err)
			}
			members[i] = newMember(vec, val)
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}
