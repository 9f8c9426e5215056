package opt

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/genalg"
)

// GeneticAdapter drives the genalg engine through the Optimizer interface
// using continuous parameters over the supplied box bounds.
type GeneticAdapter struct {
	generations int
	popSize     int
	parallelism int
	pCrossover  float64
	pMutation   float64
	seed        int64
	progress    func(generation int, pop *genalg.Population)
	integer     bool
}

// NewGenetic creates a genetic-algorithm backend running the given number of
// generations with default reproduction rates.
func NewGenetic(generations, popSize int, seed int64) *GeneticAdapter {
	return &GeneticAdapter{
		generations: generations,
		popSize:     popSize,
		parallelism: 1,
		pCrossover:  genalg.DefaultCrossoverRate,
		pMutation:   genalg.DefaultMutationRate,
		seed:        seed,
	}
}

// WithRates overrides the crossover and mutation probabilities.
func (g *GeneticAdapter) WithRates(pCrossover, pMutation float64) *GeneticAdapter {
	g.pCrossover = pCrossover
	g.pMutation = pMutation
	return g
}

// WithParallelism sets the evaluator worker count.
func (g *GeneticAdapter) WithParallelism(n int) *GeneticAdapter {
	g.parallelism = n
	return g
}

// WithIntegerDomain restricts every parameter to whole numbers. Bounds are
// expected to be integral.
func (g *GeneticAdapter) WithIntegerDomain() *GeneticAdapter {
	g.integer = true
	return g
}

// WithProgress registers a callback invoked after initialization (generation
// zero) and after every completed generation.
func (g *GeneticAdapter) WithProgress(fn func(generation int, pop *genalg.Population)) *GeneticAdapter {
	g.progress = fn
	return g
}

// Run executes the generation loop and returns the best vector ever seen.
// The engine carries no elitism, so the best member is tracked across
// generations rather than read off the final population.
func (g *GeneticAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	objective := func(params []float64, _ map[string]any) (float64, error) {
		return eval(params), nil
	}

	pop, err := genalg.New(g.popSize, objective,
		genalg.WithRand(rand.New(rand.NewSource(g.seed))),
		genalg.WithParallelism(g.parallelism))
	if err != nil {
		slog.Error("Failed to build population", "error", err)
		return make([]float64, dim), eval(make([]float64, dim))
	}

	for i := 0; i < dim; i++ {
		param := genalg.FloatParam(lower[i], upper[i])
		if g.integer {
			param = genalg.IntParam(int(lower[i]), int(upper[i]))
		}
		if err := pop.AddParam(param); err != nil {
			slog.Error("Failed to add parameter", "dim", i, "error", err)
			return make([]float64, dim), eval(make([]float64, dim))
		}
	}

	if err := pop.Initialize(); err != nil {
		slog.Error("Failed to initialize population", "error", err)
		return make([]float64, dim), eval(make([]float64, dim))
	}

	bestCost, _ := pop.BestValue()
	bestParams, _ := pop.BestParams()
	if g.progress != nil {
		g.progress(0, pop)
	}

	for gen := 1; gen <= g.generations; gen++ {
		if err := pop.NextGeneration(g.pCrossover, g.pMutation); err != nil {
			slog.Error("Generation failed", "generation", gen, "error", err)
			break
		}
		if cost, _ := pop.BestValue(); cost < bestCost {
			bestCost = cost
			bestParams, _ = pop.BestParams()
		}
		if g.progress != nil {
			g.progress(gen, pop)
		}
	}

	return bestParams, bestCost
}
