package opt

import (
	"log/slog"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MayflyAdapter exposes the external mayfly swarm optimizer through the
// Optimizer interface, as an alternative backend to the genetic engine.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a mayfly backend. The library requires popSize >= 20.
func NewMayfly(maxIters, popSize int, seed int64) *MayflyAdapter {
	return &MayflyAdapter{maxIters: maxIters, popSize: popSize, seed: seed}
}

// Run executes the mayfly optimization. The library only supports scalar box
// bounds shared by all dimensions, so the widest enclosing box is used; eval
// is expected to tolerate the slack when per-dimension bounds differ.
func (m *MayflyAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = eval
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.Rand = rand.New(rand.NewSource(m.seed))

	low, up := lower[0], upper[0]
	for i := 1; i < dim; i++ {
		low = min(low, lower[i])
		up = max(up, upper[i])
	}
	config.LowerBound = low
	config.UpperBound = up

	result, err := mayfly.Optimize(config)
	if err != nil {
		slog.Error("Mayfly optimization failed", "error", err)
		zero := make([]float64, dim)
		return zero, eval(zero)
	}

	return result.GlobalBest.Position, result.GlobalBest.Cost
}
