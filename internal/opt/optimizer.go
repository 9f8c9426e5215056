package opt

// Optimizer abstracts a derivative-free minimizer so backends can be swapped
// behind the run command and the job worker.
type Optimizer interface {
	// Run minimizes eval over the box [lower, upper] in dim dimensions and
	// returns the best parameter vector found together with its cost.
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}
