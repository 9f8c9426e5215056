// Package bench provides benchmark objective functions for exercising the
// optimizer, drawn from the standard test-function literature
// (https://en.wikipedia.org/wiki/Test_functions_for_optimization).
package bench

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Func is one benchmark objective over a fixed-dimension box domain.
type Func interface {
	Name() string
	Dim() int
	// Bounds returns per-dimension lower and upper limits.
	Bounds() (low, up []float64)
	Eval(v []float64) float64
	// Optimum is the known global minimum value.
	Optimum() float64
	// Integer reports whether the domain is restricted to whole numbers.
	Integer() bool
}

// Lookup resolves a benchmark by name, case-insensitively. dim overrides the
// default dimensionality for dimension-parametric functions; pass 0 to keep
// the default. Fixed-dimension functions reject a mismatched dim.
func Lookup(name string, dim int) (Func, error) {
	switch strings.ToLower(name) {
	case "sphere":
		return Sphere{NDim: defaultDim(dim, 3)}, nil
	case "sumints":
		return SumInts{NDim: defaultDim(dim, 3)}, nil
	case "rastrigin":
		return Rastrigin{NDim: defaultDim(dim, 3)}, nil
	case "rosenbrock":
		return Rosenbrock{NDim: defaultDim(dim, 2)}, nil
	case "styblinski":
		return Styblinski{NDim: defaultDim(dim, 2)}, nil
	case "ackley":
		if dim != 0 && dim != 2 {
			return nil, fmt.Errorf("ackley is 2-dimensional, got dim %d", dim)
		}
		return Ackley{}, nil
	default:
		return nil, fmt.Errorf("unknown benchmark function %q (have %s)",
			name, strings.Join(Names(), ", "))
	}
}

// Names lists the available benchmark names, sorted.
func Names() []string {
	names := []string{"sphere", "sumints", "rastrigin", "rosenbrock", "styblinski", "ackley"}
	sort.Strings(names)
	return names
}

func defaultDim(dim, def int) int {
	if dim > 0 {
		return dim
	}
	return def
}

func uniformBounds(n int, low, up float64) ([]float64, []float64) {
	l := make([]float64, n)
	u := make([]float64, n)
	for i := range l {
		l[i] = low
		u[i] = up
	}
	return l, u
}

// Sphere is sum(x_i^2) with its minimum of 0 at the origin.
type Sphere struct{ NDim int }

func (f Sphere) Name() string  { return "sphere" }
func (f Sphere) Dim() int      { return f.NDim }
func (f Sphere) Optimum() float64 { return 0 }
func (f Sphere) Integer() bool { return false }

func (f Sphere) Bounds() (low, up []float64) { return uniformBounds(f.NDim, -10, 10) }

func (f Sphere) Eval(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// SumInts is the sum of integer parameters in [0, 10], minimized at the
// origin. It mirrors the classic minimize-integers toy problem.
type SumInts struct{ NDim int }

func (f SumInts) Name() string  { return "sumints" }
func (f SumInts) Dim() int      { return f.NDim }
func (f SumInts) Optimum() float64 { return 0 }
func (f SumInts) Integer() bool { return true }

func (f SumInts) Bounds() (low, up []float64) { return uniformBounds(f.NDim, 0, 10) }

func (f SumInts) Eval(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum
}

// Rastrigin is 10n + sum(x_i^2 - 10 cos(2 pi x_i)), highly multimodal with
// its minimum of 0 at the origin.
type Rastrigin struct{ NDim int }

func (f Rastrigin) Name() string  { return "rastrigin" }
func (f Rastrigin) Dim() int      { return f.NDim }
func (f Rastrigin) Optimum() float64 { return 0 }
func (f Rastrigin) Integer() bool { return false }

func (f Rastrigin) Bounds() (low, up []float64) { return uniformBounds(f.NDim, -5.12, 5.12) }

func (f Rastrigin) Eval(v []float64) float64 {
	sum := 10 * float64(len(v))
	for _, x := range v {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return sum
}

// Rosenbrock is the banana-valley function with its minimum of 0 at (1, ..., 1).
type Rosenbrock struct{ NDim int }

func (f Rosenbrock) Name() string  { return "rosenbrock" }
func (f Rosenbrock) Dim() int      { return f.NDim }
func (f Rosenbrock) Optimum() float64 { return 0 }
func (f Rosenbrock) Integer() bool { return false }

func (f Rosenbrock) Bounds() (low, up []float64) { return uniformBounds(f.NDim, -10, 10) }

func (f Rosenbrock) Eval(v []float64) float64 {
	var sum float64
	for i := 0; i < len(v)-1; i++ {
		a := v[i+1] - v[i]*v[i]
		b := 1 - v[i]
		sum += 100*a*a + b*b
	}
	return sum
}

// Styblinski is the Styblinski-Tang function; its minimum is negative
// (about -39.166 per dimension at x_i = -2.9035), which exercises the
// negative branch of the fitness transform.
type Styblinski struct{ NDim int }

func (f Styblinski) Name() string  { return "styblinski" }
func (f Styblinski) Dim() int      { return f.NDim }
func (f Styblinski) Integer() bool { return false }

func (f Styblinski) Optimum() float64 { return -39.16599 * float64(f.NDim) }

func (f Styblinski) Bounds() (low, up []float64) { return uniformBounds(f.NDim, -5, 5) }

func (f Styblinski) Eval(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += math.Pow(x, 4) - 16*x*x + 5*x
	}
	return sum / 2
}

// Ackley is the 2-dimensional Ackley function with its minimum of 0 at the
// origin.
type Ackley struct{}

func (f Ackley) Name() string  { return "ackley" }
func (f Ackley) Dim() int      { return 2 }
func (f Ackley) Optimum() float64 { return 0 }
func (f Ackley) Integer() bool { return false }

func (f Ackley) Bounds() (low, up []float64) { return uniformBounds(2, -5, 5) }

func (f Ackley) Eval(v []float64) float64 {
	x, y := v[0], v[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E
}
