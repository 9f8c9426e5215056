// Package genalg implements a population-based stochastic optimizer (a
// genetic algorithm) over fixed-length vectors of bounded scalar parameters.
//
// Callers supply an objective function and per-parameter bounds, then drive
// the generation loop themselves:
//
//	pop, err := genalg.New(100, objective)
//	pop.AddParam(genalg.IntParam(0, 10))
//	pop.Initialize()
//	for range 50 {
//		pop.NextGeneration(genalg.DefaultCrossoverRate, genalg.DefaultMutationRate)
//	}
//	best, _ := pop.BestParams()
//
// The engine minimizes the objective's return value without needing
// gradients. Selection is fitness-proportionate, reproduction uses
// single-point crossover and per-locus mutation, and objective calls can be
// spread over a bounded worker pool.
package genalg

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Default reproduction rates, matching NextGeneration's documented behavior
// for callers without an opinion.
const (
	DefaultCrossoverRate = 0.5
	DefaultMutationRate  = 0.01
)

var (
	// ErrInvalidDomain reports a parameter whose bounds or kind cannot
	// describe a usable domain.
	ErrInvalidDomain = errors.New("invalid parameter domain")

	// ErrAlreadyInitialized reports an attempt to reconfigure parameters
	// after the population has been initialized.
	ErrAlreadyInitialized = errors.New("population already initialized")

	// ErrNotInitialized reports a generation advance before Initialize.
	ErrNotInitialized = errors.New("population not initialized")

	// ErrNoParams reports an Initialize call with no parameters configured.
	ErrNoParams = errors.New("no parameters configured")
)

// Population owns the parameter domains and the current set of members, and
// orchestrates initialization and generation advancement.
//
// A Population is not safe for concurrent use: NextGeneration must not be
// invoked while another call on the same Population is in flight. Concurrency
// lives inside the evaluator, never across generations.
type Population struct {
	popSize     int
	fn          Objective
	args        map[string]any
	parallelism int
	rng         *rand.Rand

	params  []Param
	members []Member
}

// Option configures a Population at construction time.
type Option func(*Population)

// WithArgs supplies a fixed argument bundle passed verbatim to every
// objective call. The bundle is treated as read-only for the lifetime of the
// population.
func WithArgs(args map[string]any) Option {
	return func(p *Population) { p.args = args }
}

// WithParallelism sets the number of workers used to evaluate a generation.
// One (the default) evaluates sequentially.
func WithParallelism(n int) Option {
	return func(p *Population) { p.parallelism = n }
}

// WithRand supplies the random source used for sampling, mutation, selection
// and crossover locus draws. Tests pass a seeded source for determinism. The
// default source is seeded from the wall clock.
func WithRand(rng *rand.Rand) Option {
	return func(p *Population) { p.rng = rng }
}

// New constructs a population of popSize candidates evaluated by fn.
// popSize must be at least 2 and fn must be non-nil.
func New(popSize int, fn Objective, opts ...Option) (*Population, error) {
	if popSize < 2 {
		return nil, fmt.Errorf("population size must be >= 2, got %d", popSize)
	}
	if fn == nil {
		return nil, errors.New("objective function must not be nil")
	}

	p := &Population{
		popSize:     popSize,
		fn:          fn,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.parallelism < 1 {
		return nil, fmt.Errorf("parallelism must be >= 1, got %d", p.parallelism)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p, nil
}

// AddParam appends one parameter domain. The objective will receive vectors
// whose entries follow the order of AddParam calls. Parameters are frozen
// once the population is initialized.
func (p *Population) AddParam(param Param) error {
	if len(p.members) > 0 {
		return fmt.Errorf("cannot add parameter: %w", ErrAlreadyInitialized)
	}
	if err := param.validate(); err != nil {
		return err
	}
	p.params = append(p.params, param)
	return nil
}

// Initialize samples a uniform random vector per member and evaluates the
// whole batch. Calling it on an already initialized population overwrites
// the members; that is surfaced as a warning, not an error.
func (p *Population) Initialize() error {
	if len(p.params) == 0 {
		return fmt.Errorf("cannot initialize: %w", ErrNoParams)
	}
	if len(p.members) > 0 {
		slog.Warn("Initialize called on initialized population, overwriting members")
	}

	vectors := make([][]float64, p.popSize)
	for i := range vectors {
		vec := make([]float64, len(p.params))
		for j, param := range p.params {
			vec[j] = param.sample(p.rng)
		}
		vectors[i] = vec
	}

	members, err := p.evaluate(vectors)
	if err != nil {
		return err
	}
	p.members = members
	return nil
}

// NextGeneration replaces the members with a freshly bred and evaluated
// generation of the same size. Selection is fitness-proportionate; crossover
// and mutation are applied per the supplied probabilities, both in [0, 1].
//
// The previous members survive untouched if any objective call fails; the
// replacement is committed only after the whole batch succeeds.
func (p *Population) NextGeneration(pCrossover, pMutation float64) error {
	if len(p.members) == 0 {
		return fmt.Errorf("cannot advance generation: %w", ErrNotInitialized)
	}
	if pCrossover < 0 || pCrossover > 1 {
		return fmt.Errorf("crossover probability must be within [0, 1], got %v", pCrossover)
	}
	if pMutation < 0 || pMutation > 1 {
		return fmt.Errorf("mutation probability must be within [0, 1], got %v", pMutation)
	}

	members, err := p.evaluate(p.breed(pCrossover, pMutation))
	if err != nil {
		return err
	}
	p.members = members
	return nil
}

// Len returns the number of evaluated members, zero before Initialize.
func (p *Population) Len() int { return len(p.members) }

// Members returns a snapshot of the current members.
func (p *Population) Members() []Member {
	out := make([]Member, len(p.members))
	copy(out, p.members)
	return out
}

// BestFitness returns the highest fitness in the population.
// ok is false before Initialize.
func (p *Population) BestFitness() (fitness float64, ok bool) {
	if len(p.members) == 0 {
		return 0, false
	}
	return bestOf(p.members).Fitness, true
}

// BestValue returns the objective value of the fittest member.
// ok is false before Initialize.
func (p *Population) BestValue() (value float64, ok bool) {
	if len(p.members) == 0 {
		return 0, false
	}
	return bestOf(p.members).Value, true
}

// BestParams returns a copy of the fittest member's parameter vector.
// ok is false before Initialize.
func (p *Population) BestParams() (params []float64, ok bool) {
	if len(p.members) == 0 {
		return nil, false
	}
	best := bestOf(p.members)
	params = make([]float64, len(best.Params))
	copy(params, best.Params)
	return params, true
}

// AverageFitness returns the mean fitness over the population.
// ok is false before Initialize.
func (p *Population) AverageFitness() (mean float64, ok bool) {
	if len(p.members) == 0 {
		return 0, false
	}
	return stat.Mean(p.fitnesses(), nil), true
}

// AverageValue returns the mean objective value over the population.
// ok is false before Initialize.
func (p *Population) AverageValue() (mean float64, ok bool) {
	if len(p.members) == 0 {
		return 0, false
	}
	return stat.Mean(p.Values(), nil), true
}

// Values returns the objective values of the current members, in member
// order. The slice is a copy.
func (p *Population) Values() []float64 {
	vals := make([]float64, len(p.members))
	for i, m := range p.members {
		vals[i] = m.Value
	}
	return vals
}

func (p *Population) fitnesses() []float64 {
	vals := make([]float64, len(p.members))
	for i, m := range p.members {
		vals[i] = m.Fitness
	}
	return vals
}
