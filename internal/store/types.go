package store

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"
)

// RunConfig holds the settings of one optimization run. It is persisted next
// to the run's result so listings can show how a result was produced.
type RunConfig struct {
	Function    string  `json:"function"`
	Dim         int     `json:"dim"`
	PopSize     int     `json:"popSize"`
	Generations int     `json:"generations"`
	Crossover   float64 `json:"crossover"`
	Mutation    float64 `json:"mutation"`
	Parallelism int     `json:"parallelism"`
	Seed        int64   `json:"seed"`
}

// RunResult is the persisted outcome of a completed run: the best parameter
// vector ever seen, its objective value and fitness, and timing metadata.
//
// Note this is deliberately NOT a population checkpoint: no member list or
// generator state is saved, so a run cannot be resumed mid-flight. Only the
// final outcome and the per-generation trace survive a process restart.
type RunResult struct {
	RunID       string    `json:"runId"`
	Config      RunConfig `json:"config"`
	BestParams  []float64 `json:"bestParams"`
	BestValue   float64   `json:"bestValue"`
	BestFitness float64   `json:"bestFitness"`
	Generations int       `json:"generations"`
	Started     time.Time `json:"started"`
	Finished    time.Time `json:"finished"`
}

// Validate checks the result for the fields every consumer relies on.
func (r *RunResult) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if len(r.BestParams) == 0 {
		return &ValidationError{Field: "BestParams", Reason: "cannot be empty"}
	}
	if r.Config.Dim != 0 && len(r.BestParams) != r.Config.Dim {
		return &ValidationError{
			Field:  "BestParams",
			Reason: fmt.Sprintf("length %d does not match dim %d", len(r.BestParams), r.Config.Dim),
		}
	}
	if r.BestFitness <= 0 {
		return &ValidationError{Field: "BestFitness", Reason: "must be strictly positive"}
	}
	if r.Config.PopSize < 2 {
		return &ValidationError{Field: "Config.PopSize", Reason: "must be >= 2"}
	}
	if r.Started.IsZero() {
		return &ValidationError{Field: "Started", Reason: "cannot be zero"}
	}
	return nil
}

// ValidationError reports an invalid run result field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

// GenerationEntry is one line of the per-generation trace (trace.jsonl).
type GenerationEntry struct {
	Generation  int       `json:"generation"`
	BestValue   float64   `json:"bestValue"`
	BestFitness float64   `json:"bestFitness"`
	MeanValue   float64   `json:"meanValue"`
	StdDev      float64   `json:"stdDev"`
	Timestamp   time.Time `json:"timestamp"`

	// BestParams is optional; omit it to keep traces small for long runs.
	BestParams []float64 `json:"bestParams,omitempty"`
}

// NewGenerationEntry summarizes one generation's objective values into a
// trace entry. values holds the raw objective value of every member.
func NewGenerationEntry(generation int, values []float64, bestValue, bestFitness float64) GenerationEntry {
	entry := GenerationEntry{
		Generation:  generation,
		BestValue:   bestValue,
		BestFitness: bestFitness,
		Timestamp:   time.Now(),
	}
	if len(values) > 0 {
		entry.MeanValue = stat.Mean(values, nil)
	}
	if len(values) > 1 {
		entry.StdDev = stat.StdDev(values, nil)
	}
	return entry
}
