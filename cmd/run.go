package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cwbudde/genalg"
	"github.com/cwbudde/genalg/internal/bench"
	"github.com/cwbudde/genalg/internal/opt"
	"github.com/cwbudde/genalg/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	function    string
	dim         int
	popSize     int
	generations int
	crossover   float64
	mutation    float64
	parallel    int
	seed        int64
	algo        string
	dataDir     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run single-shot optimization",
	Long:  `Optimizes a benchmark function and prints the best solution found.`,
	RunE:  runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&function, "function", "sphere", "Benchmark function (see 'genalg functions')")
	runCmd.Flags().IntVar(&dim, "dim", 0, "Problem dimension (0 uses the function default)")
	runCmd.Flags().IntVar(&popSize, "pop", 50, "Population size")
	runCmd.Flags().IntVar(&generations, "generations", 100, "Number of generations")
	runCmd.Flags().Float64Var(&crossover, "crossover", genalg.DefaultCrossoverRate, "Crossover probability")
	runCmd.Flags().Float64Var(&mutation, "mutation", genalg.DefaultMutationRate, "Mutation probability")
	runCmd.Flags().IntVar(&parallel, "parallel", 1, "Evaluation worker count")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	runCmd.Flags().StringVar(&algo, "algo", "genetic", "Optimizer backend: genetic, mayfly")
	runCmd.Flags().StringVar(&dataDir, "data", "", "Data directory for result and trace persistence")

	rootCmd.AddCommand(runCmd)
}

func runOptimization(cmd *cobra.Command, args []string) error {
	fn, err := bench.Lookup(function, dim)
	if err != nil {
		return err
	}
	lower, upper := fn.Bounds()

	runID := uuid.New().String()

	var resultStore *store.FSStore
	var trace *store.TraceWriter
	if dataDir != "" {
		resultStore, err = store.NewFSStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open result store: %w", err)
		}
		trace, err = store.NewTraceWriter(dataDir, runID, false)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer trace.Close()
	}

	optimizer, err := buildOptimizer(fn, trace)
	if err != nil {
		return err
	}

	slog.Info("Starting optimization",
		"run_id", runID,
		"function", fn.Name(),
		"dim", fn.Dim(),
		"algo", algo,
		"pop", popSize,
		"generations", generations,
	)

	started := time.Now()
	bestParams, bestValue := optimizer.Run(fn.Eval, lower, upper, fn.Dim())
	elapsed := time.Since(started)

	evals := (generations + 1) * popSize
	slog.Info("Optimization complete",
		"elapsed", elapsed,
		"best_value", bestValue,
		"optimum", fn.Optimum(),
		"evals_per_second", fmt.Sprintf("%.0f", float64(evals)/elapsed.Seconds()),
	)

	fmt.Printf("Best value: %g (optimum %g)\n", bestValue, fn.Optimum())
	fmt.Printf("Best params: %s\n", formatParams(bestParams))

	if resultStore != nil {
		if err := trace.Flush(); err != nil {
			return err
		}
		result := &store.RunResult{
			RunID: runID,
			Config: store.RunConfig{
				Function:    fn.Name(),
				Dim:         fn.Dim(),
				PopSize:     popSize,
				Generations: generations,
				Crossover:   crossover,
				Mutation:    mutation,
				Parallelism: parallel,
				Seed:        seed,
			},
			BestParams:  bestParams,
			BestValue:   bestValue,
			BestFitness: genalg.Fitness(bestValue),
			Generations: generations,
			Started:     started,
			Finished:    started.Add(elapsed),
		}
		if err := resultStore.SaveResult(runID, result); err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		fmt.Printf("Saved run %s\n", runID)
	}

	return nil
}

// buildOptimizer assembles the backend selected by --algo. The genetic
// backend honors the function's integer domain and writes the per-generation
// trace when persistence is enabled; the mayfly backend supports neither.
func buildOptimizer(fn bench.Func, trace *store.TraceWriter) (opt.Optimizer, error) {
	switch algo {
	case "genetic":
		genetic := opt.NewGenetic(generations, popSize, seed).
			WithRates(crossover, mutation).
			WithParallelism(parallel)
		if fn.Integer() {
			genetic = genetic.WithIntegerDomain()
		}
		if trace != nil {
			genetic = genetic.WithProgress(func(generation int, pop *genalg.Population) {
				bestValue, _ := pop.BestValue()
				bestFitness, _ := pop.BestFitness()
				entry := store.NewGenerationEntry(generation, pop.Values(), bestValue, bestFitness)
				if err := trace.Write(entry); err != nil {
					slog.Warn("Failed to write trace entry", "generation", generation, "error", err)
				}
			})
		}
		return genetic, nil
	case "mayfly":
		if trace != nil {
			slog.Warn("Tracing is not supported by the mayfly backend; only the final result is saved")
		}
		return opt.NewMayfly(generations, popSize, seed), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", algo)
	}
}

func formatParams(params []float64) string {
	parts := make([]string, len(params))
	for i, v := range params {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
