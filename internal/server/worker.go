package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/genalg"
	"github.com/cwbudde/genalg/internal/bench"
	"github.com/cwbudde/genalg/internal/store"
)

// runJob executes one optimization job to completion, broadcasting progress
// after every generation, appending to the run's trace, and persisting the
// final result when a store is configured. Cancellation of ctx stops the run
// between generations and marks the job failed.
func runJob(ctx context.Context, jm *JobManager, resultStore store.Store, traceDir, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) { j.State = StateRunning }); err != nil {
		return err
	}
	slog.Info("Starting job", "job_id", jobID, "function", job.Config.Function,
		"pop", job.Config.PopSize, "generations", job.Config.Generations)

	fn, err := bench.Lookup(job.Config.Function, job.Config.Dim)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	pop, err := buildPopulation(fn, job.Config)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	var trace *store.TraceWriter
	if traceDir != "" {
		trace, err = store.NewTraceWriter(traceDir, jobID, false)
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
		defer trace.Close()
	}

	start := time.Now()
	if err := pop.Initialize(); err != nil {
		markJobFailed(jm, jobID, fmt.Errorf("initialization failed: %w", err))
		return err
	}

	bestValue, _ := pop.BestValue()
	bestFitness, _ := pop.BestFitness()
	bestParams, _ := pop.BestParams()
	recordGeneration(jm, trace, jobID, 0, pop, start)

	for gen := 1; gen <= job.Config.Generations; gen++ {
		select {
		case <-ctx.Done():
			markJobFailed(jm, jobID, ctx.Err())
			return ctx.Err()
		default:
		}

		if err := pop.NextGeneration(job.Config.Crossover, job.Config.Mutation); err != nil {
			markJobFailed(jm, jobID, fmt.Errorf("generation %d failed: %w", gen, err))
			return err
		}

		// No elitism in the engine: remember the best member ever seen.
		if v, _ := pop.BestValue(); v < bestValue {
			bestValue = v
			bestFitness, _ = pop.BestFitness()
			bestParams, _ = pop.BestParams()
		}

		if err := jm.UpdateJob(jobID, func(j *Job) {
			j.Generation = gen
			j.BestValue = bestValue
			j.BestFitness = bestFitness
			j.BestParams = bestParams
		}); err != nil {
			return err
		}
		recordGeneration(jm, trace, jobID, gen, pop, start)
	}

	elapsed := time.Since(start)
	endTime := time.Now()
	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.EndTime = &endTime
	}); err != nil {
		return err
	}

	if trace != nil {
		if err := trace.Flush(); err != nil {
			slog.Warn("Failed to flush trace", "job_id", jobID, "error", err)
		}
	}

	if resultStore != nil {
		result := &store.RunResult{
			RunID:       jobID,
			Config:      job.Config,
			BestParams:  bestParams,
			BestValue:   bestValue,
			BestFitness: bestFitness,
			Generations: job.Config.Generations,
			Started:     start,
			Finished:    endTime,
		}
		if err := resultStore.SaveResult(jobID, result); err != nil {
			slog.Warn("Failed to persist run result", "job_id", jobID, "error", err)
		}
	}

	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"best_value", bestValue,
		"evals_per_second", evalsPerSecond(job.Config, job.Config.Generations, elapsed),
	)

	job, _ = jm.GetJob(jobID)
	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:          jobID,
		State:          StateCompleted,
		Generation:     job.Generation,
		BestValue:      bestValue,
		EvalsPerSecond: evalsPerSecond(job.Config, job.Config.Generations, elapsed),
		Timestamp:      time.Now(),
	})
	return nil
}

// buildPopulation assembles the engine population for a benchmark function.
func buildPopulation(fn bench.Func, config JobConfig) (*genalg.Population, error) {
	objective := func(params []float64, _ map[string]any) (float64, error) {
		return fn.Eval(params), nil
	}

	pop, err := genalg.New(config.PopSize, objective,
		genalg.WithRand(rand.New(rand.NewSource(config.Seed))),
		genalg.WithParallelism(config.Parallelism))
	if err != nil {
		return nil, err
	}

	low, up := fn.Bounds()
	for i := range low {
		var param genalg.Param
		if fn.Integer() {
			param = genalg.IntParam(int(low[i]), int(up[i]))
		} else {
			param = genalg.FloatParam(low[i], up[i])
		}
		if err := pop.AddParam(param); err != nil {
			return nil, err
		}
	}
	return pop, nil
}

// recordGeneration broadcasts progress and appends a trace entry for the
// population's current generation.
func recordGeneration(jm *JobManager, trace *store.TraceWriter, jobID string, gen int, pop *genalg.Population, start time.Time) {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return
	}

	values := pop.Values()
	bestValue, _ := pop.BestValue()
	bestFitness, _ := pop.BestFitness()
	entry := store.NewGenerationEntry(gen, values, bestValue, bestFitness)

	if trace != nil {
		if err := trace.Write(entry); err != nil {
			slog.Warn("Failed to write trace entry", "job_id", jobID, "error", err)
		}
	}

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:          jobID,
		State:          job.State,
		Generation:     gen,
		BestValue:      job.BestValue,
		MeanValue:      entry.MeanValue,
		EvalsPerSecond: evalsPerSecond(job.Config, gen, time.Since(start)),
		Timestamp:      time.Now(),
	})
}

func evalsPerSecond(config JobConfig, generations int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	// Initialization plus each generation evaluates one full population.
	return float64((generations+1)*config.PopSize) / elapsed.Seconds()
}

// markJobFailed records a terminal failure on the job.
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	if updateErr := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	}); updateErr != nil {
		slog.Error("Failed to record job failure", "job_id", jobID, "error", updateErr)
	}
	slog.Error("Job failed", "job_id", jobID, "error", err)
}
