package main

import (
	"errors"
	"fmt"

	"github.com/cwbudde/genalg/internal/store"
	"github.com/spf13/cobra"
)

var resultsData string

var resultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "Inspect persisted run results",
	Long: `Lists the results saved under the data directory.
If run-id is provided, shows the full result for that run.`,
	RunE: runResults,
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a persisted run",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsDelete,
}

func init() {
	resultsCmd.PersistentFlags().StringVar(&resultsData, "data", "data", "Data directory")
	resultsCmd.AddCommand(resultsDeleteCmd)
	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(resultsData)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return listResults(st)
	}
	return showResult(st, args[0])
}

func listResults(st *store.FSStore) error {
	results, err := st.ListResults()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}

	fmt.Printf("Found %d result(s):\n\n", len(results))
	for _, r := range results {
		fmt.Printf("Run ID: %s\n", r.RunID)
		fmt.Printf("  Function: %s (dim %d)\n", r.Config.Function, r.Config.Dim)
		fmt.Printf("  Best value: %g\n", r.BestValue)
		fmt.Printf("  Finished: %s\n", r.Finished.Format("2006-01-02 15:04:05"))
		fmt.Println()
	}
	return nil
}

func showResult(st *store.FSStore, runID string) error {
	result, err := st.LoadResult(runID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("run not found: %s", runID)
		}
		return err
	}

	fmt.Printf("Run: %s\n", result.RunID)
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  Function: %s\n", result.Config.Function)
	fmt.Printf("  Dimension: %d\n", result.Config.Dim)
	fmt.Printf("  Population: %d\n", result.Config.PopSize)
	fmt.Printf("  Generations: %d\n", result.Config.Generations)
	fmt.Printf("  Crossover: %g\n", result.Config.Crossover)
	fmt.Printf("  Mutation: %g\n", result.Config.Mutation)
	fmt.Printf("  Seed: %d\n", result.Config.Seed)
	fmt.Println()
	fmt.Println("Outcome:")
	fmt.Printf("  Best value: %g\n", result.BestValue)
	fmt.Printf("  Best fitness: %g\n", result.BestFitness)
	fmt.Printf("  Best params: %s\n", formatParams(result.BestParams))
	fmt.Printf("  Duration: %s\n", result.Finished.Sub(result.Started))

	reader, err := store.NewTraceReader(st.BaseDir(), runID)
	if err == nil {
		defer reader.Close()
		entries, err := reader.ReadAll()
		if err == nil && len(entries) > 0 {
			first, last := entries[0], entries[len(entries)-1]
			fmt.Println()
			fmt.Println("Trace:")
			fmt.Printf("  Entries: %d\n", len(entries))
			fmt.Printf("  Best value: %g -> %g\n", first.BestValue, last.BestValue)
			fmt.Printf("  Mean value: %g -> %g\n", first.MeanValue, last.MeanValue)
		}
	}

	return nil
}

func runResultsDelete(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(resultsData)
	if err != nil {
		return err
	}
	runID := args[0]
	if err := st.DeleteResult(runID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("run not found: %s", runID)
		}
		return err
	}
	fmt.Printf("Deleted run %s\n", runID)
	return nil
}
