package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var serverURL string

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Query server status or a specific job",
	Long: `Queries the server for job status information.
If no job-id is provided, lists all jobs.
If job-id is provided, shows detailed status for that job.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listServerJobs(fmt.Sprintf("%s/api/v1/jobs", serverURL))
	}
	jobID := args[0]
	return getJobStatus(fmt.Sprintf("%s/api/v1/jobs/%s/status", serverURL, jobID), jobID)
}

func listServerJobs(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var jobs []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("Found %d job(s):\n\n", len(jobs))
	for _, job := range jobs {
		config, _ := job["config"].(map[string]interface{})
		fmt.Printf("Job ID: %s\n", job["id"])
		fmt.Printf("  State: %s\n", job["state"])
		fmt.Printf("  Function: %v\n", config["function"])
		fmt.Printf("  Generation: %v\n", job["generation"])
		if v, ok := job["bestValue"].(float64); ok && job["state"] != "pending" {
			fmt.Printf("  Best value: %g\n", v)
		}
		fmt.Println()
	}

	return nil
}

func getJobStatus(url, jobID string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var status map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Job: %s\n", status["id"])
	fmt.Printf("State: %s\n", status["state"])
	fmt.Println()

	if config, ok := status["config"].(map[string]interface{}); ok {
		fmt.Println("Configuration:")
		fmt.Printf("  Function: %v\n", config["function"])
		fmt.Printf("  Dimension: %v\n", config["dim"])
		fmt.Printf("  Population: %v\n", config["popSize"])
		fmt.Printf("  Generations: %v\n", config["generations"])
		fmt.Printf("  Crossover: %v\n", config["crossover"])
		fmt.Printf("  Mutation: %v\n", config["mutation"])
		fmt.Println()
	}

	fmt.Println("Progress:")
	fmt.Printf("  Generation: %v\n", status["generation"])
	if v, ok := status["bestValue"].(float64); ok {
		fmt.Printf("  Best value: %g\n", v)
	}
	if params, ok := status["bestParams"].([]interface{}); ok && len(params) > 0 {
		fmt.Printf("  Best params: %v\n", params)
	}
	if v, ok := status["elapsed"].(float64); ok {
		elapsed := time.Duration(v * float64(time.Second))
		fmt.Printf("  Elapsed: %s\n", elapsed.Round(time.Millisecond))
	}
	if v, ok := status["evalsPerSecond"].(float64); ok && v > 0 {
		fmt.Printf("  Throughput: %.0f evals/sec\n", v)
	}

	if msg, ok := status["error"].(string); ok && msg != "" {
		fmt.Printf("\nError: %s\n", msg)
	}

	return nil
}
