package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cwbudde/genalg"
	"github.com/cwbudde/genalg/internal/bench"
	"github.com/cwbudde/genalg/internal/store"
)

// Server exposes optimization jobs over a JSON HTTP API with SSE progress
// streaming.
type Server struct {
	jobManager  *JobManager
	resultStore store.Store
	dataDir     string
	addr        string
	server      *http.Server
}

// NewServer creates a server listening on addr. dataDir roots run traces and
// persisted results; pass an empty string to keep everything in memory.
func NewServer(addr, dataDir string) (*Server, error) {
	s := &Server{
		jobManager: NewJobManager(),
		dataDir:    dataDir,
		addr:       addr,
	}
	if dataDir != "" {
		st, err := store.NewFSStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open result store: %w", err)
		}
		s.resultStore = st
	}
	return s, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	slog.Info("Starting HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Handler builds the route table; exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/jobs", s.handleJobs)
	mux.HandleFunc("/api/v1/jobs/", s.handleJobsWithID)
	return s.loggingMiddleware(s.corsMiddleware(mux))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleJobs handles /api/v1/jobs
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateJob(w, r)
	case http.MethodGet:
		s.handleListJobs(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleJobsWithID handles /api/v1/jobs/{id}[/status|/stream|/trace]
func (s *Server) handleJobsWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}
	jobID := parts[0]

	switch {
	case len(parts) == 1 || parts[1] == "status":
		s.handleGetJobStatus(w, r, jobID)
	case parts[1] == "stream":
		s.handleJobStream(w, r, jobID)
	case parts[1] == "trace":
		s.handleGetTrace(w, r, jobID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleCreateJob handles POST /api/v1/jobs
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var config JobConfig
	if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	applyConfigDefaults(&config)
	if err := validateConfig(config); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.jobManager.CreateJob(config)
	go runJob(context.Background(), s.jobManager, s.resultStore, s.dataDir, job.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(job)
}

// handleListJobs handles GET /api/v1/jobs
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobManager.ListJobs())
}

// handleGetJobStatus handles GET /api/v1/jobs/{id}/status
func (s *Server) handleGetJobStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	job, exists := s.jobManager.GetJob(jobID)
	if !exists {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	var elapsed time.Duration
	if job.EndTime != nil {
		elapsed = job.EndTime.Sub(job.StartTime)
	} else {
		elapsed = time.Since(job.StartTime)
	}

	response := map[string]any{
		"id":             job.ID,
		"state":          job.State,
		"config":         job.Config,
		"bestValue":      job.BestValue,
		"bestFitness":    job.BestFitness,
		"bestParams":     job.BestParams,
		"generation":     job.Generation,
		"elapsed":        elapsed.Seconds(),
		"evalsPerSecond": evalsPerSecond(job.Config, job.Generation, elapsed),
		"startTime":      job.StartTime,
		"endTime":        job.EndTime,
		"error":          job.Error,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleGetTrace handles GET /api/v1/jobs/{id}/trace, returning the run's
// generation history as a JSON array.
func (s *Server) handleGetTrace(w http.ResponseWriter, r *http.Request, jobID string) {
	if s.dataDir == "" {
		http.Error(w, "Tracing not enabled", http.StatusNotFound)
		return
	}

	reader, err := store.NewTraceReader(s.dataDir, jobID)
	if err != nil {
		http.Error(w, "Trace not found", http.StatusNotFound)
		return
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read trace: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// applyConfigDefaults fills unset job fields with usable defaults.
func applyConfigDefaults(config *JobConfig) {
	if config.Function == "" {
		config.Function = "sphere"
	}
	if config.PopSize <= 0 {
		config.PopSize = 50
	}
	if config.Generations <= 0 {
		config.Generations = 100
	}
	if config.Crossover == 0 {
		config.Crossover = genalg.DefaultCrossoverRate
	}
	if config.Mutation == 0 {
		config.Mutation = genalg.DefaultMutationRate
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}
}

// validateConfig rejects configurations the worker could not run.
func validateConfig(config JobConfig) error {
	if _, err := bench.Lookup(config.Function, config.Dim); err != nil {
		return err
	}
	if config.PopSize < 2 {
		return fmt.Errorf("popSize must be >= 2, got %d", config.PopSize)
	}
	if config.Crossover < 0 || config.Crossover > 1 {
		return fmt.Errorf("crossover must be within [0, 1], got %v", config.Crossover)
	}
	if config.Mutation < 0 || config.Mutation > 1 {
		return fmt.Errorf("mutation must be within [0, 1], got %v", config.Mutation)
	}
	return nil
}

// corsMiddleware adds permissive CORS headers.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests at debug level.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
