package store

// Store persists completed run results. Implementations must be safe for
// concurrent use.
//
// Error conventions follow the rest of the module: nil on success,
// ErrNotFound (via errors.Is) when a run does not exist, and descriptive
// wrapped errors for I/O or serialization failures.
type Store interface {
	// SaveResult atomically writes the result for a run, overwriting any
	// previous result with the same ID.
	SaveResult(runID string, result *RunResult) error

	// LoadResult retrieves a run's result. Returns ErrNotFound if the run
	// has no saved result.
	LoadResult(runID string) (*RunResult, error)

	// ListResults returns every saved result, most recently finished first.
	ListResults() ([]RunResult, error)

	// DeleteResult removes a run's result and trace. Returns ErrNotFound if
	// nothing is stored for the run.
	DeleteResult(runID string) error
}

// ErrNotFound is returned when a requested run result does not exist.
// Use errors.Is(err, ErrNotFound) to check for it.
var ErrNotFound = &NotFoundError{}

// NotFoundError reports a missing run result.
type NotFoundError struct {
	RunID string
}

func (e *NotFoundError) Error() string {
	if e.RunID != "" {
		return "run result not found: " + e.RunID
	}
	return "run result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
