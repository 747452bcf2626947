package usecase

import (
	"time"

	"stock_ingest/internal/feature/prices/domain"
)

// SymbolOutcome records how one symbol fared during a run. Err is nil for a
// successful symbol; a failed one carries the error and its reporting class.
type SymbolOutcome struct {
	Symbol         string
	RecordsWritten int64
	PointsDropped  int
	Err            error
	Class          domain.ErrorClass
}

// RunResult summarizes one pipeline invocation. It is populated while the
// run progresses and final once Run returns; it is never persisted.
type RunResult struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []SymbolOutcome
}

// Succeeded returns the number of symbols processed without error.
func (r *RunResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of symbols that ended in an error.
func (r *RunResult) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Written returns the total number of records written across all symbols.
func (r *RunResult) Written() int64 {
	var n int64
	for _, o := range r.Outcomes {
		n += o.RecordsWritten
	}
	return n
}

// Duration returns how long the run took.
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
