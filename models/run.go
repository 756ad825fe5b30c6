package models

import "time"

// Error kinds tallied into the run summary. Item-level failures never abort
// a run; they surface here as counts.
const (
	ErrKindFetch     = "fetch_error"
	ErrKindNormalize = "normalize_error"
	ErrKindScore     = "score_error"
	ErrKindStore     = "store_error"
)

// RunSummary aggregates the counters for one pipeline invocation. It is
// printed at the end of every run and persisted to the runs table.
type RunSummary struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	Fetched         int
	Normalized      int
	Discarded       int
	NewArticles     int
	UpdatedArticles int
	Scored          int
	ErrorsByKind    map[string]int
}

// NewRunSummary returns a summary with the start time set.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		StartedAt:    time.Now().UTC(),
		ErrorsByKind: make(map[string]int),
	}
}

// CountError tallies one item-level failure under the given kind.
func (s *RunSummary) CountError(kind string) {
	s.ErrorsByKind[kind]++
}

// TotalErrors returns the number of item-level failures across all kinds.
func (s *RunSummary) TotalErrors() int {
	total := 0
	for _, n := range s.ErrorsByKind {
		total += n
	}
	return total
}
