package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// RunRecord is one persisted pipeline invocation.
type RunRecord struct {
	RunID           int64
	StartedAt       time.Time
	FinishedAt      time.Time
	Fetched         int
	Normalized      int
	Discarded       int
	NewArticles     int
	UpdatedArticles int
	Scored          int
	Errors          string // JSON map kind -> count
}

// InsertRun persists a run summary and returns its run_id.
func (db *DB) InsertRun(s *models.RunSummary) (int64, error) {
	finished := s.FinishedAt
	if finished.IsZero() {
		finished = time.Now().UTC()
	}

	var errorsJSON []byte
	if len(s.ErrorsByKind) > 0 {
		var err error
		errorsJSON, err = json.Marshal(s.ErrorsByKind)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal run errors: %w", err)
		}
	}

	res, err := db.Exec(`
		INSERT INTO runs (started_at, finished_at, fetched, normalized, discarded,
		                  new_articles, updated_articles, scored, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.StartedAt, finished, s.Fetched, s.Normalized, s.Discarded,
		s.NewArticles, s.UpdatedArticles, s.Scored, nullString(string(errorsJSON)))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, started_at, finished_at, fetched, normalized, discarded,
		       new_articles, updated_articles, scored, errors
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var finished sql.NullTime
		var errs sql.NullString
		err := rows.Scan(&r.RunID, &r.StartedAt, &finished, &r.Fetched, &r.Normalized,
			&r.Discarded, &r.NewArticles, &r.UpdatedArticles, &r.Scored, &errs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		r.Errors = errs.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
