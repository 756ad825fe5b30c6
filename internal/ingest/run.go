// Package ingest orchestrates the fetch, normalize and store phases of a
// pipeline run.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hpratama/mbg-insight/models"
	dbpkg "github.com/hpratama/mbg-insight/pkg/db"
	"github.com/hpratama/mbg-insight/pkg/normalize"
	"github.com/hpratama/mbg-insight/pkg/sources"
)

// FatalConfigError aborts a run before any work starts. Per-item failures
// never produce it; they are tallied on the run summary instead.
type FatalConfigError struct {
	Reason string
}

func (e *FatalConfigError) Error() string {
	return fmt.Sprintf("fatal config error: %s", e.Reason)
}

type sourceResult struct {
	source string
	raw    []models.RawArticle
	err    error
}

// Run fetches every source concurrently, normalizes and upserts the
// results, and returns the run summary. Cancelling ctx stops fetching;
// everything already stored stays stored.
func Run(ctx context.Context, cfg *models.Config, database *dbpkg.DB, adapters []sources.Adapter, logger *slog.Logger) (*models.RunSummary, error) {
	if len(adapters) == 0 {
		return nil, &FatalConfigError{Reason: "no sources configured"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	summary := models.NewRunSummary()
	summary.StartedAt = time.Now().UTC()

	norm := normalize.New(cfg, true)

	workerCount := cfg.Workers
	if workerCount <= 0 {
		workerCount = 4
	}
	if workerCount > len(adapters) {
		workerCount = len(adapters)
	}

	logger.Info("starting ingestion", "sources", len(adapters), "workers", workerCount)

	jobs := make(chan sources.Adapter, len(adapters))
	results := make(chan sourceResult, len(adapters))

	var wg sync.WaitGroup
	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for adapter := range jobs {
				logger.Info("fetching source", "worker_id", id, "source", adapter.Name())
				raw, err := adapter.FetchLatest(ctx, time.Time{})
				results <- sourceResult{source: adapter.Name(), raw: raw, err: err}
			}
		}(w)
	}

	for _, adapter := range adapters {
		jobs <- adapter
	}
	close(jobs)

	wg.Wait()
	close(results)

	for res := range results {
		// A dead source still delivers whatever it fetched before failing.
		if res.err != nil {
			logger.Error("source fetch failed", "source", res.source, "error", res.err)
			summary.CountError(models.ErrKindFetch)
		}
		if len(res.raw) == 0 {
			continue
		}
		summary.Fetched += len(res.raw)

		batch := make([]models.Article, 0, len(res.raw))
		for _, raw := range res.raw {
			a, err := norm.Normalize(raw)
			if err != nil {
				logger.Warn("discarding article", "source", res.source, "url", raw.URL, "error", err)
				summary.Discarded++
				summary.CountError(models.ErrKindNormalize)
				continue
			}
			summary.Normalized++
			batch = append(batch, a)
		}

		for _, r := range database.UpsertArticles(batch) {
			if r.Err != nil {
				logger.Error("store failed", "source", res.source, "fingerprint", r.Fingerprint, "error", r.Err)
				summary.CountError(models.ErrKindStore)
				continue
			}
			if r.IsNew {
				summary.NewArticles++
			} else {
				summary.UpdatedArticles++
			}
		}
	}

	summary.FinishedAt = time.Now().UTC()
	logger.Info("ingestion finished",
		"fetched", summary.Fetched,
		"normalized", summary.Normalized,
		"discarded", summary.Discarded,
		"new", summary.NewArticles,
		"updated", summary.UpdatedArticles,
		"errors", summary.TotalErrors())
	return summary, nil
}
