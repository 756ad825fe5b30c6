package scorer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/hpratama/mbg-insight/models"
)

const (
	baseBackoff = 500 * time.Millisecond
	maxBackoff  = 8 * time.Second
)

// Result is one successfully scored article.
type Result struct {
	ArticleID  int64
	Label      models.Label
	Confidence float64
}

// ScoreError is a per-article scoring failure. The article stays unscored
// and will reappear in the next unscored listing.
type ScoreError struct {
	ArticleID int64
	Err       error
}

func (e ScoreError) Error() string {
	return fmt.Sprintf("scoring article %d: %v", e.ArticleID, e.Err)
}

func (e ScoreError) Unwrap() error { return e.Err }

// Engine drives one model's provider over article batches.
type Engine struct {
	provider      Provider
	limiter       *rate.Limiter
	maxRetries    int
	maxInputRunes int
	labels        map[string]string
	logger        *slog.Logger
	backoff       time.Duration
}

// NewEngine wires a provider with the model's input limits and the global
// scoring policy (rate, retry ceiling).
func NewEngine(p Provider, model models.ModelConfig, scoring models.ScoringConfig, logger *slog.Logger) *Engine {
	perSecond := scoring.RatePerSecond
	if perSecond <= 0 {
		perSecond = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		provider:      p,
		limiter:       rate.NewLimiter(rate.Limit(perSecond), 1),
		maxRetries:    scoring.MaxRetries,
		maxInputRunes: model.MaxInputRunes,
		labels:        model.Labels,
		logger:        logger,
		backoff:       baseBackoff,
	}
}

// ScoreBatch classifies each article, returning successes and per-article
// failures separately. One failing article never aborts the batch.
func (e *Engine) ScoreBatch(ctx context.Context, articles []models.Article) ([]Result, []ScoreError) {
	var results []Result
	var failures []ScoreError

	for _, a := range articles {
		if ctx.Err() != nil {
			failures = append(failures, ScoreError{ArticleID: a.ID, Err: ctx.Err()})
			continue
		}

		text := Truncate(a.Title+". "+a.BodyText, e.maxInputRunes)
		raw, err := e.scoreWithRetry(ctx, text)
		if err != nil {
			e.logger.Warn("scoring failed",
				"article_id", a.ID,
				"provider", e.provider.Name(),
				"error", err)
			failures = append(failures, ScoreError{ArticleID: a.ID, Err: err})
			continue
		}

		label, err := MapLabel(raw.Label, e.labels)
		if err != nil {
			e.logger.Warn("label mapping failed",
				"article_id", a.ID,
				"raw_label", raw.Label,
				"error", err)
			failures = append(failures, ScoreError{ArticleID: a.ID, Err: err})
			continue
		}

		results = append(results, Result{
			ArticleID:  a.ID,
			Label:      label,
			Confidence: raw.Confidence,
		})
	}
	return results, failures
}

// scoreWithRetry calls the provider with rate limiting and capped
// exponential backoff. The retry ceiling bounds total attempts at
// maxRetries + 1.
func (e *Engine) scoreWithRetry(ctx context.Context, text string) (RawScore, error) {
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := e.backoff << (attempt - 1)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			select {
			case <-ctx.Done():
				return RawScore{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return RawScore{}, err
		}

		raw, err := e.provider.Score(ctx, text)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return RawScore{}, fmt.Errorf("giving up after %d attempts: %w", e.maxRetries+1, lastErr)
}
