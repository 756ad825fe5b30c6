// Package score drives the incremental scoring loop: list unscored
// articles per model, classify them, store the verdicts.
package score

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/internal/common"
	"github.com/hpratama/mbg-insight/models"
	dbpkg "github.com/hpratama/mbg-insight/pkg/db"
	"github.com/hpratama/mbg-insight/pkg/scorer"
)

// ScoreAction scores every unscored article for each configured model (or
// just --model). Failed articles stay unscored and are retried next run.
func ScoreAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	var modelConfigs []models.ModelConfig
	if name := c.String("model"); name != "" {
		mc, err := cfg.ModelByName(name)
		if err != nil {
			return err
		}
		modelConfigs = append(modelConfigs, *mc)
	} else {
		modelConfigs = cfg.Models
	}
	if len(modelConfigs) == 0 {
		logger.Error("no models configured")
		os.Exit(2)
	}

	database, err := common.OpenStore(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	summary := models.NewRunSummary()
	summary.StartedAt = time.Now().UTC()
	limit := c.Int("limit")

	for _, mc := range modelConfigs {
		provider, err := scorer.NewProvider(mc, cfg.Scoring)
		if err != nil {
			return fmt.Errorf("model %s: %w", mc.Name, err)
		}
		engine := scorer.NewEngine(provider, mc, cfg.Scoring, logger)

		scored, err := scoreModel(c, database, engine, mc.Name, cfg.Scoring.BatchSize, limit, summary)
		if err != nil {
			return err
		}
		logger.Info("model pass finished", "model", mc.Name, "scored", scored)
	}

	summary.FinishedAt = time.Now().UTC()
	runID, err := database.InsertRun(summary)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	fmt.Printf("Run %d: scored %d articles, errors %d\n", runID, summary.Scored, summary.TotalErrors())
	return nil
}

func scoreModel(c *cli.Context, database *dbpkg.DB, engine *scorer.Engine, modelName string, batchSize, limit int, summary *models.RunSummary) (int, error) {
	scored := 0
	for {
		if limit > 0 && scored >= limit {
			break
		}
		size := batchSize
		if limit > 0 && limit-scored < size {
			size = limit - scored
		}

		batch, err := database.ListUnscored(modelName, size)
		if err != nil {
			return scored, fmt.Errorf("failed to list unscored articles: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		results, failures := engine.ScoreBatch(c.Context, batch)
		for range failures {
			summary.CountError(models.ErrKindScore)
		}
		for _, r := range results {
			if err := database.UpsertScore(r.ArticleID, modelName, r.Label, r.Confidence); err != nil {
				summary.CountError(models.ErrKindStore)
				continue
			}
			scored++
			summary.Scored++
		}

		// Failed articles are still listed as unscored; without progress
		// another iteration would just replay the same failures.
		if len(results) == 0 {
			break
		}
	}
	return scored, nil
}
