package ingest

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/internal/common"
	"github.com/hpratama/mbg-insight/pkg/sources"
)

// IngestAction runs one fetch-normalize-store pass over every configured
// source and records the run.
func IngestAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	database, err := common.OpenStore(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	client := &http.Client{Timeout: 20 * time.Second}
	var adapters []sources.Adapter
	for _, src := range cfg.Sources {
		if only := c.String("source"); only != "" && src.Name != only {
			continue
		}
		adapter, err := sources.NewWebAdapter(src, client, logger)
		if err != nil {
			logger.Error("invalid source config", "source", src.Name, "error", err)
			os.Exit(2)
		}
		adapters = append(adapters, adapter)
	}

	summary, err := Run(c.Context, cfg, database, adapters, logger)
	var fatal *FatalConfigError
	if errors.As(err, &fatal) {
		logger.Error("aborting run", "error", err)
		os.Exit(2)
	}
	if err != nil {
		return err
	}

	runID, err := database.InsertRun(summary)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	fmt.Printf("Run %d: fetched %d, normalized %d, discarded %d, new %d, updated %d, errors %d\n",
		runID, summary.Fetched, summary.Normalized, summary.Discarded,
		summary.NewArticles, summary.UpdatedArticles, summary.TotalErrors())
	return nil
}
