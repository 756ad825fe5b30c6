// Package db holds the maintenance actions that operate directly on the
// store: run history and score migrations.
package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/internal/common"
	"github.com/hpratama/mbg-insight/models"
)

// RunsAction prints the most recent pipeline runs, newest first.
func RunsAction(c *cli.Context) error {
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

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-10s %-9s %-6s %-7s %-6s %s\n",
		"RUN", "STARTED", "FETCHED", "NORMALIZED", "DISCARDED", "NEW", "UPDATED", "SCORED", "ERRORS")
	for _, r := range runs {
		errors := r.Errors
		if errors == "" || errors == "{}" {
			errors = "-"
		}
		fmt.Printf("%-6d %-20s %-8d %-10d %-9d %-6d %-7d %-6d %s\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Fetched, r.Normalized, r.Discarded,
			r.NewArticles, r.UpdatedArticles, r.Scored, errors)
	}
	return nil
}

// MigrateAction copies sentiment verdicts from one model name to another
// without touching articles the target already scored.
func MigrateAction(c *cli.Context) error {
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

	relabel, err := parseRelabel(c.String("relabel"))
	if err != nil {
		return err
	}

	from, to := c.String("from"), c.String("to")
	migrated, err := database.MigrateScores(from, to, relabel)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("migration finished", "from", from, "to", to, "migrated", migrated)
	fmt.Printf("Migrated %d scores from %s to %s\n", migrated, from, to)
	return nil
}

// parseRelabel reads "OLD=NEW" pairs, e.g. "NEUTRAL=NEGATIVE".
func parseRelabel(v string) (map[models.Label]models.Label, error) {
	if v == "" {
		return nil, nil
	}
	out := make(map[models.Label]models.Label)
	for _, pair := range strings.Split(v, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid relabel pair %q (use OLD=NEW)", pair)
		}
		old := models.Label(strings.ToUpper(strings.TrimSpace(parts[0])))
		repl := models.Label(strings.ToUpper(strings.TrimSpace(parts[1])))
		if !models.ValidLabel(old) || !models.ValidLabel(repl) {
			return nil, fmt.Errorf("invalid relabel pair %q: unknown label", pair)
		}
		out[old] = repl
	}
	return out, nil
}
