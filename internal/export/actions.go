// Package export writes the filtered corpus to CSV.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/internal/common"
	"github.com/hpratama/mbg-insight/pkg/corpus"
	"github.com/hpratama/mbg-insight/pkg/export"
)

// ExportAction loads the filtered corpus and writes it as CSV to --output,
// or to stdout when no file is given.
func ExportAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	filters, err := common.FiltersFromContext(c)
	if err != nil {
		return err
	}

	database, err := common.OpenStore(c, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	rows, err := corpus.Load(database, filters)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	var out io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
		logger.Info("exporting corpus", "articles", len(rows), "path", path)
	}

	if err := export.WriteCSV(out, rows); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}
