// Package common holds the helpers shared by the CLI actions: logger
// setup, config and store opening, and the flag-to-filter translation.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/models"
	"github.com/hpratama/mbg-insight/pkg/corpus"
	dbpkg "github.com/hpratama/mbg-insight/pkg/db"
)

// NewLogger builds the JSON logger every action uses. --quiet drops
// everything below error.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the config named by the global --config flag.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	path := c.String("config")
	if path == "" {
		path = models.DefaultConfigPath
	}
	return models.LoadConfig(path)
}

// OpenStore opens the database, preferring the --db flag over the config.
func OpenStore(c *cli.Context, cfg *models.Config) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" && cfg != nil {
		path = cfg.DBPath
	}
	return dbpkg.Open(path)
}

// FiltersFromContext translates the shared query flags into corpus
// filters. Dates are YYYY-MM-DD and inclusive of --to's whole day.
func FiltersFromContext(c *cli.Context) (corpus.Filters, error) {
	var f corpus.Filters

	if v := c.String("from"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			return f, fmt.Errorf("invalid --from: %w", err)
		}
		f.DateFrom = t
	}
	if v := c.String("to"); v != "" {
		t, err := parseDay(v)
		if err != nil {
			return f, fmt.Errorf("invalid --to: %w", err)
		}
		f.DateTo = t.AddDate(0, 0, 1)
	}

	f.Sources = splitList(c.String("source"))
	f.Topics = splitList(c.String("topic"))
	f.TitleContains = c.String("contains")
	f.Model = c.String("model")

	for _, s := range splitList(c.String("sentiment")) {
		label := models.Label(strings.ToUpper(s))
		if !models.ValidLabel(label) {
			return f, fmt.Errorf("invalid sentiment %q (use positive, neutral or negative)", s)
		}
		f.Sentiments = append(f.Sentiments, label)
	}
	if len(f.Sentiments) > 0 && f.Model == "" {
		return f, fmt.Errorf("--sentiment requires --model")
	}

	return f, nil
}

// QueryFlags are the filter flags shared by query and export.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "from", Usage: "earliest publication date (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "to", Usage: "latest publication date, inclusive (YYYY-MM-DD)"},
		&cli.StringFlag{Name: "source", Usage: "comma-separated source names"},
		&cli.StringFlag{Name: "topic", Usage: "comma-separated topics"},
		&cli.StringFlag{Name: "sentiment", Usage: "comma-separated labels (requires --model)"},
		&cli.StringFlag{Name: "model", Usage: "model whose labels drive sentiment filtering and aggregation"},
		&cli.StringFlag{Name: "contains", Usage: "case-insensitive match on title or body"},
	}
}

func parseDay(v string) (time.Time, error) {
	return time.Parse("2006-01-02", v)
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
