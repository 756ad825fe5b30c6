package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpratama/mbg-insight/internal/common"
	internalcorpus "github.com/hpratama/mbg-insight/internal/corpus"
	internaldb "github.com/hpratama/mbg-insight/internal/db"
	internalexport "github.com/hpratama/mbg-insight/internal/export"
	"github.com/hpratama/mbg-insight/internal/ingest"
	"github.com/hpratama/mbg-insight/internal/score"
	"github.com/hpratama/mbg-insight/models"
)

func main() {
	app := &cli.App{
		Name:  "mbg-insight",
		Usage: "collect Indonesian news about the MBG program and track its sentiment",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to the YAML config", Value: models.DefaultConfigPath},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (overrides the config)"},
			&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "fetch, normalize and store the latest articles from every source",
				Action: ingest.IngestAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "source", Usage: "only ingest this source"},
				},
			},
			{
				Name:   "score",
				Usage:  "score unscored articles with the configured sentiment models",
				Action: score.ScoreAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "model", Usage: "only score with this model"},
					&cli.IntFlag{Name: "limit", Usage: "maximum articles to score per model"},
				},
			},
			{
				Name:   "migrate",
				Usage:  "copy scores from one model name to another",
				Action: internaldb.MigrateAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "source model name", Required: true},
					&cli.StringFlag{Name: "to", Usage: "target model name", Required: true},
					&cli.StringFlag{Name: "relabel", Usage: "label rewrites applied while copying, e.g. NEUTRAL=NEGATIVE"},
				},
			},
			{
				Name:   "query",
				Usage:  "aggregate the corpus and print one view as JSON",
				Action: internalcorpus.QueryAction,
				Flags: append(common.QueryFlags(),
					&cli.StringFlag{Name: "view", Usage: "summary, trend, agreement, topics, leaderboard, keywords or articles", Value: "summary"},
					&cli.StringFlag{Name: "interval", Usage: "trend bucket size: daily, weekly or monthly", Value: "daily"},
					&cli.StringFlag{Name: "baseline", Usage: "second model for the agreement view"},
					&cli.IntFlag{Name: "top", Usage: "number of keywords to report", Value: 25},
					&cli.BoolFlag{Name: "yaml", Usage: "print the view as YAML instead of JSON"},
				),
			},
			{
				Name:   "export",
				Usage:  "write the filtered corpus as CSV",
				Action: internalexport.ExportAction,
				Flags: append(common.QueryFlags(),
					&cli.StringFlag{Name: "output", Usage: "CSV file to write (stdout when omitted)"},
				),
			},
			{
				Name:   "runs",
				Usage:  "list recent pipeline runs",
				Action: internaldb.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "number of runs to show", Value: 20},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
