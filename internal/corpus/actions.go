// Package corpus exposes the query views over the article store.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/hpratama/mbg-insight/internal/common"
	"github.com/hpratama/mbg-insight/pkg/corpus"
)

// QueryAction loads the filtered corpus and renders one view of it as JSON.
func QueryAction(c *cli.Context) error {
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
	logger.Info("corpus loaded", "articles", len(rows))

	model := c.String("model")
	if model == "" && len(cfg.Models) > 0 {
		model = cfg.Models[0].Name
	}

	var view any
	switch name := c.String("view"); name {
	case "", "summary":
		view = corpus.Summarize(rows, model)
	case "trend":
		view, err = corpus.ComputeTrend(rows, model, c.String("interval"))
		if err != nil {
			return err
		}
	case "agreement":
		baseline := c.String("baseline")
		if baseline == "" {
			if len(cfg.Models) < 2 {
				return fmt.Errorf("agreement needs two models; pass --baseline or configure a second model")
			}
			if model == cfg.Models[0].Name {
				baseline = cfg.Models[1].Name
			} else {
				baseline = cfg.Models[0].Name
			}
		}
		view = corpus.ComputeAgreement(rows, model, baseline)
	case "topics":
		view = corpus.TopicCounts(rows)
	case "leaderboard":
		view = corpus.SourceLeaderboard(rows, model)
	case "keywords":
		top := c.Int("top")
		if top <= 0 {
			top = 25
		}
		view = corpus.Keywords(rows, top)
	case "articles":
		view = articleList(rows, model)
	default:
		return fmt.Errorf("unknown view %q (use summary, trend, agreement, topics, leaderboard, keywords or articles)", name)
	}

	if c.Bool("yaml") {
		out, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		fmt.Print(string(out))
		return nil
	}

	out, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

type articleView struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at,omitempty"`
	Label       string `json:"label,omitempty"`
}

func articleList(rows []corpus.Row, model string) []articleView {
	out := make([]articleView, 0, len(rows))
	for _, row := range rows {
		v := articleView{
			ID:     row.Article.ID,
			Source: row.Article.Source,
			Title:  row.Article.Title,
			URL:    row.Article.URL,
		}
		if !row.Article.PublishedAt.IsZero() {
			v.PublishedAt = row.Article.PublishedAt.UTC().Format("2006-01-02")
		}
		if label, ok := row.Label(model); ok {
			v.Label = string(label)
		}
		out = append(out, v)
	}
	return out
}
