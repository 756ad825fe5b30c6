// Package export renders corpus query results as a flat CSV: one row per
// article with each model's label and confidence as columns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hpratama/mbg-insight/pkg/corpus"
)

var baseHeader = []string{
	"article_id", "fingerprint", "source", "url", "title",
	"author", "topic", "language", "published_at", "ingested_at",
}

// WriteCSV streams rows to w. Model columns are derived from the scores
// present in the result set (label and confidence per model, sorted by
// model name); an article a model has not scored gets empty cells.
func WriteCSV(w io.Writer, rows []corpus.Row) error {
	modelNames := corpus.ModelNames(rows)

	header := append([]string{}, baseHeader...)
	for _, name := range modelNames {
		header = append(header, name+"_label", name+"_confidence")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.Article.ID, 10),
			r.Article.Fingerprint,
			r.Article.Source,
			r.Article.URL,
			r.Article.Title,
			r.Article.Author,
			r.Article.Topic,
			r.Article.Language,
			formatTime(r.Article.PublishedAt),
			formatTime(r.Article.IngestedAt),
		}
		for _, name := range modelNames {
			if s, ok := r.Scores[name]; ok {
				record = append(record, string(s.Label), strconv.FormatFloat(s.Confidence, 'f', 4, 64))
			} else {
				record = append(record, "", "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
