// Package corpus is the query and aggregation engine. It loads filtered
// slices of the article store and recomputes every aggregate on demand;
// nothing here is persisted.
package corpus

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/hpratama/mbg-insight/models"
	dbpkg "github.com/hpratama/mbg-insight/pkg/db"
)

// Row is one article joined with all of its model scores. A model absent
// from Scores has not classified the article yet; that is never treated
// as neutral.
type Row struct {
	Article models.Article
	Scores  map[string]models.SentimentScore
}

// Label returns the label the given model assigned, if any.
func (r Row) Label(model string) (models.Label, bool) {
	s, ok := r.Scores[model]
	if !ok {
		return "", false
	}
	return s.Label, true
}

// Load runs the filtered query and returns the matching rows with their
// scores attached.
func Load(db *dbpkg.DB, f Filters) ([]Row, error) {
	fr, err := f.BuildWhere()
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.article_id, a.fingerprint, a.source, a.url, a.title, a.body_text,
		       a.author, a.topic, a.language, a.published_at, a.ingested_at
		FROM articles a`
	if len(f.Sentiments) > 0 {
		query += `
		JOIN sentiment_scores fs ON fs.article_id = a.article_id AND fs.model_name = ?`
	}
	query += " WHERE " + fr.WhereClause + " ORDER BY a.article_id"

	var args []interface{}
	if len(f.Sentiments) > 0 {
		args = append(args, f.Model)
	}
	args = append(args, fr.Args...)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("corpus query failed: %w", err)
	}
	defer rows.Close()

	var result []Row
	byID := make(map[int64]int)
	for rows.Next() {
		a, err := scanArticleRow(rows)
		if err != nil {
			return nil, err
		}
		byID[a.ID] = len(result)
		result = append(result, Row{Article: a, Scores: make(map[string]models.SentimentScore)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corpus query failed: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	if err := attachScores(db, result, byID); err != nil {
		return nil, err
	}
	return result, nil
}

func attachScores(db *dbpkg.DB, result []Row, byID map[int64]int) error {
	ids := make([]interface{}, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query := `
		SELECT article_id, model_name, label, confidence, scored_at
		FROM sentiment_scores
		WHERE article_id IN (` + placeholders(len(ids)) + `)`
	rows, err := db.Query(query, ids...)
	if err != nil {
		return fmt.Errorf("score join failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.SentimentScore
		var label string
		if err := rows.Scan(&s.ArticleID, &s.ModelName, &label, &s.Confidence, &s.ScoredAt); err != nil {
			return fmt.Errorf("score scan failed: %w", err)
		}
		s.Label = models.Label(label)
		if idx, ok := byID[s.ArticleID]; ok {
			result[idx].Scores[s.ModelName] = s
		}
	}
	return rows.Err()
}

func scanArticleRow(rows *sql.Rows) (models.Article, error) {
	var (
		a                       models.Article
		url, title, body        sql.NullString
		author, topic, language sql.NullString
		published               sql.NullTime
	)
	err := rows.Scan(&a.ID, &a.Fingerprint, &a.Source, &url, &title, &body,
		&author, &topic, &language, &published, &a.IngestedAt)
	if err != nil {
		return models.Article{}, fmt.Errorf("article scan failed: %w", err)
	}
	a.URL = url.String
	a.Title = title.String
	a.BodyText = body.String
	a.Author = author.String
	a.Topic = topic.String
	a.Language = language.String
	if published.Valid {
		a.PublishedAt = published.Time
	}
	return a, nil
}

// ModelNames returns the distinct model names present in a result set,
// sorted for stable output.
func ModelNames(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		for name := range r.Scores {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
