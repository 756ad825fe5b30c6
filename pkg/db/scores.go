package db

import (
	"fmt"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// UpsertScore records one model's verdict for an article, overwriting any
// previous score from the same model (scoring is idempotent, not append-only).
func (db *DB) UpsertScore(articleID int64, modelName string, label models.Label, confidence float64) error {
	if !models.ValidLabel(label) {
		return fmt.Errorf("invalid sentiment label %q", label)
	}
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", confidence)
	}
	_, err := db.Exec(`
		INSERT INTO sentiment_scores (article_id, model_name, label, confidence, scored_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(article_id, model_name) DO UPDATE SET
			label = excluded.label,
			confidence = excluded.confidence,
			scored_at = excluded.scored_at
	`, articleID, modelName, string(label), confidence, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}

// GetScores returns all scores for an article keyed by model name.
func (db *DB) GetScores(articleID int64) (map[string]models.SentimentScore, error) {
	rows, err := db.Query(`
		SELECT article_id, model_name, label, confidence, scored_at
		FROM sentiment_scores WHERE article_id = ?
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]models.SentimentScore)
	for rows.Next() {
		var s models.SentimentScore
		var label string
		if err := rows.Scan(&s.ArticleID, &s.ModelName, &label, &s.Confidence, &s.ScoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		s.Label = models.Label(label)
		scores[s.ModelName] = s
	}
	return scores, rows.Err()
}

// CountScores returns how many articles carry a score from the given model.
func (db *DB) CountScores(modelName string) (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sentiment_scores WHERE model_name = ?", modelName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count scores: %w", err)
	}
	return n, nil
}

// MigrateScores copies scores from one model to another for every article
// scored only by the source model, without re-invoking the scorer. relabel
// optionally maps canonical labels during the copy (nil copies verbatim).
// Each row is an idempotent insert-or-ignore, so an interrupted migration
// can simply be re-run.
func (db *DB) MigrateScores(fromModel, toModel string, relabel map[models.Label]models.Label) (int, error) {
	if fromModel == toModel {
		return 0, fmt.Errorf("migration source and target are both %q", fromModel)
	}

	rows, err := db.Query(`
		SELECT article_id, label, confidence, scored_at
		FROM sentiment_scores
		WHERE model_name = ?
		  AND article_id NOT IN (
			SELECT article_id FROM sentiment_scores WHERE model_name = ?
		  )
	`, fromModel, toModel)
	if err != nil {
		return 0, fmt.Errorf("failed to list migratable scores: %w", err)
	}

	type pending struct {
		articleID  int64
		label      models.Label
		confidence float64
		scoredAt   time.Time
	}
	var todo []pending
	for rows.Next() {
		var p pending
		var label string
		if err := rows.Scan(&p.articleID, &label, &p.confidence, &p.scoredAt); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("failed to scan migratable score: %w", err)
		}
		p.label = models.Label(label)
		if mapped, ok := relabel[p.label]; ok {
			p.label = mapped
		}
		todo = append(todo, p)
	}
	if err := rows.Close(); err != nil {
		return 0, fmt.Errorf("failed to read migratable scores: %w", err)
	}

	migrated := 0
	for _, p := range todo {
		res, err := db.Exec(`
			INSERT OR IGNORE INTO sentiment_scores (article_id, model_name, label, confidence, scored_at)
			VALUES (?, ?, ?, ?, ?)
		`, p.articleID, toModel, string(p.label), p.confidence, p.scoredAt)
		if err != nil {
			return migrated, fmt.Errorf("failed to migrate score for article %d: %w", p.articleID, err)
		}
		n, err := res.RowsAffected()
		if err == nil {
			migrated += int(n)
		}
	}
	return migrated, nil
}
