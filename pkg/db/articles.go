package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// UpsertResult reports the outcome for one row of a batch upsert. A failed
// row carries its reason; it never aborts the rest of the batch.
type UpsertResult struct {
	Fingerprint string
	ID          int64
	IsNew       bool
	Err         error
}

// UpsertArticle inserts the article or merges it into the existing row with
// the same fingerprint. Merging is asymmetric: a text field is overwritten
// only when the incoming value is non-empty and longer than the stored one,
// so a later partial scrape can never degrade an earlier complete row.
// ingested_at is set on first insert and never reset.
func (db *DB) UpsertArticle(a models.Article) (int64, bool, error) {
	if a.Fingerprint == "" {
		return 0, false, fmt.Errorf("article has empty fingerprint")
	}
	if a.Source == "" {
		return 0, false, fmt.Errorf("article has empty source")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		id                         int64
		title, body, author, topic sql.NullString
		language                   sql.NullString
		published                  sql.NullTime
	)
	err = tx.QueryRow(`
		SELECT article_id, title, body_text, author, topic, language, published_at
		FROM articles WHERE fingerprint = ?
	`, a.Fingerprint).Scan(&id, &title, &body, &author, &topic, &language, &published)

	if errors.Is(err, sql.ErrNoRows) {
		ingested := a.IngestedAt
		if ingested.IsZero() {
			ingested = time.Now().UTC()
		}
		res, insErr := tx.Exec(`
			INSERT INTO articles (fingerprint, source, url, title, body_text, author, topic, language, published_at, ingested_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.Fingerprint, a.Source, a.URL, a.Title, a.BodyText,
			nullString(a.Author), nullString(a.Topic), nullString(a.Language),
			nullTime(a.PublishedAt), ingested)
		if insErr != nil {
			return 0, false, fmt.Errorf("failed to insert article: %w", insErr)
		}
		id, insErr = res.LastInsertId()
		if insErr != nil {
			return 0, false, fmt.Errorf("failed to get article ID: %w", insErr)
		}
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("failed to commit insert: %w", err)
		}
		return id, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to check existing article: %w", err)
	}

	mergedPublished := published
	if !published.Valid && !a.PublishedAt.IsZero() {
		mergedPublished = sql.NullTime{Time: a.PublishedAt.UTC(), Valid: true}
	}

	_, err = tx.Exec(`
		UPDATE articles
		SET title = ?, body_text = ?, author = ?, topic = ?, language = ?, published_at = ?
		WHERE article_id = ?
	`,
		mergeText(title.String, a.Title),
		mergeText(body.String, a.BodyText),
		nullString(mergeField(author.String, a.Author)),
		nullString(mergeField(topic.String, a.Topic)),
		nullString(mergeField(language.String, a.Language)),
		mergedPublished,
		id,
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to merge article: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit merge: %w", err)
	}
	return id, false, nil
}

// UpsertArticles upserts a batch, one result per input row. A storage
// failure on one row is reported in its result and the batch continues.
func (db *DB) UpsertArticles(batch []models.Article) []UpsertResult {
	results := make([]UpsertResult, 0, len(batch))
	for _, a := range batch {
		id, isNew, err := db.UpsertArticle(a)
		results = append(results, UpsertResult{
			Fingerprint: a.Fingerprint,
			ID:          id,
			IsNew:       isNew,
			Err:         err,
		})
	}
	return results
}

// ListUnscored returns articles that have no sentiment score from the given
// model, oldest first. limit <= 0 means no limit. Repeated calls after
// scoring drive the incremental batch loop without rescanning history.
func (db *DB) ListUnscored(modelName string, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT a.article_id, a.fingerprint, a.source, a.url, a.title, a.body_text,
		       a.author, a.topic, a.language, a.published_at, a.ingested_at
		FROM articles a
		LEFT JOIN sentiment_scores s ON s.article_id = a.article_id AND s.model_name = ?
		WHERE s.score_id IS NULL
		ORDER BY a.article_id
		LIMIT ?
	`, modelName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscored articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// GetArticle returns one article by ID.
func (db *DB) GetArticle(id int64) (*models.Article, error) {
	row := db.QueryRow(`
		SELECT article_id, fingerprint, source, url, title, body_text,
		       author, topic, language, published_at, ingested_at
		FROM articles WHERE article_id = ?
	`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetArticleByFingerprint returns the article with the given fingerprint.
func (db *DB) GetArticleByFingerprint(fingerprint string) (*models.Article, error) {
	row := db.QueryRow(`
		SELECT article_id, fingerprint, source, url, title, body_text,
		       author, topic, language, published_at, ingested_at
		FROM articles WHERE fingerprint = ?
	`, fingerprint)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article with fingerprint %s not found", fingerprint)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteArticle removes an article; its scores go with it via cascade.
func (db *DB) DeleteArticle(id int64) error {
	if _, err := db.Exec("DELETE FROM articles WHERE article_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// CountArticles returns the total number of stored articles.
func (db *DB) CountArticles() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (models.Article, error) {
	var (
		a                         models.Article
		url, title, body          sql.NullString
		author, topic, language   sql.NullString
		published                 sql.NullTime
	)
	err := s.Scan(&a.ID, &a.Fingerprint, &a.Source, &url, &title, &body,
		&author, &topic, &language, &published, &a.IngestedAt)
	if err != nil {
		return models.Article{}, err
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

// mergeText keeps the longer non-empty value; the stored body never shrinks.
func mergeText(stored, incoming string) string {
	if incoming == "" {
		return stored
	}
	if len(incoming) > len(stored) {
		return incoming
	}
	return stored
}

// mergeField fills an empty stored value but never replaces a set one.
func mergeField(stored, incoming string) string {
	if stored == "" {
		return incoming
	}
	return stored
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
