// Package models defines the shared value types and configuration for the
// MBG news pipeline.
package models

import "time"

// Label is a canonical sentiment label after per-model vocabulary mapping.
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelNegative Label = "NEGATIVE"
)

// ValidLabel reports whether l is one of the three canonical labels.
func ValidLabel(l Label) bool {
	switch l {
	case LabelPositive, LabelNeutral, LabelNegative:
		return true
	}
	return false
}

// RawArticle is a single record as produced by a source adapter, before
// normalization. Any field may be empty or malformed except SourceID; the
// normalizer decides what is salvageable.
type RawArticle struct {
	SourceID       string
	URL            string
	Title          string
	RawText        string
	Author         string
	Topic          string
	PublishedAtRaw string
}

// Article is the canonical, deduplicated article shape owned by the store.
// PublishedAt is zero when the source gave no parseable date; such articles
// stay in unconditioned totals but are excluded from time-series buckets.
type Article struct {
	ID          int64
	Fingerprint string
	Source      string
	URL         string
	Title       string
	BodyText    string
	Author      string
	Topic       string
	Language    string
	PublishedAt time.Time
	IngestedAt  time.Time
}

// SentimentScore is one model's verdict for one article. At most one row
// exists per (article, model); re-scoring overwrites in place.
type SentimentScore struct {
	ArticleID  int64
	ModelName  string
	Label      Label
	Confidence float64
	ScoredAt   time.Time
}
