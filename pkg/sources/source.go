// Package sources pulls raw article records out of news outlets. Each
// adapter yields models.RawArticle values; everything downstream of the
// adapter boundary is source-agnostic.
package sources

import (
	"context"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// Adapter is one ingestion source. FetchLatest returns the articles the
// source currently lists; since is a hint and adapters may return older
// items, which the idempotent store absorbs.
type Adapter interface {
	// Name returns the configured source name
	Name() string

	// FetchLatest pulls the source's current article listing
	FetchLatest(ctx context.Context, since time.Time) ([]models.RawArticle, error)
}
