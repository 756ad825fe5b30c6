package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/hpratama/mbg-insight/models"
)

// WebAdapter scrapes a configured outlet: list pages give article links,
// detail pages give title, body and date. A malformed detail page is
// skipped and logged, never fatal for the source.
type WebAdapter struct {
	cfg     models.SourceConfig
	fetch   *fetcher
	pattern *regexp.Regexp
	delay   time.Duration
	logger  *slog.Logger
}

// NewWebAdapter builds the adapter for one outlet config.
func NewWebAdapter(cfg models.SourceConfig, client *http.Client, logger *slog.Logger) (*WebAdapter, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("source has no name")
	}
	if cfg.ListURL == "" {
		return nil, fmt.Errorf("source %s has no list_url", cfg.Name)
	}
	if cfg.LinkSelector == "" {
		return nil, fmt.Errorf("source %s has no link_selector", cfg.Name)
	}

	var pattern *regexp.Regexp
	if cfg.URLPattern != "" {
		var err error
		pattern, err = regexp.Compile(cfg.URLPattern)
		if err != nil {
			return nil, fmt.Errorf("source %s has invalid url_pattern: %w", cfg.Name, err)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WebAdapter{
		cfg:     cfg,
		fetch:   newFetcher(client),
		pattern: pattern,
		delay:   time.Duration(cfg.DelayMillis) * time.Millisecond,
		logger:  logger.With("source", cfg.Name),
	}, nil
}

// Name returns the configured source name
func (w *WebAdapter) Name() string {
	return w.cfg.Name
}

// FetchLatest walks the configured list pages and scrapes every matching
// article link. The store dedups anything seen before, so overlap with
// previous runs is harmless.
func (w *WebAdapter) FetchLatest(ctx context.Context, _ time.Time) ([]models.RawArticle, error) {
	links, err := w.collectLinks(ctx)
	if err != nil {
		return nil, err
	}

	var articles []models.RawArticle
	for _, link := range links {
		if err := w.pause(ctx); err != nil {
			return articles, err
		}
		raw, err := w.fetchArticle(ctx, link)
		if err != nil {
			w.logger.Warn("skipping article", "url", link, "error", err)
			continue
		}
		articles = append(articles, raw)
	}
	return articles, nil
}

func (w *WebAdapter) collectLinks(ctx context.Context) ([]string, error) {
	pages := w.cfg.Pages
	if pages <= 0 {
		pages = 1
	}

	seen := make(map[string]struct{})
	var links []string
	for page := 1; page <= pages; page++ {
		listURL := w.pageURL(page)
		doc, _, err := w.fetch.getDocument(ctx, listURL)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("list page failed: %w", err)
			}
			w.logger.Warn("list page failed", "page", page, "error", err)
			break
		}

		base, _ := url.Parse(listURL)
		doc.Find(w.cfg.LinkSelector).Each(func(_ int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if !ok {
				return
			}
			link := resolveLink(base, href)
			if link == "" {
				return
			}
			if w.pattern != nil && !w.pattern.MatchString(link) {
				return
			}
			if _, dup := seen[link]; dup {
				return
			}
			seen[link] = struct{}{}
			links = append(links, link)
		})

		if page < pages {
			if err := w.pause(ctx); err != nil {
				return links, err
			}
		}
	}
	return links, nil
}

// pageURL substitutes the page number when list_url carries a %d verb;
// page one always uses the URL as written.
func (w *WebAdapter) pageURL(page int) string {
	if page == 1 || !strings.Contains(w.cfg.ListURL, "%d") {
		return strings.ReplaceAll(w.cfg.ListURL, "%d", "1")
	}
	return strings.ReplaceAll(w.cfg.ListURL, "%d", fmt.Sprintf("%d", page))
}

func (w *WebAdapter) fetchArticle(ctx context.Context, link string) (models.RawArticle, error) {
	doc, bodyBytes, err := w.fetch.getDocument(ctx, link)
	if err != nil {
		return models.RawArticle{}, err
	}

	raw := models.RawArticle{
		SourceID: w.cfg.Name,
		URL:      link,
		Topic:    w.cfg.Topic,
	}

	if w.cfg.TitleSelector != "" {
		raw.Title = strings.TrimSpace(doc.Find(w.cfg.TitleSelector).First().Text())
	}
	if w.cfg.BodySelector != "" {
		var paragraphs []string
		doc.Find(w.cfg.BodySelector).Each(func(_ int, s *goquery.Selection) {
			if text := strings.TrimSpace(s.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		raw.RawText = strings.Join(paragraphs, "\n")
	}
	if w.cfg.DateSelector != "" {
		raw.PublishedAtRaw = strings.TrimSpace(doc.Find(w.cfg.DateSelector).First().Text())
	}
	if raw.PublishedAtRaw == "" {
		raw.PublishedAtRaw, _ = doc.Find(`meta[property="article:published_time"]`).Attr("content")
	}

	// Selectors miss on redesigned pages; readability recovers most of them.
	if raw.Title == "" || raw.RawText == "" {
		if err := w.enrichFromReadability(&raw, bodyBytes, link); err != nil {
			w.logger.Debug("readability fallback failed", "url", link, "error", err)
		}
	}

	if raw.Title == "" && raw.RawText == "" {
		return models.RawArticle{}, fmt.Errorf("no title or body extracted")
	}
	return raw, nil
}

func (w *WebAdapter) enrichFromReadability(raw *models.RawArticle, bodyBytes []byte, link string) error {
	pageURL, err := url.Parse(link)
	if err != nil {
		return err
	}
	article, err := readability.FromReader(bytes.NewReader(bodyBytes), pageURL)
	if err != nil {
		return err
	}

	if raw.Title == "" {
		raw.Title = strings.TrimSpace(article.Title)
	}
	if raw.RawText == "" {
		raw.RawText = strings.TrimSpace(article.TextContent)
	}
	if raw.Author == "" {
		raw.Author = strings.TrimSpace(article.Byline)
	}
	if raw.PublishedAtRaw == "" && article.PublishedTime != nil {
		raw.PublishedAtRaw = article.PublishedTime.Format(time.RFC3339)
	}
	return nil
}

func (w *WebAdapter) pause(ctx context.Context) error {
	if w.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.delay):
		return nil
	}
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}
