// Package normalize turns raw scraped records into canonical articles:
// cleaned text, canonical URL and fingerprint, UTC publication time and
// a language tag.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hpratama/mbg-insight/models"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// boilerplate markers shared across Indonesian news sites. A body line
// containing one of these (case-insensitive) is dropped entirely.
var builtinDenylist = []string{
	"advertisement",
	"baca juga:",
	"baca juga :",
	"scroll to continue with content",
	"simak video",
	"lihat juga video",
}

// Normalizer applies per-source cleaning rules from configuration.
type Normalizer struct {
	layouts  map[string][]string
	denylist map[string][]string
	detector *languageDetector
}

// New builds a normalizer from the configured sources. detectLanguage
// controls whether the lingua detector is loaded (it is memory-heavy, so
// tests and the migrate command skip it).
func New(cfg *models.Config, detectLanguage bool) *Normalizer {
	n := &Normalizer{
		layouts:  make(map[string][]string),
		denylist: make(map[string][]string),
	}
	if cfg != nil {
		for _, src := range cfg.Sources {
			n.layouts[src.Name] = src.DateLayouts
			n.denylist[src.Name] = src.Denylist
		}
	}
	if detectLanguage {
		n.detector = newLanguageDetector()
	}
	return n
}

// Normalize converts one raw record into a canonical article. A missing or
// unparseable date is not an error; the article is discarded only when both
// title and body are empty after cleaning.
func (n *Normalizer) Normalize(raw models.RawArticle) (models.Article, error) {
	title := CleanText(raw.Title, n.denylist[raw.SourceID])
	body := CleanText(raw.RawText, n.denylist[raw.SourceID])
	if title == "" && body == "" {
		return models.Article{}, fmt.Errorf("article from %s has no usable text", raw.SourceID)
	}

	canonical := CanonicalURL(raw.URL)
	a := models.Article{
		Fingerprint: Fingerprint(canonical, raw.SourceID, title, body),
		Source:      raw.SourceID,
		URL:         canonical,
		Title:       title,
		BodyText:    body,
		Author:      strings.TrimSpace(raw.Author),
		Topic:       strings.TrimSpace(raw.Topic),
		PublishedAt: ParseDate(raw.PublishedAtRaw, n.layouts[raw.SourceID]),
	}
	if n.detector != nil {
		a.Language = n.detector.Detect(title + " " + body)
	}
	return a, nil
}

// CleanText strips boilerplate lines, embedded URLs and runs of whitespace.
func CleanText(text string, denylist []string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isBoilerplate(line, denylist) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, " ")
	cleaned = urlPattern.ReplaceAllString(cleaned, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

func isBoilerplate(line string, denylist []string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}
	for _, marker := range builtinDenylist {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	for _, marker := range denylist {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}
