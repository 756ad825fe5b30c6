// Package scorer classifies article text with external sentiment models.
// Providers speak to the model endpoints; the engine handles truncation,
// rate limiting, retries and label canonicalization.
package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpratama/mbg-insight/models"
)

// RawScore is a provider's verdict before label canonicalization.
type RawScore struct {
	Label      string
	Confidence float64
}

// Provider defines the interface for sentiment model backends.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Score classifies one text
	Score(ctx context.Context, text string) (RawScore, error)
}

// defaultVocab maps the label spellings the models actually emit to the
// canonical set. Per-model config can extend or override it.
var defaultVocab = map[string]models.Label{
	"positive": models.LabelPositive,
	"positif":  models.LabelPositive,
	"label_2":  models.LabelPositive,
	"neutral":  models.LabelNeutral,
	"netral":   models.LabelNeutral,
	"label_1":  models.LabelNeutral,
	"negative": models.LabelNegative,
	"negatif":  models.LabelNegative,
	"label_0":  models.LabelNegative,
}

// MapLabel canonicalizes a raw model label. overrides come from the model
// config and win over the built-in vocabulary. Unknown labels are an error;
// they must never be silently stored.
func MapLabel(raw string, overrides map[string]string) (models.Label, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", fmt.Errorf("model returned an empty label")
	}
	if mapped, ok := overrides[key]; ok {
		label := models.Label(strings.ToUpper(mapped))
		if !models.ValidLabel(label) {
			return "", fmt.Errorf("label override %q maps to invalid label %q", key, mapped)
		}
		return label, nil
	}
	if label, ok := defaultVocab[key]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown model label %q", raw)
}

// Truncate cuts text to at most n runes from the head. The models have a
// hard input window and the lede carries the sentiment in news copy.
func Truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
