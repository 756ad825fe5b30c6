package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceProvider calls a hosted inference endpoint for a text
// classification model.
type HuggingFaceProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHuggingFaceProvider builds a provider for the given inference
// endpoint. The timeout bounds every request.
func NewHuggingFaceProvider(endpoint, apiKey string, timeout time.Duration) (*HuggingFaceProvider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("huggingface provider requires an endpoint")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HuggingFaceProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Score sends the text to the inference endpoint and returns the highest
// scoring label.
func (p *HuggingFaceProvider) Score(ctx context.Context, text string) (RawScore, error) {
	payload, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return RawScore{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return RawScore{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return RawScore{}, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return RawScore{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return RawScore{}, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, truncateBody(body))
	}

	return parseHFResponse(body)
}

// parseHFResponse handles the two shapes the API emits: [[{label,score}]]
// for single inputs and [{label,score}] from some endpoint deployments.
func parseHFResponse(body []byte) (RawScore, error) {
	var nested [][]hfScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return pickBest(nested[0]), nil
	}

	var flat []hfScore
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return pickBest(flat), nil
	}

	return RawScore{}, fmt.Errorf("unexpected inference response: %s", truncateBody(body))
}

func pickBest(scores []hfScore) RawScore {
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return RawScore{Label: best.Label, Confidence: best.Score}
}

func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
