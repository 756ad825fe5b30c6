package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const classifyPrompt = `Classify the sentiment of the following Indonesian news text toward the MBG (Makan Bergizi Gratis) public nutrition program. Respond with only a JSON object: {"label": "POSITIVE"|"NEUTRAL"|"NEGATIVE", "confidence": 0.0-1.0}.

Text:
`

// OpenAIProvider classifies text through a chat completion model. It also
// covers OpenAI-compatible endpoints via a custom base URL.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates the provider. model defaults to gpt-4o-mini.
func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai provider requires an API key")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Score asks the chat model for a sentiment verdict in JSON.
func (p *OpenAIProvider) Score(ctx context.Context, text string) (RawScore, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment classifier for Indonesian news. Always answer with the requested JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: classifyPrompt + text,
			},
		},
		MaxTokens:   50,
		Temperature: 0,
	})
	if err != nil {
		return RawScore{}, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return RawScore{}, fmt.Errorf("no response from model")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var parsed classifyResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return RawScore{}, fmt.Errorf("unparseable model response %q: %w", content, err)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return RawScore{}, fmt.Errorf("model confidence %v out of range", parsed.Confidence)
	}
	return RawScore{Label: parsed.Label, Confidence: parsed.Confidence}, nil
}
