package scorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpratama/mbg-insight/models"
)

// NewProvider creates a sentiment provider based on the model configuration.
func NewProvider(model models.ModelConfig, scoring models.ScoringConfig) (Provider, error) {
	timeout := time.Duration(scoring.TimeoutSeconds) * time.Second

	switch strings.ToLower(model.Provider) {
	case "huggingface":
		return NewHuggingFaceProvider(model.Endpoint, model.APIKey, timeout)

	case "openai":
		return NewOpenAIProvider(model.APIKey, model.Endpoint, model.Model, timeout)

	default:
		return nil, fmt.Errorf("unknown scorer provider %q (supported: huggingface, openai)", model.Provider)
	}
}
