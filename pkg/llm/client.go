package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type NarrativeResult struct {
	Text      string
	ModelUsed string
}

// Narrator turns one composed prompt into one completion.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (*NarrativeResult, error)
	Name() string
}

type Options struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// New builds the narrator for provider. An empty apiKey returns a nil
// Narrator and no error: the digest then carries the no-key fallback text.
func New(ctx context.Context, provider, apiKey string, opts Options) (Narrator, error) {
	if apiKey == "" {
		return nil, nil
	}

	switch provider {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, apiKey, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey, opts), nil
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey, opts), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
