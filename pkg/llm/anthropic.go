package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

type AnthropicClient struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
}

func NewAnthropicClient(apiKey string, opts Options) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(opts.Timeout),
	)

	model := anthropic.ModelClaudeHaiku4_5
	if opts.Model != "" {
		model = anthropic.Model(opts.Model)
	}

	return &AnthropicClient{
		client:      &client,
		model:       model,
		temperature: opts.Temperature,
	}
}

func (c *AnthropicClient) Name() string {
	return "Anthropic"
}

func (c *AnthropicClient) Narrate(ctx context.Context, prompt string) (*NarrativeResult, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}

	if sb.Len() == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	return &NarrativeResult{Text: sb.String(), ModelUsed: string(c.model)}, nil
}
