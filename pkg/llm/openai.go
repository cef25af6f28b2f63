package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client      *openai.Client
	model       openai.ChatModel
	temperature float64
}

func NewOpenAIClient(apiKey string, opts Options) *OpenAIClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(opts.Timeout),
	)

	model := openai.ChatModelGPT4_1Mini
	if opts.Model != "" {
		model = openai.ChatModel(opts.Model)
	}

	return &OpenAIClient{
		client:      &client,
		model:       model,
		temperature: opts.Temperature,
	}
}

func (c *OpenAIClient) Name() string {
	return "OpenAI"
}

func (c *OpenAIClient) Narrate(ctx context.Context, prompt string) (*NarrativeResult, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Temperature: openai.Float(c.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return &NarrativeResult{
		Text:      resp.Choices[0].Message.Content,
		ModelUsed: string(c.model),
	}, nil
}
