package llm

import (
	"context"
	"errors"
	"marketpulse/internal/model"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"
)

type fakeNarrator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeNarrator) Narrate(ctx context.Context, prompt string) (*NarrativeResult, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &NarrativeResult{Text: f.text, ModelUsed: "fake-1"}, nil
}

func (f *fakeNarrator) Name() string {
	return "Fake"
}

func sampleInput() NarrativeInput {
	return NarrativeInput{
		Rows: []model.QuoteRow{
			{Symbol: "NVDA", Name: "NVIDIA Corporation", Industry: "Semiconductors", Close: decimal.RequireFromString("185.2"), PctChange: decimal.RequireFromString("3.1")},
			{Symbol: "XOM", Name: "Exxon Mobil Corporation", Industry: "Oil & Gas Integrated", Close: decimal.RequireFromString("112.05"), PctChange: decimal.RequireFromString("-1.25")},
		},
		Headlines: []model.Headline{
			{Title: "Chip stocks rally on AI demand", Source: "reuters"},
		},
	}
}

func TestGenerateWithoutNarrator(t *testing.T) {
	g := NewGenerator(nil, PromptOptions{})

	assert.Equal(t, FallbackNoKey, g.Generate(context.Background(), sampleInput()))
}

func TestNewWithoutKey(t *testing.T) {
	narrator, err := New(context.Background(), ProviderGemini, "", Options{})

	assert.Equal(t, nil, err)
	assert.Equal(t, true, narrator == nil)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "llama", "key", Options{})

	assert.NotEqual(t, nil, err)
}

func TestGenerateFailure(t *testing.T) {
	narrator := &fakeNarrator{err: errors.New("429 resource exhausted")}
	g := NewGenerator(narrator, PromptOptions{})

	assert.Equal(t, FallbackFailed, g.Generate(context.Background(), sampleInput()))
	assert.Equal(t, 1, len(narrator.prompts))
}

func TestGenerateEmptyAnswer(t *testing.T) {
	g := NewGenerator(&fakeNarrator{text: "```\n```"}, PromptOptions{})

	assert.Equal(t, FallbackFailed, g.Generate(context.Background(), sampleInput()))
}

func TestGenerate(t *testing.T) {
	narrator := &fakeNarrator{text: "```markdown\n## Overview\nChips led the market.\n```"}
	g := NewGenerator(narrator, PromptOptions{Language: "Chinese", MaxWords: 800})

	got := g.Generate(context.Background(), sampleInput())

	assert.Equal(t, "## Overview\nChips led the market.", got)

	prompt := narrator.prompts[0]
	assert.Equal(t, true, strings.Contains(prompt, "1 | NVDA | NVIDIA Corporation | Semiconductors | 185.20 | 3.10"))
	assert.Equal(t, true, strings.Contains(prompt, "2 | XOM | Exxon Mobil Corporation | Oil & Gas Integrated | 112.05 | -1.25"))
	assert.Equal(t, true, strings.Contains(prompt, "- Chip stocks rally on AI demand (reuters)"))
	assert.Equal(t, true, strings.Contains(prompt, "Write in Chinese."))
	assert.Equal(t, true, strings.Contains(prompt, "no more than 800 words"))
}

func TestBuildPromptWithoutHeadlines(t *testing.T) {
	input := sampleInput()
	input.Headlines = nil

	prompt := BuildPrompt(input, PromptOptions{})

	assert.Equal(t, false, strings.Contains(prompt, "headlines"))
	assert.Equal(t, true, strings.Contains(prompt, "Write in English."))
	assert.Equal(t, true, strings.Contains(prompt, "no more than 1000 words"))
	assert.Equal(t, true, strings.Contains(prompt, "the 2 largest US companies"))
}

func TestCleanNarrative(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Markets were mixed.",
			want:  "Markets were mixed.",
		},
		{
			name:  "strips markdown fenced block",
			input: "```markdown\n# Summary\nMarkets were mixed.\n```",
			want:  "# Summary\nMarkets were mixed.",
		},
		{
			name:  "strips plain fenced block",
			input: "```\nMarkets were mixed.\n```",
			want:  "Markets were mixed.",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  Markets were mixed.\n\n",
			want:  "Markets were mixed.",
		},
		{
			name:  "inner fences kept",
			input: "Intro\n```\ncode\n```\nOutro",
			want:  "Intro\n```\ncode\n```\nOutro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanNarrative(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
