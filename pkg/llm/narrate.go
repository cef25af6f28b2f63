package llm

import (
	"context"
	"log/slog"
	"strings"
)

const (
	FallbackNoKey  = "(No language model API key is configured, so no AI analysis is available.)"
	FallbackFailed = "(AI analysis could not be generated. Check the language model configuration or try again later.)"
)

type Generator struct {
	narrator Narrator
	opts     PromptOptions
}

// NewGenerator accepts a nil narrator, meaning no provider is configured.
func NewGenerator(narrator Narrator, opts PromptOptions) *Generator {
	return &Generator{narrator: narrator, opts: opts}
}

// Generate always returns text for the digest: the model's analysis, or one
// of the fallback messages when no provider is set or the call fails.
func (g *Generator) Generate(ctx context.Context, input NarrativeInput) string {
	if g.narrator == nil {
		slog.Warn("no llm api key configured, skipping analysis")
		return FallbackNoKey
	}

	prompt := BuildPrompt(input, g.opts)

	result, err := g.narrator.Narrate(ctx, prompt)
	if err != nil {
		slog.Error("error generating analysis", "provider", g.narrator.Name(), "error", err)
		return FallbackFailed
	}

	text := cleanNarrative(result.Text)
	if text == "" {
		slog.Error("empty analysis from llm", "provider", g.narrator.Name())
		return FallbackFailed
	}

	slog.Info("analysis generated", "provider", g.narrator.Name(), "model", result.ModelUsed, "chars", len(text))
	return text
}

// cleanNarrative drops a code fence wrapped around the whole answer, which
// some models add to markdown output.
func cleanNarrative(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") || !strings.HasSuffix(content, "```") || len(content) < 6 {
		return content
	}

	content = strings.TrimSuffix(content, "```")
	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 && !strings.ContainsAny(content[:nl], " \t") {
		// First line is the fence's language tag, e.g. "markdown".
		content = content[nl+1:]
	}
	return strings.TrimSpace(content)
}
