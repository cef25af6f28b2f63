package llm

import (
	"fmt"
	"marketpulse/internal/model"
	"strings"
)

type PromptOptions struct {
	Language string
	MaxWords int
}

type NarrativeInput struct {
	Rows      []model.QuoteRow
	Headlines []model.Headline
}

const analysisPrompt = `You are a professional global macro and sector analyst.

Below is how the %d largest US companies by market capitalization closed on the latest trading day, sorted by percentage change from highest to lowest:

%s
%s
Taking into account:
1. the current global and US macro backdrop (interest rates, inflation, employment, monetary policy);
2. recent political and geopolitical risks (elections, regulation, international relations);
3. where each industry sits in its cycle and how its outlook is changing;
4. the typical business models and fundamentals of these leading companies (profitability, valuation, growth);

summarize the overall performance of these stocks on the day, focusing on:
- Which sectors or industries were relatively strong or weak, and the likely reasons.
- Whether the market shows a shift in risk appetite or style (growth vs value, large caps vs small caps).
- Which companies or sectors diverged clearly from the broader market, and which events or changes in fundamental expectations may explain it.
- Careful observations on how the market might develop in the short term (observations, not investment advice).

Requirements:
- Write in %s.
- Use a clear structure with short headings or paragraphs.
- Keep the language professional but easy to follow.
- Use no more than %d words.`

// BuildPrompt embeds the ranked table and headlines in the analysis request.
func BuildPrompt(input NarrativeInput, opts PromptOptions) string {
	language := opts.Language
	if language == "" {
		language = "English"
	}
	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = 1000
	}

	return fmt.Sprintf(analysisPrompt,
		len(input.Rows),
		FormatTable(input.Rows),
		formatHeadlines(input.Headlines),
		language,
		maxWords,
	)
}

// FormatTable renders the snapshot as a pipe-separated markdown table.
func FormatTable(rows []model.QuoteRow) string {
	var sb strings.Builder
	sb.WriteString("Rank | Symbol | Name | Industry | Close | Change (%)\n")
	sb.WriteString("--- | --- | --- | --- | --- | ---\n")
	for i, r := range rows {
		fmt.Fprintf(&sb, "%d | %s | %s | %s | %s | %s\n",
			i+1, r.Symbol, r.Name, r.Industry, r.Close.StringFixed(2), r.PctChange.StringFixed(2))
	}
	return sb.String()
}

func formatHeadlines(headlines []model.Headline) string {
	if len(headlines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\nRecent market-related news headlines:\n")
	for _, h := range headlines {
		fmt.Fprintf(&sb, "- %s\n", h)
	}
	return sb.String()
}
