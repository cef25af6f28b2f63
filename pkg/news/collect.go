package news

import (
	"context"
	"log/slog"
	"marketpulse/internal/model"
	"sort"
	"strings"
)

// ClampLimit keeps a requested headline count within 1..model.MaxHeadlines.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return 1
	}
	if limit > model.MaxHeadlines {
		return model.MaxHeadlines
	}
	return limit
}

// Collect gathers up to limit headlines, asking clients in order until the
// limit is met. A failing client is logged and skipped. Within one client's
// batch the newest headlines come first. Titles are deduped
// case-insensitively and empty titles dropped.
func Collect(ctx context.Context, clients []NewsClient, limit int) []model.Headline {
	limit = ClampLimit(limit)

	headlines := make([]model.Headline, 0, limit)
	seen := make(map[string]bool)

	for _, client := range clients {
		if len(headlines) >= limit {
			break
		}
		if ctx.Err() != nil {
			slog.Warn("headline collection interrupted", "error", ctx.Err())
			break
		}

		source := client.Name()

		articles, err := client.Fetch(ctx, limit-len(headlines))
		if err != nil {
			slog.Error("error fetching headlines", "source", source, "error", err)
			continue
		}

		newestFirst(articles)

		added := 0
		for _, a := range articles {
			if len(headlines) >= limit {
				break
			}

			title := strings.Join(strings.Fields(a.Headline), " ")
			if title == "" {
				continue
			}

			key := strings.ToLower(title)
			if seen[key] {
				continue
			}
			seen[key] = true

			publisher := strings.TrimSpace(a.Publisher)
			if publisher == "" {
				publisher = model.UnknownSource
			}

			headlines = append(headlines, model.Headline{Title: title, Source: publisher})
			added++
		}

		slog.Info("headlines fetched", "source", source, "fetched", len(articles), "added", added)
	}

	return headlines
}

// newestFirst orders articles by PublishedAt descending. Undated articles
// keep their provider order after the dated ones.
func newestFirst(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i].PublishedAt, articles[j].PublishedAt
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
}
