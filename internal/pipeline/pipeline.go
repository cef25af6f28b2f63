package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"marketpulse/internal/model"
	"marketpulse/pkg/llm"
	"time"
)

type Status string

const (
	StatusNoTickers    Status = "no_tickers"
	StatusNoMarketData Status = "no_market_data"
	StatusSkippedSend  Status = "skipped_send"
	StatusSent         Status = "sent"
)

type Result struct {
	Status    Status
	Tickers   int
	Rows      int
	Skipped   int
	Headlines int
	Subject   string
}

type TickerLoader interface {
	Load(ctx context.Context) ([]model.TickerRecord, error)
}

type SnapshotFetcher interface {
	Snapshot(ctx context.Context, tickers []model.TickerRecord) (model.Snapshot, error)
}

type HeadlineCollector interface {
	Headlines(ctx context.Context) []model.Headline
}

// HeadlineFunc adapts a plain function to HeadlineCollector.
type HeadlineFunc func(ctx context.Context) []model.Headline

func (f HeadlineFunc) Headlines(ctx context.Context) []model.Headline {
	return f(ctx)
}

type NarrativeGenerator interface {
	Generate(ctx context.Context, input llm.NarrativeInput) string
}

type DigestRenderer interface {
	Render(universe int, rows []model.QuoteRow, narrative string, now time.Time) (model.Digest, error)
}

type Mailer interface {
	Dispatch(ctx context.Context, subject, html string) (bool, error)
}

type Pipeline struct {
	Tickers   TickerLoader
	Quotes    SnapshotFetcher
	News      HeadlineCollector
	Narrative NarrativeGenerator
	Renderer  DigestRenderer
	Mailer    Mailer
	Now       func() time.Time
}

// Run executes one daily digest. Empty tickers or an empty snapshot end the
// run early without an error; no later stage is contacted.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	tickers, err := p.Tickers.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("load tickers: %w", err)
	}
	res.Tickers = len(tickers)

	if len(tickers) == 0 {
		slog.Info("ticker list is empty, exiting")
		res.Status = StatusNoTickers
		return res, nil
	}

	slog.Info("fetching quotes", "tickers", len(tickers))

	snapshot, err := p.Quotes.Snapshot(ctx, tickers)
	if err != nil {
		return res, fmt.Errorf("fetch quotes: %w", err)
	}
	res.Rows = len(snapshot.Rows)
	res.Skipped = len(snapshot.Skipped)

	if snapshot.Empty() {
		slog.Warn("no market data available, exiting", "skipped", res.Skipped)
		res.Status = StatusNoMarketData
		return res, nil
	}

	headlines := p.News.Headlines(ctx)
	res.Headlines = len(headlines)

	narrative := p.Narrative.Generate(ctx, llm.NarrativeInput{
		Rows:      snapshot.Rows,
		Headlines: headlines,
	})

	digest, err := p.Renderer.Render(len(tickers), snapshot.Rows, narrative, p.now())
	if err != nil {
		return res, fmt.Errorf("render digest: %w", err)
	}
	res.Subject = digest.Subject

	sent, err := p.Mailer.Dispatch(ctx, digest.Subject, digest.HTML)
	if err != nil {
		return res, err
	}

	res.Status = StatusSkippedSend
	if sent {
		res.Status = StatusSent
	}

	slog.Info("digest run complete",
		"status", res.Status,
		"rows", res.Rows,
		"skipped", res.Skipped,
		"headlines", res.Headlines,
		"subject", res.Subject,
	)
	return res, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
