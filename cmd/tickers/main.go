package main

import (
	"context"
	"log"
	"log/slog"
	"marketpulse/internal/config"
	"marketpulse/internal/repository"
	"marketpulse/pkg/market"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.OpenTickerStore(ctx, cfg.Tickers.Store)
	if err != nil {
		log.Fatalf("error opening ticker store: %v", err)
	}
	defer closeStore()

	var source market.CandidateSource
	switch cfg.Tickers.Source {
	case config.SourceYahoo:
		source = market.NewYahooCandidateSource(nil, market.LargeCapSymbols())
	default:
		source = market.NewStockAnalysisSource(cfg.Tickers.SourceURL)
	}

	records, err := market.NewRefresher(source, store, cfg.Tickers.Size).Refresh(ctx)
	if err != nil {
		log.Fatalf("error refreshing tickers: %v", err)
	}

	slog.Info("tickers updated", "store", cfg.Tickers.Store, "count", len(records))
}
