package main

import (
	"context"
	"log"
	"log/slog"
	"marketpulse/internal/config"
	"marketpulse/internal/digest"
	"marketpulse/internal/model"
	"marketpulse/internal/pipeline"
	"marketpulse/internal/repository"
	"marketpulse/pkg/llm"
	"marketpulse/pkg/mail"
	"marketpulse/pkg/market"
	"marketpulse/pkg/news"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"
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

	loc, err := cfg.Digest.Location()
	if err != nil {
		log.Fatalf("error loading timezone: %v", err)
	}

	renderer, err := digest.NewRenderer(loc)
	if err != nil {
		log.Fatalf("error building renderer: %v", err)
	}

	narrator, err := llm.New(ctx, cfg.LLM.Provider, cfg.LLM.APIKey(), llm.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}

	clients := newsClients(cfg.News)
	if len(clients) == 0 {
		slog.Warn("no news source API keys configured, analysis will run without headlines")
	}

	p := &pipeline.Pipeline{
		Tickers: store,
		Quotes:  market.NewFetcher(market.NewYahooBarSource(nil), cfg.Quotes.LookbackDays, cfg.Quotes.Workers),
		News: pipeline.HeadlineFunc(func(ctx context.Context) []model.Headline {
			return news.Collect(ctx, clients, cfg.News.Limit)
		}),
		Narrative: llm.NewGenerator(narrator, llm.PromptOptions{
			Language: cfg.Digest.Language,
			MaxWords: cfg.LLM.MaxWords,
		}),
		Renderer: renderer,
		Mailer: mail.NewDispatcher(resendSender(cfg.Email.ResendKey), mail.Settings{
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
			To:       cfg.Email.To,
		}),
	}

	res, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("error running digest: %v", err)
	}

	slog.Info("digest finished", "status", res.Status)
}

// newsClients lists the configured providers in the order they are asked.
func newsClients(cfg config.NewsConfig) []news.NewsClient {
	var clients []news.NewsClient
	if cfg.NewsdataKey != "" {
		clients = append(clients, news.NewNewsdataClient(cfg.NewsdataKey, cfg.Country, cfg.Category, cfg.Language))
	}
	if cfg.FinnhubKey != "" {
		clients = append(clients, news.NewFinnHubClient(cfg.FinnhubKey))
	}
	if cfg.AlphaVantageKey != "" {
		clients = append(clients, news.NewAlphaVantageClient(cfg.AlphaVantageKey))
	}
	if cfg.MassiveKey != "" {
		clients = append(clients, news.NewMassiveClient(cfg.MassiveKey))
	}
	return clients
}

func resendSender(key string) mail.Sender {
	// Avoid a typed nil inside the interface.
	if s := mail.NewResendSender(key); s != nil {
		return s
	}
	return nil
}
