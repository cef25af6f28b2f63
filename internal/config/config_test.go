package config

import (
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/assert/v2"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range envBindings {
		t.Setenv(env, "")
	}

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "tickers.json", cfg.Tickers.Store)
	assert.Equal(t, SourceStockAnalysis, cfg.Tickers.Source)
	assert.Equal(t, 50, cfg.Tickers.Size)
	assert.Equal(t, 7, cfg.Quotes.LookbackDays)
	assert.Equal(t, 10, cfg.News.Limit)
	assert.Equal(t, "business", cfg.News.Category)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 0.6, cfg.LLM.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "Market Pulse", cfg.Email.FromName)
	assert.Equal(t, 0, len(cfg.Email.To))
	assert.Equal(t, "", cfg.Email.ResendKey)
	assert.Equal(t, "Asia/Shanghai", cfg.Digest.Timezone)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
	t.Setenv("TICKER_STORE", "redis://localhost:6379/0")
	t.Setenv("UNIVERSE_SIZE", "20")
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("FROM_EMAIL", "digest@example.com")
	t.Setenv("TO_EMAIL", "a@example.com, b@example.com")
	t.Setenv("DIGEST_TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	assert.Equal(t, nil, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Tickers.Store)
	assert.Equal(t, 20, cfg.Tickers.Size)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey())
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Email.To)
	assert.Equal(t, "re_test", cfg.Email.ResendKey)
	assert.Equal(t, "digest@example.com", cfg.Email.From)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Tickers: TickersConfig{Store: "tickers.json", Source: SourceYahoo, Size: 50},
			Quotes:  QuotesConfig{LookbackDays: 7, Workers: 4},
			LLM:     LLMConfig{Provider: ProviderAnthropic},
			Digest:  DigestConfig{Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero universe", mutate: func(c *Config) { c.Tickers.Size = 0 }, wantErr: true},
		{name: "unknown source", mutate: func(c *Config) { c.Tickers.Source = "wikipedia" }, wantErr: true},
		{name: "one day lookback", mutate: func(c *Config) { c.Quotes.LookbackDays = 1 }, wantErr: true},
		{name: "no workers", mutate: func(c *Config) { c.Quotes.Workers = 0 }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "llama" }, wantErr: true},
		{name: "bad timezone", mutate: func(c *Config) { c.Digest.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
