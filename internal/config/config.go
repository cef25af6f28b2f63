package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Tickers TickersConfig `mapstructure:"tickers"`
	Quotes  QuotesConfig  `mapstructure:"quotes"`
	News    NewsConfig    `mapstructure:"news"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Email   EmailConfig   `mapstructure:"email"`
	Digest  DigestConfig  `mapstructure:"digest"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TickersConfig struct {
	Store     string `mapstructure:"store"`
	Source    string `mapstructure:"source"`
	SourceURL string `mapstructure:"source_url"`
	Size      int    `mapstructure:"size"`
}

type QuotesConfig struct {
	LookbackDays int `mapstructure:"lookback_days"`
	Workers      int `mapstructure:"workers"`
}

type NewsConfig struct {
	NewsdataKey     string `mapstructure:"newsdata_key"`
	FinnhubKey      string `mapstructure:"finnhub_key"`
	AlphaVantageKey string `mapstructure:"alpha_vantage_key"`
	MassiveKey      string `mapstructure:"massive_key"`
	Limit           int    `mapstructure:"limit"`
	Country         string `mapstructure:"country"`
	Category        string `mapstructure:"category"`
	Language        string `mapstructure:"language"`
}

type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	Model        string        `mapstructure:"model"`
	GeminiKey    string        `mapstructure:"gemini_key"`
	OpenAIKey    string        `mapstructure:"openai_key"`
	AnthropicKey string        `mapstructure:"anthropic_key"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxWords     int           `mapstructure:"max_words"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// APIKey returns the key of the selected provider.
func (c LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIKey
	case ProviderAnthropic:
		return c.AnthropicKey
	default:
		return c.GeminiKey
	}
}

type EmailConfig struct {
	ResendKey string   `mapstructure:"resend_key"`
	From      string   `mapstructure:"from"`
	FromName  string   `mapstructure:"from_name"`
	To        []string `mapstructure:"to"`
}

type DigestConfig struct {
	Timezone string `mapstructure:"timezone"`
	Language string `mapstructure:"language"`
}

func (c DigestConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	SourceStockAnalysis = "stockanalysis"
	SourceYahoo         = "yahoo"
)

// envBindings maps config keys to the flat environment variable names.
var envBindings = map[string]string{
	"log.level": "LOG_LEVEL",

	"tickers.store":      "TICKER_STORE",
	"tickers.source":     "UNIVERSE_SOURCE",
	"tickers.source_url": "UNIVERSE_SOURCE_URL",
	"tickers.size":       "UNIVERSE_SIZE",

	"quotes.lookback_days": "QUOTE_LOOKBACK_DAYS",
	"quotes.workers":       "QUOTE_WORKERS",

	"news.newsdata_key":      "NEWSDATA_API_KEY",
	"news.finnhub_key":       "FINNHUB_API_KEY",
	"news.alpha_vantage_key": "ALPHA_VANTAGE_API_KEY",
	"news.massive_key":       "MASSIVE_API_KEY",
	"news.limit":             "NEWS_LIMIT",
	"news.country":           "NEWS_COUNTRY",
	"news.category":          "NEWS_CATEGORY",
	"news.language":          "NEWS_LANGUAGE",

	"llm.provider":      "LLM_PROVIDER",
	"llm.model":         "LLM_MODEL",
	"llm.gemini_key":    "GEMINI_API_KEY",
	"llm.openai_key":    "OPENAI_API_KEY",
	"llm.anthropic_key": "ANTHROPIC_API_KEY",
	"llm.temperature":   "LLM_TEMPERATURE",
	"llm.max_words":     "LLM_MAX_WORDS",
	"llm.timeout":       "LLM_TIMEOUT",

	"email.resend_key": "RESEND_API_KEY",
	"email.from":       "FROM_EMAIL",
	"email.from_name":  "FROM_NAME",
	"email.to":         "TO_EMAIL",

	"digest.timezone": "DIGEST_TIMEZONE",
	"digest.language": "DIGEST_LANGUAGE",
}

// Load reads the environment (and an optional .env file) into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment")
	}

	v := viper.New()

	v.SetDefault("log.level", "info")

	v.SetDefault("tickers.store", "tickers.json")
	v.SetDefault("tickers.source", SourceStockAnalysis)
	v.SetDefault("tickers.source_url", "https://stockanalysis.com/stocks/")
	v.SetDefault("tickers.size", 50)

	v.SetDefault("quotes.lookback_days", 7)
	v.SetDefault("quotes.workers", 8)

	v.SetDefault("news.limit", 10)
	v.SetDefault("news.country", "us")
	v.SetDefault("news.category", "business")
	v.SetDefault("news.language", "en")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.temperature", 0.6)
	v.SetDefault("llm.max_words", 1000)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("email.from_name", "Market Pulse")
	v.SetDefault("email.to", []string{})

	v.SetDefault("digest.timezone", "Asia/Shanghai")
	v.SetDefault("digest.language", "English")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.Tickers.Source = strings.ToLower(strings.TrimSpace(c.Tickers.Source))

	to := make([]string, 0, len(c.Email.To))
	for _, addr := range c.Email.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	c.Email.To = to
}

func (c *Config) Validate() error {
	if c.Tickers.Store == "" {
		return fmt.Errorf("TICKER_STORE cannot be empty")
	}
	if c.Tickers.Size <= 0 {
		return fmt.Errorf("UNIVERSE_SIZE must be positive, got %d", c.Tickers.Size)
	}
	switch c.Tickers.Source {
	case SourceStockAnalysis, SourceYahoo:
	default:
		return fmt.Errorf("unknown UNIVERSE_SOURCE %q", c.Tickers.Source)
	}

	if c.Quotes.LookbackDays < 2 {
		return fmt.Errorf("QUOTE_LOOKBACK_DAYS must be at least 2, got %d", c.Quotes.LookbackDays)
	}
	if c.Quotes.Workers <= 0 {
		return fmt.Errorf("QUOTE_WORKERS must be positive, got %d", c.Quotes.Workers)
	}

	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if _, err := c.Digest.Location(); err != nil {
		return fmt.Errorf("invalid DIGEST_TIMEZONE %q: %w", c.Digest.Timezone, err)
	}

	return nil
}

// LogLevel parses Log.Level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
