package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

// Fetch asks for financial-markets news sorted newest first. Alpha Vantage
// reports quota problems in a 200 body, so those surface as errors here.
func (c *AlphaVantageClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("topics", "financial_markets")
	params.Set("sort", "LATEST")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("apikey", c.apiKey)

	var raw avResponse
	if err := getJSON(ctx, c.httpClient, "alphavantage", alphaVantageURL+"?"+params.Encode(), &raw); err != nil {
		return nil, err
	}

	if raw.Information != "" && len(raw.Feed) == 0 {
		return nil, fmt.Errorf("alphavantage fetch: %s", raw.Information)
	}

	articles := make([]Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Headline:    item.Title,
			Publisher:   item.Source,
			PublishedAt: publishedAt.UTC(),
		})
	}

	return articles, nil
}

type avResponse struct {
	Information string       `json:"Information"`
	Feed        []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
