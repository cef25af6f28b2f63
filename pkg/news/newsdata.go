package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const newsdataURL = "https://newsdata.io/api/1/news"

// NewsdataClient reads the latest-news endpoint of newsdata.io. The free tier
// caps page size at 10 and allows 200 requests a day.
type NewsdataClient struct {
	apiKey     string
	country    string
	category   string
	language   string
	httpClient *http.Client
}

func NewNewsdataClient(apiKey, country, category, language string) *NewsdataClient {
	return &NewsdataClient{
		apiKey:     apiKey,
		country:    country,
		category:   category,
		language:   language,
		httpClient: newHTTPClient(),
	}
}

func (c *NewsdataClient) Name() string {
	return "Newsdata"
}

func (c *NewsdataClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if c.country != "" {
		params.Set("country", c.country)
	}
	if c.category != "" {
		params.Set("category", c.category)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if limit > 0 {
		params.Set("size", strconv.Itoa(limit))
	}

	var raw newsdataResponse
	if err := getJSON(ctx, c.httpClient, "newsdata", newsdataURL+"?"+params.Encode(), &raw); err != nil {
		return nil, err
	}

	if raw.Status != "" && raw.Status != "success" {
		return nil, fmt.Errorf("newsdata fetch: status %q", raw.Status)
	}

	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		publishedAt, err := time.Parse(time.DateTime, item.PubDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Headline:    item.Title,
			Publisher:   item.SourceID,
			PublishedAt: publishedAt.UTC(),
		})
	}

	return articles, nil
}

type newsdataResponse struct {
	Status  string           `json:"status"`
	Results []newsdataResult `json:"results"`
}

type newsdataResult struct {
	Title    string `json:"title"`
	PubDate  string `json:"pubDate"`
	SourceID string `json:"source_id"`
}
